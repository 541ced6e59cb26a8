package tenancy

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync/atomic"
)

var (
	subdomainPattern = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]{0,61}[a-z0-9])?$`)
	slugPattern      = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)
)

// Tenant is a clinic reachable through its own subdomain.
type Tenant struct {
	Subdomain string `json:"subdomain"`
	Slug      string `json:"slug"`
	Name      string `json:"name,omitempty"`
}

// Registry maps a subdomain token to a tenant.
type Registry interface {
	Lookup(token string) (Tenant, bool)
}

// Snapshot is an immutable registry built once per reload.
type Snapshot struct {
	bySubdomain map[string]Tenant
	bySlug      map[string]Tenant
}

// NewSnapshot normalizes and validates tenants. Invalid entries and repeated
// subdomains are skipped and reported; the first occurrence of a subdomain wins.
func NewSnapshot(tenants []Tenant) (*Snapshot, []error) {
	s := &Snapshot{
		bySubdomain: make(map[string]Tenant, len(tenants)),
		bySlug:      make(map[string]Tenant, len(tenants)),
	}
	var errs []error

	for _, t := range tenants {
		t.Subdomain = normalizeToken(t.Subdomain)
		t.Slug = strings.TrimSpace(t.Slug)
		t.Name = strings.TrimSpace(t.Name)

		if !subdomainPattern.MatchString(t.Subdomain) {
			errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidSubdomain, t.Subdomain))
			continue
		}
		if !slugPattern.MatchString(t.Slug) {
			errs = append(errs, fmt.Errorf("%w: %q for subdomain %q", ErrInvalidSlug, t.Slug, t.Subdomain))
			continue
		}
		if _, dup := s.bySubdomain[t.Subdomain]; dup {
			errs = append(errs, fmt.Errorf("%w: %q", ErrDuplicateSubdomain, t.Subdomain))
			continue
		}

		s.bySubdomain[t.Subdomain] = t
		if _, seen := s.bySlug[t.Slug]; !seen {
			s.bySlug[t.Slug] = t
		}
	}

	return s, errs
}

func normalizeToken(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Lookup is case-insensitive on the token.
func (s *Snapshot) Lookup(token string) (Tenant, bool) {
	if s == nil {
		return Tenant{}, false
	}
	t, ok := s.bySubdomain[strings.ToLower(token)]
	return t, ok
}

// BySlug returns the tenant whose landing page lives under slug.
func (s *Snapshot) BySlug(slug string) (Tenant, bool) {
	if s == nil {
		return Tenant{}, false
	}
	t, ok := s.bySlug[slug]
	return t, ok
}

// Len reports the number of tenants in the snapshot.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.bySubdomain)
}

// Tenants returns the tenants ordered by subdomain.
func (s *Snapshot) Tenants() []Tenant {
	if s == nil {
		return nil
	}
	out := make([]Tenant, 0, len(s.bySubdomain))
	for _, t := range s.bySubdomain {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Subdomain < out[j].Subdomain })
	return out
}

// Store publishes the latest snapshot to concurrent readers.
// A Store that was never swapped behaves as an empty registry.
type Store struct {
	current atomic.Pointer[Snapshot]
}

func NewStore() *Store {
	return &Store{}
}

// Load returns the current snapshot, or nil before the first Swap.
func (st *Store) Load() *Snapshot {
	return st.current.Load()
}

// Swap publishes s and returns the snapshot it replaced.
func (st *Store) Swap(s *Snapshot) *Snapshot {
	return st.current.Swap(s)
}

// Ready reports whether a snapshot has been published.
func (st *Store) Ready() bool {
	return st.current.Load() != nil
}

func (st *Store) Lookup(token string) (Tenant, bool) {
	return st.current.Load().Lookup(token)
}

func (st *Store) BySlug(slug string) (Tenant, bool) {
	return st.current.Load().BySlug(slug)
}
