package tenancy

import (
	"fmt"
	"path"
	"strings"
)

// NonRootPolicy decides what happens to a known tenant's non-root paths.
type NonRootPolicy string

const (
	// PolicyPassthrough leaves non-root paths alone so a tenant's own
	// sub-path app (e.g. /<slug>/chat) keeps routing normally.
	PolicyPassthrough NonRootPolicy = "passthrough"
	// PolicyForceRewrite sends every extension-less path to the landing page.
	// Any dot in the last segment counts as an extension, so /release-1.0
	// passes through like /logo.png does.
	PolicyForceRewrite NonRootPolicy = "force_rewrite"
)

const (
	DefaultProductionDomain = "medibridge24x7.com"
	DefaultLocalDomain      = "localhost"
	DefaultLandingPrefix    = "/clinic"
)

var (
	DefaultReserved         = []string{"www", "api", "admin", "app", "dashboard", "mail", "static", "medibridge24x7"}
	DefaultExcludedPrefixes = []string{"/_next", "/api", "/clinic", "/favicon.ico"}
)

// ParsePolicy accepts the config spellings of a NonRootPolicy.
// An empty string selects PolicyPassthrough.
func ParsePolicy(s string) (NonRootPolicy, error) {
	switch NonRootPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", PolicyPassthrough:
		return PolicyPassthrough, nil
	case PolicyForceRewrite:
		return PolicyForceRewrite, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidPolicy, s)
	}
}

// TokenSet is a read-only set of lowercase subdomain tokens.
type TokenSet map[string]struct{}

func NewTokenSet(tokens ...string) TokenSet {
	set := make(TokenSet, len(tokens))
	for _, t := range tokens {
		if t = normalizeToken(t); t != "" {
			set[t] = struct{}{}
		}
	}
	return set
}

func (s TokenSet) Contains(token string) bool {
	_, ok := s[token]
	return ok
}

// Options configures a Resolver. Zero values fall back to the defaults above.
type Options struct {
	ProductionDomain string
	LocalDomain      string
	Reserved         []string
	ExcludedPrefixes []string
	LandingPrefix    string
	NonRootPolicy    NonRootPolicy
}

// DefaultOptions returns the production configuration.
func DefaultOptions() Options {
	return Options{
		ProductionDomain: DefaultProductionDomain,
		LocalDomain:      DefaultLocalDomain,
		Reserved:         append([]string(nil), DefaultReserved...),
		ExcludedPrefixes: append([]string(nil), DefaultExcludedPrefixes...),
		LandingPrefix:    DefaultLandingPrefix,
		NonRootPolicy:    PolicyPassthrough,
	}
}

type rootDomain struct {
	name   string
	suffix string // "." + name
}

// Resolver maps an inbound host and path to a routing decision.
// It holds no mutable state of its own and is safe for concurrent use.
type Resolver struct {
	roots    []rootDomain
	reserved TokenSet
	excluded []string
	landing  string
	policy   NonRootPolicy
	registry Registry
}

// NewResolver validates opts and binds them to reg.
func NewResolver(opts Options, reg Registry) (*Resolver, error) {
	def := DefaultOptions()
	if opts.ProductionDomain == "" {
		opts.ProductionDomain = def.ProductionDomain
	}
	if opts.LocalDomain == "" {
		opts.LocalDomain = def.LocalDomain
	}
	if opts.Reserved == nil {
		opts.Reserved = def.Reserved
	}
	if opts.ExcludedPrefixes == nil {
		opts.ExcludedPrefixes = def.ExcludedPrefixes
	}
	if opts.LandingPrefix == "" {
		opts.LandingPrefix = def.LandingPrefix
	}

	policy, err := ParsePolicy(string(opts.NonRootPolicy))
	if err != nil {
		return nil, err
	}

	if reg == nil {
		reg = (*Snapshot)(nil)
	}

	r := &Resolver{
		reserved: NewTokenSet(opts.Reserved...),
		policy:   policy,
		registry: reg,
	}

	for _, d := range []string{opts.ProductionDomain, opts.LocalDomain} {
		name := strings.Trim(strings.ToLower(strings.TrimSpace(d)), ".")
		if name == "" || strings.ContainsAny(name, ":/ ") {
			return nil, fmt.Errorf("%w: %q", ErrInvalidDomain, d)
		}
		r.roots = append(r.roots, rootDomain{name: name, suffix: "." + name})
	}

	landing := "/" + strings.Trim(strings.TrimSpace(opts.LandingPrefix), "/")
	if landing == "/" {
		return nil, fmt.Errorf("%w: %q is the root path", ErrInvalidLandingPrefix, opts.LandingPrefix)
	}
	r.landing = landing

	seen := make(map[string]bool)
	prefixes := append(append([]string(nil), opts.ExcludedPrefixes...), landing)
	for _, p := range prefixes {
		p = strings.TrimSpace(p)
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		r.excluded = append(r.excluded, p)
	}

	return r, nil
}

// Policy reports the configured non-root policy.
func (r *Resolver) Policy() NonRootPolicy {
	return r.policy
}

// LandingPath is the internal path serving slug's landing page.
func (r *Resolver) LandingPath(slug string) string {
	return r.landing + "/" + slug
}

// Resolve never fails: anything it cannot classify as a tenant request
// passes through unchanged. Excluded prefixes match case-insensitively, as
// the router does.
func (r *Resolver) Resolve(host, urlPath string) Decision {
	for _, p := range r.excluded {
		if hasPrefixFold(urlPath, p) {
			return passThrough(ReasonExcludedPrefix)
		}
	}

	token, reason := r.subdomainToken(host)
	if token == "" {
		return passThrough(reason)
	}

	if r.reserved.Contains(token) {
		return Decision{Action: PassThrough, Subdomain: token, Reason: ReasonReservedToken}
	}

	tenant, ok := r.registry.Lookup(token)
	if !ok {
		return Decision{Action: PassThrough, Subdomain: token, Reason: ReasonUnknownTenant}
	}

	d := Decision{Action: PassThrough, Subdomain: token, Tenant: &tenant, Reason: ReasonNonRootPassthrough}
	switch {
	case urlPath == "" || urlPath == "/":
		d.Action, d.Path, d.Reason = Rewrite, r.LandingPath(tenant.Slug), ReasonRootPath
	case r.policy != PolicyForceRewrite:
		// non-root paths keep their URL
	case path.Ext(urlPath) != "":
		d.Reason = ReasonAssetPath
	default:
		d.Action, d.Path, d.Reason = Rewrite, r.LandingPath(tenant.Slug), ReasonNonRootRewrite
	}
	return d
}

// subdomainToken returns the lowercase first label of host when host sits
// directly under one of the root domains.
func (r *Resolver) subdomainToken(host string) (string, Reason) {
	host = strings.ToLower(strings.TrimSuffix(stripPort(strings.TrimSpace(host)), "."))

	for _, root := range r.roots {
		if host == root.name {
			return "", ReasonNoSubdomain
		}
		if !strings.HasSuffix(host, root.suffix) {
			continue
		}
		sub := strings.TrimSuffix(host, root.suffix)
		token, _, _ := strings.Cut(sub, ".")
		if token == "" {
			return "", ReasonNoSubdomain
		}
		return token, ""
	}

	return "", ReasonForeignDomain
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

func stripPort(host string) string {
	if strings.HasPrefix(host, "[") {
		if i := strings.IndexByte(host, ']'); i >= 0 {
			return host[:i+1]
		}
		return host
	}
	if i := strings.LastIndexByte(host, ':'); i >= 0 {
		return host[:i]
	}
	return host
}
