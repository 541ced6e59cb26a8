package tenancy

import (
	"context"
	"sort"
)

// Source supplies registry entries. Sources are consulted off the request
// path, by the Reloader only.
type Source interface {
	Name() string
	Load(ctx context.Context) ([]Tenant, error)
}

// StaticSource serves a fixed subdomain -> slug table, typically the
// tenancy.registry section of the config file.
type StaticSource struct {
	tenants []Tenant
}

func NewStaticSource(table map[string]string) *StaticSource {
	tenants := make([]Tenant, 0, len(table))
	for sub, slug := range table {
		tenants = append(tenants, Tenant{Subdomain: sub, Slug: slug})
	}
	sort.Slice(tenants, func(i, j int) bool { return tenants[i].Subdomain < tenants[j].Subdomain })
	return &StaticSource{tenants: tenants}
}

func (s *StaticSource) Name() string { return "static" }

func (s *StaticSource) Load(context.Context) ([]Tenant, error) {
	return append([]Tenant(nil), s.tenants...), nil
}

// Merge flattens the results of several sources. A later source overrides an
// earlier one for the same subdomain.
func Merge(lists ...[]Tenant) []Tenant {
	index := make(map[string]int)
	var out []Tenant
	for _, list := range lists {
		for _, t := range list {
			key := normalizeToken(t.Subdomain)
			if i, ok := index[key]; ok {
				out[i] = t
				continue
			}
			index[key] = len(out)
			out = append(out, t)
		}
	}
	return out
}

// Notifier announces a registry change to peer instances so they reload too.
type Notifier interface {
	Name() string
	Notify(ctx context.Context) error
}
