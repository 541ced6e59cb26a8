package reqctx

import "context"

// Tenant describes how the routing layer handled the request's host.
type Tenant struct {
	// Subdomain is the lower-cased first host label, empty when the host
	// carried no tenant token.
	Subdomain string

	// Slug and Name are set only when the token matched a registered clinic.
	Slug string
	Name string

	// OriginalPath is the path before any rewrite.
	OriginalPath string

	// Rewritten is true when the path was replaced by the clinic landing path.
	Rewritten bool

	// Reason is the routing reason code, e.g. "root_path" or "unknown_tenant".
	Reason string
}

// Resolved reports whether the request was matched to a clinic.
func (t *Tenant) Resolved() bool {
	return t != nil && t.Slug != ""
}

// WithTenant stores tenant routing info in the context.
func WithTenant(ctx context.Context, t *Tenant) context.Context {
	return context.WithValue(ctx, keyTenant, t)
}

// TenantFromContext retrieves tenant routing info from the context.
// Returns nil, false if the routing middleware did not run.
func TenantFromContext(ctx context.Context) (*Tenant, bool) {
	t, ok := ctx.Value(keyTenant).(*Tenant)
	return t, ok && t != nil
}
