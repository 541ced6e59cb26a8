package reqctx

import (
	"context"
	"testing"
)

func TestRequestMeta(t *testing.T) {
	ctx := context.Background()
	if got := RequestIDFromContext(ctx); got != "" {
		t.Errorf("RequestIDFromContext(empty) = %q, want empty", got)
	}
	if _, ok := RequestMetaFromContext(WithRequestMeta(ctx, nil)); ok {
		t.Error("RequestMetaFromContext(nil meta) ok = true")
	}

	ctx = WithRequestMeta(ctx, &RequestMeta{RequestID: "req-1", ClientIP: "10.0.0.7"})
	if got := RequestIDFromContext(ctx); got != "req-1" {
		t.Errorf("RequestIDFromContext = %q, want req-1", got)
	}
	if meta, ok := RequestMetaFromContext(ctx); !ok || meta.ClientIP != "10.0.0.7" {
		t.Errorf("RequestMetaFromContext = %+v, %v", meta, ok)
	}
}

func TestTenant(t *testing.T) {
	ctx := context.Background()
	if _, ok := TenantFromContext(ctx); ok {
		t.Error("TenantFromContext(empty) ok = true")
	}

	unresolved := &Tenant{Subdomain: "unknown", OriginalPath: "/", Reason: "unknown_tenant"}
	if unresolved.Resolved() {
		t.Error("unknown tenant reported as resolved")
	}

	ctx = WithTenant(ctx, &Tenant{Subdomain: "cgh", Slug: "city-general-hospital", Rewritten: true})
	got, ok := TenantFromContext(ctx)
	if !ok || !got.Resolved() {
		t.Fatalf("TenantFromContext = %+v, %v", got, ok)
	}
	if got.Slug != "city-general-hospital" {
		t.Errorf("Slug = %q", got.Slug)
	}

	var nilTenant *Tenant
	if nilTenant.Resolved() {
		t.Error("nil tenant reported as resolved")
	}
}
