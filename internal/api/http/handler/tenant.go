package handler

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"github.com/skmalhotra72/MediBridge24x7-DotCom-Main-App-sub001/internal/tenancy"
)

type TenantHandler struct {
	store    *tenancy.Store
	resolver *tenancy.Resolver
	reload   func(ctx context.Context)
}

// NewTenantHandler wires the operator endpoints. reload schedules a registry
// reload; it must not block on the sources.
func NewTenantHandler(store *tenancy.Store, resolver *tenancy.Resolver, reload func(ctx context.Context)) *TenantHandler {
	return &TenantHandler{store: store, resolver: resolver, reload: reload}
}

// GET /api/v1/tenants
func (h *TenantHandler) List(c fiber.Ctx) error {
	snap := h.store.Load()
	tenants := snap.Tenants()
	if tenants == nil {
		tenants = []tenancy.Tenant{}
	}
	return ok(c, fiber.Map{
		"tenants": tenants,
		"total":   snap.Len(),
		"ready":   h.store.Ready(),
	})
}

// GET /api/v1/tenants/resolve?host=&path=
func (h *TenantHandler) Resolve(c fiber.Ctx) error {
	var q struct {
		Host string `query:"host"`
		Path string `query:"path"`
	}
	if err := c.Bind().Query(&q); err != nil {
		return badRequest(c, "invalid query")
	}
	if q.Host == "" {
		return badRequest(c, "host is required")
	}
	if q.Path == "" {
		q.Path = "/"
	}

	return ok(c, fiber.Map{
		"host":     q.Host,
		"path":     q.Path,
		"policy":   h.resolver.Policy(),
		"decision": h.resolver.Resolve(q.Host, q.Path),
	})
}

// POST /api/v1/tenants/reload
func (h *TenantHandler) Reload(c fiber.Ctx) error {
	h.reload(c.Context())
	return accepted(c, fiber.Map{"status": "reload scheduled"})
}
