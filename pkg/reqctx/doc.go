// Package reqctx provides centralized request context management.
//
// All request-scoped values live behind private context keys and are reached
// through typed setters and getters.
//
// # Usage
//
// Setting values (typically in middleware):
//
//	ctx = reqctx.WithRequestMeta(ctx, &reqctx.RequestMeta{
//	    RequestID: "abc-123",
//	    ClientIP:  "192.168.1.1",
//	})
//
//	ctx = reqctx.WithTenant(ctx, &reqctx.Tenant{
//	    Subdomain:    "cgh",
//	    Slug:         "city-general-hospital",
//	    OriginalPath: "/",
//	    Rewritten:    true,
//	    Reason:       "root_path",
//	})
//
// Getting values (in handlers, services, etc.):
//
//	rid := reqctx.RequestIDFromContext(ctx)
//	tenant, ok := reqctx.TenantFromContext(ctx)
//
// # Contracts
//
//   - RequestMeta is set by HTTP middleware for all requests
//   - Tenant is set by the tenant routing middleware for all requests,
//     including those it passes through untouched
package reqctx
