package middleware

import (
	"log/slog"

	"github.com/gofiber/fiber/v3"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/skmalhotra72/MediBridge24x7-DotCom-Main-App-sub001/internal/tenancy"
	"github.com/skmalhotra72/MediBridge24x7-DotCom-Main-App-sub001/pkg/reqctx"
)

const (
	LocalsTenant       = "tenant"
	LocalsOriginalPath = "original_path"

	meterName = "github.com/skmalhotra72/MediBridge24x7-DotCom-Main-App-sub001/internal/api/http/middleware"
)

// TenantRewrite maps clinic subdomains onto the landing route. It must run
// before any handler that reads or routes on the path; RequestID may precede
// it so the rewrite is logged with the request id.
// Rewrites are internal: the client never gets a redirect.
func TenantRewrite(resolver *tenancy.Resolver) fiber.Handler {
	decisions, _ := otel.Meter(meterName).Int64Counter(
		"tenant_routing_decisions_total",
		metric.WithDescription("Tenant routing decisions by action and reason"),
		metric.WithUnit("{request}"),
	)

	return func(c fiber.Ctx) error {
		host := string(c.Request().Host())
		original := c.Path()

		d := resolver.Resolve(host, original)

		info := &reqctx.Tenant{
			Subdomain:    d.Subdomain,
			OriginalPath: original,
			Rewritten:    d.Rewritten(),
			Reason:       string(d.Reason),
		}
		if d.Tenant != nil {
			info.Slug = d.Tenant.Slug
			info.Name = d.Tenant.Name
		}

		c.Locals(LocalsTenant, info)
		c.SetContext(reqctx.WithTenant(c.Context(), info))

		if decisions != nil {
			decisions.Add(c.Context(), 1, metric.WithAttributes(
				attribute.String("action", string(d.Action)),
				attribute.String("reason", string(d.Reason)),
			))
		}

		if !d.Rewritten() {
			return c.Next()
		}

		var clientIP string
		if meta, ok := reqctx.RequestMetaFromContext(c.Context()); ok {
			clientIP = meta.ClientIP
		}
		slog.DebugContext(c.Context(), "tenant rewrite",
			slog.String("request_id", reqctx.RequestIDFromContext(c.Context())),
			slog.String("client_ip", clientIP),
			slog.String("host", host),
			slog.String("from", original),
			slog.String("to", d.Path),
			slog.String("reason", string(d.Reason)),
		)

		c.Locals(LocalsOriginalPath, original)
		c.Path(d.Path)
		return c.Next()
	}
}

// TenantFromFiber returns the routing info stored by TenantRewrite.
func TenantFromFiber(c fiber.Ctx) (*reqctx.Tenant, bool) {
	t, ok := c.Locals(LocalsTenant).(*reqctx.Tenant)
	return t, ok && t != nil
}
