package observability

import (
	"strconv"

	"github.com/gofiber/fiber/v3"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/skmalhotra72/MediBridge24x7-DotCom-Main-App-sub001/pkg/reqctx"
)

const (
	tracerName = "github.com/skmalhotra72/MediBridge24x7-DotCom-Main-App-sub001/pkg/observability"

	AttrTenantSubdomain    = "medibridge.tenant.subdomain"
	AttrTenantSlug         = "medibridge.tenant.slug"
	AttrTenantReason       = "medibridge.tenant.reason"
	AttrTenantRewritten    = "medibridge.tenant.rewritten"
	AttrTenantOriginalPath = "medibridge.tenant.original_path"
)

// Tracing opens a server span per request and labels it with the routing
// decision. It must be registered after the tenant rewrite, which leaves the
// decision on the request context. A nil tp uses the global provider.
func Tracing(tp trace.TracerProvider) fiber.Handler {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	tracer := tp.Tracer(tracerName)

	return func(c fiber.Ctx) error {
		ctx := otel.GetTextMapPropagator().Extract(c.Context(), propagation.HeaderCarrier(c.GetReqHeaders()))

		ctx, span := tracer.Start(ctx, c.Method(),
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.request.method", c.Method()),
				attribute.String("server.address", c.Hostname()),
				attribute.String("url.path", c.Path()),
			),
		)
		defer span.End()

		if t, ok := reqctx.TenantFromContext(ctx); ok {
			span.SetAttributes(
				attribute.String(AttrTenantReason, t.Reason),
				attribute.Bool(AttrTenantRewritten, t.Rewritten),
			)
			if t.Subdomain != "" {
				span.SetAttributes(attribute.String(AttrTenantSubdomain, t.Subdomain))
			}
			if t.Resolved() {
				span.SetAttributes(attribute.String(AttrTenantSlug, t.Slug))
			}
			if t.Rewritten {
				span.SetAttributes(attribute.String(AttrTenantOriginalPath, t.OriginalPath))
			}
		}

		c.SetContext(ctx)
		if sc := span.SpanContext(); sc.HasTraceID() {
			c.Set("X-Trace-Id", sc.TraceID().String())
		}

		err := c.Next()

		// the matched route is only known once the chain has run
		route := c.Route().Path
		span.SetName(c.Method() + " " + route)
		status := c.Response().StatusCode()
		span.SetAttributes(
			attribute.String("http.route", route),
			attribute.Int("http.response.status_code", status),
		)
		if status >= fiber.StatusInternalServerError {
			span.SetStatus(codes.Error, "HTTP "+strconv.Itoa(status))
			if err != nil {
				span.RecordError(err)
			}
		}

		return err
	}
}
