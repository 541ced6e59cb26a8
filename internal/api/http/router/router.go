package router

import (
	"context"
	"log/slog"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/skmalhotra72/MediBridge24x7-DotCom-Main-App-sub001/config"
	"github.com/skmalhotra72/MediBridge24x7-DotCom-Main-App-sub001/internal/api/http/handler"
	"github.com/skmalhotra72/MediBridge24x7-DotCom-Main-App-sub001/internal/tenancy"
)

// Module provides the Router to the fx graph.
var Module = fx.Module("router", fx.Provide(NewRouter))

type Params struct {
	fx.In

	Cfg       *config.Config
	Redis     *redis.Client `optional:"true"`
	Store     *tenancy.Store
	Resolver  *tenancy.Resolver
	Reloader  *tenancy.Reloader
	Notifiers []tenancy.Notifier `group:"tenant_notifiers"`
}

type Router struct {
	p Params
}

func NewRouter(p Params) *Router {
	return &Router{p: p}
}

func (r *Router) Register(app *fiber.App) {
	// 1. Health & Metrics
	r.registerSystemRoutes(app)

	// 2. Handlers
	clinicH := handler.NewClinicHandler(r.p.Store)
	tenantH := handler.NewTenantHandler(r.p.Store, r.p.Resolver, r.reload)

	// 3. Routes
	r.registerClinicRoutes(app, clinicH)

	api := app.Group("/api/v1")
	r.registerTenantRoutes(api, tenantH)
}

// reload schedules a local reload and tells peer instances to do the same.
func (r *Router) reload(ctx context.Context) {
	r.p.Reloader.Trigger()
	for _, n := range r.p.Notifiers {
		if n == nil {
			continue
		}
		if err := n.Notify(ctx); err != nil {
			slog.Warn("tenant reload broadcast failed", slog.String("via", n.Name()), slog.Any("error", err))
		}
	}
}

func (r *Router) registerSystemRoutes(app *fiber.App) {
	app.Get(healthcheck.LivenessEndpoint, healthcheck.New())
	app.Get(healthcheck.ReadinessEndpoint, healthcheck.New(healthcheck.Config{
		Probe: func(c fiber.Ctx) bool { return r.p.Store.Ready() },
	}))
	app.Get(healthcheck.StartupEndpoint, healthcheck.New(healthcheck.Config{
		Probe: func(c fiber.Ctx) bool { return r.p.Store.Ready() },
	}))

	if r.p.Cfg.Observability.Enabled && r.p.Cfg.Observability.Metrics.Enabled {
		path := r.p.Cfg.Observability.Metrics.Path
		if path == "" {
			path = "/metrics"
		}
		app.Get(path, adaptor.HTTPHandler(promhttp.Handler()))
	}
}
