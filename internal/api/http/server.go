package http

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/helmet"
	"github.com/gofiber/fiber/v3/middleware/logger"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"

	"github.com/skmalhotra72/MediBridge24x7-DotCom-Main-App-sub001/config"
	"github.com/skmalhotra72/MediBridge24x7-DotCom-Main-App-sub001/internal/api/http/middleware"
	"github.com/skmalhotra72/MediBridge24x7-DotCom-Main-App-sub001/internal/api/http/router"
	"github.com/skmalhotra72/MediBridge24x7-DotCom-Main-App-sub001/internal/tenancy"
	"github.com/skmalhotra72/MediBridge24x7-DotCom-Main-App-sub001/pkg/observability"
)

// Module provides the HTTP Server to the fx graph.
var Module = fx.Module("http", fx.Provide(NewServer))

type Params struct {
	fx.In

	Lifecycle fx.Lifecycle
	Cfg       *config.Config
	Resolver  *tenancy.Resolver
	Router    *router.Router
	OTel      *observability.Provider `optional:"true"`
}

func NewServer(p Params) *fiber.App {
	var tp trace.TracerProvider
	if p.OTel != nil && p.OTel.TracerProvider != nil {
		tp = p.OTel.TracerProvider
	}
	app := New(p.Cfg, p.Resolver, tp)

	p.Router.Register(app)

	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			addr := fmt.Sprintf(":%d", p.Cfg.Server.Port)
			go func() {
				if err := app.Listen(addr, fiber.ListenConfig{DisableStartupMessage: true}); err != nil {
					slog.Error("HTTP server error", "error", err)
				}
			}()
			slog.Info("HTTP server listening", slog.String("addr", addr))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			slog.Debug("shutting down HTTP server")
			return app.ShutdownWithContext(ctx)
		},
	})

	return app
}

// New builds the fiber app with the global middleware chain. Only the request
// id runs ahead of the tenant rewrite, so every later handler and the access
// log see the rewritten path.
func New(cfg *config.Config, resolver *tenancy.Resolver, tp trace.TracerProvider) *fiber.App {
	timeout := time.Duration(cfg.Server.TimeoutSeconds) * time.Second
	app := fiber.New(fiber.Config{
		AppName:      "medibridge",
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
	})

	app.Use(middleware.RequestID())
	app.Use(middleware.TenantRewrite(resolver))

	if tp != nil {
		app.Use(observability.Tracing(tp))
	}

	configureGlobalMiddleware(app, cfg)

	return app
}

func configureGlobalMiddleware(app *fiber.App, cfg *config.Config) {
	app.Use(recoverer.New())

	if cfg.IsProduction() {
		app.Use(helmet.New())
	}
	if cfg.Server.CORS.Enabled {
		app.Use(cors.New(cors.Config{AllowOrigins: cfg.Server.CORS.AllowOrigins}))
	}

	app.Use(logger.New(logger.Config{
		Format: "${ip} - [${time}] [req_id=${locals:requestid}] ${host} ${method} ${path} ${status}\n",
	}))
}
