package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/skmalhotra72/MediBridge24x7-DotCom-Main-App-sub001/internal/api/http/handler"
	"github.com/skmalhotra72/MediBridge24x7-DotCom-Main-App-sub001/internal/api/http/middleware"
)

func (r *Router) registerTenantRoutes(api fiber.Router, h *handler.TenantHandler) {
	tenants := api.Group("/tenants")
	tenants.Use(middleware.AdminToken(r.p.Cfg.Server.AdminToken))
	if r.p.Cfg.IsProduction() {
		tenants.Use(middleware.NewLimiter(r.p.Redis, r.p.Cfg.Server.RateLimit.RequestsPerMinute))
	}

	tenants.Get("/", h.List)
	tenants.Get("/resolve", h.Resolve)
	tenants.Post("/reload", h.Reload)
}
