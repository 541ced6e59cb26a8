package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/skmalhotra72/MediBridge24x7-DotCom-Main-App-sub001/internal/api/http/handler"
)

func (r *Router) registerClinicRoutes(app *fiber.App, h *handler.ClinicHandler) {
	landing := r.p.Resolver.LandingPath(":slug")
	app.Get(landing, h.Landing)
}
