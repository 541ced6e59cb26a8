package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/skmalhotra72/MediBridge24x7-DotCom-Main-App-sub001/internal/api/http/middleware"
	"github.com/skmalhotra72/MediBridge24x7-DotCom-Main-App-sub001/internal/tenancy"
)

type ClinicHandler struct {
	store *tenancy.Store
}

func NewClinicHandler(store *tenancy.Store) *ClinicHandler {
	return &ClinicHandler{store: store}
}

// GET /clinic/:slug
//
// Reached directly or through the subdomain rewrite; routing tells the two apart.
func (h *ClinicHandler) Landing(c fiber.Ctx) error {
	t, found := h.store.BySlug(c.Params("slug"))
	if !found {
		return notFound(c, "clinic not found")
	}

	routing := fiber.Map{"rewritten": false}
	if info, ok := middleware.TenantFromFiber(c); ok && info.Rewritten {
		routing = fiber.Map{
			"rewritten":     true,
			"subdomain":     info.Subdomain,
			"original_path": info.OriginalPath,
			"reason":        info.Reason,
		}
	}
	if rid, ok := middleware.RequestIDFromFiber(c); ok {
		routing["request_id"] = rid
	}

	return ok(c, fiber.Map{
		"clinic":  t,
		"routing": routing,
	})
}
