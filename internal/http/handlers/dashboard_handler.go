package handlers

import (
	"github.com/gofiber/fiber/v2"

	"crmlite/internal/domain"
	applog "crmlite/internal/log"
	"crmlite/internal/services"
)

type DashboardHandler struct {
	Dash *services.DashboardService
}

// GET /
func (h *DashboardHandler) Index(c *fiber.Ctx) error {
	return render(c, "index", fiber.Map{})
}

// GET,POST /identify routes the visitor to the page of their role.
func (h *DashboardHandler) Identify(c *fiber.Ctx) error {
	id := param(c, "userId")
	if id == "" {
		return render(c.Status(fiber.StatusBadRequest), "index", fiber.Map{"Err": "Please, introduce a user identification"})
	}
	role, rec, err := h.Dash.Identify(c.UserContext(), id)
	if err != nil {
		applog.Error(c, "identify.fail", err, map[string]any{"user": id})
		return failPage(c, fiber.StatusInternalServerError, "Something went wrong. Please try again.")
	}
	applog.Info(c, "identify", map[string]any{"user": id, "role": string(role)})

	switch role {
	case domain.RoleAdmin:
		v, err := h.Dash.AdminView(c.UserContext())
		if err != nil {
			applog.Error(c, "dashboard.admin.fail", err, nil)
			return failPage(c, fiber.StatusInternalServerError, "Could not build the dashboard")
		}
		return render(c, "admin", fiber.Map{"View": v})
	case domain.RoleSupplier:
		v, err := h.Dash.SupplierView(c.UserContext(), rec)
		if err != nil {
			applog.Error(c, "dashboard.supplier.fail", err, map[string]any{"user": id})
			return failPage(c, fiber.StatusInternalServerError, "Could not build the dashboard")
		}
		return render(c, "supplier", fiber.Map{"View": v, "Name": rec.Get("name")})
	case domain.RoleCustomer:
		v, err := h.Dash.CustomerView(c.UserContext(), rec)
		if err != nil {
			applog.Error(c, "dashboard.customer.fail", err, map[string]any{"user": id})
			return failPage(c, fiber.StatusInternalServerError, "Could not build the dashboard")
		}
		return render(c, "customer", fiber.Map{"View": v, "Name": rec.Get("name")})
	}
	applog.Security(c, "identify.unknown", map[string]any{"user": id})
	return render(c.Status(fiber.StatusNotFound), "index", fiber.Map{"Err": "This user identification doesn't exist"})
}
