package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "crmlite/internal/log"
	"crmlite/internal/report"
	"crmlite/internal/services"
)

type ReportHandler struct {
	Dash *services.DashboardService
}

// GET /reports/admin.pdf
func (h *ReportHandler) AdminPDF(c *fiber.Ctx) error {
	v, err := h.Dash.AdminData(c.UserContext())
	if err != nil {
		applog.Error(c, "report.admin.fail", err, nil)
		return failPage(c, fiber.StatusInternalServerError, "Could not build the report")
	}
	b, err := report.AdminPDF(v)
	if err != nil {
		applog.Error(c, "report.admin.fail", err, nil)
		return failPage(c, fiber.StatusInternalServerError, "Could not build the report")
	}
	applog.Audit(c, "report.admin", map[string]any{"bytes": len(b)})
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="activity-report.pdf"`)
	return c.Send(b)
}
