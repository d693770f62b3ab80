package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

func render(c *fiber.Ctx, tmpl string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	// Pick up the token the CSRF middleware put into Locals
	tok, _ := c.Locals("CSRFToken").(string)
	if tok == "" {
		// Locals is empty on the first GET of a fresh client; fall back to the cookie.
		tok = c.Cookies("csrf_")
	}
	if tok != "" {
		data["CSRFToken"] = tok
	}
	return c.Render(tmpl, data)
}

// failPage shows the friendly error page without leaking err.
func failPage(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).Render("notfound", fiber.Map{"Message": msg})
}

// param reads a selector from the form on POST and from the query string otherwise.
func param(c *fiber.Ctx, name string) string {
	if c.Method() == fiber.MethodPost {
		return strings.TrimSpace(c.FormValue(name))
	}
	return strings.TrimSpace(c.Query(name))
}
