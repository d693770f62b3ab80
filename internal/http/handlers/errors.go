package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	applog "crmlite/internal/log"
)

// ErrorHandler is the application's fiber.ErrorHandler. It logs err and
// answers with the friendly error page; internal details never reach the
// response.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "Something went wrong. Please try again."

	var fe *fiber.Error
	if errors.As(err, &fe) && fe.Code < fiber.StatusInternalServerError {
		code = fe.Code
		msg = "The request could not be processed."
		if code == fiber.StatusNotFound {
			msg = "Page not found"
		}
		applog.Info(c, "server.reject", map[string]any{"code": code})
	} else {
		applog.Error(c, "server.error", err, nil)
	}

	if rerr := c.Status(code).Render("notfound", fiber.Map{"Message": msg}); rerr != nil {
		return c.Status(code).SendString(msg)
	}
	return nil
}
