package handlers

import "github.com/gofiber/fiber/v2"

// Register mounts the application pages on app.
func Register(app fiber.Router, d *Deps) {
	app.Get("/", d.DashboardHandler.Index)
	app.Get("/identify", d.DashboardHandler.Identify)
	app.Post("/identify", d.DashboardHandler.Identify)

	app.Get("/users", d.UserHandler.List)
	app.Get("/users/display", d.UserHandler.Display)
	app.Post("/users/display", d.UserHandler.Display)
	app.Post("/users/save", d.UserHandler.Save)

	app.Get("/products", d.ProductHandler.List)
	app.Get("/products/display", d.ProductHandler.Display)
	app.Post("/products/display", d.ProductHandler.Display)
	app.Post("/products/save", d.ProductHandler.Save)

	app.Get("/activity", d.ActivityHandler.List)
	app.Get("/activity/display", d.ActivityHandler.Display)
	app.Post("/activity/display", d.ActivityHandler.Display)
	app.Post("/activity/save", d.ActivityHandler.Save)

	app.Get("/reports/admin.pdf", d.ReportHandler.AdminPDF)
}
