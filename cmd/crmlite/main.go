package main

import (
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"crmlite/internal/config"
	"crmlite/internal/http/handlers"
	applog "crmlite/internal/log"
	"crmlite/internal/repos"
)

func main() {
	cfg := config.Load()

	closer, err := applog.Setup(applog.Config{Env: cfg.Env, Level: cfg.LogLevel, File: cfg.LogFile})
	if err != nil {
		applog.L().Warn().Err(err).Str("file", cfg.LogFile).Msg("could not open log file")
	}
	defer closer.Close()

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		applog.L().Fatal().Err(err).Str("dsn", cfg.DBDSN).Msg("open database")
	}
	defer db.Close()

	// Templates & app
	engine := html.New(cfg.TemplatesDir, ".html")
	engine.Reload(cfg.Env == "development")

	app := fiber.New(fiber.Config{
		Views:        engine,
		ErrorHandler: handlers.ErrorHandler,
	})
	// Global body size guard
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	chartsURL := handlers.ChartURLPrefix(cfg)

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{Output: os.Stdout}))
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			p := string(c.Request().URI().Path())
			return strings.HasPrefix(p, "/static/") || strings.HasPrefix(p, chartsURL+"/")
		},
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).Render("notfound", fiber.Map{"Message": "Too many requests. Please try again later."})
		},
	}))
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		CookieSecure:   false, // set true behind HTTPS
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Security(c, "csrf.fail", nil)
			return c.Status(fiber.StatusForbidden).Render("notfound", fiber.Map{"Message": "Security check failed. Please refresh and try again."})
		},
	}))
	app.Use(func(c *fiber.Ctx) error {
		if tok, ok := c.Locals("csrf").(string); ok {
			c.Locals("CSRFToken", tok)
		}
		return c.Next()
	})

	// ---------- Static assets and charts ----------
	applog.L().Info().Str("dir", cfg.StaticDir).Str("charts", cfg.ChartDir).
		Str("charts_url", chartsURL).Msg("static mount")
	handlers.MountStatic(app, cfg)

	// ---------- App handlers ----------
	handlers.Register(app, handlers.NewDeps(db, cfg))

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Page not found"})
	})

	applog.L().Info().Str("addr", cfg.Addr()).Msg("listening")
	if err := app.Listen(cfg.Addr()); err != nil {
		applog.L().Fatal().Err(err).Msg("server stopped")
	}
}
