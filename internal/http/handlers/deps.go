package handlers

import (
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"

	"crmlite/internal/chart"
	"crmlite/internal/config"
	"crmlite/internal/repos"
	"crmlite/internal/services"
)

type Deps struct {
	DashboardHandler *DashboardHandler
	ReportHandler    *ReportHandler
	UserHandler      *UserHandler
	ProductHandler   *ProductHandler
	ActivityHandler  *ActivityHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config) *Deps {
	userRepo := repos.NewUserRepo(db)
	prodRepo := repos.NewProductRepo(db)
	actRepo := repos.NewActivityRepo(db)

	charts := chart.NewSVGStore(cfg.ChartDir, ChartURLPrefix(cfg))
	actSvc := services.NewActivityService(actRepo)
	invSvc := services.NewInventoryService(prodRepo)
	dashSvc := services.NewDashboardService(userRepo, actSvc, invSvc, charts)

	return &Deps{
		DashboardHandler: &DashboardHandler{Dash: dashSvc},
		ReportHandler:    &ReportHandler{Dash: dashSvc},
		UserHandler:      NewUserHandler(userRepo),
		ProductHandler:   NewProductHandler(prodRepo),
		ActivityHandler:  NewActivityHandler(actRepo, prodRepo, userRepo),
	}
}

// ChartURLPrefix is the URL path chart images are served from: their place
// under the /static mount when ChartDir sits inside StaticDir, /charts
// otherwise.
func ChartURLPrefix(cfg config.Config) string {
	static, err1 := filepath.Abs(cfg.StaticDir)
	charts, err2 := filepath.Abs(cfg.ChartDir)
	if err1 != nil || err2 != nil {
		return "/charts"
	}
	rel, err := filepath.Rel(static, charts)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "/charts"
	}
	return "/static/" + filepath.ToSlash(rel)
}

// MountStatic serves the chart directory, uncached, ahead of the static
// assets so a freshly rendered chart is never answered from the file cache.
func MountStatic(app fiber.Router, cfg config.Config) {
	app.Static(ChartURLPrefix(cfg), cfg.ChartDir, fiber.Static{CacheDuration: -1})
	app.Static("/static", cfg.StaticDir)
}
