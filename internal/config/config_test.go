package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"crmlite/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, k := range []string{"PORT", "DB_DSN", "CHART_DIR", "LOG_LEVEL", "APP_ENV"} {
		t.Setenv(k, "")
	}
	cfg := config.Load()
	// empty env vars count as unset
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "crmlite.db", cfg.DBDSN)
	assert.Equal(t, "./web/static/img", cfg.ChartDir)
	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, "./web/templates", cfg.TemplatesDir)
	assert.Equal(t, "./web/static", cfg.StaticDir)
}

func TestLoadFromEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PORT", "9090")
	t.Setenv("DB_DSN", ":memory:")
	t.Setenv("CHART_DIR", "/tmp/charts")
	t.Setenv("LOG_LEVEL", "")

	cfg := config.Load()
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, ":memory:", cfg.DBDSN)
	assert.Equal(t, "/tmp/charts", cfg.ChartDir)
	assert.Equal(t, "info", cfg.LogLevel)
}
