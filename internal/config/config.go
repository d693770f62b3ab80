package config

import (
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Env          string // development | production
	Port         string
	DBDSN        string
	TemplatesDir string
	StaticDir    string
	ChartDir     string // where chart images are written; served under /static when inside StaticDir, /charts otherwise
	LogFile      string
	LogLevel     string
}

// Load reads the configuration from the environment, optionally seeded by a
// .env or config.env file in the working directory. Env vars win.
func Load() Config {
	v := viper.New()
	v.SetConfigType("env")
	for _, name := range []string{".env", "config.env"} {
		v.SetConfigFile(name)
		_ = v.MergeInConfig() // missing file is fine
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("APP_ENV", "production")
	v.SetDefault("PORT", "8080")
	v.SetDefault("DB_DSN", "crmlite.db") // sqlite file in project root
	v.SetDefault("TEMPLATES_DIR", "./web/templates")
	v.SetDefault("STATIC_DIR", "./web/static")
	v.SetDefault("CHART_DIR", "./web/static/img")
	v.SetDefault("LOG_FILE", "./crmlite.log")
	v.SetDefault("LOG_LEVEL", "info")

	return Config{
		Env:          v.GetString("APP_ENV"),
		Port:         v.GetString("PORT"),
		DBDSN:        v.GetString("DB_DSN"),
		TemplatesDir: v.GetString("TEMPLATES_DIR"),
		StaticDir:    v.GetString("STATIC_DIR"),
		ChartDir:     v.GetString("CHART_DIR"),
		LogFile:      v.GetString("LOG_FILE"),
		LogLevel:     v.GetString("LOG_LEVEL"),
	}
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string { return ":" + c.Port }
