package log

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// Config selects the sink and verbosity of the application log.
type Config struct {
	Env   string // development -> console output; anything else -> JSON lines
	Level string // trace, debug, info, warn, error
	File  string // optional extra sink
}

var (
	mu     sync.RWMutex
	out    io.Writer = os.Stdout
	logger           = zerolog.New(os.Stdout).With().Timestamp().Logger()
)

// Setup builds the process logger. The returned closer releases the log file.
func Setup(cfg Config) (io.Closer, error) {
	var w io.Writer = os.Stdout
	if cfg.Env == "development" {
		w = zerolog.ConsoleWriter{Out: os.Stdout}
	}
	var closer io.Closer = io.NopCloser(nil)
	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return closer, err
		}
		w = io.MultiWriter(w, f)
		closer = f
	}
	mu.Lock()
	out = w
	logger = zerolog.New(w).Level(parseLevel(cfg.Level)).With().Timestamp().Logger()
	mu.Unlock()
	return closer, nil
}

// SetOutput redirects the log and returns the previous writer.
func SetOutput(w io.Writer) io.Writer {
	mu.Lock()
	defer mu.Unlock()
	prev := out
	out = w
	logger = logger.Output(w)
	return prev
}

// L returns the process logger for messages outside a request.
func L() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	l := logger
	return &l
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(s) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func write(ev *zerolog.Event, c *fiber.Ctx, action string, err error, fields map[string]any) {
	if ev == nil {
		return
	}
	ev = ev.Str("action", action)
	if c != nil {
		ev = ev.Str("ip", c.IP()).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", c.Response().StatusCode())
		if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
			ev = ev.Str("req_id", rid)
		}
	}
	if err != nil {
		ev = ev.AnErr("err", err)
	}
	if len(fields) > 0 {
		ev = ev.Interface("fields", fields)
	}
	ev.Send()
}

func Info(c *fiber.Ctx, action string, fields map[string]any) {
	write(L().Info(), c, action, nil, fields)
}

// Audit records a change made to stored data.
func Audit(c *fiber.Ctx, action string, fields map[string]any) {
	write(L().Log().Str("level", "audit"), c, action, nil, fields)
}

func Security(c *fiber.Ctx, action string, fields map[string]any) {
	write(L().Warn(), c, action, nil, fields)
}

func Error(c *fiber.Ctx, action string, err error, fields map[string]any) {
	write(L().Error(), c, action, err, fields)
}
