package handlers_test

import (
	stdhtml "html"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"crmlite/internal/config"
	"crmlite/internal/http/handlers"
	"crmlite/internal/repos"
)

type testApp struct {
	app  *fiber.App
	db   *sqlx.DB
	cfg  config.Config
	csrf string
}

// newTestApp wires the real routes over a seeded in-memory database. Charts
// go to a temporary directory outside the static assets.
func newTestApp(t *testing.T) *testApp {
	t.Helper()
	return newTestAppWith(t, config.Config{
		DBDSN:     ":memory:",
		StaticDir: "../../web/static",
		ChartDir:  t.TempDir(),
	})
}

func newTestAppWith(t *testing.T, cfg config.Config) *testApp {
	t.Helper()
	db, err := repos.OpenDB(cfg.DBDSN)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	engine := html.New("../../web/templates", ".html")
	app := fiber.New(fiber.Config{Views: engine, ErrorHandler: handlers.ErrorHandler})
	app.Server().MaxRequestBodySize = 1 << 20
	app.Use(requestid.New())
	app.Use(csrf.New(csrf.Config{KeyLookup: "form:csrf", CookieName: "csrf_", CookieSameSite: "Lax"}))
	app.Use(func(c *fiber.Ctx) error {
		if tok, ok := c.Locals("csrf").(string); ok {
			c.Locals("CSRFToken", tok)
		}
		return c.Next()
	})
	handlers.MountStatic(app, cfg)
	handlers.Register(app, handlers.NewDeps(db, cfg))

	ta := &testApp{app: app, db: db, cfg: cfg}
	resp := ta.get(t, "/")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	ta.csrf = extractCookie(resp, "csrf_")
	require.NotEmpty(t, ta.csrf, "csrf token missing")
	return ta
}

func extractCookie(resp *http.Response, name string) string {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}

func (ta *testApp) get(t *testing.T, target string) *http.Response {
	t.Helper()
	resp, err := ta.app.Test(httptest.NewRequest("GET", target, nil), -1)
	require.NoError(t, err)
	return resp
}

// post submits form with the csrf token attached.
func (ta *testApp) post(t *testing.T, target string, form url.Values) *http.Response {
	t.Helper()
	form.Set("csrf", ta.csrf)
	req := httptest.NewRequest("POST", target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: "csrf_", Value: ta.csrf})
	resp, err := ta.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// body returns the response text with HTML entities decoded.
func body(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return stdhtml.UnescapeString(string(b))
}

func rawBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}
