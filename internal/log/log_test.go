package log_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	applog "crmlite/internal/log"
)

type entry struct {
	Level  string         `json:"level"`
	Action string         `json:"action"`
	Path   string         `json:"path"`
	ReqID  string         `json:"req_id"`
	Err    string         `json:"err"`
	Fields map[string]any `json:"fields"`
}

func TestRequestScopedEntries(t *testing.T) {
	var buf bytes.Buffer
	prev := applog.SetOutput(&buf)
	defer applog.SetOutput(prev)

	app := fiber.New()
	app.Use(requestid.New())
	app.Get("/x", func(c *fiber.Ctx) error {
		applog.Audit(c, "users.save", map[string]any{"id": "u1"})
		applog.Error(c, "users.save.fail", errors.New("boom"), nil)
		return c.SendStatus(fiber.StatusNoContent)
	})
	_, err := app.Test(httptest.NewRequest("GET", "/x", nil))
	require.NoError(t, err)

	var got []entry
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var e entry
		require.NoError(t, json.Unmarshal([]byte(line), &e), line)
		got = append(got, e)
	}
	require.Len(t, got, 2)
	assert.Equal(t, "audit", got[0].Level)
	assert.Equal(t, "users.save", got[0].Action)
	assert.Equal(t, "/x", got[0].Path)
	assert.NotEmpty(t, got[0].ReqID)
	assert.Equal(t, "u1", got[0].Fields["id"])

	assert.Equal(t, "error", got[1].Level)
	assert.Equal(t, "boom", got[1].Err)
}
