package handlers_test

import (
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentifyBlankID(t *testing.T) {
	ta := newTestApp(t)

	resp := ta.post(t, "/identify", url.Values{"userId": {"   "}})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body(t, resp), "Please, introduce a user identification")
}

func TestIdentifyUnknownID(t *testing.T) {
	ta := newTestApp(t)

	resp := ta.post(t, "/identify", url.Values{"userId": {"nobody"}})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body(t, resp), "This user identification doesn't exist")
}

func TestIdentifyAdmin(t *testing.T) {
	ta := newTestApp(t)

	resp := ta.post(t, "/identify", url.Values{"userId": {"admin"}})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	s := body(t, resp)
	assert.Contains(t, s, "Total sales: <strong>55.00</strong>")
	assert.Contains(t, s, "Period 2024-01-03 to 2024-02-01")
	assert.Contains(t, s, "<td>Gizmo</td><td>B-01</td><td>8</td><td>5</td>")

	for _, name := range []string{"graph-admin-sales", "graph-admin-units-sold", "graph-admin-inventory"} {
		src := chartSrc(t, s, name)
		assert.True(t, strings.HasPrefix(src, "/charts/"), src)
		_, err := os.Stat(filepath.Join(ta.cfg.ChartDir, path.Base(src)))
		assert.NoError(t, err, name)
	}
}

func TestIdentifySupplierAndCustomer(t *testing.T) {
	ta := newTestApp(t)

	resp := ta.get(t, "/identify?userId=acme")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	s := body(t, resp)
	assert.Contains(t, s, "Supplier Acme Supplies")
	chartSrc(t, s, "graph-supplier")

	resp = ta.get(t, "/identify?userId=jdoe")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	s = body(t, resp)
	assert.Contains(t, s, "Customer John Doe")
	src := chartSrc(t, s, "graph-customer")

	_, err := os.Stat(filepath.Join(ta.cfg.ChartDir, path.Base(src)))
	assert.NoError(t, err)
}

func TestIdentifyNoRoleIsUnknown(t *testing.T) {
	ta := newTestApp(t)

	resp := ta.post(t, "/users/save", url.Values{"action": {"new"}, "id": {"plain"}, "name": {"No Role"}})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = ta.post(t, "/identify", url.Values{"userId": {"plain"}})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body(t, resp), "This user identification doesn't exist")
}
