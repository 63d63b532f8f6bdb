package restapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthHandler(t *testing.T) {
	api := createTestApi(t)

	resp, model := serveApiAndRetrieveEndpoint(t, api, "/api/health?key=TEST")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, http.StatusOK, model.Code)
	assert.Equal(t, 2, model.Version)

	data, ok := model.Data.(map[string]any)
	require.True(t, ok)
	entry, ok := data["entry"].(map[string]any)
	require.True(t, ok)

	assert.Equal(t, "ok", entry["status"])
	assert.Equal(t, "ok", entry["database"])
	assert.Equal(t, "test", entry["environment"])
	assert.GreaterOrEqual(t, entry["uptimeSeconds"], 0.0)
}

func TestHealthHandlerWithoutDatabase(t *testing.T) {
	api := createTestApi(t)
	api.DB = nil

	resp, model := serveApiAndRetrieveEndpoint(t, api, "/api/health?key=TEST")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	entry := model.Data.(map[string]any)["entry"].(map[string]any)
	assert.Equal(t, "ok", entry["status"])
	assert.Equal(t, "not configured", entry["database"])
}
