package restapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEndpointsRequireApiKey(t *testing.T) {
	api := createTestApi(t)

	endpoints := []string{
		"/api/health",
		"/api/tables",
		"/api/tables/people",
	}

	for _, endpoint := range endpoints {
		resp, model := serveApiAndRetrieveEndpoint(t, api, endpoint)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, endpoint)
		assert.Equal(t, http.StatusUnauthorized, model.Code, endpoint)
		assert.Equal(t, "permission denied", model.Text, endpoint)
		assert.Equal(t, 1, model.Version, endpoint)
	}
}

func TestEndpointsRejectWrongApiKey(t *testing.T) {
	api := createTestApi(t)

	resp, model := serveApiAndRetrieveEndpoint(t, api, "/api/health?key=WRONG")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "permission denied", model.Text)
}

func TestSecurityHeaders(t *testing.T) {
	api := createTestApi(t)

	resp, _ := serveApiAndRetrieveEndpoint(t, api, "/api/health?key=TEST")
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", resp.Header.Get("X-Frame-Options"))
}
