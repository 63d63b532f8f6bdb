package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"conveyor.dataloader.org/internal/app"
	"conveyor.dataloader.org/internal/appconf"
	"conveyor.dataloader.org/internal/logging"
	"conveyor.dataloader.org/internal/models"
	"conveyor.dataloader.org/internal/transfer"
	"conveyor.dataloader.org/loaddb"
)

// createTestApi creates a RestAPI backed by an in-memory destination
// database for use in tests.
func createTestApi(t *testing.T) *RestAPI {
	t.Helper()

	logger := logging.NewStructuredLogger(io.Discard, slog.LevelInfo)

	destination := loaddb.Config{
		DBType: "sqlite",
		Env:    appconf.Test,
	}
	db, err := loaddb.Open(context.Background(), destination)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})

	application := &app.Application{
		Config: appconf.Config{
			Env:       appconf.Test,
			ApiKeys:   []string{"TEST"},
			RateLimit: 100,
		},
		Destination: destination,
		Logger:      logger,
		Runner:      transfer.NewRunner(appconf.Test, logger),
		DB:          db,
	}

	return NewRestAPI(application)
}

// serveApiAndRetrieveEndpoint sets up a test server, makes a GET request to
// the specified endpoint, and returns the response and decoded model.
func serveApiAndRetrieveEndpoint(t *testing.T, api *RestAPI, endpoint string) (*http.Response, models.ResponseModel) {
	t.Helper()

	server := httptest.NewServer(api.Handler())
	defer server.Close()

	resp, err := http.Get(server.URL + endpoint)
	require.NoError(t, err)
	defer logging.SafeCloseWithLogging(resp.Body,
		slog.Default().With(slog.String("component", "test")),
		"http_response_body")

	var response models.ResponseModel
	err = json.NewDecoder(resp.Body).Decode(&response)
	require.NoError(t, err)

	return resp, response
}

// postJSON posts a JSON body to the endpoint and decodes the raw response.
func postJSON(t *testing.T, api *RestAPI, endpoint string, body any) (*http.Response, []byte) {
	t.Helper()

	server := httptest.NewServer(api.Handler())
	defer server.Close()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := http.Post(server.URL+endpoint, "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	defer logging.SafeCloseWithLogging(resp.Body,
		slog.Default().With(slog.String("component", "test")),
		"http_response_body")

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp, raw
}
