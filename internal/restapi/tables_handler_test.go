package restapi

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"conveyor.dataloader.org/internal/csvdata"
	"conveyor.dataloader.org/loaddb"
)

func loadPeopleTable(t *testing.T, api *RestAPI) {
	t.Helper()

	ds := &csvdata.Dataset{
		Columns: []string{"name", "age"},
		Rows: [][]string{
			{"alice", "34"},
			{"bob", "28"},
		},
	}
	err := api.DB.LoadDataset(context.Background(), "people", ds, loaddb.ModeReplace)
	require.NoError(t, err)
}

func TestTablesHandlerEmptyDatabase(t *testing.T) {
	api := createTestApi(t)

	resp, model := serveApiAndRetrieveEndpoint(t, api, "/api/tables?key=TEST")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, http.StatusOK, model.Code)

	data, ok := model.Data.(map[string]any)
	require.True(t, ok)
	assert.Empty(t, data["list"])
}

func TestTablesHandlerListsTables(t *testing.T) {
	api := createTestApi(t)
	loadPeopleTable(t, api)

	_, model := serveApiAndRetrieveEndpoint(t, api, "/api/tables?key=TEST")

	data := model.Data.(map[string]any)
	list, ok := data["list"].([]any)
	require.True(t, ok)
	require.Len(t, list, 1)
	assert.Equal(t, "people", list[0])
}

func TestTableInfoHandler(t *testing.T) {
	api := createTestApi(t)
	loadPeopleTable(t, api)

	resp, model := serveApiAndRetrieveEndpoint(t, api, "/api/tables/people?key=TEST")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	entry, ok := model.Data.(map[string]any)["entry"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "people", entry["tableName"])
	assert.Equal(t, []any{"name", "age"}, entry["columns"])
	assert.Equal(t, 2.0, entry["columnCount"])
	assert.Equal(t, 2.0, entry["rowCount"])
}

func TestTableInfoHandlerUnknownTable(t *testing.T) {
	api := createTestApi(t)

	resp, model := serveApiAndRetrieveEndpoint(t, api, "/api/tables/missing?key=TEST")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, http.StatusNotFound, model.Code)
	assert.Equal(t, "resource not found", model.Text)
}

func TestTableInfoHandlerInvalidName(t *testing.T) {
	api := createTestApi(t)

	// A malformed table name is a 404, not a server error.
	resp, model := serveApiAndRetrieveEndpoint(t, api, "/api/tables/123bad?key=TEST")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, http.StatusNotFound, model.Code)
	assert.Equal(t, "resource not found", model.Text)
}

func TestTablesHandlerWithoutDatabase(t *testing.T) {
	api := createTestApi(t)
	api.DB = nil

	resp, model := serveApiAndRetrieveEndpoint(t, api, "/api/tables?key=TEST")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "internal server error", model.Text)
}
