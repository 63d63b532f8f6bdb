package restapi

import (
	"encoding/json"
	"net/http"

	"conveyor.dataloader.org/internal/models"
	"conveyor.dataloader.org/internal/transfer"
)

// transferHandler accepts a transfer request as a JSON body, runs it
// synchronously against the destination, and returns the result envelope.
func (api *RestAPI) transferHandler(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req transfer.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fieldErrors := map[string][]string{
			"body": {"invalid JSON: " + err.Error()},
		}
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	// An omitted destination falls back to the service's configured one.
	// Each transfer opens its own connection, so when the default is an
	// in-memory sqlite database the loaded rows are visible only to that
	// transfer, not to the /api/tables endpoints served from the shared
	// client.
	if req.Destination.Type == "" && api.Destination.DBType != "" {
		req.Destination = transfer.Destination{
			Type:       api.Destination.DBType,
			Database:   api.Destination.DBName,
			Connection: api.Destination.Connection,
			Table:      req.Destination.Table,
			Mode:       req.Destination.Mode,
		}
		if req.Destination.Table == "" {
			req.Destination.Table = api.Destination.Table
		}
	}

	if fieldErrors := req.Validate(); len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	result := api.Runner.Handle(r.Context(), &req)
	if result.Status != "success" {
		response := models.NewResponse(http.StatusUnprocessableEntity, result, result.Error)
		setJSONResponseType(&w)
		w.WriteHeader(http.StatusUnprocessableEntity)
		if err := json.NewEncoder(w).Encode(response); err != nil {
			api.Logger.Error("failed to encode transfer error response", "error", err)
		}
		return
	}

	api.sendResponse(w, r, models.NewEntryResponse(result))
}
