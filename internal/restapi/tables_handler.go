package restapi

import (
	"errors"
	"net/http"

	"conveyor.dataloader.org/internal/models"
	"conveyor.dataloader.org/internal/utils"
	"conveyor.dataloader.org/loaddb"
)

// tablesHandler lists every table in the default destination database.
func (api *RestAPI) tablesHandler(w http.ResponseWriter, r *http.Request) {
	if api.DB == nil {
		api.serverErrorResponse(w, r, errors.New("no destination database configured"))
		return
	}

	tables, err := api.DB.ListTables(r.Context())
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	api.sendResponse(w, r, models.NewListResponse(tables))
}

// tableInfoHandler returns column names and row count for one table.
func (api *RestAPI) tableInfoHandler(w http.ResponseWriter, r *http.Request) {
	if api.DB == nil {
		api.serverErrorResponse(w, r, errors.New("no destination database configured"))
		return
	}

	name := utils.ExtractIDFromParams(r, "name")

	info, err := api.DB.TableInfo(r.Context(), name)
	if err != nil {
		if errors.Is(err, loaddb.ErrNoTable) {
			api.sendNotFound(w, r)
			return
		}
		api.serverErrorResponse(w, r, err)
		return
	}

	api.sendResponse(w, r, models.NewEntryResponse(info))
}
