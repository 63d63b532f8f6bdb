package restapi

import (
	"net/http"
	"time"

	"conveyor.dataloader.org/internal/models"
)

type healthEntry struct {
	Status        string  `json:"status"`
	Environment   string  `json:"environment"`
	Database      string  `json:"database"`
	UptimeSeconds float64 `json:"uptimeSeconds"`
}

// healthHandler reports server uptime and destination connectivity.
func (api *RestAPI) healthHandler(w http.ResponseWriter, r *http.Request) {
	entry := healthEntry{
		Status:        "ok",
		Environment:   api.Config.Env.String(),
		Database:      "ok",
		UptimeSeconds: time.Since(api.startTime).Seconds(),
	}

	if api.DB == nil {
		entry.Database = "not configured"
	} else if err := api.DB.Ping(r.Context()); err != nil {
		entry.Status = "degraded"
		entry.Database = err.Error()
	}

	api.sendResponse(w, r, models.NewEntryResponse(entry))
}
