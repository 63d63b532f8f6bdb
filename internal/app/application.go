package app

import (
	"log/slog"

	"conveyor.dataloader.org/internal/appconf"
	"conveyor.dataloader.org/internal/logging"
	"conveyor.dataloader.org/internal/transfer"
	"conveyor.dataloader.org/loaddb"
)

// Application holds the dependencies for our HTTP handlers, helpers,
// and middleware: the server configuration, the default destination
// configuration, the structured logger and its in-memory collector,
// the transfer runner, and the open client for the default destination.
type Application struct {
	Config      appconf.Config
	Destination loaddb.Config
	Logger      *slog.Logger
	Memory      *logging.MemoryHandler
	Runner      *transfer.Runner
	DB          *loaddb.Client
}

// Shutdown flushes collected logs to the configured log file, if any,
// and closes the destination database.
func (app *Application) Shutdown() {
	if app.Memory != nil && app.Config.LogFile != "" {
		if err := app.Memory.SaveToFile(app.Config.LogFile); err != nil {
			logging.LogError(app.Logger, "failed to save logs", err)
		}
	}
	if app.DB != nil {
		logging.SafeCloseWithLogging(app.DB, app.Logger, "destination_db")
	}
}
