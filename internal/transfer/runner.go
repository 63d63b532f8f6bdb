package transfer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"conveyor.dataloader.org/internal/appconf"
	"conveyor.dataloader.org/internal/csvdata"
	"conveyor.dataloader.org/internal/logging"
	"conveyor.dataloader.org/loaddb"
)

// Result summarizes a completed transfer.
type Result struct {
	ID         string  `json:"id"`
	Table      string  `json:"table"`
	RowCount   int     `json:"rowCount"`
	Columns    int     `json:"columnCount"`
	DurationMs float64 `json:"durationMs"`
	Message    string  `json:"message"`
}

// Response is the envelope returned across the connection boundary:
// status plus either a result or an error description.
type Response struct {
	Status      string  `json:"status"`
	Environment string  `json:"environment,omitempty"`
	Result      *Result `json:"result,omitempty"`
	Error       string  `json:"error,omitempty"`
}

// Runner executes transfer requests end to end.
type Runner struct {
	Env    appconf.Environment
	Logger *slog.Logger
}

// NewRunner creates a Runner for the given environment.
func NewRunner(env appconf.Environment, logger *slog.Logger) *Runner {
	return &Runner{Env: env, Logger: logger}
}

// Handle validates and runs a request, translating any failure into a
// failed-status response. It never panics across the boundary.
func (r *Runner) Handle(ctx context.Context, req *Request) Response {
	logging.LogOperation(r.Logger, "transfer_received",
		slog.String("environment", req.Environment),
		slog.String("source_type", req.Source.Type),
		slog.String("destination_type", req.Destination.Type))

	if fieldErrors := req.Validate(); len(fieldErrors) > 0 {
		return Response{
			Status: "failed",
			Error:  fmt.Sprintf("invalid request: %v", fieldErrors),
		}
	}

	result, err := r.Run(ctx, req)
	if err != nil {
		logging.LogError(r.Logger, "transfer failed", err,
			slog.String("table", req.Destination.Table))
		return Response{Status: "failed", Error: err.Error()}
	}

	return Response{
		Status:      "success",
		Environment: req.Environment,
		Result:      result,
	}
}

// Run reads the source file and loads it into the destination table.
func (r *Runner) Run(ctx context.Context, req *Request) (*Result, error) {
	startTime := time.Now()
	runID := uuid.NewString()

	ds, err := csvdata.ReadFile(req.Source.Path)
	if err != nil {
		return nil, fmt.Errorf("error reading source: %w", err)
	}

	logging.LogOperation(r.Logger, "source_loaded",
		slog.String("run_id", runID),
		slog.String("path", req.Source.Path),
		slog.Int("rows", ds.RowCount()))

	mode, err := loaddb.ParseWriteMode(req.Destination.Mode)
	if err != nil {
		return nil, err
	}

	config := loaddb.Config{
		DBType:     req.Destination.Type,
		DBName:     req.Destination.Database,
		Connection: req.Destination.Connection,
		Table:      req.Destination.Table,
		Env:        r.Env,
	}

	client, err := loaddb.Open(ctx, config)
	if err != nil {
		return nil, err
	}
	defer logging.SafeCloseWithLogging(client, r.Logger, "destination_db")

	if err := client.LoadDataset(ctx, req.Destination.Table, ds, mode); err != nil {
		return nil, fmt.Errorf("error loading table %s: %w", req.Destination.Table, err)
	}

	duration := time.Since(startTime)

	logging.LogOperation(r.Logger, "transfer_complete",
		slog.String("run_id", runID),
		slog.String("table", req.Destination.Table),
		slog.Int("rows", ds.RowCount()),
		slog.Duration("load_duration", client.LoadRuntime()),
		slog.Duration("duration", duration))

	return &Result{
		ID:         runID,
		Table:      req.Destination.Table,
		RowCount:   ds.RowCount(),
		Columns:    len(ds.Columns),
		DurationMs: float64(duration.Nanoseconds()) / 1e6,
		Message:    fmt.Sprintf("loaded %d rows from %s into table %s", ds.RowCount(), req.Source.Path, req.Destination.Table),
	}, nil
}
