package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"conveyor.dataloader.org/internal/appconf"
	"conveyor.dataloader.org/internal/logging"
	"conveyor.dataloader.org/internal/transfer"
)

// loader runs a single transfer request from a JSON file and prints the
// result envelope, for scripted and one-off loads.
func main() {
	var (
		requestPath string
		envFlag     string
		logFile     string
		verbose     bool
	)

	flag.StringVar(&requestPath, "request", "request.json", "Path to a JSON transfer request file")
	flag.StringVar(&envFlag, "env", "development", "Environment (development|test|staging|production)")
	flag.StringVar(&logFile, "log-file", "", "File to flush collected logs to on exit")
	flag.BoolVar(&verbose, "verbose", false, "Verbose logging")
	flag.Parse()

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger, memory := logging.NewCollectingLogger(os.Stderr, level)

	req, err := loadRequest(requestPath)
	if err != nil {
		logger.Error("failed to load request", "error", err, "path", requestPath)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := transfer.NewRunner(appconf.EnvFlagToEnvironment(envFlag), logger)
	response := runner.Handle(ctx, req)

	if logFile != "" {
		if err := memory.SaveToFile(logFile); err != nil {
			logger.Error("failed to save logs", "error", err)
		}
	}

	out, err := json.MarshalIndent(response, "", "  ")
	if err != nil {
		logger.Error("failed to encode response", "error", err)
		os.Exit(1)
	}
	fmt.Println(string(out))

	if response.Status != "success" {
		os.Exit(1)
	}
}

func loadRequest(path string) (*transfer.Request, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading request file: %w", err)
	}

	var req transfer.Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("error parsing request file %s: %w", path, err)
	}

	return &req, nil
}
