package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"conveyor.dataloader.org/internal/app"
	"conveyor.dataloader.org/internal/appconf"
	"conveyor.dataloader.org/internal/logging"
	"conveyor.dataloader.org/internal/restapi"
	"conveyor.dataloader.org/internal/transfer"
	"conveyor.dataloader.org/loaddb"
)

func main() {
	var (
		port        int
		envFlag     string
		apiKeysFlag string
		rateLimit   int
		configPath  string
		logFile     string
		dbType      string
		dbName      string
		verbose     bool
	)

	flag.IntVar(&port, "port", 4000, "API server port")
	flag.StringVar(&envFlag, "env", "development", "Environment (development|test|staging|production)")
	flag.StringVar(&apiKeysFlag, "api-keys", "test", "Comma Separated API Keys (test, etc)")
	flag.IntVar(&rateLimit, "rate-limit", 100, "Requests per second per API key (-1 disables)")
	flag.StringVar(&configPath, "config", "", "Path to a YAML configuration file")
	flag.StringVar(&logFile, "log-file", "", "File to flush collected logs to at shutdown")
	flag.StringVar(&dbType, "db-type", "sqlite", "Default destination database type (sqlite|postgres|mysql|mssql)")
	flag.StringVar(&dbName, "db-name", "conveyor.db", "Default destination database name or SQLite path")
	flag.BoolVar(&verbose, "verbose", false, "Verbose logging")
	flag.Parse()

	logger, memory := logging.NewCollectingLogger(os.Stdout, logLevel(verbose))

	cfg := appconf.Config{
		Port:      port,
		Env:       appconf.EnvFlagToEnvironment(envFlag),
		RateLimit: rateLimit,
		Verbose:   verbose,
		LogFile:   logFile,
	}
	if apiKeysFlag != "" {
		for _, key := range strings.Split(apiKeysFlag, ",") {
			cfg.ApiKeys = append(cfg.ApiKeys, strings.TrimSpace(key))
		}
	}

	destination := loaddb.NewConfig(dbType, dbName, loaddb.Connection{}, verbose)
	destination.Env = cfg.Env

	if configPath != "" {
		fileCfg, err := app.LoadConfigFile(configPath)
		if err != nil {
			logger.Error("failed to load config file", "error", err, "path", configPath)
			os.Exit(1)
		}
		setFlags := make(map[string]bool)
		flag.Visit(func(f *flag.Flag) { setFlags[f.Name] = true })
		applyFileConfig(&cfg, &destination, fileCfg, setFlags)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := loaddb.Open(ctx, destination)
	if err != nil {
		logger.Error("failed to open destination database", "error", err, "dsn", destination.Redacted())
		os.Exit(1)
	}

	application := &app.Application{
		Config:      cfg,
		Destination: destination,
		Logger:      logger,
		Memory:      memory,
		Runner:      transfer.NewRunner(cfg.Env, logger),
		DB:          db,
	}
	defer application.Shutdown()

	api := restapi.NewRestAPI(application)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      api.Handler(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	logger.Info("starting server", "addr", srv.Addr, "env", cfg.Env.String(), "destination", destination.Redacted())

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error(err.Error())
			application.Shutdown()
			os.Exit(1)
		}
	case <-ctx.Done():
		logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown failed", "error", err)
		}
	}
}

func logLevel(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// applyFileConfig merges file values under the flag values: a field set
// explicitly on the command line always wins over the file.
func applyFileConfig(cfg *appconf.Config, destination *loaddb.Config, file *app.FileConfig, setFlags map[string]bool) {
	if file.Port != 0 && !setFlags["port"] {
		cfg.Port = file.Port
	}
	if file.Env != "" && !setFlags["env"] {
		cfg.Env = appconf.EnvFlagToEnvironment(file.Env)
	}
	if len(file.ApiKeys) > 0 && !setFlags["api-keys"] {
		cfg.ApiKeys = file.ApiKeys
	}
	if file.RateLimit != 0 && !setFlags["rate-limit"] {
		cfg.RateLimit = file.RateLimit
	}
	if file.LogFile != "" && !setFlags["log-file"] {
		cfg.LogFile = file.LogFile
	}
	if file.Destination.DBType != "" && !setFlags["db-type"] && !setFlags["db-name"] {
		*destination = file.Destination
		destination.Env = cfg.Env
	}
}
