package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	_ "modernc.org/sqlite"

	v1 "github.com/vmunix/mediascan/internal/api/v1"
	"github.com/vmunix/mediascan/internal/channel"
	"github.com/vmunix/mediascan/internal/config"
	"github.com/vmunix/mediascan/internal/events"
	"github.com/vmunix/mediascan/internal/mediaindex"
	"github.com/vmunix/mediascan/internal/mediaserver"
	"github.com/vmunix/mediascan/internal/migrations"
	"github.com/vmunix/mediascan/internal/scanner"
	"github.com/vmunix/mediascan/internal/server"
)

const pruneInterval = time.Hour

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	if r.status == 200 { // Only capture first WriteHeader call
		r.status = code
	}
	r.ResponseWriter.WriteHeader(code)
}

func logRequests(next http.Handler, log *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &statusRecorder{ResponseWriter: w, status: 200}
		next.ServeHTTP(wrapped, r)
		log.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrapped.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

func openDB(path string) (*sql.DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// One writer keeps the pure-Go driver from reporting SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if err := migrations.Apply(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// app is the fully wired daemon, minus the listener.
type app struct {
	handler  http.Handler
	runner   *server.Runner
	plex     *mediaserver.PlexClient
	backends []string
}

func buildApp(cfg *config.Config, db *sql.DB, version string, logger *slog.Logger) (*app, error) {
	// === Stores ===
	eventLog := events.NewEventLog(db)
	bus := events.NewBus(eventLog, logger.With("component", "bus"))

	var index *mediaindex.Store
	var backends []scanner.Backend
	if cfg.Scanner.Local.Enabled {
		index = mediaindex.NewStore(db)
		backends = append(backends, mediaindex.NewScanner(index, cfg.Scanner.Local.Roots, logger.With("component", "local-index")))
	}

	// === Clients (optional - nil if not configured) ===
	var plexClient *mediaserver.PlexClient
	if cfg.Plex != nil {
		plexClient = mediaserver.NewPlexClient(cfg.Plex.URL, cfg.Plex.Token, logger.With("component", "plex"))
		if cfg.Plex.LocalPath != "" {
			plexClient = plexClient.WithPathMapping(cfg.Plex.LocalPath, cfg.Plex.RemotePath)
		}
		backends = append(backends, plexClient)
	}

	// === Services ===
	dispatcher := scanner.New(backends, bus, scanner.Config{
		Workers:   cfg.Scanner.Workers,
		QueueSize: cfg.Scanner.QueueSize,
		Timeout:   cfg.Scanner.Timeout,
	}, logger.With("component", "scanner"))

	handler := channel.NewHandler(dispatcher, logger)

	deps := v1.ServerDeps{
		Handler:  handler,
		Scanner:  dispatcher,
		Index:    index,
		EventLog: eventLog,
		Bus:      bus,
	}
	// A typed nil must not leak into the interface field.
	if plexClient != nil {
		deps.Plex = plexClient
	}

	apiV1, err := v1.New(v1.Config{ChannelName: cfg.Channel.Name, Version: version}, deps, logger)
	if err != nil {
		return nil, fmt.Errorf("api: %w", err)
	}

	mux := http.NewServeMux()
	apiV1.RegisterRoutes(mux)

	runner := server.NewRunner(dispatcher, eventLog, bus, server.Config{
		PruneInterval: pruneInterval,
		Retention:     cfg.Events.Retention,
	}, logger)

	return &app{
		handler:  logRequests(mux, logger),
		runner:   runner,
		plex:     plexClient,
		backends: dispatcher.Backends(),
	}, nil
}

func runServer(configPath string) error {
	// Load config
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	// Create logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Server.LogLevel),
	}))

	db, err := openDB(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	a, err := buildApp(cfg, db, version, logger)
	if err != nil {
		return err
	}

	// === Background Jobs ===
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runnerDone := make(chan error, 1)
	go func() { runnerDone <- a.runner.Run(ctx) }()

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("server starting",
		"addr", addr,
		"channel", cfg.Channel.Name,
		"database", cfg.Database.Path,
		"backends", a.backends,
		"plex", a.plex != nil,
		"log_level", cfg.Server.LogLevel,
	)

	// === HTTP Server ===
	srv := &http.Server{Addr: addr, Handler: a.handler, ReadHeaderTimeout: 10 * time.Second}

	serveErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	// Wait for interrupt signal or a fatal component error
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	var runErr error
	select {
	case sig := <-sigCh:
		logger.Info("received signal, shutting down", "signal", sig.String())
	case runErr = <-serveErr:
		logger.Error("server error", "error", runErr)
	case runErr = <-runnerDone:
		logger.Error("runner stopped unexpectedly", "error", runErr)
		runnerDone = nil
	}

	// Cancel background jobs (this stops the scan workers)
	cancel()

	// Graceful HTTP shutdown with 30s timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if runnerDone != nil {
		<-runnerDone
	}

	logger.Info("server stopped")
	return runErr
}
