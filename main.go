package main

import (
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/chautari-app/chautari/auth"
	"github.com/chautari-app/chautari/cliparse"
	"github.com/chautari-app/chautari/dataset"
	"github.com/chautari-app/chautari/db"
	"github.com/chautari-app/chautari/router"
)

func main() {
	var err error

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Connect to the configured database
	dbConn, err := sql.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Verify connection
	if err := dbConn.Ping(); err != nil {
		slog.Error("database ping failed", "error", err)
		os.Exit(1)
	}

	// Create schema (tables)
	if err := db.CreateSchema(dbConn); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready")

	// Seed the bundled dataset on first run
	seeded, err := db.Seeded(dbConn)
	if err != nil {
		slog.Error("seed check failed", "error", err)
		os.Exit(1)
	}
	if !seeded {
		ds, err := dataset.Load()
		if err != nil {
			slog.Error("dataset load failed", "error", err)
			os.Exit(1)
		}
		if err := db.Seed(dbConn, ds); err != nil {
			slog.Error("dataset seed failed", "error", err)
			os.Exit(1)
		}
		slog.Info("Seeded bundled dataset", "events", len(ds.Events))
	}

	// Token registry is in-memory; sessions reset on restart
	registry := auth.NewRegistry()

	// Create router
	mux := router.NewRouter(dbConn, cfg, registry)

	// Create server
	server := http.Server{
		Handler: mux,
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port, "env", cfg.Env)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
