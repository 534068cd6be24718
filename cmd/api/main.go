package main

import (
	"context"
	"database/sql"
	"flag"
	"html/template"
	"log/slog"
	"os"
	"sync"
	"time"

	_ "github.com/lib/pq"

	"github.com/Pedro-J-Kukul/vuelosapi/internal/data"
	"github.com/Pedro-J-Kukul/vuelosapi/internal/mailer"
	"github.com/Pedro-J-Kukul/vuelosapi/internal/sheets"
)

const version = "v1.0.0"

type app struct {
	config  config
	logger  *slog.Logger
	models  data.Models
	mailer  *mailer.Mailer
	sheets  *sheets.Service
	metrics *formMetrics
	wg      sync.WaitGroup
}

func main() {
	defs, err := loadEnv()
	if err != nil {
		slog.Error("Error reading environment", slog.String("error", err.Error()))
		os.Exit(1)
	}
	cfg, err := parseConfig(flag.CommandLine, os.Args[1:], defs)
	if err != nil {
		os.Exit(2)
	}

	logger := setupLogger(cfg)

	db, err := openDB(cfg)
	if err != nil {
		logger.Error("Error opening database connection", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer db.Close()

	logger.Info("Database connection pool established")

	if err := data.EnsureSchema(db); err != nil {
		logger.Error("Error creating schema", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.seed {
		report, err := data.Seed(db)
		if err != nil {
			logger.Error("Error seeding database", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("Database seeded", slog.Int("users", report.Users), slog.Int("flights", report.Flights))
	}

	app := newApp(cfg, logger, data.NewModels(db))
	app.sheets = openSheets(cfg, logger)

	err = app.serve()
	if err != nil {
		logger.Error("Error starting server", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// newApp wires the parts that need no external service besides the
// database.
func newApp(cfg config, logger *slog.Logger, models data.Models) *app {
	return &app{
		config: cfg,
		logger: logger,
		models: models,
		mailer: mailer.New(cfg.smtp.host, cfg.smtp.port, cfg.smtp.username, cfg.smtp.password, cfg.smtp.sender,
			template.FuncMap{"cop": data.FormatCOP}),
		metrics: newFormMetrics(),
	}
}

func setupLogger(cfg config) *slog.Logger {
	var handler slog.Handler
	if cfg.env == "production" {
		handler = slog.NewJSONHandler(os.Stdout, nil)
	} else {
		handler = slog.NewTextHandler(os.Stdout, nil)
	}
	logger := slog.New(handler)

	// Output loaded configuration settings
	logger.Info("Starting server",
		slog.String("version", version),
		slog.String("env", cfg.env),
		slog.Int("port", cfg.port),
		slog.Float64("rateLimitRPS", cfg.rateLimit.rps),
		slog.Int("rateLimitBurst", cfg.rateLimit.burst),
		slog.Bool("rateLimitEnabled", cfg.rateLimit.enabled),
		slog.Bool("sheetsConfigured", cfg.sheets.credentialsPath != ""),
	)

	return logger
}

func openDB(cfg config) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.db.dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.db.maxOpenConns)
	db.SetMaxIdleConns(cfg.db.maxIdleConns)
	db.SetConnMaxIdleTime(cfg.db.maxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = db.PingContext(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// openSheets returns nil when no spreadsheet is configured or the
// credentials are unusable; manifest export is then reported unavailable.
func openSheets(cfg config, logger *slog.Logger) *sheets.Service {
	if cfg.sheets.credentialsPath == "" || cfg.sheets.spreadsheetID == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := sheets.NewClient(ctx, sheets.Config{
		ServiceAccountKeyPath: cfg.sheets.credentialsPath,
		SpreadsheetID:         cfg.sheets.spreadsheetID,
	})
	if err != nil {
		logger.Error("Google Sheets disabled", slog.String("error", err.Error()))
		return nil
	}
	logger.Info("Google Sheets client ready", slog.String("spreadsheet", cfg.sheets.spreadsheetID))
	return sheets.NewService(client)
}
