// File: cmd/api/config.go
// Description: flag configuration with defaults taken from the environment

package main

import (
	"errors"
	"flag"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Server configuration settings
type config struct {
	port int
	env  string
	seed bool
	db   struct {
		dsn          string
		maxOpenConns int
		maxIdleConns int
		maxIdleTime  time.Duration
	}
	cors struct {
		trustedOrigins []string
	}
	rateLimit struct {
		rps     float64
		burst   int
		enabled bool
	}
	smtp struct {
		host     string
		port     int
		username string
		password string
		sender   string
	}
	sheets struct {
		credentialsPath string
		spreadsheetID   string
	}
}

// envDefaults mirrors config with environment variable names. Each value is
// the default of the matching flag.
type envDefaults struct {
	Port           int           `env:"PORT" envDefault:"4000"`
	Env            string        `env:"APP_ENV" envDefault:"development"`
	Seed           bool          `env:"SEED" envDefault:"false"`
	DSN            string        `env:"VUELOS_DB_DSN"`
	MaxOpenConns   int           `env:"DB_MAX_OPEN_CONNS" envDefault:"25"`
	MaxIdleConns   int           `env:"DB_MAX_IDLE_CONNS" envDefault:"25"`
	MaxIdleTime    time.Duration `env:"DB_MAX_IDLE_TIME" envDefault:"15m"`
	TrustedOrigins []string      `env:"CORS_TRUSTED_ORIGINS" envSeparator:" "`
	RateRPS        float64       `env:"RATE_LIMIT_RPS" envDefault:"5"`
	RateBurst      int           `env:"RATE_LIMIT_BURST" envDefault:"10"`
	RateEnabled    bool          `env:"RATE_LIMIT_ENABLED" envDefault:"true"`
	SMTPHost       string        `env:"SMTP_HOST" envDefault:"sandbox.smtp.mailtrap.io"`
	SMTPPort       int           `env:"SMTP_PORT" envDefault:"2525"`
	SMTPUsername   string        `env:"SMTP_USERNAME"`
	SMTPPassword   string        `env:"SMTP_PASSWORD"`
	SMTPSender     string        `env:"SMTP_SENDER" envDefault:"Vuelos Colombia <no-reply@vueloscolombia.com>"`
	SheetsKeyPath  string        `env:"GOOGLE_SHEETS_CREDENTIALS"`
	SpreadsheetID  string        `env:"GOOGLE_SHEETS_SPREADSHEET_ID"`
}

// loadEnv reads .env when present and parses the environment.
func loadEnv(files ...string) (envDefaults, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return envDefaults{}, err
	}
	return env.ParseAs[envDefaults]()
}

// parseConfig registers every flag on fset, using defs as defaults, and
// parses args.
func parseConfig(fset *flag.FlagSet, args []string, defs envDefaults) (config, error) {
	var cfg config

	fset.IntVar(&cfg.port, "port", defs.Port, "API server port")
	fset.StringVar(&cfg.env, "env", defs.Env, "Environment (development|staging|production)")
	fset.BoolVar(&cfg.seed, "seed", defs.Seed, "Create default users and sample flights at start-up")

	fset.StringVar(&cfg.db.dsn, "db-dsn", defs.DSN, "PostgreSQL DSN")
	fset.IntVar(&cfg.db.maxOpenConns, "db-max-open-conns", defs.MaxOpenConns, "PostgreSQL max open connections")
	fset.IntVar(&cfg.db.maxIdleConns, "db-max-idle-conns", defs.MaxIdleConns, "PostgreSQL max idle connections")
	fset.DurationVar(&cfg.db.maxIdleTime, "db-max-idle-time", defs.MaxIdleTime, "PostgreSQL max connection idle time")

	fset.Float64Var(&cfg.rateLimit.rps, "limiter-rps", defs.RateRPS, "Rate limiter maximum requests per second")
	fset.IntVar(&cfg.rateLimit.burst, "limiter-burst", defs.RateBurst, "Rate limiter maximum burst")
	fset.BoolVar(&cfg.rateLimit.enabled, "limiter-enabled", defs.RateEnabled, "Enable rate limiter")

	fset.StringVar(&cfg.smtp.host, "smtp-host", defs.SMTPHost, "SMTP host")
	fset.IntVar(&cfg.smtp.port, "smtp-port", defs.SMTPPort, "SMTP port")
	fset.StringVar(&cfg.smtp.username, "smtp-username", defs.SMTPUsername, "SMTP username")
	fset.StringVar(&cfg.smtp.password, "smtp-password", defs.SMTPPassword, "SMTP password")
	fset.StringVar(&cfg.smtp.sender, "smtp-sender", defs.SMTPSender, "SMTP sender")

	fset.StringVar(&cfg.sheets.credentialsPath, "sheets-credentials", defs.SheetsKeyPath, "Google service account key file")
	fset.StringVar(&cfg.sheets.spreadsheetID, "sheets-spreadsheet-id", defs.SpreadsheetID, "Spreadsheet receiving passenger manifests")

	cfg.cors.trustedOrigins = defs.TrustedOrigins
	fset.Func("cors-trusted-origins", "Trusted CORS origins (space separated)", func(val string) error {
		cfg.cors.trustedOrigins = strings.Fields(val)
		return nil
	})

	if err := fset.Parse(args); err != nil {
		return config{}, err
	}
	return cfg, nil
}
