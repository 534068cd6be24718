package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"time"

	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"github.com/Pedro-J-Kukul/vuelosapi/internal/data"
)

func seedCmd() *cobra.Command {
	var dsn string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create the schema, default users and sample flights",
		Long: `Create the database schema when missing, then insert the demo passenger,
the administrator and the sample flights. Existing rows are left alone, so
running seed twice is harmless.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if dsn == "" {
				dsn = os.Getenv("VUELOS_DB_DSN")
			}
			if dsn == "" {
				return errors.New("no database: pass --db-dsn or set VUELOS_DB_DSN")
			}

			db, err := openDB(dsn)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := data.EnsureSchema(db); err != nil {
				return fmt.Errorf("create schema: %w", err)
			}
			report, err := data.Seed(db)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "\033[32m✓\033[0m %d users and %d flights created\n", report.Users, report.Flights)
			if report.Users > 0 {
				for _, u := range data.DefaultUsers {
					fmt.Fprintf(out, "  %-26s %s\n", u.User.Email, u.User.Role)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dsn, "db-dsn", "", "PostgreSQL DSN (defaults to $VUELOS_DB_DSN)")
	return cmd
}

func openDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect: %w", err)
	}
	return db, nil
}
