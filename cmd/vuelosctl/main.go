// Command vuelosctl administers a Vuelos Colombia deployment: it seeds the
// database and checks form input against the same rules the API uses.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var version = "v1.0.0"

// errInvalidInput makes validate exit with status 1 after printing the
// field errors itself.
var errInvalidInput = errors.New("invalid input")

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errInvalidInput) {
			fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "vuelosctl",
		Short: "Administration tool for the Vuelos Colombia API",
		Long: `vuelosctl works against the same database and form rules as the API.

  • seed      create the default accounts and the sample flight catalogue
  • forms     list the forms and describe their fields
  • validate  check input against a form without submitting it`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("load .env: %w", err)
			}
			return nil
		},
	}

	rootCmd.AddCommand(
		seedCmd(),
		formsCmd(),
		validateCmd(),
		versionCmd(),
	)
	return rootCmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}
}
