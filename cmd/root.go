// Package cmd defines the CLI commands for repin.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	verbose   bool
	alpmURL   string
	rustupURL string
)

// rootCmd is the base command for the repin CLI.
var rootCmd = &cobra.Command{
	Use:   "repin",
	Short: "Refresh version pins in build files",
	Long: `Repin queries package-repository APIs for the current versions of a
fixed set of upstream libraries, normalizes them into the formats the
build file expects, and rewrites PREFIX_VER= variables in place.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		initLogger()
	},
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "repin:", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&alpmURL, "alpm-url", "", "base URL of the Arch Linux packages API (default https://archlinux.org)")
	rootCmd.PersistentFlags().StringVar(&rustupURL, "rustup-url", "", "base URL of the rustup release metadata (default https://static.rust-lang.org)")
}

func initLogger() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}
