package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/repin-dev/repin"
)

var versionsTimeout time.Duration

var versionsCmd = &cobra.Command{
	Use:   "versions",
	Short: "Resolve and print current pin versions",
	Long: `Fetch the current version of every pinned package and print the
normalized assignments without touching any file.`,
	RunE: runVersions,
}

func init() {
	versionsCmd.Flags().DurationVar(&versionsTimeout, "timeout", 30*time.Second, "overall timeout for remote lookups")
	rootCmd.AddCommand(versionsCmd)
}

func runVersions(_ *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), versionsTimeout)
	defer cancel()

	pins := repin.DefaultPins()
	versions, err := newUpdater().Resolve(ctx, pins)
	if err != nil {
		return err
	}

	printVersions(pins, versions)
	return nil
}
