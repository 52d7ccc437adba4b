package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/repin-dev/repin"
	_ "github.com/repin-dev/repin/all"
)

var (
	updateFile    string
	updateDryRun  bool
	updateTimeout time.Duration
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Resolve all pins and rewrite the build file",
	Long: `Fetch the current version of every pinned package, normalize the
version strings, and rewrite the matching PREFIX_VER= assignments in the
target file. The file is replaced atomically and is left untouched if any
lookup fails.`,
	RunE: runUpdate,
}

func init() {
	updateCmd.Flags().StringVarP(&updateFile, "file", "f", "Dockerfile", "build file to rewrite")
	updateCmd.Flags().BoolVar(&updateDryRun, "dry-run", false, "resolve and print versions without touching the file")
	updateCmd.Flags().DurationVar(&updateTimeout, "timeout", 30*time.Second, "overall timeout for remote lookups")
	rootCmd.AddCommand(updateCmd)
}

func runUpdate(_ *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), updateTimeout)
	defer cancel()

	u := newUpdater()
	pins := repin.DefaultPins()

	if updateDryRun {
		versions, err := u.Resolve(ctx, pins)
		if err != nil {
			return err
		}
		printVersions(pins, versions)
		slog.Debug("dry run, file not rewritten", "file", updateFile)
		return nil
	}

	versions, err := u.Update(ctx, pins, updateFile)
	if err != nil {
		return err
	}

	printVersions(pins, versions)
	slog.Info("pins updated", "file", updateFile, "pins", len(versions))
	return nil
}

// newUpdater builds the updater used by all commands. Remote failures are
// fatal for a whole run, so lookup retries are disabled.
func newUpdater() *repin.Updater {
	opts := []repin.UpdaterOption{
		repin.WithClient(repin.NewClient(repin.WithMaxRetries(0))),
	}
	if alpmURL != "" {
		opts = append(opts, repin.WithBaseURL("alpm", alpmURL))
	}
	if rustupURL != "" {
		opts = append(opts, repin.WithBaseURL("rustup", rustupURL))
	}
	return repin.NewUpdater(opts...)
}

// printVersions reports one PREFIX_VER="value" line per pin, in pin order.
func printVersions(pins []repin.Pin, versions map[string]string) {
	for _, pin := range pins {
		fmt.Fprintf(os.Stdout, "%s_VER=%q\n", pin.Prefix, versions[pin.Prefix])
	}
}
