// Package cli implements the cargoplan command-line interface.
//
// The pack command runs the full pipeline: spreadsheet ingestion,
// normalization, multi-truck packing, and the renderer/report exports.
// The CLI is built using cobra with verbose logging via the
// charmbracelet/log library; the logger rides the command context.
package cli

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version string // semantic version (e.g., "v1.2.3")
	commit  string // git commit SHA
	date    string // build timestamp
)

// SetVersion sets the version information displayed by --version.
// This is typically called by the main package during initialization
// with values injected via ldflags at build time.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the cargoplan CLI and returns an error if any command fails.
func Execute() error {
	var verbose bool

	root := &cobra.Command{
		Use:          "cargoplan",
		Short:        "cargoplan packs shipping boxes into trucks",
		Long:         `cargoplan is a multi-truck 3D bin-packing planner. It reads a box table, packs the boxes into an ordered list of trucks honoring destination unloading order, stackability and base support, and writes the renderer hand-off files plus optional PDF reports.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("cargoplan %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newPackCmd())
	root.AddCommand(newConfigCmd())

	return root.ExecuteContext(context.Background())
}
