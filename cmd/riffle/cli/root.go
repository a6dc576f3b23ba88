// Package cli implements the riffle command line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/deepnoodle-ai/riffle/log"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags.
var Version = "dev"

var (
	logLevel string
	noColor  bool
)

var rootCmd = &cobra.Command{
	Use:   "riffle",
	Short: "Deterministic review ordering for changesets",
	Long: `Riffle orders the nodes of a changeset so that dependencies are
reviewed before their dependents. It groups cyclic nodes, keeps children
under their parents, and applies explicit review-order overrides from
review request documents.

Changeset documents are YAML or JSON files listing nodes, dependency
edges, and an optional order override. Use "-" in place of a file path
to read from stdin.

Examples:
  riffle resolve changes.yaml                  # Print the review order
  riffle resolve changes.yaml --classify       # Infer layers from node IDs
  riffle diff before.yaml after.yaml           # Compare two review orders
  riffle watch changes.yaml                    # Re-resolve on file changes
  riffle mcp                                   # Serve tools over stdio`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColor {
			color.NoColor = true
		}
	},
}

// Execute runs the root command. It is the entry point called by main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Sprint("Error: ", err))
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = Version
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
}

// newLogger builds a logger honoring the global flags. Logs go to stderr
// so command output on stdout stays pipeable.
func newLogger() log.Logger {
	return log.NewWithWriter(os.Stderr, log.LevelFromString(logLevel), noColor)
}
