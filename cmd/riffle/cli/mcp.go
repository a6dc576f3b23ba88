package cli

import (
	"fmt"

	"github.com/deepnoodle-ai/riffle/classify"
	"github.com/deepnoodle-ai/riffle/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve resolution tools over the Model Context Protocol",
	Long: `Run a Model Context Protocol server on stdin/stdout.

The server exposes resolve_review_order and classify_layers tools so AI
assistants can order changesets without shelling out to the CLI. All
protocol traffic uses stdout; logs go to stderr.

Example client configuration (Claude Desktop, Cursor, etc.):

  {
    "mcpServers": {
      "riffle": {
        "command": "riffle",
        "args": ["mcp"]
      }
    }
  }`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rulesFile, err := cmd.Flags().GetString("rules")
		if err != nil {
			return fmt.Errorf("error getting rules flag: %w", err)
		}
		cacheSize, err := cmd.Flags().GetInt("cache-size")
		if err != nil {
			return fmt.Errorf("error getting cache-size flag: %w", err)
		}

		var classifier *classify.Classifier
		if rulesFile != "" {
			classifier, err = classify.LoadFile(rulesFile)
			if err != nil {
				return fmt.Errorf("error loading rules file: %w", err)
			}
		}

		server, err := mcp.New(mcp.Options{
			Version:    Version,
			Classifier: classifier,
			CacheSize:  cacheSize,
			Logger:     newLogger(),
		})
		if err != nil {
			return fmt.Errorf("failed to create mcp server: %w", err)
		}
		return server.ServeStdio()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().String("rules", "", "Classification rules file for the classify_layers tool")
	mcpCmd.Flags().Int("cache-size", 128, "Number of resolutions to keep cached")
}
