package cli

import (
	"encoding/json"
	"fmt"

	"github.com/deepnoodle-ai/riffle"
	"github.com/spf13/cobra"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve [changeset]",
	Short: "Resolve a changeset into a review order",
	Long: `Resolve a changeset document into a dependency-respecting review order.

Dependencies come before dependents, parents before children, and nodes
that depend on each other are grouped so they can be read together. An
order override in the document, or in a review request passed with
--request, is honored verbatim for the nodes it names.

Examples:
  riffle resolve changes.yaml                          # Print the plan
  riffle resolve changes.yaml --format json            # Machine-readable output
  riffle resolve changes.yaml --classify               # Infer layers from IDs
  riffle resolve changes.yaml --rules rules.yaml       # Custom layer rules
  riffle resolve changes.yaml --request review.md      # Apply requested order
  cat changes.yaml | riffle resolve -                  # Read from stdin`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := cmd.Flags().GetString("format")
		if err != nil {
			return fmt.Errorf("error getting format flag: %w", err)
		}
		opts, err := resolveOptionsFromFlags(cmd)
		if err != nil {
			return err
		}

		cs, err := loadChangeSet(args[0])
		if err != nil {
			return err
		}
		if err := opts.prepare(cs); err != nil {
			return err
		}

		res, err := riffle.Resolve(cs)
		if err != nil {
			return err
		}

		switch format {
		case "json":
			data, err := json.MarshalIndent(res, "", "  ")
			if err != nil {
				return fmt.Errorf("error encoding resolution: %w", err)
			}
			fmt.Println(string(data))
		case "text":
			fmt.Print(renderResolution(res, cs))
		default:
			return fmt.Errorf("unsupported output format: %s", format)
		}
		return nil
	},
}

func resolveOptionsFromFlags(cmd *cobra.Command) (resolveOptions, error) {
	var opts resolveOptions
	var err error
	if opts.Classify, err = cmd.Flags().GetBool("classify"); err != nil {
		return opts, fmt.Errorf("error getting classify flag: %w", err)
	}
	if opts.RulesFile, err = cmd.Flags().GetString("rules"); err != nil {
		return opts, fmt.Errorf("error getting rules flag: %w", err)
	}
	if opts.RequestFile, err = cmd.Flags().GetString("request"); err != nil {
		return opts, fmt.Errorf("error getting request flag: %w", err)
	}
	return opts, nil
}

func init() {
	rootCmd.AddCommand(resolveCmd)

	resolveCmd.Flags().StringP("format", "f", "text", "Output format (text, json)")
	resolveCmd.Flags().Bool("classify", false, "Infer layer hints from node identifiers")
	resolveCmd.Flags().String("rules", "", "Classification rules file (implies --classify)")
	resolveCmd.Flags().String("request", "", "Review request file providing an order override")
}
