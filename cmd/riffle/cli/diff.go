package cli

import (
	"fmt"
	"strings"

	"github.com/deepnoodle-ai/riffle"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"
)

var diffCmd = &cobra.Command{
	Use:   "diff [old_changeset] [new_changeset]",
	Short: "Compare the review orders of two changesets",
	Long: `Resolve two changeset documents and print a unified diff of the
resulting review orders.

Useful for seeing how a change to the changeset (a new dependency, a
reclassified node, an order override) reshapes the plan. Either path can
be "-" to read from stdin.

Examples:
  riffle diff before.yaml after.yaml
  riffle diff before.yaml after.yaml --context 5
  riffle diff before.yaml after.yaml --classify`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		contextLines, err := cmd.Flags().GetInt("context")
		if err != nil {
			return fmt.Errorf("error getting context flag: %w", err)
		}
		opts, err := resolveOptionsFromFlags(cmd)
		if err != nil {
			return err
		}

		oldLines, err := resolveOrderLines(args[0], opts)
		if err != nil {
			return fmt.Errorf("error resolving %q: %w", args[0], err)
		}
		newLines, err := resolveOrderLines(args[1], opts)
		if err != nil {
			return fmt.Errorf("error resolving %q: %w", args[1], err)
		}

		diff := generateOrderDiff(oldLines, newLines, args[0], args[1], contextLines)
		if diff == "" {
			fmt.Println(successStyle.Sprint("Review orders are identical"))
			return nil
		}
		printColoredDiff(diff)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(diffCmd)

	diffCmd.Flags().IntP("context", "c", 3, "Number of context lines to show around changes")
	diffCmd.Flags().Bool("classify", false, "Infer layer hints from node identifiers")
	diffCmd.Flags().String("rules", "", "Classification rules file (implies --classify)")
	diffCmd.Flags().String("request", "", "Review request file providing an order override")
}

// resolveOrderLines resolves a changeset document into its flattened
// review order, one node per line.
func resolveOrderLines(path string, opts resolveOptions) ([]string, error) {
	cs, err := loadChangeSet(path)
	if err != nil {
		return nil, err
	}
	if err := opts.prepare(cs); err != nil {
		return nil, err
	}
	res, err := riffle.Resolve(cs)
	if err != nil {
		return nil, err
	}
	return orderLines(res), nil
}

// generateOrderDiff produces a unified diff between two flattened orders
func generateOrderDiff(oldLines, newLines []string, oldFile, newFile string, contextLines int) string {
	diff := difflib.UnifiedDiff{
		A:        appendNewlines(oldLines),
		B:        appendNewlines(newLines),
		FromFile: oldFile,
		ToFile:   newFile,
		FromDate: "old order",
		ToDate:   "new order",
		Context:  contextLines,
	}

	result, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return fmt.Sprintf("Error generating diff: %v", err)
	}
	return result
}

func appendNewlines(lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l + "\n"
	}
	return out
}

// printColoredDiff writes a unified diff with additions in green and
// removals in red.
func printColoredDiff(diff string) {
	for _, line := range strings.SplitAfter(diff, "\n") {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			headerStyle.Print(line)
		case strings.HasPrefix(line, "@@"):
			mutedStyle.Print(line)
		case strings.HasPrefix(line, "+"):
			successStyle.Print(line)
		case strings.HasPrefix(line, "-"):
			errorStyle.Print(line)
		default:
			fmt.Print(line)
		}
	}
}
