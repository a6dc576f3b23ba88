package cli

import (
	"fmt"
	"strings"

	"github.com/deepnoodle-ai/riffle"
	"github.com/spf13/cobra"
)

var classifyCmd = &cobra.Command{
	Use:   "classify [changeset]",
	Short: "Show the layer assigned to each node",
	Long: `Classify the nodes of a changeset into architectural layers.

Nodes that already carry a layer hint keep it; the rest are matched
against classification rules (the built-in defaults, or a rules file
passed with --rules). The layer drives tie-breaking during resolution:
foundational layers are reviewed first.

Examples:
  riffle classify changes.yaml                   # Defaults
  riffle classify changes.yaml --rules rules.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rulesFile, err := cmd.Flags().GetString("rules")
		if err != nil {
			return fmt.Errorf("error getting rules flag: %w", err)
		}

		cs, err := loadChangeSet(args[0])
		if err != nil {
			return err
		}
		classifier, err := newClassifier(rulesFile)
		if err != nil {
			return err
		}

		explicit := make(map[string]bool, len(cs.Nodes))
		for _, n := range cs.Nodes {
			if n.Layer != "" && n.Layer != riffle.LayerUnknown {
				explicit[n.ID] = true
			}
		}
		classifier.Apply(cs)

		width := 0
		for _, n := range cs.Nodes {
			if w := displayWidth(n.ID); w > width {
				width = w
			}
		}
		for _, id := range cs.NodeIDs() {
			n := cs.Node(id)
			layer := n.Layer
			if layer == "" {
				layer = riffle.LayerUnknown
			}
			note := ""
			if explicit[id] {
				note = mutedStyle.Sprint("  (explicit)")
			}
			pad := strings.Repeat(" ", width-displayWidth(id)+2)
			fmt.Printf("%s%s%s%s\n", id, pad, layerStyle.Sprint(string(layer)), note)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(classifyCmd)

	classifyCmd.Flags().String("rules", "", "Classification rules file")
}
