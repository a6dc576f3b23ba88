package cli

import (
	"fmt"
	"strings"

	"github.com/deepnoodle-ai/riffle"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
)

var (
	// Color scheme for plan output
	headerStyle  = color.New(color.FgCyan, color.Bold)
	errorStyle   = color.New(color.FgRed)
	warningStyle = color.New(color.FgYellow, color.Bold)
	cycleStyle   = color.New(color.FgMagenta, color.Bold)
	layerStyle   = color.New(color.FgWhite, color.Faint)
	mutedStyle   = color.New(color.FgHiBlack)
	successStyle = color.New(color.FgGreen)
)

const (
	cycleOpen  = "["
	cycleClose = "]"
	cycleJoin  = " ⇄ "
	treeBranch = "└─ "
	warnMark   = "!"
)

// stripANSI removes ANSI escape sequences from text for length calculation
func stripANSI(text string) string {
	result := strings.Builder{}
	inEscape := false

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		r := runes[i]

		if r == '\x1b' && i+1 < len(runes) && runes[i+1] == '[' {
			inEscape = true
			i++ // skip the '['
			continue
		}

		if inEscape {
			// Skip characters until we find a letter (end of escape sequence)
			if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') {
				inEscape = false
			}
			continue
		}

		result.WriteRune(r)
	}

	return result.String()
}

// displayWidth calculates the actual display width of text, accounting for wide characters
func displayWidth(text string) int {
	plainText := stripANSI(text)
	return runewidth.StringWidth(plainText)
}

// entryLabel renders the identifiers of a single entry. Cycle groups are
// bracketed so it is obvious the members must be read together.
func entryLabel(e riffle.Entry) string {
	if e.Cyclic {
		return cycleOpen + strings.Join(e.IDs, cycleJoin) + cycleClose
	}
	return strings.Join(e.IDs, ", ")
}

// nodeDepth counts the ancestors of a node. Unknown nodes have depth zero.
func nodeDepth(cs *riffle.ChangeSet, id string) int {
	depth := 0
	for n := cs.Node(id); n != nil && n.Parent != ""; n = cs.Node(n.Parent) {
		depth++
	}
	return depth
}

// renderResolution produces the human-readable plan for a resolution.
// Entries are numbered, cycle groups annotated, and child nodes indented
// under their ancestors. Layer hints appear in a faint right column.
func renderResolution(res *riffle.Resolution, cs *riffle.ChangeSet) string {
	var out strings.Builder

	cycles := 0
	for _, e := range res.Entries {
		if e.Cyclic {
			cycles++
		}
	}

	title := fmt.Sprintf("Review order (%d nodes", res.Len())
	if cycles > 0 {
		title += fmt.Sprintf(", %d cycle group", cycles)
		if cycles > 1 {
			title += "s"
		}
	}
	title += ")"
	if res.OverrideApplied {
		title += mutedStyle.Sprint("  override applied")
	}
	out.WriteString(headerStyle.Sprint(title) + "\n\n")

	type line struct {
		prefix string
		label  string
		layer  string
	}
	lines := make([]line, 0, len(res.Entries))
	width := 0
	num := 0
	for _, e := range res.Entries {
		depth := 0
		if len(e.IDs) > 0 {
			depth = nodeDepth(cs, e.IDs[0])
		}
		var prefix string
		if depth > 0 {
			prefix = strings.Repeat(" ", 6) + strings.Repeat("  ", depth-1) + treeBranch
		} else {
			num++
			prefix = fmt.Sprintf("%4d. ", num)
		}

		label := entryLabel(e)
		if e.Cyclic {
			label = cycleStyle.Sprint(label)
		}

		layer := ""
		if !e.Cyclic && len(e.IDs) == 1 {
			if n := cs.Node(e.IDs[0]); n != nil && n.Layer != "" && n.Layer != riffle.LayerUnknown {
				layer = string(n.Layer)
			}
		}

		if w := displayWidth(prefix + label); layer != "" && w > width {
			width = w
		}
		lines = append(lines, line{prefix: prefix, label: label, layer: layer})
	}

	for _, l := range lines {
		out.WriteString(l.prefix + l.label)
		if l.layer != "" {
			pad := width - displayWidth(l.prefix+l.label)
			out.WriteString(strings.Repeat(" ", pad+2) + layerStyle.Sprint(l.layer))
		}
		out.WriteString("\n")
	}

	if len(res.Diagnostics) > 0 {
		out.WriteString("\n" + warningStyle.Sprint("Warnings:") + "\n")
		for _, d := range res.Diagnostics {
			out.WriteString("  " + warningStyle.Sprint(warnMark) + " " + d.String() + "\n")
		}
	}

	return out.String()
}

// orderLines flattens a resolution into one line per node, preserving
// order and cycle-group bracketing. Diff and watch output builds on this
// stable form.
func orderLines(res *riffle.Resolution) []string {
	lines := make([]string, 0, res.Len())
	for _, e := range res.Entries {
		if e.Cyclic {
			for _, id := range e.IDs {
				lines = append(lines, cycleOpen+id+cycleClose)
			}
			continue
		}
		lines = append(lines, e.IDs...)
	}
	return lines
}
