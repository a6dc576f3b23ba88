// Package request extracts review instructions from markdown documents
// such as pull request descriptions and review notes.
//
// Authors can pin a review order in three ways, checked in this order:
//
// YAML frontmatter:
//
//	---
//	review-order:
//	  - internal/schema/user.go
//	  - internal/store/store.go
//	---
//
// A "Review order" heading followed by a list:
//
//	## Review order
//	1. internal/schema/user.go
//	2. internal/store/store.go
//
// Or a single inline line:
//
//	Review order: internal/schema/user.go, internal/store/store.go
//
// The first form present wins. IDs may be wrapped in backticks, which are
// stripped. The extracted order plugs directly into a change-set's Order
// field, where the resolver treats it as an explicit override.
package request

import (
	"os"
	"regexp"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/deepnoodle-ai/riffle"
)

// Request is a parsed review document.
type Request struct {
	// Title is the text of the first top-level heading, if any.
	Title string

	// Order is the explicit review order the author asked for. Empty when
	// the document does not specify one.
	Order []string

	// Body is the markdown content with any frontmatter removed.
	Body string
}

type frontmatter struct {
	ReviewOrder []string `yaml:"review-order"`
}

var (
	titlePattern        = regexp.MustCompile(`(?m)^#\s+(.+?)\s*$`)
	orderHeadingPattern = regexp.MustCompile(`(?mi)^#{1,6}\s+review\s+order\s*$`)
	listItemPattern     = regexp.MustCompile(`^\s*(?:[-*+]|\d+[.)])\s+(.+?)\s*$`)
	headingPattern      = regexp.MustCompile(`^#{1,6}\s`)
	inlinePattern       = regexp.MustCompile(`(?mi)^review\s+order:\s*(.+?)\s*$`)
)

// ParseFile reads and parses a review document from disk.
func ParseFile(path string) (*Request, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse extracts the title, body, and any review order from a markdown
// document. Documents without review instructions parse cleanly into a
// Request with an empty Order.
func Parse(content []byte) (*Request, error) {
	body := string(content)
	req := &Request{}

	if fm, rest, ok := splitFrontmatter(body); ok {
		var f frontmatter
		if err := yaml.Unmarshal([]byte(fm), &f); err != nil {
			return nil, err
		}
		req.Order = cleanIDs(f.ReviewOrder)
		body = rest
	}

	req.Body = strings.TrimSpace(body)
	if m := titlePattern.FindStringSubmatch(req.Body); m != nil {
		req.Title = m[1]
	}
	if len(req.Order) == 0 {
		req.Order = headingOrder(req.Body)
	}
	if len(req.Order) == 0 {
		req.Order = inlineOrder(req.Body)
	}
	return req, nil
}

// ApplyTo copies the request's order onto the change-set. A request with
// no order leaves the change-set untouched.
func (r *Request) ApplyTo(cs *riffle.ChangeSet) {
	if len(r.Order) == 0 {
		return
	}
	cs.Order = make([]string, len(r.Order))
	copy(cs.Order, r.Order)
}

// splitFrontmatter separates YAML frontmatter from the body. Frontmatter
// is delimited by --- lines at the start of the document.
func splitFrontmatter(content string) (fm, body string, ok bool) {
	trimmed := strings.TrimLeft(content, " \t\r\n")
	if !strings.HasPrefix(trimmed, "---") {
		return "", content, false
	}
	rest := strings.TrimPrefix(trimmed[3:], "\n")
	endIdx := strings.Index(rest, "\n---")
	if endIdx == -1 {
		return "", content, false
	}
	fm = rest[:endIdx]
	body = strings.TrimPrefix(rest[endIdx+4:], "\n")
	return fm, body, true
}

// headingOrder collects the list items under a "Review order" heading.
// The list ends at the first non-blank line that is not a list item.
func headingOrder(body string) []string {
	loc := orderHeadingPattern.FindStringIndex(body)
	if loc == nil {
		return nil
	}
	var order []string
	for _, line := range strings.Split(body[loc[1]:], "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if headingPattern.MatchString(line) {
			break
		}
		m := listItemPattern.FindStringSubmatch(line)
		if m == nil {
			break
		}
		order = append(order, m[1])
	}
	return cleanIDs(order)
}

// inlineOrder parses the one-line "Review order: a, b, c" form.
func inlineOrder(body string) []string {
	m := inlinePattern.FindStringSubmatch(body)
	if m == nil {
		return nil
	}
	return cleanIDs(strings.Split(m[1], ","))
}

func cleanIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		id = strings.Trim(id, "`")
		if id != "" {
			out = append(out, id)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
