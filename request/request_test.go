package request

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/deepnoodle-ai/riffle"
)

func TestParseFrontmatterOrder(t *testing.T) {
	doc := []byte(`---
review-order:
  - internal/schema/user.go
  - internal/store/store.go
---

# Add user lookups

Adds the store layer for users.
`)
	req, err := Parse(doc)
	require.NoError(t, err)
	require.Equal(t, "Add user lookups", req.Title)
	require.Equal(t, []string{"internal/schema/user.go", "internal/store/store.go"}, req.Order)
	require.NotContains(t, req.Body, "---")
}

func TestParseHeadingOrder(t *testing.T) {
	doc := []byte(`# Fix token refresh

Some context about the change.

## Review order

1. ` + "`internal/auth/token.go`" + `
2. internal/auth/refresh.go
3. cmd/app/main.go

## Notes

Unrelated list:
- not an ID
`)
	req, err := Parse(doc)
	require.NoError(t, err)
	require.Equal(t, []string{
		"internal/auth/token.go",
		"internal/auth/refresh.go",
		"cmd/app/main.go",
	}, req.Order)
}

func TestParseHeadingOrderStopsAtProse(t *testing.T) {
	doc := []byte(`## Review order
- a.go
- b.go
Then read the rest in any order.
- c.go
`)
	req, err := Parse(doc)
	require.NoError(t, err)
	require.Equal(t, []string{"a.go", "b.go"}, req.Order)
}

func TestParseInlineOrder(t *testing.T) {
	doc := []byte(`# Small fix

Review order: b.go, a.go , ` + "`c.go`" + `
`)
	req, err := Parse(doc)
	require.NoError(t, err)
	require.Equal(t, []string{"b.go", "a.go", "c.go"}, req.Order)
}

func TestParseFrontmatterWinsOverHeading(t *testing.T) {
	doc := []byte(`---
review-order: [x.go]
---

## Review order
- y.go
`)
	req, err := Parse(doc)
	require.NoError(t, err)
	require.Equal(t, []string{"x.go"}, req.Order)
}

func TestParseNoOrder(t *testing.T) {
	req, err := Parse([]byte("# Title\n\nJust a description.\n"))
	require.NoError(t, err)
	require.Equal(t, "Title", req.Title)
	require.Empty(t, req.Order)
}

func TestParseIgnoresStrayFrontmatterKeys(t *testing.T) {
	doc := []byte(`---
author: someone
review-order:
  - a.go
---
body
`)
	req, err := Parse(doc)
	require.NoError(t, err)
	require.Equal(t, []string{"a.go"}, req.Order)
	require.Equal(t, "body", req.Body)
}

func TestParseMalformedFrontmatterYAML(t *testing.T) {
	doc := []byte("---\nreview-order: [unclosed\n---\nbody\n")
	_, err := Parse(doc)
	require.Error(t, err)
}

func TestParseUnterminatedFrontmatterIsBody(t *testing.T) {
	doc := []byte("--- not frontmatter, just a rule\n\ntext\n")
	req, err := Parse(doc)
	require.NoError(t, err)
	require.Empty(t, req.Order)
	require.Contains(t, req.Body, "not frontmatter")
}

func TestApplyTo(t *testing.T) {
	cs := &riffle.ChangeSet{Nodes: []riffle.Node{{ID: "a.go"}, {ID: "b.go"}}}

	req := &Request{Order: []string{"b.go", "a.go"}}
	req.ApplyTo(cs)
	require.Equal(t, []string{"b.go", "a.go"}, cs.Order)

	res, err := riffle.Resolve(cs)
	require.NoError(t, err)
	require.True(t, res.OverrideApplied)
	require.Equal(t, []string{"b.go", "a.go"}, res.Order())

	empty := &Request{}
	empty.ApplyTo(cs)
	require.Equal(t, []string{"b.go", "a.go"}, cs.Order)
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "request.md")
	require.NoError(t, os.WriteFile(path, []byte("# T\n\nReview order: a.go\n"), 0644))

	req, err := ParseFile(path)
	require.NoError(t, err)
	require.Equal(t, []string{"a.go"}, req.Order)

	_, err = ParseFile(filepath.Join(dir, "missing.md"))
	require.Error(t, err)
}
