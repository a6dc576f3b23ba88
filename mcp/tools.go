package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/deepnoodle-ai/riffle"
	"github.com/deepnoodle-ai/riffle/request"
)

func resolveToolDefinition() mcp.Tool {
	return mcp.NewTool("resolve_review_order",
		mcp.WithDescription("Resolve a change-set into the order a reviewer should read it. Dependencies come before dependents, parents before children, and mutually-dependent nodes are grouped and flagged as cyclic."),
		mcp.WithString("changeset",
			mcp.Required(),
			mcp.Description("Change-set document as YAML or JSON: nodes with optional Parent and Layer, edges as From/To pairs, optional Order override."),
		),
		mcp.WithString("review_request",
			mcp.Description("Optional markdown review request. Any review order it specifies is applied as the change-set's override."),
		),
		mcp.WithBoolean("classify",
			mcp.Description("Fill in missing layer hints using the built-in classification rules before resolving."),
		),
	)
}

func classifyToolDefinition() mcp.Tool {
	return mcp.NewTool("classify_layers",
		mcp.WithDescription("Assign architectural layers to change-set nodes based on their paths. Explicit hints in the input are preserved."),
		mcp.WithString("changeset",
			mcp.Required(),
			mcp.Description("Change-set document as YAML or JSON."),
		),
	)
}

func (s *Server) handleResolve(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	doc, err := req.RequireString("changeset")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	cs, err := parseDocument(doc)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid change-set: %v", err)), nil
	}

	args := req.GetArguments()
	if v, ok := args["classify"].(bool); ok && v {
		n := s.classifier.Apply(cs)
		s.logger.Debug("classified nodes", "count", n)
	}
	if raw, ok := args["review_request"].(string); ok && raw != "" {
		r, err := request.Parse([]byte(raw))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid review request: %v", err)), nil
		}
		r.ApplyTo(cs)
	}

	res, err := s.cache.Resolve(cs)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	s.logger.Info("resolved change-set", "nodes", len(cs.Nodes), "entries", len(res.Entries))

	out, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) handleClassify(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	doc, err := req.RequireString("changeset")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	cs, err := parseDocument(doc)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid change-set: %v", err)), nil
	}
	s.classifier.Apply(cs)

	out, err := json.MarshalIndent(cs, "", "  ")
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(out)), nil
}

// parseDocument accepts a change-set as either JSON or YAML text.
func parseDocument(doc string) (*riffle.ChangeSet, error) {
	if err := checkDocument(doc); err != nil {
		return nil, err
	}
	if strings.HasPrefix(strings.TrimSpace(doc), "{") {
		return riffle.ParseJSON([]byte(doc))
	}
	return riffle.ParseYAML([]byte(doc))
}
