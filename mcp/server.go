// Package mcp exposes riffle over the Model Context Protocol, so agents
// and editors can resolve review orders without shelling out to the CLI.
//
// The server speaks MCP over stdio and registers two tools:
//
//   - resolve_review_order: resolve a change-set document into a reading
//     order, optionally classifying layers and honoring a review request.
//   - classify_layers: fill in missing layer hints on a change-set.
//
// Both tools accept change-set documents as YAML or JSON text and return
// JSON. Input problems come back as tool errors rather than protocol
// errors, so the calling agent sees what to fix.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/deepnoodle-ai/riffle"
	"github.com/deepnoodle-ai/riffle/classify"
	"github.com/deepnoodle-ai/riffle/log"
)

const serverInstructions = `Resolve code review reading orders. Pass a change-set document
(YAML or JSON) listing the changed nodes and the dependency edges between
them; the resolve_review_order tool returns the order in which a reviewer
should read them, with cycle groups flagged. Use classify_layers first if
the change-set lacks layer hints.`

// Options configures a Server.
type Options struct {
	// Version reported during the MCP handshake. Defaults to "dev".
	Version string

	// Classifier fills in layers when a tool call asks for
	// classification. Defaults to the built-in rules.
	Classifier *classify.Classifier

	// CacheSize bounds the resolution cache. Defaults to 128.
	CacheSize int

	// Logger receives request logs. Defaults to a null logger, since
	// stdio transports cannot tolerate stray output on stdout.
	Logger log.Logger
}

// Server is a stdio MCP server wrapping the resolver.
type Server struct {
	mcpServer  *server.MCPServer
	classifier *classify.Classifier
	cache      *riffle.Cache
	logger     log.Logger
}

// New creates a Server with its tools registered.
func New(opts Options) (*Server, error) {
	version := opts.Version
	if version == "" {
		version = "dev"
	}
	classifier := opts.Classifier
	if classifier == nil {
		var err error
		classifier, err = classify.New(classify.Options{
			Rules:  classify.DefaultRules(),
			Ignore: classify.DefaultIgnores(),
		})
		if err != nil {
			return nil, err
		}
	}
	cacheSize := opts.CacheSize
	if cacheSize <= 0 {
		cacheSize = 128
	}
	cache, err := riffle.NewCache(cacheSize)
	if err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.NewNullLogger()
	}

	s := &Server{
		classifier: classifier,
		cache:      cache,
		logger:     logger,
	}
	s.mcpServer = server.NewMCPServer(
		"riffle",
		version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions),
	)
	s.mcpServer.AddTool(resolveToolDefinition(), s.handleResolve)
	s.mcpServer.AddTool(classifyToolDefinition(), s.handleClassify)
	return s, nil
}

// ServeStdio runs the server over stdin/stdout until the client
// disconnects.
func (s *Server) ServeStdio() error {
	s.logger.Info("mcp server starting", "transport", "stdio")
	return server.ServeStdio(s.mcpServer)
}
