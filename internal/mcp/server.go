package mcp

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Aman-CERP/wicli/internal/search"
	"github.com/Aman-CERP/wicli/pkg/version"
)

const (
	serverName = "wicli"

	defaultLimit = 10
	maxLimit     = 100
)

// Searcher runs a substring search over a set of roots.
type Searcher interface {
	SearchWithStats(ctx context.Context, term string, roots []string) ([]search.Match, search.Stats, error)
}

// SourceLister returns the registered search roots.
type SourceLister interface {
	List() ([]string, error)
}

// Server is the MCP server for wicli.
// Roots are re-read on every call so sources added while serving are seen.
type Server struct {
	mcp      *mcp.Server
	searcher Searcher
	sources  SourceLister
	logger   *slog.Logger
}

// ToolInfo contains information about a registered tool.
type ToolInfo struct {
	Name        string
	Description string
}

var tools = []ToolInfo{
	{
		Name:        "search",
		Description: "Find every file under the registered sources whose content contains the term (case-sensitive substring). Returns full file contents with the file path and the root it was found under.",
	},
	{
		Name:        "list_sources",
		Description: "List the registered search roots (local directories and cloned git repositories).",
	},
}

// NewServer creates a new MCP server.
func NewServer(searcher Searcher, sources SourceLister) (*Server, error) {
	if searcher == nil {
		return nil, errors.New("searcher is required")
	}
	if sources == nil {
		return nil, errors.New("source lister is required")
	}

	s := &Server{
		searcher: searcher,
		sources:  sources,
		logger:   slog.Default(),
	}

	s.mcp = mcp.NewServer(
		&mcp.Implementation{
			Name:    serverName,
			Version: version.Version,
		},
		nil,
	)
	s.registerTools()

	return s, nil
}

// MCPServer returns the underlying MCP server instance.
func (s *Server) MCPServer() *mcp.Server {
	return s.mcp
}

// Info returns the server name and version.
func (s *Server) Info() (name, ver string) {
	return serverName, version.Version
}

// ListTools returns all registered tools.
func (s *Server) ListTools() []ToolInfo {
	out := make([]ToolInfo, len(tools))
	copy(out, tools)
	return out
}

// CallTool invokes a tool by name with JSON-decoded arguments and returns
// its markdown rendering.
func (s *Server) CallTool(ctx context.Context, name string, args map[string]any) (string, error) {
	switch name {
	case "search":
		term, ok := args["term"].(string)
		if !ok {
			return "", NewInvalidParamsError("term parameter is required and must be a string")
		}
		limit := 0
		if l, ok := args["limit"].(float64); ok {
			limit = int(l)
		}
		out, err := s.search(ctx, SearchInput{Term: term, Limit: limit})
		if err != nil {
			return "", err
		}
		return FormatSearchResults(term, toMatches(out.Matches), out.Total), nil
	case "list_sources":
		out, err := s.listSources()
		if err != nil {
			return "", err
		}
		return FormatSources(out.Sources), nil
	default:
		return "", NewMethodNotFoundError(name)
	}
}

func (s *Server) registerTools() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        tools[0].Name,
		Description: tools[0].Description,
	}, s.mcpSearchHandler)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        tools[1].Name,
		Description: tools[1].Description,
	}, s.mcpListSourcesHandler)

	s.logger.Debug("mcp_tools_registered", slog.Int("count", len(tools)))
}

func (s *Server) mcpSearchHandler(ctx context.Context, _ *mcp.CallToolRequest, input SearchInput) (
	*mcp.CallToolResult,
	SearchOutput,
	error,
) {
	out, err := s.search(ctx, input)
	if err != nil {
		return nil, SearchOutput{}, err
	}
	return nil, out, nil
}

func (s *Server) mcpListSourcesHandler(_ context.Context, _ *mcp.CallToolRequest, _ ListSourcesInput) (
	*mcp.CallToolResult,
	ListSourcesOutput,
	error,
) {
	out, err := s.listSources()
	if err != nil {
		return nil, ListSourcesOutput{}, err
	}
	return nil, out, nil
}

// search runs the engine over the current roots. The empty term is valid
// and matches every readable file.
func (s *Server) search(ctx context.Context, input SearchInput) (SearchOutput, error) {
	requestID := generateRequestID()
	limit := clampLimit(input.Limit, defaultLimit, 1, maxLimit)

	roots, err := s.sources.List()
	if err != nil {
		s.logger.Error("mcp_search_failed",
			slog.String("request_id", requestID),
			slog.String("error", err.Error()))
		return SearchOutput{}, MapError(err)
	}

	s.logger.Info("mcp_search_started",
		slog.String("request_id", requestID),
		slog.String("term", input.Term),
		slog.Int("roots", len(roots)),
		slog.Int("limit", limit))

	matches, stats, err := s.searcher.SearchWithStats(ctx, input.Term, roots)
	if err != nil {
		s.logger.Warn("mcp_search_failed",
			slog.String("request_id", requestID),
			slog.String("error", err.Error()))
		return SearchOutput{}, MapError(err)
	}

	s.logger.Info("mcp_search_complete",
		slog.String("request_id", requestID),
		slog.Int("matches", len(matches)),
		slog.Int64("files_read", stats.FilesRead),
		slog.Duration("duration", stats.Duration))

	out := SearchOutput{
		Total:   len(matches),
		Matches: make([]MatchOutput, 0, min(limit, len(matches))),
	}
	for _, m := range matches[:min(limit, len(matches))] {
		out.Matches = append(out.Matches, MatchOutput{Path: m.Path, Root: m.Root, Content: m.Content})
	}
	return out, nil
}

func (s *Server) listSources() (ListSourcesOutput, error) {
	roots, err := s.sources.List()
	if err != nil {
		return ListSourcesOutput{}, MapError(err)
	}
	if roots == nil {
		roots = []string{}
	}
	return ListSourcesOutput{Sources: roots}, nil
}

// Serve starts the server with the specified transport.
func (s *Server) Serve(ctx context.Context, transport string) error {
	s.logger.Info("mcp_server_starting", slog.String("transport", transport))

	switch transport {
	case "stdio":
		start := time.Now()
		err := s.mcp.Run(ctx, &mcp.StdioTransport{})
		if err != nil && !errors.Is(err, context.Canceled) {
			s.logger.Error("mcp_server_stopped",
				slog.String("error", err.Error()),
				slog.Duration("uptime", time.Since(start)))
			return err
		}
		s.logger.Info("mcp_server_stopped", slog.Duration("uptime", time.Since(start)))
		return nil
	default:
		return fmt.Errorf("unknown transport: %s (supported: stdio)", transport)
	}
}

func toMatches(out []MatchOutput) []search.Match {
	matches := make([]search.Match, len(out))
	for i, m := range out {
		matches[i] = search.Match{Content: m.Content, Path: m.Path, Root: m.Root}
	}
	return matches
}

// generateRequestID creates a short unique request ID for log correlation.
func generateRequestID() string {
	b := make([]byte, 4)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
