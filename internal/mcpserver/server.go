// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes Laguz vocabulary tools for LLM integration via stdio
// transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/laguz/internal/vocab"
)

// Server wraps the MCP server with Laguz tools.
type Server struct {
	mcp *server.MCPServer
	svc *vocab.Service
}

// New creates a new MCP server with all Laguz tools registered.
func New(svc *vocab.Service) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"Laguz",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("extract_vocabulary",
		mcp.WithDescription("Extract structured word records for every marked term in a block "+
			"and materialize them as a vocabulary outline under the block. Terms are marked "+
			"with ^^term^^ or a trailing speaker glyph. Read the outline contract first via "+
			"the get_outline_contract tool or the laguz://outline-format resource."),
		mcp.WithString("block_id", mcp.Required(), mcp.Description("Id of the source block")),
		mcp.WithString("text", mcp.Description("Block text; omitted to use the daemon's copy")),
	), s.extractVocabulary)

	s.mcp.AddTool(mcp.NewTool("export_flashcards",
		mcp.WithDescription("Harvest a block's vocabulary outline and send one flashcard per "+
			"marked term to Anki. Already-exported cards are skipped."),
		mcp.WithString("block_id", mcp.Required(), mcp.Description("Id of the source block")),
		mcp.WithString("text", mcp.Description("Subtree dump; omitted to use the daemon's copy")),
		mcp.WithString("deck", mcp.Description("Target deck; omitted to use the configured default")),
	), s.exportFlashcards)

	s.mcp.AddTool(mcp.NewTool("list_exports",
		mcp.WithDescription("List exported flashcards recorded in the ledger."),
		mcp.WithString("block_id", mcp.Description("Optional block id to scope the listing")),
	), s.listExports)

	s.mcp.AddTool(mcp.NewTool("reset_exports",
		mcp.WithDescription("Forget export history so the next export recreates the cards. "+
			"Without a block_id the whole ledger is cleared."),
		mcp.WithString("block_id", mcp.Description("Optional block id to scope the reset")),
	), s.resetExports)

	s.mcp.AddTool(mcp.NewTool("get_outline_contract",
		mcp.WithDescription("Returns the canonical vocabulary outline format. "+
			"Call this before writing outlines the exporter should harvest."),
	), s.getOutlineContract)

	// Resource: outline format contract.
	s.mcp.AddResource(
		mcp.NewResource("laguz://outline-format", "Vocabulary Outline Contract",
			mcp.WithResourceDescription("Canonical vocabulary outline format the exporter harvests."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readOutlineFormatResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) extractVocabulary(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	blockID, err := req.RequireString("block_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	text := req.GetString("text", "")

	res, err := s.svc.Extract(ctx, blockID, text)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(res, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) exportFlashcards(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	blockID, err := req.RequireString("block_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	text := req.GetString("text", "")
	deck := req.GetString("deck", "")

	sum, err := s.svc.Export(ctx, blockID, text, deck)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf(
		"deck %q: %d created, %d skipped, %d failed",
		sum.Deck, sum.Created, sum.Skipped, sum.Failed)), nil
}

func (s *Server) listExports(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	recs, err := s.svc.ListExports(req.GetString("block_id", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(recs) == 0 {
		return mcp.NewToolResultText("no exports recorded"), nil
	}
	out, _ := json.MarshalIndent(recs, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) resetExports(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	n, err := s.svc.ResetExports(req.GetString("block_id", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("forgot %d export record(s)", n)), nil
}

func (s *Server) getOutlineContract(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(OutlineFormatContract), nil
}

func (s *Server) readOutlineFormatResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "laguz://outline-format",
			MIMEType: "text/markdown",
			Text:     OutlineFormatContract,
		},
	}, nil
}
