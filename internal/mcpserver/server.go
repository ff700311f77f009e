// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes oasnorm capabilities as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"

	oasnorm "github.com/erraggy/oasnorm"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `oasnorm MCP server: normalizes and canonicalizes OpenAPI documents.

Tools:
- normalize: apply rule-driven fixes for generator quirks (vendor media
  types, const keywords, missing response descriptions, nonstandard type
  tags, collapsible anyOf unions)
- hoist: extract inline object schemas into components/schemas, replacing
  each occurrence with a $ref; structurally identical schemas collapse to
  one de-duplicated registry entry
- canonicalize: run normalize then hoist as a single pipeline

All tools accept a document by file path or inline content and return change
counts plus, on request, the rewritten document.`

// Run starts the MCP server over stdio and blocks until the client
// disconnects or the context is cancelled.
func Run(ctx context.Context) error {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "oasnorm", Version: oasnorm.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "normalize",
		Description: "Apply rule-driven fixes for generator quirks in an OpenAPI document. Fixes vendor media-type conventions, rewrites const keywords as enums, injects missing response descriptions, rewrites nonstandard \"null\" type tags, and collapses redundant anyOf unions. Use include_document=true to get the rewritten document inline, or output to write it to a file.",
	}, handleNormalize)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "hoist",
		Description: "Extract inline object schemas from an OpenAPI document into components/schemas and replace each occurrence with a $ref. Structurally identical schemas anywhere in the document are de-duplicated into a single registry entry with a name synthesized from the schema's position. Use include_document=true to get the rewritten document inline, or output to write it to a file.",
	}, handleHoist)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "canonicalize",
		Description: "Run the full canonicalization pipeline on an OpenAPI document: normalize generator quirks, then hoist inline object schemas. The normalizer's output feeds the hoister, matching 'oasnorm canon'. Use include_document=true to get the rewritten document inline, or output to write it to a file.",
	}, handleCanonicalize)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}
