package mcpserver

import (
	"context"

	"github.com/erraggy/oasnorm/hoister"
	"github.com/erraggy/oasnorm/normalizer"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type canonicalizeInput struct {
	Doc             docInput `json:"doc"                        jsonschema:"The OAS document to canonicalize"`
	IncludeDocument bool     `json:"include_document,omitempty" jsonschema:"Include the full canonical document in output"`
	Output          string   `json:"output,omitempty"           jsonschema:"File path to write the canonical document"`
}

type canonicalizeOutput struct {
	ChangeCount  int             `json:"change_count"`
	HoistCount   int             `json:"hoist_count"`
	NewEntries   int             `json:"new_entries"`
	Deduplicated int             `json:"deduplicated"`
	Changes      []changeApplied `json:"changes,omitempty"`
	Hoisted      []schemaHoisted `json:"hoisted,omitempty"`
	WrittenTo    string          `json:"written_to,omitempty"`
	Document     string          `json:"document,omitempty"`
}

func handleCanonicalize(_ context.Context, _ *mcp.CallToolRequest, input canonicalizeInput) (*mcp.CallToolResult, canonicalizeOutput, error) {
	doc, err := input.Doc.resolve()
	if err != nil {
		return errResult(err), canonicalizeOutput{}, nil
	}

	// The rule engine's full output is the hoisting engine's input.
	normResult, err := normalizer.NormalizeWithOptions(normalizer.WithDocument(doc))
	if err != nil {
		return errResult(err), canonicalizeOutput{}, nil
	}
	hoistResult, err := hoister.HoistWithOptions(hoister.WithDocument(normResult.Document))
	if err != nil {
		return errResult(err), canonicalizeOutput{}, nil
	}

	output := canonicalizeOutput{
		ChangeCount:  normResult.ChangeCount,
		HoistCount:   hoistResult.HoistCount,
		NewEntries:   hoistResult.NewEntries,
		Deduplicated: hoistResult.Deduplicated,
		Changes:      changeList(normResult.Changes),
		Hoisted:      hoistList(hoistResult.Hoisted),
	}

	output.WrittenTo, output.Document, err = deliver(hoistResult.Document, input.Output, input.IncludeDocument)
	if err != nil {
		return errResult(err), canonicalizeOutput{}, nil
	}

	return nil, output, nil
}
