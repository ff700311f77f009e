package mcpserver

import (
	"context"

	"github.com/erraggy/oasnorm/normalizer"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type normalizeInput struct {
	Doc             docInput `json:"doc"                        jsonschema:"The OAS document to normalize"`
	IncludeDocument bool     `json:"include_document,omitempty" jsonschema:"Include the full normalized document in output"`
	Output          string   `json:"output,omitempty"           jsonschema:"File path to write the normalized document"`
}

type changeApplied struct {
	Type        string `json:"type"`
	Path        string `json:"path"`
	Description string `json:"description"`
}

type normalizeOutput struct {
	ChangeCount int             `json:"change_count"`
	Changes     []changeApplied `json:"changes,omitempty"`
	WrittenTo   string          `json:"written_to,omitempty"`
	Document    string          `json:"document,omitempty"`
}

func handleNormalize(_ context.Context, _ *mcp.CallToolRequest, input normalizeInput) (*mcp.CallToolResult, normalizeOutput, error) {
	doc, err := input.Doc.resolve()
	if err != nil {
		return errResult(err), normalizeOutput{}, nil
	}

	result, err := normalizer.NormalizeWithOptions(normalizer.WithDocument(doc))
	if err != nil {
		return errResult(err), normalizeOutput{}, nil
	}

	output := normalizeOutput{
		ChangeCount: result.ChangeCount,
		Changes:     changeList(result.Changes),
	}

	output.WrittenTo, output.Document, err = deliver(result.Document, input.Output, input.IncludeDocument)
	if err != nil {
		return errResult(err), normalizeOutput{}, nil
	}

	return nil, output, nil
}

// changeList converts change records for tool output, truncated to the
// configured detail limit. ChangeCount remains exact.
func changeList(changes []normalizer.Change) []changeApplied {
	if len(changes) > cfg.ChangeDetailLimit {
		changes = changes[:cfg.ChangeDetailLimit]
	}
	out := makeSlice[changeApplied](len(changes))
	for _, c := range changes {
		out = append(out, changeApplied{
			Type:        string(c.Type),
			Path:        c.Path,
			Description: c.Description,
		})
	}
	return out
}
