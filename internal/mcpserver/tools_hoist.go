package mcpserver

import (
	"context"

	"github.com/erraggy/oasnorm/hoister"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type hoistInput struct {
	Doc             docInput `json:"doc"                        jsonschema:"The OAS document to hoist"`
	IncludeDocument bool     `json:"include_document,omitempty" jsonschema:"Include the full hoisted document in output"`
	Output          string   `json:"output,omitempty"           jsonschema:"File path to write the hoisted document"`
}

type schemaHoisted struct {
	Name         string `json:"name"`
	Path         string `json:"path"`
	Deduplicated bool   `json:"deduplicated,omitempty"`
}

type hoistOutput struct {
	HoistCount   int             `json:"hoist_count"`
	NewEntries   int             `json:"new_entries"`
	Deduplicated int             `json:"deduplicated"`
	Hoisted      []schemaHoisted `json:"hoisted,omitempty"`
	WrittenTo    string          `json:"written_to,omitempty"`
	Document     string          `json:"document,omitempty"`
}

func handleHoist(_ context.Context, _ *mcp.CallToolRequest, input hoistInput) (*mcp.CallToolResult, hoistOutput, error) {
	doc, err := input.Doc.resolve()
	if err != nil {
		return errResult(err), hoistOutput{}, nil
	}

	result, err := hoister.HoistWithOptions(hoister.WithDocument(doc))
	if err != nil {
		return errResult(err), hoistOutput{}, nil
	}

	output := hoistOutput{
		HoistCount:   result.HoistCount,
		NewEntries:   result.NewEntries,
		Deduplicated: result.Deduplicated,
		Hoisted:      hoistList(result.Hoisted),
	}

	output.WrittenTo, output.Document, err = deliver(result.Document, input.Output, input.IncludeDocument)
	if err != nil {
		return errResult(err), hoistOutput{}, nil
	}

	return nil, output, nil
}

// hoistList converts hoist records for tool output, truncated to the
// configured detail limit. HoistCount remains exact.
func hoistList(records []hoister.Record) []schemaHoisted {
	if len(records) > cfg.HoistDetailLimit {
		records = records[:cfg.HoistDetailLimit]
	}
	out := makeSlice[schemaHoisted](len(records))
	for _, r := range records {
		out = append(out, schemaHoisted{
			Name:         r.Name,
			Path:         r.Path,
			Deduplicated: r.Deduplicated,
		})
	}
	return out
}
