package mcpserver

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v4"
)

// docInput represents the two ways an OAS document can be provided to a
// tool. Exactly one of File or Content must be set.
type docInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to an OAS document on disk"`
	Content string `json:"content,omitempty" jsonschema:"Inline OAS document content (JSON or YAML)"`
}

// resolve parses the document from whichever input was provided.
func (d docInput) resolve() (map[string]any, error) {
	count := 0
	if d.File != "" {
		count++
	}
	if d.Content != "" {
		count++
	}
	if count != 1 {
		return nil, fmt.Errorf("exactly one of file or content must be provided (got %d)", count)
	}

	data := []byte(d.Content)
	if d.File != "" {
		var err error
		data, err = os.ReadFile(d.File)
		if err != nil {
			return nil, fmt.Errorf("reading document: %w", err)
		}
	} else if len(data) > cfg.MaxInlineSize {
		return nil, fmt.Errorf("inline content exceeds %d bytes", cfg.MaxInlineSize)
	}

	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}
	return doc, nil
}

// deliver marshals the rewritten document and either writes it to
// outputPath, returns it inline, or both, per the tool's flags.
func deliver(doc any, outputPath string, includeDocument bool) (written, inline string, err error) {
	if outputPath == "" && !includeDocument {
		return "", "", nil
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return "", "", fmt.Errorf("marshaling document: %w", err)
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, data, 0o600); err != nil {
			return "", "", fmt.Errorf("failed to write output file: %w", err)
		}
		written = outputPath
	}
	if includeDocument {
		inline = string(data)
	}
	return written, inline, nil
}
