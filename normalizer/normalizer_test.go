package normalizer

import (
	"reflect"
	"testing"

	"github.com/erraggy/oasnorm/internal/jsontree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeWithOptions(t *testing.T) {
	doc := mustParse(t, `
paths:
  /notes:
    post:
      requestBody:
        content:
          text/plain:
            schema:
              type: string
      responses:
        "200":
          content:
            application/json:
              schema:
                type: object
`)

	result, err := NormalizeWithOptions(WithDocument(doc))
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.True(t, result.HasChanges())
	assert.Equal(t, reflect.ValueOf(doc).Pointer(), reflect.ValueOf(result.Document).Pointer(),
		"the input tree is rewritten in place")
}

func TestNormalizeWithOptionsNoDocument(t *testing.T) {
	_, err := NormalizeWithOptions()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no input document")
}

func TestNormalizeIdempotent(t *testing.T) {
	doc := mustParse(t, `
paths:
  /pets:
    get:
      responses:
        "200":
          items:
            type: string
          content:
            application/json:
              schema:
                type: object
                properties:
                  status:
                    anyOf:
                      - type: string
                        const: adopted
                      - type: string
                        const: available
                  bornAt:
                    anyOf:
                      - type: Date
                      - type: string
                  nickname:
                    anyOf:
                      - type: string
                      - type: "null"
                  legacy:
                    type: "null"
`)

	n := New()
	first, err := n.Normalize(doc)
	require.NoError(t, err)
	require.True(t, first.HasChanges())
	once := jsontree.Signature(first.Document)

	second, err := n.Normalize(first.Document)
	require.NoError(t, err)
	assert.False(t, second.HasChanges(), "second pass should be a no-op")
	assert.Equal(t, once, jsontree.Signature(second.Document))
}

func TestNormalizeChangeRecords(t *testing.T) {
	doc := mustParse(t, `
responses:
  "200":
    content:
      text/plain:
        schema:
          type: string
`)

	result, err := NormalizeWithOptions(WithDocument(doc))
	require.NoError(t, err)
	require.Equal(t, 2, result.ChangeCount)

	byType := make(map[ChangeType]Change)
	for _, c := range result.Changes {
		byType[c.Type] = c
	}

	status, ok := byType[ChangeTypeStatusDescription]
	require.True(t, ok)
	assert.Equal(t, "responses.200", status.Path)
	assert.NotNil(t, status.After)

	removed, ok := byType[ChangeTypeMediaTypeRemoved]
	require.True(t, ok)
	assert.Equal(t, "responses.200.content.text/plain", removed.Path)
	assert.Nil(t, removed.After)
	assert.NotNil(t, removed.Before)
}

func TestNormalizeRecursesIntoRuleOutput(t *testing.T) {
	// The single-branch collapse merges a subtree that still contains inline
	// quirks; a rule's replacement value is itself re-walked.
	doc := mustParse(t, `
responses:
  "200":
    content:
      application/json:
        schema:
          type: object
          properties:
            kind:
              const: dog
`)

	result, err := NormalizeWithOptions(WithDocument(doc))
	require.NoError(t, err)
	assert.True(t, result.HasChanges())

	kind := doc["responses"].(map[string]any)["200"].(map[string]any)["content"].(map[string]any)["application/json"].(map[string]any)["schema"].(map[string]any)["properties"].(map[string]any)["kind"].(map[string]any)
	assert.NotContains(t, kind, "const")
	assert.Equal(t, []any{"dog"}, kind["enum"])
}

func TestNormalizeWalksSequences(t *testing.T) {
	doc := map[string]any{
		"parameters": []any{
			map[string]any{"schema": map[string]any{"type": "null"}},
			map[string]any{"schema": map[string]any{"type": "null"}},
		},
	}

	result, err := NormalizeWithOptions(WithDocument(doc))
	require.NoError(t, err)
	assert.Equal(t, 2, result.ChangeCount)

	for _, p := range doc["parameters"].([]any) {
		schema := p.(map[string]any)["schema"].(map[string]any)
		assert.Equal(t, "string", schema["type"])
		assert.Equal(t, []any{"null"}, schema["enum"])
	}
}

func TestWithEnabledRules(t *testing.T) {
	doc := mustParse(t, `
content:
  text/plain:
    schema:
      type: "null"
`)

	result, err := NormalizeWithOptions(
		WithDocument(doc),
		WithEnabledRules("type"),
	)
	require.NoError(t, err)
	assert.Equal(t, 1, result.ChangeCount)

	content := doc["content"].(map[string]any)
	require.Contains(t, content, "text/plain", "disabled rules must not fire")

	schema := content["text/plain"].(map[string]any)["schema"].(map[string]any)
	assert.Equal(t, "string", schema["type"])
}

func TestNormalizeScalarDocument(t *testing.T) {
	// Malformed inputs degrade to "leave unchanged", never an error.
	result, err := NormalizeWithOptions(WithDocument("not a document"))
	require.NoError(t, err)
	assert.Equal(t, "not a document", result.Document)
	assert.False(t, result.HasChanges())
}

func TestNormalizeNilDocument(t *testing.T) {
	result, err := NormalizeWithOptions(WithDocument(nil))
	require.NoError(t, err)
	assert.Nil(t, result.Document)
	assert.False(t, result.HasChanges())
}
