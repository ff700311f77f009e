package normalizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v4"
)

// mustParse unmarshals a YAML fixture into a generic document tree.
func mustParse(t *testing.T, doc string) map[string]any {
	t.Helper()
	var tree map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(doc), &tree))
	return tree
}

// =============================================================================
// Media-Type Rule Tests
// =============================================================================

func TestMultipartFormDataRetention(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		kept bool
	}{
		{
			name: "file upload is kept",
			doc: `
content:
  multipart/form-data:
    schema:
      properties:
        file:
          type: string
          format: binary
`,
			kept: true,
		},
		{
			name: "no file property is removed",
			doc: `
content:
  multipart/form-data:
    schema:
      properties:
        note:
          type: string
`,
			kept: false,
		},
		{
			name: "missing schema is removed",
			doc: `
content:
  multipart/form-data:
    example: hello
`,
			kept: false,
		},
		{
			name: "non-object value is removed",
			doc: `
content:
  multipart/form-data: nonsense
`,
			kept: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := mustParse(t, tt.doc)
			New().Apply(tree)

			content := tree["content"].(map[string]any)
			_, present := content["multipart/form-data"]
			assert.Equal(t, tt.kept, present)
		})
	}
}

func TestTextPlainAlwaysRemoved(t *testing.T) {
	tree := mustParse(t, `
content:
  text/plain:
    schema:
      type: string
  application/json:
    schema:
      type: string
`)
	New().Apply(tree)

	content := tree["content"].(map[string]any)
	assert.NotContains(t, content, "text/plain")
	assert.Contains(t, content, "application/json")
}

func TestApplicationJSONFileUploadRemoved(t *testing.T) {
	tree := mustParse(t, `
content:
  application/json:
    schema:
      properties:
        file:
          type: string
`)
	New().Apply(tree)

	content := tree["content"].(map[string]any)
	assert.NotContains(t, content, "application/json",
		"file uploads are not JSON")
}

// =============================================================================
// Const Rule Tests
// =============================================================================

func TestConstBecomesEnum(t *testing.T) {
	tree := mustParse(t, `
schema:
  type: string
  const: active
`)
	New().Apply(tree)

	schema := tree["schema"].(map[string]any)
	assert.NotContains(t, schema, "const")
	assert.Equal(t, []any{"active"}, schema["enum"])
	assert.Equal(t, "string", schema["type"])
}

// =============================================================================
// Status Description Tests
// =============================================================================

func TestStatusDescriptionInjection(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"200", "成功回應"},
		{"201", "已建立"},
		{"400", "請求錯誤"},
		{"401", "未授權"},
		{"500", "伺服器錯誤"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			tree := map[string]any{
				"responses": map[string]any{
					tt.code: map[string]any{
						"content": map[string]any{},
					},
				},
			}
			New().Apply(tree)

			resp := tree["responses"].(map[string]any)[tt.code].(map[string]any)
			assert.Equal(t, tt.want, resp["description"])
			assert.Contains(t, resp, "content")
		})
	}
}

func TestStatusDescriptionOverwrites(t *testing.T) {
	tree := map[string]any{
		"responses": map[string]any{
			"200": map[string]any{"description": "OK"},
		},
	}
	New().Apply(tree)

	resp := tree["responses"].(map[string]any)["200"].(map[string]any)
	assert.Equal(t, "成功回應", resp["description"])
}

func TestStatus200RemovesErrantItems(t *testing.T) {
	tree := map[string]any{
		"responses": map[string]any{
			"200": map[string]any{
				"items":   map[string]any{"type": "string"},
				"content": map[string]any{},
			},
			"201": map[string]any{
				"items": map[string]any{"type": "string"},
			},
		},
	}
	New().Apply(tree)

	responses := tree["responses"].(map[string]any)
	ok := responses["200"].(map[string]any)
	assert.NotContains(t, ok, "items")

	// Only the 200 rule strips items.
	created := responses["201"].(map[string]any)
	assert.Contains(t, created, "items")
}

// =============================================================================
// Type Rule Tests
// =============================================================================

func TestNullTypeRewritten(t *testing.T) {
	tree := mustParse(t, `
schema:
  type: "null"
`)
	New().Apply(tree)

	schema := tree["schema"].(map[string]any)
	assert.Equal(t, "string", schema["type"])
	assert.Equal(t, []any{"null"}, schema["enum"])
}

func TestNonNullTypePassesThrough(t *testing.T) {
	tree := mustParse(t, `
schema:
  type: integer
`)
	New().Apply(tree)

	schema := tree["schema"].(map[string]any)
	assert.Equal(t, "integer", schema["type"])
	assert.NotContains(t, schema, "enum")
}

// =============================================================================
// AnyOf Rule Tests
// =============================================================================

func TestAnyOfDateCollapse(t *testing.T) {
	tree := mustParse(t, `
schema:
  anyOf:
    - type: Date
    - type: string
`)
	New().Apply(tree)

	schema := tree["schema"].(map[string]any)
	assert.NotContains(t, schema, "anyOf")
	assert.Equal(t, "string", schema["type"])
	assert.Equal(t, "date-time", schema["format"])
}

func TestAnyOfNullCollapse(t *testing.T) {
	tree := mustParse(t, `
schema:
  anyOf:
    - type: string
    - type: "null"
`)
	New().Apply(tree)

	schema := tree["schema"].(map[string]any)
	assert.NotContains(t, schema, "anyOf")
	assert.Equal(t, "string", schema["type"])
	assert.Equal(t, true, schema["nullable"])
}

func TestAnyOfSingleBranchCollapse(t *testing.T) {
	tree := mustParse(t, `
schema:
  anyOf:
    - type: object
      properties:
        id:
          type: integer
`)
	New().Apply(tree)

	schema := tree["schema"].(map[string]any)
	assert.NotContains(t, schema, "anyOf")
	assert.Equal(t, "object", schema["type"])
	props := schema["properties"].(map[string]any)
	assert.Contains(t, props, "id")
}

func TestAnyOfConstEnumCollapse(t *testing.T) {
	tree := mustParse(t, `
schema:
  anyOf:
    - type: string
      const: red
    - type: string
      const: green
    - type: string
      const: blue
`)
	New().Apply(tree)

	schema := tree["schema"].(map[string]any)
	assert.NotContains(t, schema, "anyOf")
	assert.Equal(t, "string", schema["type"])
	assert.Equal(t, []any{"red", "green", "blue"}, schema["enum"])
}

func TestAnyOfNumericStringCollapse(t *testing.T) {
	tree := mustParse(t, `
schema:
  anyOf:
    - type: string
      format: numeric
    - type: integer
`)
	New().Apply(tree)

	schema := tree["schema"].(map[string]any)
	assert.NotContains(t, schema, "anyOf")
	assert.Equal(t, "number", schema["type"])
	assert.Equal(t, 0, schema["default"])
}

func TestAnyOfPrecedenceDateBeforeNullable(t *testing.T) {
	// Two branches, one null, but a Date branch: the date condition is
	// listed first and wins.
	tree := mustParse(t, `
schema:
  anyOf:
    - type: Date
    - type: "null"
`)
	New().Apply(tree)

	schema := tree["schema"].(map[string]any)
	assert.Equal(t, "date-time", schema["format"])
	assert.Equal(t, "string", schema["type"])
	assert.NotContains(t, schema, "nullable")
}

func TestAnyOfUnmatchedKept(t *testing.T) {
	tree := mustParse(t, `
schema:
  anyOf:
    - type: string
    - type: integer
    - type: boolean
`)
	New().Apply(tree)

	schema := tree["schema"].(map[string]any)
	require.Contains(t, schema, "anyOf")
	assert.Len(t, schema["anyOf"], 3)
}

func TestAnyOfNonArrayPassesThrough(t *testing.T) {
	tree := map[string]any{
		"schema": map[string]any{
			"anyOf": "malformed",
		},
	}
	New().Apply(tree)

	schema := tree["schema"].(map[string]any)
	assert.Equal(t, "malformed", schema["anyOf"],
		"a non-sequence anyOf matches no condition and is not deleted")
}

func TestRuleKeys(t *testing.T) {
	keys := RuleKeys()
	assert.Contains(t, keys, "anyOf")
	assert.Contains(t, keys, "type")
	assert.Contains(t, keys, "const")
	assert.Contains(t, keys, "200")
	assert.Contains(t, keys, "multipart/form-data")
	assert.Len(t, keys, 11)
}
