package jsontree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsObject(t *testing.T) {
	assert.True(t, IsObject(map[string]any{}))
	assert.False(t, IsObject([]any{}))
	assert.False(t, IsObject("string"))
	assert.False(t, IsObject(nil))
}

func TestIsArray(t *testing.T) {
	assert.True(t, IsArray([]any{}))
	assert.False(t, IsArray(map[string]any{}))
	assert.False(t, IsArray(42))
	assert.False(t, IsArray(nil))
}

func TestAsObject(t *testing.T) {
	m := map[string]any{"a": 1}
	assert.Equal(t, m, AsObject(m))
	assert.Nil(t, AsObject("not a map"))
	assert.Nil(t, AsObject(nil))
}

func TestDeepCopy(t *testing.T) {
	original := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"tags": []any{"a", "b"},
		},
	}

	cp, ok := DeepCopy(original).(map[string]any)
	require.True(t, ok)
	assert.Equal(t, original, cp)

	// Mutating the copy must not alias the original.
	cp["type"] = "string"
	props := cp["properties"].(map[string]any)
	props["tags"].([]any)[0] = "mutated"

	assert.Equal(t, "object", original["type"])
	assert.Equal(t, "a", original["properties"].(map[string]any)["tags"].([]any)[0])
}

func TestSignatureKeyOrderIndependent(t *testing.T) {
	// Two maps built in different insertion orders produce the same signature.
	left := map[string]any{"type": "object", "properties": map[string]any{"id": map[string]any{"type": "string"}}}
	right := map[string]any{"properties": map[string]any{"id": map[string]any{"type": "string"}}, "type": "object"}

	assert.Equal(t, Signature(left), Signature(right))
}

func TestSignatureDistinguishesValues(t *testing.T) {
	tests := []struct {
		name  string
		left  any
		right any
	}{
		{"different type value", map[string]any{"type": "object"}, map[string]any{"type": "string"}},
		{"string vs number", "1", 1},
		{"array order matters", []any{"a", "b"}, []any{"b", "a"}},
		{"nested difference", map[string]any{"a": map[string]any{"b": true}}, map[string]any{"a": map[string]any{"b": false}}},
		{"null vs absent", map[string]any{"a": nil}, map[string]any{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotEqual(t, Signature(tt.left), Signature(tt.right))
		})
	}
}

func TestSignatureScalars(t *testing.T) {
	assert.Equal(t, "null", Signature(nil))
	assert.Equal(t, `"hi"`, Signature("hi"))
	assert.Equal(t, "true", Signature(true))
	assert.Equal(t, "42", Signature(42))
	assert.Equal(t, "1.5", Signature(1.5))
}
