package hoister

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSynthesizeName(t *testing.T) {
	tests := []struct {
		name     string
		namePath []string
		want     string
	}{
		{
			name:     "response media schema",
			namePath: []string{"/users", "get", "responses", "200", "content", "application/json", "schema"},
			want:     "UsersGetResponses200ContentApplicationJsonSchema",
		},
		{
			name:     "path template segments",
			namePath: []string{"/users/{id}", "patch", "requestBody", "content", "application/json", "schema"},
			want:     "UsersIdPatchRequestBodyContentApplicationJsonSchema",
		},
		{
			name:     "property name extends the parent path",
			namePath: []string{"/users", "get", "responses", "200", "content", "application/json", "schema", "address"},
			want:     "UsersGetResponses200ContentApplicationJsonSchemaAddress",
		},
		{
			name:     "items keyword maps to Item",
			namePath: []string{"/pets", "get", "responses", "200", "content", "application/json", "schema", "items"},
			want:     "PetsGetResponses200ContentApplicationJsonSchemaItem",
		},
		{
			name:     "union branch index",
			namePath: []string{"/pets", "post", "requestBody", "content", "application/json", "schema", "anyOf", "0"},
			want:     "PetsPostRequestBodyContentApplicationJsonSchemaAnyOf0",
		},
		{
			name:     "vendor media type",
			namePath: []string{"/export", "get", "responses", "200", "content", "application/vnd.ms-excel", "schema"},
			want:     "ExportGetResponses200ContentApplicationVndMsExcelSchema",
		},
		{
			name:     "parameter index",
			namePath: []string{"/search", "get", "parameters", "0", "schema"},
			want:     "SearchGetParameters0Schema",
		},
		{
			name:     "empty path falls back",
			namePath: nil,
			want:     "Schema",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, synthesizeName(tt.namePath))
		})
	}
}

func TestUniqueName(t *testing.T) {
	used := map[string]bool{"User": true, "User2": true}

	assert.Equal(t, "User3", uniqueName("User", used))
	assert.Equal(t, "User4", uniqueName("User", used))
	assert.Equal(t, "Pet", uniqueName("Pet", used))
	assert.Equal(t, "Pet2", uniqueName("Pet", used))
	assert.True(t, used["User3"], "resolved names are claimed")
}
