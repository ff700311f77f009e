package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestHandleNormalize_ErrorPaths tests error handling for the normalize command.
func TestHandleNormalize_ErrorPaths(t *testing.T) {
	t.Run("non-existent file", func(t *testing.T) {
		err := HandleNormalize([]string{"-q", "/nonexistent/path/to/file.yaml"})
		assert.Error(t, err)
	})

	t.Run("malformed YAML", func(t *testing.T) {
		tmpDir := t.TempDir()
		malformedFile := filepath.Join(tmpDir, "malformed.yaml")
		require.NoError(t, os.WriteFile(malformedFile, []byte("not: valid: yaml: [unclosed"), 0o644))
		err := HandleNormalize([]string{"-q", malformedFile})
		assert.Error(t, err)
	})

	t.Run("too many arguments", func(t *testing.T) {
		err := HandleNormalize([]string{"-q", "one.yaml", "two.yaml"})
		assert.Error(t, err)
	})

	t.Run("unwritable output path", func(t *testing.T) {
		tmpDir := t.TempDir()
		input := filepath.Join(tmpDir, "in.yaml")
		require.NoError(t, os.WriteFile(input, []byte("openapi: 3.1.0\n"), 0o644))
		err := HandleNormalize([]string{"-q", "-o", filepath.Join(tmpDir, "missing", "out.yaml"), input})
		assert.Error(t, err)
	})
}

// TestHandleHoist_ErrorPaths tests error handling for the hoist command.
func TestHandleHoist_ErrorPaths(t *testing.T) {
	t.Run("non-existent file", func(t *testing.T) {
		err := HandleHoist([]string{"-q", "/nonexistent/path/to/file.yaml"})
		assert.Error(t, err)
	})

	t.Run("invalid format flag", func(t *testing.T) {
		err := HandleHoist([]string{"--format", "toml", "input.yaml"})
		assert.Error(t, err)
	})
}

// TestHandleCanon_ErrorPaths tests error handling for the canon command.
func TestHandleCanon_ErrorPaths(t *testing.T) {
	t.Run("non-existent file", func(t *testing.T) {
		err := HandleCanon([]string{"-q", "/nonexistent/path/to/file.yaml"})
		assert.Error(t, err)
	})

	t.Run("malformed JSON", func(t *testing.T) {
		tmpDir := t.TempDir()
		malformedFile := filepath.Join(tmpDir, "malformed.json")
		require.NoError(t, os.WriteFile(malformedFile, []byte(`{"unclosed": `), 0o644))
		err := HandleCanon([]string{"-q", malformedFile})
		assert.Error(t, err)
	})
}
