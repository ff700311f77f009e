package mcpserver

import (
	"log/slog"
	"os"
	"strconv"
)

// serverConfig holds all configurable MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	// MaxInlineSize bounds inline document content, in bytes.
	MaxInlineSize int

	// ChangeDetailLimit caps the number of per-change records returned by
	// the normalize and canonicalize tools. Counts are always exact.
	ChangeDetailLimit int

	// HoistDetailLimit caps the number of per-hoist records returned by
	// the hoist and canonicalize tools. Counts are always exact.
	HoistDetailLimit int
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from OASNORM_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		MaxInlineSize:     envInt("OASNORM_MAX_INLINE_SIZE", 10<<20),
		ChangeDetailLimit: envInt("OASNORM_CHANGE_DETAIL_LIMIT", 100),
		HoistDetailLimit:  envInt("OASNORM_HOIST_DETAIL_LIMIT", 100),
	}
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return n
}
