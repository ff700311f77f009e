// Package jsontree provides shared utilities for working with generic JSON
// document trees (nested map[string]any, []any, and scalars) as produced by
// YAML or JSON unmarshaling.
package jsontree

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// IsObject reports whether v is a plain JSON object.
func IsObject(v any) bool {
	_, ok := v.(map[string]any)
	return ok
}

// IsArray reports whether v is a JSON array.
func IsArray(v any) bool {
	_, ok := v.([]any)
	return ok
}

// AsObject returns v as a map if it is a plain JSON object, or nil otherwise.
func AsObject(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

// AsArray returns v as a slice if it is a JSON array, or nil otherwise.
func AsArray(v any) []any {
	s, _ := v.([]any)
	return s
}

// SortedKeys returns the keys of a JSON object in sorted order, for
// deterministic traversal.
func SortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// DeepCopy returns a structurally independent copy of a JSON value.
// Objects and arrays are copied recursively; scalars are returned as-is
// since they are immutable.
func DeepCopy(v any) any {
	switch t := v.(type) {
	case map[string]any:
		cp := make(map[string]any, len(t))
		for k, val := range t {
			cp[k] = DeepCopy(val)
		}
		return cp
	case []any:
		cp := make([]any, len(t))
		for i, val := range t {
			cp[i] = DeepCopy(val)
		}
		return cp
	default:
		return v
	}
}

// Signature computes a canonical serialization of a JSON value, suitable as a
// content-addressed cache key. Object keys are sorted so that two maps with
// identical contents produce identical signatures regardless of internal map
// ordering. Unlike a hash, the signature is exact: distinct values never
// collide.
func Signature(v any) string {
	var sb strings.Builder
	writeSignature(&sb, v)
	return sb.String()
}

// writeSignature recursively serializes v into sb in canonical form.
func writeSignature(sb *strings.Builder, v any) {
	switch t := v.(type) {
	case nil:
		sb.WriteString("null")
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		sb.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(strconv.Quote(k))
			sb.WriteByte(':')
			writeSignature(sb, t[k])
		}
		sb.WriteByte('}')
	case []any:
		sb.WriteByte('[')
		for i, val := range t {
			if i > 0 {
				sb.WriteByte(',')
			}
			writeSignature(sb, val)
		}
		sb.WriteByte(']')
	case string:
		sb.WriteString(strconv.Quote(t))
	case bool:
		sb.WriteString(strconv.FormatBool(t))
	case int:
		sb.WriteString(strconv.Itoa(t))
	case int64:
		sb.WriteString(strconv.FormatInt(t, 10))
	case float64:
		sb.WriteString(strconv.FormatFloat(t, 'g', -1, 64))
	default:
		// Unknown scalar kinds (e.g. yaml timestamps) fall back to fmt.
		fmt.Fprintf(sb, "%v", t)
	}
}
