package hoister

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// keywordFragments maps structural keywords to fixed name fragments.
// The properties keyword contributes no fragment of its own; only the
// property name that follows it does, so it never appears as a segment.
var keywordFragments = map[string]string{
	"schema":  "Schema",
	"content": "Content",
	"items":   "Item",
}

// titleCaser capitalizes word-initial runes with proper Unicode handling,
// leaving the rest of each word untouched.
var titleCaser = cases.Title(language.English, cases.NoLower)

// synthesizeName renders the accumulated name path into a PascalCase
// registry name. Each segment becomes one or more capitalized word
// fragments: runs of non-alphanumeric characters act as word boundaries.
func synthesizeName(namePath []string) string {
	var sb strings.Builder
	for _, seg := range namePath {
		sb.WriteString(segmentFragment(seg))
	}
	if sb.Len() == 0 {
		return "Schema"
	}
	return sb.String()
}

// segmentFragment renders a single path segment to its name fragment.
func segmentFragment(seg string) string {
	if frag, ok := keywordFragments[seg]; ok {
		return frag
	}

	var sb strings.Builder
	sb.Grow(len(seg))
	capitalizeNext := true
	for _, r := range seg {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			capitalizeNext = true
			continue
		}
		if capitalizeNext {
			sb.WriteString(titleCaser.String(string(r)))
			capitalizeNext = false
		} else {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// uniqueName resolves base against the used-name set by appending an
// incrementing numeric suffix (Name, Name2, Name3, ...) until unique, then
// claims the result.
func uniqueName(base string, used map[string]bool) string {
	name := base
	for suffix := 2; used[name]; suffix++ {
		name = base + strconv.Itoa(suffix)
	}
	used[name] = true
	return name
}
