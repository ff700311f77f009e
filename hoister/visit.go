package hoister

import (
	"strconv"
	"strings"

	"github.com/erraggy/oasnorm/internal/jsontree"
)

// refPrefix is the registry location every symbolic reference points into.
const refPrefix = "#/components/schemas/"

// run carries the state of a single hoisting pass: the live registry map,
// the content-addressed dedup cache, and the used-name set. A run is
// constructed per document and never shared, so independent hoists cannot
// cross-contaminate.
type run struct {
	// schemas is the components.schemas registry the document will carry.
	schemas map[string]any
	// sigs maps a node's canonical content signature to the registry name
	// already assigned to an identical node.
	sigs map[string]string
	// used holds every registry name, seeded with pre-existing entries so
	// synthesized names never collide with user-authored ones.
	used map[string]bool

	records []Record
}

// newRun builds run state around an existing registry map. Pre-existing
// names seed the used-name set but not the dedup cache: a fresh inline
// duplicate of a user-authored schema gets its own entry.
func newRun(schemas map[string]any) *run {
	r := &run{
		schemas: schemas,
		sigs:    make(map[string]string),
		used:    make(map[string]bool, len(schemas)),
	}
	for name := range schemas {
		r.used[name] = true
	}
	return r
}

// refTo builds a symbolic reference node pointing at a registry entry.
func refTo(name string) map[string]any {
	return map[string]any{"$ref": refPrefix + name}
}

// objectLike reports whether a schema node structurally defines an object:
// it declares type "object", has a non-empty properties map, or has an
// additionalProperties value that is itself an object (not a reference).
func objectLike(obj map[string]any) bool {
	if obj["type"] == "object" {
		return true
	}
	if props := jsontree.AsObject(obj["properties"]); len(props) > 0 {
		return true
	}
	if ap := jsontree.AsObject(obj["additionalProperties"]); ap != nil {
		if _, isRef := ap["$ref"]; !isRef {
			return true
		}
	}
	return false
}

// visit recursively rewrites every schema-bearing position under node, then
// decides whether node itself should be lifted into the registry. Non-object
// nodes and nodes already carrying a $ref are returned unchanged; references
// are opaque leaves with no further descent.
func (r *run) visit(node any, namePath []string, canHoist bool) any {
	obj := jsontree.AsObject(node)
	if obj == nil {
		return node
	}
	if _, isRef := obj["$ref"]; isRef {
		return node
	}

	if items := obj["items"]; items != nil {
		obj["items"] = r.visit(items, extend(namePath, "items"), true)
	}
	for _, kw := range []string{"anyOf", "oneOf", "allOf"} {
		branches := jsontree.AsArray(obj[kw])
		for i, branch := range branches {
			branches[i] = r.visit(branch, extend(namePath, kw, strconv.Itoa(i)), true)
		}
	}
	if props := jsontree.AsObject(obj["properties"]); props != nil {
		// The properties keyword contributes no name fragment; the property
		// name alone extends the path.
		for _, name := range jsontree.SortedKeys(props) {
			props[name] = r.visit(props[name], extend(namePath, name), true)
		}
	}
	if ap := jsontree.AsObject(obj["additionalProperties"]); ap != nil {
		obj["additionalProperties"] = r.visit(ap, extend(namePath, "additionalProperties"), true)
	}

	if !canHoist || !objectLike(obj) {
		return obj
	}
	return r.hoistNode(obj, namePath)
}

// hoistNode lifts an object-like node into the registry and returns a
// reference to it. Structurally identical nodes anywhere in the document
// collapse to one registry entry via the content-addressed cache.
func (r *run) hoistNode(obj map[string]any, namePath []string) map[string]any {
	sig := jsontree.Signature(obj)
	if name, seen := r.sigs[sig]; seen {
		r.records = append(r.records, Record{
			Name:         name,
			Path:         strings.Join(namePath, "."),
			Deduplicated: true,
		})
		return refTo(name)
	}

	name := uniqueName(synthesizeName(namePath), r.used)
	// Store an independent copy so later mutation of the tree cannot alias
	// the registry entry.
	r.schemas[name] = jsontree.DeepCopy(obj)
	r.sigs[sig] = name
	r.records = append(r.records, Record{
		Name: name,
		Path: strings.Join(namePath, "."),
	})
	return refTo(name)
}

// extend returns a new name path with segs appended. The backing array is
// always copied so sibling recursions never alias each other's paths.
func extend(namePath []string, segs ...string) []string {
	next := make([]string, 0, len(namePath)+len(segs))
	next = append(next, namePath...)
	return append(next, segs...)
}
