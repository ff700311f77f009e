// Package hoister extracts inline object schemas from an OpenAPI document
// into a flat, named, de-duplicated components.schemas registry, replacing
// each occurrence with a $ref.
//
// The hoister walks the document's operational sections (paths and reusable
// components) and visits every schema-bearing position: operation parameters,
// request-body media schemas, response media and header schemas, and the
// bodies of pre-existing reusable definitions. An object-like node (one that
// declares type "object", a non-empty properties map, or an object-valued
// additionalProperties) is lifted into the registry and replaced by a
// symbolic reference. Structurally identical schemas anywhere in the document
// collapse to a single registry entry via a content-addressed cache.
//
// Registry names are synthesized from the position's name path (operation
// path, HTTP method, section keyword, status code, media type, property
// name), rendered to capitalized word fragments and joined in traversal
// order. Collisions with user-authored names or earlier synthesized names are
// resolved with an incrementing numeric suffix.
//
// # Quick Start
//
//	result, err := hoister.HoistWithOptions(
//		hoister.WithDocument(doc),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("Hoisted %d schema(s), %d new registry entries\n",
//		result.HoistCount, result.NewEntries)
//
// The document is rewritten in place and also returned; callers must treat
// the passed-in tree as consumed. Nodes already carrying a $ref are opaque
// leaves, and malformed structural shapes pass through unmodified.
//
// # Related Packages
//
//   - [github.com/erraggy/oasnorm/normalizer] - Fix generator quirks before
//     hoisting; the normalizer's output document is this package's input
package hoister
