// Package normalizer provides a rule-driven rewrite of generated OpenAPI
// documents into a standards-compliant shape.
//
// The normalizer walks a generic document tree (nested map[string]any, []any,
// and scalars). At every object key that matches a registered rule it replaces
// or deletes the value, optionally merges additional sibling keys into the
// enclosing object, and then recurses into whatever value remains. Rules are
// looked up in a map keyed by property name; at most one rule fires per key.
//
// # Quick Start
//
// Normalize a parsed document using functional options:
//
//	result, err := normalizer.NormalizeWithOptions(
//		normalizer.WithDocument(doc),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("Applied %d change(s)\n", result.ChangeCount)
//
// Or use a reusable Normalizer instance:
//
//	n := normalizer.New()
//	result1, _ := n.Normalize(doc1)
//	result2, _ := n.Normalize(doc2)
//
// The document is rewritten in place and also returned; callers must treat
// the passed-in tree as consumed.
//
// # Supported Rules
//
// The default rule set fixes the following generator quirks:
//
//   - multipart/form-data media types are kept only when the schema declares
//     a file property; otherwise the entry is removed
//   - text/plain media types are removed unconditionally
//   - application/json media types describing file uploads are removed
//   - const keywords become single-value enums on the enclosing schema
//   - status-code responses (200, 201, 400, 401, 500) get a fixed
//     human-readable description; 200 also loses an errant items key
//   - the nonstandard type tag "null" becomes type "string" with
//     enum ["null"]
//   - anyOf unions that encode a simpler shape (timestamp stand-ins,
//     nullable values, single branches, constant enums, numeric strings)
//     collapse into the enclosing schema
//
// Rules are total functions over arbitrary JSON values: malformed input
// degrades to "leave unchanged", never an error. Applying the normalizer to
// its own output is a no-op.
//
// # Related Packages
//
//   - [github.com/erraggy/oasnorm/hoister] - Hoist inline schemas into a
//     shared registry after normalizing
package normalizer
