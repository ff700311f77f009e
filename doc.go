// Package oasnorm provides tools for normalizing machine-generated OpenAPI
// Specification (OAS) documents into a canonical, portable shape.
//
// Generated OAS documents tend to carry dialect-specific quirks: nonstandard
// type tags, vendor content-type conventions, missing response descriptions,
// and ad-hoc encodings of discriminated unions. They also inline every object
// schema at its point of use, which makes the documents large, repetitive, and
// hostile to code generators. oasnorm fixes both problems.
//
// # Overview
//
// The library consists of two primary packages, independently usable and
// designed to be chained:
//
//   - normalizer: a rule-driven rewrite that fixes dialect-specific quirks
//     into a standards-compliant shape
//   - hoister: extracts every inline object schema into a flat, named,
//     de-duplicated components/schemas registry and replaces each occurrence
//     with a $ref
//
// Both packages operate on a generic document tree (nested map[string]any,
// []any, and scalars) as produced by YAML or JSON unmarshaling, and are
// tolerant of malformed input: unexpected shapes pass through unchanged
// rather than raising errors.
//
// # Installation
//
// Install the library using go get:
//
//	go get github.com/erraggy/oasnorm
//
// # Quick Start
//
// Normalize a parsed document:
//
//	import "github.com/erraggy/oasnorm/normalizer"
//
//	result, err := normalizer.NormalizeWithOptions(
//		normalizer.WithDocument(doc),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("Applied %d change(s)\n", result.ChangeCount)
//
// Hoist inline schemas:
//
//	import "github.com/erraggy/oasnorm/hoister"
//
//	result, err := hoister.HoistWithOptions(
//		hoister.WithDocument(doc),
//	)
//
// When both stages are used, the normalizer's output document is the
// hoister's input; the hoister does not re-apply any normalizer fixups.
//
// # Command Line
//
// The oasnorm CLI wraps both packages:
//
//	oasnorm normalize -o fixed.yaml api.yaml
//	oasnorm hoist -o hoisted.yaml fixed.yaml
//	oasnorm canon -o canonical.yaml api.yaml
package oasnorm
