package normalizer

import (
	"github.com/erraggy/oasnorm/internal/jsontree"
)

// ChangeType identifies the category of change applied
type ChangeType string

const (
	// ChangeTypeMediaTypeRemoved indicates a vendor media-type entry was removed
	ChangeTypeMediaTypeRemoved ChangeType = "media-type-removed"
	// ChangeTypeConstToEnum indicates a const keyword was rewritten as an enum
	ChangeTypeConstToEnum ChangeType = "const-to-enum"
	// ChangeTypeStatusDescription indicates a response description was injected
	ChangeTypeStatusDescription ChangeType = "status-description"
	// ChangeTypeNullType indicates a nonstandard "null" type tag was rewritten
	ChangeTypeNullType ChangeType = "null-type"
	// ChangeTypeAnyOfCollapsed indicates an anyOf union was collapsed
	ChangeTypeAnyOfCollapsed ChangeType = "anyof-collapsed"
)

// Rule rewrites a single object property identified by Key.
//
// Convert computes the replacement value for the property itself; reporting
// ok=false deletes the key from the enclosing object. Append computes extra
// properties that are merged into the enclosing object, independent of
// whether the key survives. Both functions are pure and total: malformed
// values degrade to "leave unchanged" rather than erroring.
type Rule struct {
	// Key is the object property name this rule fires on.
	Key string
	// Type categorizes changes produced by this rule.
	Type ChangeType
	// Convert computes the replacement value. ok=false deletes the key.
	Convert func(value any) (replacement any, ok bool)
	// Append computes sibling properties merged into the enclosing object.
	// A nil function or nil return means nothing to merge.
	Append func(value any) map[string]any
}

// statusDescriptions are the fixed human-readable descriptions injected for
// status-code response objects that generators emit without one.
var statusDescriptions = map[string]string{
	"200": "成功回應",
	"201": "已建立",
	"400": "請求錯誤",
	"401": "未授權",
	"500": "伺服器錯誤",
}

// defaultRules builds the standard rule set, keyed by property name so that
// lookup is a map access rather than a table scan. At most one rule ever
// fires per key.
func defaultRules() map[string]Rule {
	rules := []Rule{
		multipartFormDataRule(),
		textPlainRule(),
		applicationJSONRule(),
		constRule(),
		typeRule(),
		anyOfRule(),
	}
	for code, desc := range statusDescriptions {
		rules = append(rules, statusRule(code, desc))
	}

	byKey := make(map[string]Rule, len(rules))
	for _, r := range rules {
		byKey[r.Key] = r
	}
	return byKey
}

// RuleKeys returns the property names the default rule set fires on.
func RuleKeys() []string {
	keys := make([]string, 0, len(defaultRules()))
	for k := range defaultRules() {
		keys = append(keys, k)
	}
	return keys
}

// hasFileProperty reports whether a media-type object declares a "file"
// property under schema.properties.
func hasFileProperty(mediaType any) bool {
	mt := jsontree.AsObject(mediaType)
	if mt == nil {
		return false
	}
	schema := jsontree.AsObject(mt["schema"])
	if schema == nil {
		return false
	}
	props := jsontree.AsObject(schema["properties"])
	if props == nil {
		return false
	}
	_, ok := props["file"]
	return ok
}

// multipartFormDataRule keeps a multipart/form-data media type only when it
// actually describes a file upload; generators emit it for every operation.
func multipartFormDataRule() Rule {
	return Rule{
		Key:  "multipart/form-data",
		Type: ChangeTypeMediaTypeRemoved,
		Convert: func(value any) (any, bool) {
			if hasFileProperty(value) {
				return value, true
			}
			return nil, false
		},
	}
}

// textPlainRule removes text/plain media types unconditionally.
func textPlainRule() Rule {
	return Rule{
		Key:  "text/plain",
		Type: ChangeTypeMediaTypeRemoved,
		Convert: func(value any) (any, bool) {
			return nil, false
		},
	}
}

// applicationJSONRule removes application/json media types that describe file
// uploads; those belong under multipart/form-data.
func applicationJSONRule() Rule {
	return Rule{
		Key:  "application/json",
		Type: ChangeTypeMediaTypeRemoved,
		Convert: func(value any) (any, bool) {
			if hasFileProperty(value) {
				return nil, false
			}
			return value, true
		},
	}
}

// constRule rewrites the JSON Schema const keyword as a single-value enum,
// which downstream OAS 3.0 tooling understands.
func constRule() Rule {
	return Rule{
		Key:  "const",
		Type: ChangeTypeConstToEnum,
		Convert: func(value any) (any, bool) {
			return nil, false
		},
		Append: func(value any) map[string]any {
			return map[string]any{"enum": []any{value}}
		},
	}
}

// statusRule injects a fixed description into a status-code response object.
// The 200 rule additionally removes an errant items key that some generators
// leave behind.
func statusRule(code, description string) Rule {
	return Rule{
		Key:  code,
		Type: ChangeTypeStatusDescription,
		Convert: func(value any) (any, bool) {
			resp := jsontree.AsObject(value)
			if resp == nil {
				return value, true
			}
			resp["description"] = description
			if code == "200" {
				delete(resp, "items")
			}
			return resp, true
		},
	}
}

// typeRule rewrites the nonstandard type tag "null" as a string constrained
// to the literal "null".
func typeRule() Rule {
	return Rule{
		Key:  "type",
		Type: ChangeTypeNullType,
		Convert: func(value any) (any, bool) {
			if value == "null" {
				return "string", true
			}
			return value, true
		},
		Append: func(value any) map[string]any {
			if value == "null" {
				return map[string]any{"enum": []any{"null"}}
			}
			return nil
		},
	}
}

// anyOfCollapse identifies which collapse condition an anyOf union matches.
// Conditions are checked in declaration order; the first match wins.
type anyOfCollapse int

const (
	anyOfKeep anyOfCollapse = iota
	anyOfDate
	anyOfNullable
	anyOfSingle
	anyOfSharedType
	anyOfNumericString
)

// classifyAnyOf evaluates the collapse conditions against the union branches
// and returns the verdict plus the properties to merge into the enclosing
// schema when the anyOf is removed.
func classifyAnyOf(branches []any) (anyOfCollapse, map[string]any) {
	// (a) a branch declares the bogus type "Date": the union was a generated
	// stand-in for a timestamp.
	for _, b := range branches {
		if branch := jsontree.AsObject(b); branch != nil && branch["type"] == "Date" {
			return anyOfDate, map[string]any{"format": "date-time", "type": "string"}
		}
	}

	// (b) exactly two branches, one of them type "null": a nullable value.
	if len(branches) == 2 {
		left, right := jsontree.AsObject(branches[0]), jsontree.AsObject(branches[1])
		if left != nil && right != nil {
			if left["type"] == "null" && right["type"] != "null" {
				return anyOfNullable, nullableMerge(right)
			}
			if right["type"] == "null" && left["type"] != "null" {
				return anyOfNullable, nullableMerge(left)
			}
		}
	}

	// (c) a single branch: the union is redundant.
	if len(branches) == 1 {
		if sole := jsontree.AsObject(branches[0]); sole != nil {
			return anyOfSingle, sole
		}
	}

	// (d) every branch shares one non-null type: a discriminated union of
	// constants, representable as an enum.
	if shared, ok := sharedBranchType(branches); ok {
		merge := map[string]any{"type": shared}
		values := make([]any, 0, len(branches))
		for _, b := range branches {
			if branch := jsontree.AsObject(b); branch != nil {
				if c, present := branch["const"]; present {
					values = append(values, c)
				}
			}
		}
		merge["enum"] = values
		return anyOfSharedType, merge
	}

	// (e) a branch declares a numeric-format string: a stringly-typed number.
	for _, b := range branches {
		if branch := jsontree.AsObject(b); branch != nil &&
			branch["format"] == "numeric" && branch["type"] == "string" {
			return anyOfNumericString, map[string]any{"type": "number", "default": 0}
		}
	}

	return anyOfKeep, nil
}

// nullableMerge builds the properties merged for the nullable collapse. The
// type key is only carried when the non-null branch declares one.
func nullableMerge(branch map[string]any) map[string]any {
	merge := map[string]any{"nullable": true}
	if t, ok := branch["type"]; ok {
		merge["type"] = t
	}
	return merge
}

// sharedBranchType reports the single non-null type shared by every branch,
// if there is one. Requires at least one branch and every branch to be an
// object carrying the same string type.
func sharedBranchType(branches []any) (string, bool) {
	if len(branches) == 0 {
		return "", false
	}
	var shared string
	for i, b := range branches {
		branch := jsontree.AsObject(b)
		if branch == nil {
			return "", false
		}
		t, ok := branch["type"].(string)
		if !ok || t == "null" {
			return "", false
		}
		if i == 0 {
			shared = t
		} else if t != shared {
			return "", false
		}
	}
	return shared, true
}

// anyOfRule collapses anyOf unions that encode a simpler shape. A non-array
// value never matches any condition and passes through unmodified.
func anyOfRule() Rule {
	return Rule{
		Key:  "anyOf",
		Type: ChangeTypeAnyOfCollapsed,
		Convert: func(value any) (any, bool) {
			branches, ok := value.([]any)
			if !ok {
				return value, true
			}
			if verdict, _ := classifyAnyOf(branches); verdict != anyOfKeep {
				return nil, false
			}
			return value, true
		},
		Append: func(value any) map[string]any {
			branches, ok := value.([]any)
			if !ok {
				return nil
			}
			_, merge := classifyAnyOf(branches)
			return merge
		},
	}
}
