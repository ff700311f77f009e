package normalizer

import (
	"fmt"
	"sort"

	"github.com/erraggy/oasnorm/internal/jsontree"
)

// Change represents a single change applied to the document
type Change struct {
	// Type identifies the category of change
	Type ChangeType
	// Path is the JSON path to the changed location (e.g., "paths./users.get.responses.200")
	Path string
	// Description is a human-readable description of the change
	Description string
	// Before is the state before the change
	Before any
	// After is the value that replaced it (nil if the key was deleted)
	After any
}

// NormalizeResult contains the results of a normalize operation
type NormalizeResult struct {
	// Document is the normalized document tree. It is the same tree that was
	// passed in: the normalizer rewrites in place and the input must be
	// treated as consumed.
	Document any
	// Changes contains all changes applied
	Changes []Change
	// ChangeCount is the total number of changes applied
	ChangeCount int
	// Success is true if normalizing completed without errors
	Success bool
}

// HasChanges returns true if any changes were applied
func (r *NormalizeResult) HasChanges() bool {
	return r.ChangeCount > 0
}

// Normalizer applies the rule table to a document tree
type Normalizer struct {
	// EnabledRules specifies which rule keys to apply.
	// If nil or empty, all rules are enabled.
	EnabledRules []string

	rules map[string]Rule
}

// New creates a new Normalizer instance with the default rule set
func New() *Normalizer {
	return &Normalizer{
		EnabledRules: nil, // all rules enabled
		rules:        defaultRules(),
	}
}

// Option is a function that configures a normalize operation
type Option func(*normalizeConfig) error

// normalizeConfig holds configuration for a normalize operation
type normalizeConfig struct {
	document     any
	hasDocument  bool
	enabledRules []string
}

// NormalizeWithOptions normalizes a document using functional options.
//
// Example:
//
//	result, err := normalizer.NormalizeWithOptions(
//	    normalizer.WithDocument(doc),
//	)
func NormalizeWithOptions(opts ...Option) (*NormalizeResult, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("normalizer: invalid options: %w", err)
	}

	n := New()
	n.EnabledRules = cfg.enabledRules
	return n.Normalize(cfg.document)
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*normalizeConfig, error) {
	cfg := &normalizeConfig{}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if !cfg.hasDocument {
		return nil, fmt.Errorf("no input document specified: use WithDocument")
	}

	return cfg, nil
}

// WithDocument specifies the parsed document tree to normalize.
// The tree is rewritten in place; the caller must treat it as consumed.
func WithDocument(doc any) Option {
	return func(cfg *normalizeConfig) error {
		cfg.document = doc
		cfg.hasDocument = true
		return nil
	}
}

// WithEnabledRules specifies which rule keys to apply
func WithEnabledRules(keys ...string) Option {
	return func(cfg *normalizeConfig) error {
		cfg.enabledRules = keys
		return nil
	}
}

// Normalize applies the rule table to an entire document tree and returns
// the result. The tree is rewritten in place and also returned via
// NormalizeResult.Document.
func (n *Normalizer) Normalize(doc any) (*NormalizeResult, error) {
	result := &NormalizeResult{
		Changes: make([]Change, 0),
		Success: true,
	}
	result.Document = n.apply(doc, "", result)
	result.ChangeCount = len(result.Changes)
	return result, nil
}

// Apply applies the rule table to a node and returns the rewritten node.
// It is the bare engine behind Normalize for callers that do not need
// change records.
func (n *Normalizer) Apply(node any) any {
	return n.apply(node, "", nil)
}

// isRuleEnabled checks if a rule key is enabled
func (n *Normalizer) isRuleEnabled(key string) bool {
	if len(n.EnabledRules) == 0 {
		return true // all rules enabled by default
	}
	for _, k := range n.EnabledRules {
		if k == key {
			return true
		}
	}
	return false
}

// apply is the depth-first fold over the document tree. Rules fire at the
// current level before recursion, and a rule's replacement value is itself
// re-walked so rule output can contain further matches.
func (n *Normalizer) apply(node any, path string, result *NormalizeResult) any {
	switch t := node.(type) {
	case []any:
		// No rule ever matches a sequence itself, only keys of objects.
		for i, elem := range t {
			t[i] = n.apply(elem, fmt.Sprintf("%s[%d]", path, i), result)
		}
		return t
	case map[string]any:
		n.applyObject(t, path, result)
		return t
	default:
		return node
	}
}

// applyObject applies rules to every own key of an object, then recurses.
// Keys are visited in sorted order so change records are deterministic.
// Properties merged by an Append are not themselves re-matched this pass.
func (n *Normalizer) applyObject(obj map[string]any, path string, result *NormalizeResult) {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		value := obj[k]
		childPath := joinPath(path, k)

		rule, found := n.rules[k]
		if !found || !n.isRuleEnabled(k) {
			// No rule: recurse into container values in place.
			switch value.(type) {
			case map[string]any, []any:
				obj[k] = n.apply(value, childPath, result)
			}
			continue
		}

		var before any
		if result != nil {
			before = jsontree.DeepCopy(value)
		}

		replacement, keep := rule.Convert(value)
		var extra map[string]any
		if rule.Append != nil {
			extra = rule.Append(value)
		}

		// Sibling-level merge happens regardless of whether the key survives.
		for ek, ev := range extra {
			obj[ek] = ev
		}

		// Record against the rule's own output, before recursion, so nested
		// rule hits are not re-attributed to this key.
		if result != nil {
			n.record(result, rule, childPath, k, before, replacement, keep, len(extra) > 0)
		}

		if keep {
			obj[k] = n.apply(replacement, childPath, result)
		} else {
			delete(obj, k)
		}
	}
}

// record appends a Change when the rule actually altered the tree. Rules that
// pass a value through untouched (and merge nothing) leave no record, which
// keeps repeated runs over canonical documents quiet.
func (n *Normalizer) record(result *NormalizeResult, rule Rule, path, key string, before, after any, kept, merged bool) {
	changed := merged || !kept
	if !changed {
		changed = jsontree.Signature(before) != jsontree.Signature(after)
	}
	if !changed {
		return
	}

	change := Change{
		Type:   rule.Type,
		Path:   path,
		Before: before,
	}
	if kept {
		change.After = after
		change.Description = fmt.Sprintf("Rewrote '%s'", key)
	} else {
		change.Description = fmt.Sprintf("Removed '%s'", key)
	}
	if merged {
		change.Description += " and merged sibling properties"
	}
	result.Changes = append(result.Changes, change)
}

// joinPath builds a dotted JSON path for change records.
func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}
