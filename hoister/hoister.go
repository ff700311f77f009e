package hoister

import (
	"fmt"
	"strconv"

	"github.com/erraggy/oasnorm/internal/jsontree"
)

// Record describes a single hoisted schema position
type Record struct {
	// Name is the registry name the position now references
	Name string
	// Path is the dotted name path of the position that was rewritten
	Path string
	// Deduplicated is true when the position reused an existing registry
	// entry instead of creating a new one
	Deduplicated bool
}

// HoistResult contains the results of a hoist operation
type HoistResult struct {
	// Document is the rewritten document tree. It is the same tree that was
	// passed in: the hoister rewrites in place and the input must be treated
	// as consumed.
	Document any
	// Hoisted contains one record per rewritten schema position
	Hoisted []Record
	// HoistCount is the total number of positions rewritten
	HoistCount int
	// NewEntries is the number of registry entries created
	NewEntries int
	// Deduplicated is the number of positions that reused an existing entry
	Deduplicated int
	// Success is true if hoisting completed without errors
	Success bool
}

// HasHoists returns true if any schema positions were rewritten
func (r *HoistResult) HasHoists() bool {
	return r.HoistCount > 0
}

// Hoister extracts inline object schemas into the components.schemas
// registry and replaces each occurrence with a $ref
type Hoister struct{}

// New creates a new Hoister instance
func New() *Hoister {
	return &Hoister{}
}

// Option is a function that configures a hoist operation
type Option func(*hoistConfig) error

// hoistConfig holds configuration for a hoist operation
type hoistConfig struct {
	document    any
	hasDocument bool
}

// HoistWithOptions hoists a document using functional options.
//
// Example:
//
//	result, err := hoister.HoistWithOptions(
//	    hoister.WithDocument(doc),
//	)
func HoistWithOptions(opts ...Option) (*HoistResult, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("hoister: invalid options: %w", err)
	}
	return New().Hoist(cfg.document)
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*hoistConfig, error) {
	cfg := &hoistConfig{}

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

// WithDocument specifies the parsed document tree to hoist.
// The tree is rewritten in place; the caller must treat it as consumed.
func WithDocument(doc any) Option {
	return func(cfg *hoistConfig) error {
		cfg.document = doc
		cfg.hasDocument = true
		return nil
	}
}

// Hoist walks the document's operational sections, lifts every eligible
// inline object schema into components.schemas, and replaces each occurrence
// with a $ref. The tree is rewritten in place and also returned via
// HoistResult.Document. Malformed structural shapes pass through unmodified:
// the hoister is a best-effort normalizer, not a validator.
func (h *Hoister) Hoist(doc any) (*HoistResult, error) {
	result := &HoistResult{
		Hoisted:  make([]Record, 0),
		Success:  true,
		Document: doc,
	}

	root := jsontree.AsObject(doc)
	if root == nil {
		return result, nil
	}

	schemas, ok := registryFor(root)
	if !ok {
		// components or components.schemas exists with the wrong shape;
		// leave the document alone.
		return result, nil
	}

	// Snapshot the user-authored registry names before hoisting begins so
	// the components pass does not revisit freshly created entries.
	preexisting := jsontree.SortedKeys(schemas)

	r := newRun(schemas)
	r.walkPaths(jsontree.AsObject(root["paths"]))
	r.walkComponents(jsontree.AsObject(root["components"]), preexisting)

	result.Hoisted = r.records
	result.HoistCount = len(r.records)
	for _, rec := range r.records {
		if rec.Deduplicated {
			result.Deduplicated++
		} else {
			result.NewEntries++
		}
	}
	return result, nil
}

// registryFor returns the components.schemas map, creating the containers
// when absent. ok is false when either container exists with a non-object
// shape.
func registryFor(root map[string]any) (map[string]any, bool) {
	components := jsontree.AsObject(root["components"])
	if components == nil {
		if _, present := root["components"]; present {
			return nil, false
		}
		components = make(map[string]any)
		root["components"] = components
	}

	schemas := jsontree.AsObject(components["schemas"])
	if schemas == nil {
		if _, present := components["schemas"]; present {
			return nil, false
		}
		schemas = make(map[string]any)
		components["schemas"] = schemas
	}
	return schemas, true
}

// walkPaths visits every schema-bearing position under the paths section:
// operation parameters, request-body media schemas, and response media and
// header schemas.
func (r *run) walkPaths(paths map[string]any) {
	for _, pathKey := range jsontree.SortedKeys(paths) {
		pathItem := jsontree.AsObject(paths[pathKey])
		for _, method := range jsontree.SortedKeys(pathItem) {
			op := jsontree.AsObject(pathItem[method])
			if op == nil {
				continue
			}
			base := []string{pathKey, method}
			r.walkParameters(jsontree.AsArray(op["parameters"]), base)
			r.walkContent(jsontree.AsObject(op["requestBody"]), extend(base, "requestBody"))
			r.walkResponses(jsontree.AsObject(op["responses"]), extend(base, "responses"))
		}
	}
}

// walkParameters visits the schema of each parameter in a parameter list.
func (r *run) walkParameters(params []any, base []string) {
	for i, p := range params {
		param := jsontree.AsObject(p)
		if param == nil {
			continue
		}
		if schema := param["schema"]; schema != nil {
			param["schema"] = r.visit(schema, extend(base, "parameters", strconv.Itoa(i), "schema"), true)
		}
	}
}

// walkContent visits the schema of every media type under an object's
// content map (request bodies and responses share this shape).
func (r *run) walkContent(owner map[string]any, base []string) {
	content := jsontree.AsObject(owner["content"])
	for _, mediaType := range jsontree.SortedKeys(content) {
		mt := jsontree.AsObject(content[mediaType])
		if mt == nil {
			continue
		}
		if schema := mt["schema"]; schema != nil {
			mt["schema"] = r.visit(schema, extend(base, "content", mediaType, "schema"), true)
		}
	}
}

// walkResponses visits media and header schemas of every response.
func (r *run) walkResponses(responses map[string]any, base []string) {
	for _, status := range jsontree.SortedKeys(responses) {
		resp := jsontree.AsObject(responses[status])
		if resp == nil {
			continue
		}
		statusBase := extend(base, status)
		r.walkContent(resp, statusBase)
		r.walkHeaders(jsontree.AsObject(resp["headers"]), statusBase)
	}
}

// walkHeaders visits the schema of each named header.
func (r *run) walkHeaders(headers map[string]any, base []string) {
	for _, name := range jsontree.SortedKeys(headers) {
		header := jsontree.AsObject(headers[name])
		if header == nil {
			continue
		}
		if schema := header["schema"]; schema != nil {
			header["schema"] = r.visit(schema, extend(base, "headers", name, "schema"), true)
		}
	}
}

// walkComponents rewrites the bodies of pre-existing reusable definitions.
// Top-level registry entries are rewritten internally but are never
// themselves replaced by a self-referential pointer, so they are the one
// position visited with hoisting disabled.
func (r *run) walkComponents(components map[string]any, preexisting []string) {
	if components == nil {
		return
	}

	schemas := jsontree.AsObject(components["schemas"])
	for _, name := range preexisting {
		schemas[name] = r.visit(schemas[name], []string{"components", "schemas", name}, false)
	}

	params := jsontree.AsObject(components["parameters"])
	for _, name := range jsontree.SortedKeys(params) {
		param := jsontree.AsObject(params[name])
		if param == nil {
			continue
		}
		if schema := param["schema"]; schema != nil {
			param["schema"] = r.visit(schema, []string{"components", "parameters", name, "schema"}, true)
		}
	}

	bodies := jsontree.AsObject(components["requestBodies"])
	for _, name := range jsontree.SortedKeys(bodies) {
		body := jsontree.AsObject(bodies[name])
		if body == nil {
			continue
		}
		r.walkContent(body, []string{"components", "requestBodies", name})
	}

	responses := jsontree.AsObject(components["responses"])
	for _, name := range jsontree.SortedKeys(responses) {
		resp := jsontree.AsObject(responses[name])
		if resp == nil {
			continue
		}
		base := []string{"components", "responses", name}
		r.walkContent(resp, base)
		r.walkHeaders(jsontree.AsObject(resp["headers"]), base)
	}

	headers := jsontree.AsObject(components["headers"])
	for _, name := range jsontree.SortedKeys(headers) {
		header := jsontree.AsObject(headers[name])
		if header == nil {
			continue
		}
		if schema := header["schema"]; schema != nil {
			header["schema"] = r.visit(schema, []string{"components", "headers", name, "schema"}, true)
		}
	}
}
