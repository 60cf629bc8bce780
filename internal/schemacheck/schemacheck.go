// Package schemacheck compiles JSON Schema definitions once and validates
// raw JSON documents against them.
package schemacheck

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// cache holds compiled schemas by name.
var cache sync.Map // map[string]*jsonschema.Schema

// Compile returns the compiled schema registered under name, compiling def
// on first use. Names must be unique per definition.
func Compile(name string, def map[string]any) (*jsonschema.Schema, error) {
	if cached, ok := cache.Load(name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The compiler wants a decoded JSON value, not Go maps with typed slices.
	defBytes, err := json.Marshal(def)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var doc any
	if err := json.Unmarshal(defBytes, &doc); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	url := fmt.Sprintf("schema://%s.json", name)
	if err := c.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	actual, _ := cache.LoadOrStore(name, compiled)
	return actual.(*jsonschema.Schema), nil
}

// Validate decodes raw and validates it against the schema named name.
func Validate(name string, def map[string]any, raw []byte) error {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	compiled, err := Compile(name, def)
	if err != nil {
		return fmt.Errorf("compile schema %q: %w", name, err)
	}
	if err := compiled.Validate(doc); err != nil {
		return fmt.Errorf("schema %q: %w", name, err)
	}
	return nil
}
