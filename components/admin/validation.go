package admin

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// RowValidator checks a raw procedure response before it is decoded.
type RowValidator interface {
	Validate(procedure string, payload json.RawMessage) error
}

// SchemaValidator compiles one JSON schema per catalogue procedure and validates
// responses against it. Compiled schemas are cached.
type SchemaValidator struct {
	mu       sync.RWMutex
	compiled map[string]*jsonschema.Schema
}

// NewSchemaValidator builds a validator backed by jsonschema v5.
func NewSchemaValidator() *SchemaValidator {
	return &SchemaValidator{
		compiled: make(map[string]*jsonschema.Schema),
	}
}

// Validate returns a *MalformedResponseError when the payload is not null or an
// array of rows matching the procedure's shape.
func (v *SchemaValidator) Validate(procedure string, payload json.RawMessage) error {
	if isEmptyPayload(payload) {
		return nil
	}
	proc, ok := LookupProcedure(procedure)
	if !ok {
		return &UnknownProcedureError{Name: procedure}
	}
	schema, err := v.schemaFor(proc)
	if err != nil {
		return err
	}
	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return &MalformedResponseError{Procedure: procedure, Err: err}
	}
	if err := schema.Validate(doc); err != nil {
		return &MalformedResponseError{Procedure: procedure, Err: err}
	}
	return nil
}

func (v *SchemaValidator) schemaFor(proc Procedure) (*jsonschema.Schema, error) {
	v.mu.RLock()
	schema, ok := v.compiled[proc.Name]
	v.mu.RUnlock()
	if ok {
		return schema, nil
	}
	data, err := json.Marshal(rowSchema(proc))
	if err != nil {
		return nil, fmt.Errorf("admin: marshal schema %s: %w", proc.Name, err)
	}
	compiler := jsonschema.NewCompiler()
	name := proc.Name + ".json"
	if err := compiler.AddResource(name, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("admin: load schema %s: %w", proc.Name, err)
	}
	compiled, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("admin: compile schema %s: %w", proc.Name, err)
	}
	v.mu.Lock()
	v.compiled[proc.Name] = compiled
	v.mu.Unlock()
	return compiled, nil
}

const numericPattern = `^\s*-?[0-9]+(\.[0-9]+)?\s*$`

// rowSchema derives the JSON schema for a procedure from its field specs. Numeric
// columns accept numeric strings since bigint/numeric aggregates arrive quoted.
func rowSchema(proc Procedure) map[string]any {
	props := make(map[string]any, len(proc.fields))
	required := make([]string, 0, len(proc.fields))
	for _, f := range proc.fields {
		props[f.Name] = fieldSchema(f.Kind)
		if f.Required {
			required = append(required, f.Name)
		}
	}
	item := map[string]any{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		item["required"] = required
	}
	return map[string]any{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type":    []string{"array", "null"},
		"items":   item,
	}
}

func fieldSchema(kind fieldKind) map[string]any {
	switch kind {
	case kindInteger, kindNumber:
		return map[string]any{
			"type":    []string{"number", "string", "null"},
			"pattern": numericPattern,
		}
	case kindBool:
		return map[string]any{"type": []string{"boolean", "null"}}
	case kindScalar:
		return map[string]any{"type": []string{"string", "number", "boolean", "null"}}
	default:
		return map[string]any{"type": []string{"string", "null"}}
	}
}

func isEmptyPayload(payload json.RawMessage) bool {
	trimmed := bytes.TrimSpace(payload)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
