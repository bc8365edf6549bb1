package api

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/abhisek/bcdetect/internal/features"
)

const predictSchemaURL = "schema://predict-request.json"

// predictRequestSchema renders the JSON Schema for a predict request body.
// Every feature is an optional number bounded below by its minimum; absent
// features read as the empty sentinel and are reported as missing.
func predictRequestSchema(schema *features.Schema) map[string]any {
	props := make(map[string]any, schema.Len())
	for _, sp := range schema.Specs() {
		p := map[string]any{"type": "number"}
		if sp.Min != nil {
			p["minimum"] = *sp.Min
		}
		props[sp.Name] = p
	}

	return map[string]any{
		"type":                 "object",
		"required":             []string{"features"},
		"additionalProperties": false,
		"properties": map[string]any{
			"features": map[string]any{
				"type":                 "object",
				"additionalProperties": false,
				"properties":           props,
			},
		},
	}
}

// compileRequestSchema compiles the predict request schema for schema.
func compileRequestSchema(schema *features.Schema) (*jsonschema.Schema, error) {
	// The compiler wants a parsed JSON value, so round-trip through JSON.
	defBytes, err := json.Marshal(predictRequestSchema(schema))
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource(predictSchemaURL, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	compiled, err := c.Compile(predictSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}
	return compiled, nil
}
