package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 64 << 10

// Schema is a named JSON Schema for a request body.
type Schema struct {
	Name       string
	Definition map[string]any
}

var startGameSchema = &Schema{
	Name: "start-game",
	Definition: map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"required":             []any{"name", "difficulty"},
		"properties": map[string]any{
			"name": map[string]any{
				"type":      "string",
				"minLength": 1,
				"maxLength": 100,
				"pattern":   `\S`,
			},
			"difficulty": map[string]any{
				"type":    "integer",
				"minimum": 1,
				"maximum": 4,
			},
		},
	},
}

var submitAnswerSchema = &Schema{
	Name: "submit-answer",
	Definition: map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"required":             []any{"answer"},
		"properties": map[string]any{
			"answer": map[string]any{
				"type":    []any{"number", "string"},
				"pattern": `^\s*-?(\d+(\.\d*)?|\.\d+)\s*$`,
			},
		},
	},
}

// schemaCache caches compiled JSON schemas by name.
var schemaCache sync.Map // map[string]*jsonschema.Schema

// bodyError is a request body that could not be decoded or failed
// validation.
type bodyError struct {
	msg string
}

func (e *bodyError) Error() string { return e.msg }

// decodeBody reads the request body, validates it against schema, and
// decodes it into dst.
func decodeBody(w http.ResponseWriter, r *http.Request, schema *Schema, dst any) error {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return &bodyError{msg: "request body too large"}
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return &bodyError{msg: "request body must be valid JSON"}
	}

	compiled, err := getCompiledSchema(schema)
	if err != nil {
		return fmt.Errorf("compile schema %q: %w", schema.Name, err)
	}
	if err := compiled.Validate(parsed); err != nil {
		return &bodyError{msg: validationMessage(err)}
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		return &bodyError{msg: err.Error()}
	}
	return nil
}

// validationMessage flattens a schema validation error into one line.
func validationMessage(err error) string {
	var parts []string
	for _, line := range strings.Split(err.Error(), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "jsonschema validation failed") {
			continue
		}
		parts = append(parts, strings.TrimPrefix(line, "- "))
	}
	if len(parts) == 0 {
		return "invalid request body"
	}
	return "invalid request body: " + strings.Join(parts, "; ")
}

// getCompiledSchema returns a cached compiled schema or compiles and caches it.
func getCompiledSchema(schema *Schema) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(schema.Name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The compiler wants a generic JSON value, so round-trip the Go map.
	defBytes, err := json.Marshal(schema.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	schemaURL := fmt.Sprintf("schema://%s.json", schema.Name)
	if err := c.AddResource(schemaURL, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}

	compiled, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	schemaCache.Store(schema.Name, compiled)
	return compiled, nil
}
