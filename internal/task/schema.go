package task

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/nibzard/task-cli/internal/utils"
)

const schemaURL = "task-cli://tasks.schema.json"

// Schema is the JSON Schema for the task store.
const Schema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "title": "task-cli task store",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "description", "status", "created_at", "updated_at"],
    "additionalProperties": false,
    "properties": {
      "id": {"type": "integer", "minimum": 1},
      "description": {"type": "string"},
      "status": {"enum": ["To do", "In Progress", "Done"]},
      "created_at": {"type": "string", "format": "date-time"},
      "updated_at": {"type": "string", "format": "date-time"}
    }
  }
}`

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

func storeSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		compiler.AssertFormat = true
		if err := compiler.AddResource(schemaURL, strings.NewReader(Schema)); err != nil {
			compileErr = fmt.Errorf("add schema resource: %w", err)
			return
		}
		compiledSchema, compileErr = compiler.Compile(schemaURL)
	})
	return compiledSchema, compileErr
}

// ValidationError represents a validation error with context.
type ValidationError struct {
	Path string // JSON path to the error location
	Err  error  // Underlying error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ValidationResult contains validation results.
type ValidationResult struct {
	Valid  bool
	Errors []error
}

// Err returns nil for a valid document and otherwise a *ParseError carrying
// every collected error.
func (r *ValidationResult) Err() error {
	if r.Valid {
		return nil
	}
	if len(r.Errors) == 1 {
		var pe *ParseError
		if errors.As(r.Errors[0], &pe) {
			return pe
		}
	}
	return &ParseError{Err: errors.Join(r.Errors...)}
}

// ValidateDocument checks raw store contents against Schema and the
// unique-id invariant.
func ValidateDocument(data []byte) *ValidationResult {
	result := &ValidationResult{Valid: true}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, &ParseError{Err: err})
		return result
	}

	schema, err := storeSchema()
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, err)
		return result
	}

	if err := schema.Validate(doc); err != nil {
		result.Valid = false
		var ve *jsonschema.ValidationError
		if errors.As(err, &ve) {
			collectSchemaErrors(result, ve)
		} else {
			result.Errors = append(result.Errors, err)
		}
		return result
	}

	if items, ok := doc.([]any); ok {
		checkUniqueIDs(result, items)
	}
	return result
}

func collectSchemaErrors(result *ValidationResult, err *jsonschema.ValidationError) {
	if len(err.Causes) == 0 {
		result.Errors = append(result.Errors, &ValidationError{
			Path: utils.JSONPointerToPath(err.InstanceLocation),
			Err:  errors.New(err.Message),
		})
		return
	}
	for _, cause := range err.Causes {
		collectSchemaErrors(result, cause)
	}
}

func checkUniqueIDs(result *ValidationResult, items []any) {
	seen := make(map[float64]int, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		id, ok := obj["id"].(float64)
		if !ok {
			continue
		}
		if first, dup := seen[id]; dup {
			result.Valid = false
			result.Errors = append(result.Errors, &ValidationError{
				Path: fmt.Sprintf("[%d].id", i),
				Err:  fmt.Errorf("duplicate id %v (first used at [%d])", id, first),
			})
			continue
		}
		seen[id] = i
	}
}
