package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// ErrSchemaViolation is wrapped by every error caused by invalid data
var ErrSchemaViolation = errors.New("schema validation failed")

// SchemaValidator validates JSON documents against named JSON schemas
type SchemaValidator interface {
	// ValidateBytes validates a raw JSON document
	ValidateBytes(data []byte, schemaName string) error
	// ValidateValue validates the JSON encoding of v
	ValidateValue(v any, schemaName string) error
}

type validator struct {
	fsys     fs.FS
	mu       sync.Mutex
	compiler *jsonschema.Compiler
	schemas  map[string]*jsonschema.Schema
	added    map[string]bool
	broken   map[string]error
}

// NewSchemaValidator creates a validator that reads schemas from fsys
func NewSchemaValidator(fsys fs.FS) SchemaValidator {
	return &validator{
		fsys:     fsys,
		compiler: jsonschema.NewCompiler(),
		schemas:  make(map[string]*jsonschema.Schema),
		added:    make(map[string]bool),
		broken:   make(map[string]error),
	}
}

func (v *validator) ValidateBytes(data []byte, schemaName string) error {
	schema, err := v.loadSchema(schemaName)
	if err != nil {
		return fmt.Errorf("failed to load schema %s: %w", schemaName, err)
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%w: failed to parse JSON data: %v", ErrSchemaViolation, err)
	}

	if err := schema.Validate(doc); err != nil {
		return formatValidationError(err)
	}
	return nil
}

func (v *validator) ValidateValue(value any, schemaName string) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode value: %w", err)
	}
	return v.ValidateBytes(data, schemaName)
}

// loadSchema compiles a schema once and caches it
func (v *validator) loadSchema(name string) (*jsonschema.Schema, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if schema, ok := v.schemas[name]; ok {
		return schema, nil
	}
	if err := v.addResources(); err != nil {
		return nil, err
	}
	if err, ok := v.broken[name]; ok {
		return nil, err
	}
	if !v.added[name] {
		return nil, fmt.Errorf("schema file not found: %s", name)
	}

	schema, err := v.compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	v.schemas[name] = schema
	return schema, nil
}

// addResources registers every JSON file of the filesystem root so that
// schemas can $ref each other by file name
func (v *validator) addResources() error {
	names, err := fs.Glob(v.fsys, "*.json")
	if err != nil {
		return fmt.Errorf("failed to list schemas: %w", err)
	}
	for _, name := range names {
		if v.added[name] || v.broken[name] != nil {
			continue
		}
		raw, err := fs.ReadFile(v.fsys, name)
		if err != nil {
			v.broken[name] = fmt.Errorf("failed to read schema file: %w", err)
			continue
		}
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
		if err != nil {
			v.broken[name] = fmt.Errorf("failed to parse schema JSON: %w", err)
			continue
		}
		if err := v.compiler.AddResource(name, doc); err != nil {
			v.broken[name] = fmt.Errorf("failed to add schema resource: %w", err)
			continue
		}
		v.added[name] = true
	}
	return nil
}

func formatValidationError(err error) error {
	var validationErr *jsonschema.ValidationError
	if errors.As(err, &validationErr) {
		var lines []string
		collectErrors(validationErr, &lines)
		return fmt.Errorf("%w:\n%s", ErrSchemaViolation, strings.Join(lines, "\n"))
	}
	return fmt.Errorf("%w: %v", ErrSchemaViolation, err)
}

// collectErrors walks the cause tree, keeping the leaves
func collectErrors(err *jsonschema.ValidationError, lines *[]string) {
	if len(err.Causes) == 0 {
		*lines = append(*lines, formatError(err))
		return
	}
	for _, cause := range err.Causes {
		collectErrors(cause, lines)
	}
}

func formatError(err *jsonschema.ValidationError) string {
	location := "/" + strings.Join(err.InstanceLocation, "/")
	if len(err.InstanceLocation) == 0 {
		location = "(root)"
	}

	if err.ErrorKind != nil {
		if path := err.ErrorKind.KeywordPath(); len(path) > 0 {
			return fmt.Sprintf("  - at %s: %s validation failed", location, strings.Join(path, "."))
		}
	}
	return fmt.Sprintf("  - at %s: validation failed", location)
}
