package llm

import (
	"fmt"
	"sort"
)

// Type names a JSON value kind.
type Type string

const (
	TypeObject  Type = "object"
	TypeArray   Type = "array"
	TypeString  Type = "string"
	TypeBoolean Type = "boolean"
	TypeNumber  Type = "number"
	TypeInteger Type = "integer"
)

// Schema is a provider-neutral description of the expected output shape.
// Backends translate it into their own schema representation, and Validate
// checks a decoded payload against it.
type Schema struct {
	Type        Type
	Description string
	Properties  map[string]*Schema
	// Ordering is the preferred property order for backends that honor it.
	Ordering []string
	Required []string
	Items    *Schema
	Nullable bool
}

// SchemaError points at the first mismatch between a payload and a Schema.
type SchemaError struct {
	Path   string
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema mismatch at %s: %s", e.Path, e.Reason)
}

// Validate checks a value decoded with encoding/json (map[string]any,
// []any, string, float64, bool, nil) against the schema.
func (s *Schema) Validate(value any) error {
	return s.validate("$", value)
}

func (s *Schema) validate(path string, value any) error {
	if s == nil {
		return nil
	}
	if value == nil {
		if s.Nullable {
			return nil
		}
		return &SchemaError{Path: path, Reason: "null not allowed"}
	}

	switch s.Type {
	case TypeObject:
		obj, ok := value.(map[string]any)
		if !ok {
			return typeMismatch(path, s.Type, value)
		}
		for _, key := range s.Required {
			if _, present := obj[key]; !present {
				return &SchemaError{Path: path + "." + key, Reason: "required property missing"}
			}
		}
		keys := make([]string, 0, len(obj))
		for key := range obj {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			prop, known := s.Properties[key]
			if !known {
				continue
			}
			if err := prop.validate(path+"."+key, obj[key]); err != nil {
				return err
			}
		}
	case TypeArray:
		arr, ok := value.([]any)
		if !ok {
			return typeMismatch(path, s.Type, value)
		}
		for i, item := range arr {
			if err := s.Items.validate(fmt.Sprintf("%s[%d]", path, i), item); err != nil {
				return err
			}
		}
	case TypeString:
		if _, ok := value.(string); !ok {
			return typeMismatch(path, s.Type, value)
		}
	case TypeBoolean:
		if _, ok := value.(bool); !ok {
			return typeMismatch(path, s.Type, value)
		}
	case TypeNumber:
		if _, ok := value.(float64); !ok {
			return typeMismatch(path, s.Type, value)
		}
	case TypeInteger:
		n, ok := value.(float64)
		if !ok || n != float64(int64(n)) {
			return typeMismatch(path, s.Type, value)
		}
	}
	return nil
}

func typeMismatch(path string, want Type, got any) error {
	return &SchemaError{Path: path, Reason: fmt.Sprintf("expected %s, got %T", want, got)}
}
