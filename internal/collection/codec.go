package collection

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Codec serializes a single entity to and from its stored JSON document.
// Records are wrapped under a named top-level key, so a person is stored
// as {"person": {...}} rather than flat. Encoding pretty-prints; decoded
// entities are schema-validated before they reach business logic, and a
// failure of either step is an error the caller maps to "exclude from
// listing" rather than a hard failure.
type Codec[T any] struct {
	wrapper  string
	validate *validator.Validate
}

// NewCodec builds a codec for the given wrapper key.
func NewCodec[T any](wrapper string, validate *validator.Validate) Codec[T] {
	if validate == nil {
		validate = validator.New()
	}
	return Codec[T]{wrapper: wrapper, validate: validate}
}

// Wrapper returns the top-level key records are stored under.
func (c Codec[T]) Wrapper() string { return c.wrapper }

// Encode wraps the entity and pretty-prints it.
func (c Codec[T]) Encode(entity *T) ([]byte, error) {
	if entity == nil {
		return nil, fmt.Errorf("encode %s: nil entity", c.wrapper)
	}
	doc := map[string]*T{c.wrapper: entity}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode %s record: %w", c.wrapper, err)
	}
	return data, nil
}

// Decode unwraps and validates a stored record.
func (c Codec[T]) Decode(data []byte) (*T, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s record: %w", c.wrapper, err)
	}
	raw, ok := doc[c.wrapper]
	if !ok {
		return nil, fmt.Errorf("%s record missing wrapper key", c.wrapper)
	}
	entity := new(T)
	if err := json.Unmarshal(raw, entity); err != nil {
		return nil, fmt.Errorf("decode %s record: %w", c.wrapper, err)
	}
	if err := c.validate.Struct(entity); err != nil {
		return nil, fmt.Errorf("invalid %s record: %w", c.wrapper, err)
	}
	return entity, nil
}

// Validate runs the schema check used at decode time against an entity
// about to be written, so malformed data is rejected before any I/O.
func (c Codec[T]) Validate(entity *T) error {
	if entity == nil {
		return fmt.Errorf("%s: nil entity", c.wrapper)
	}
	return c.validate.Struct(entity)
}
