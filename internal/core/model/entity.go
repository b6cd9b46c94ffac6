package model

import (
	"fmt"
	"strings"

	"github.com/agenthands/tunegraph/internal/cypher"
	"github.com/spf13/cast"
)

// Entity is one record of a Schema, holding a raw value for every declared
// field in declaration order. Values are kept exactly as they came from
// the source; nothing is coerced on construction.
type Entity struct {
	Schema *Schema
	values []any
}

// FromQueryRecord builds an entity from the property accessor of a query
// result, typically a neo4j.Node.
func FromQueryRecord(schema *Schema, rec PropertyRecord) (*Entity, error) {
	return fromLookup(schema, func(name string) (any, bool) {
		v, ok := rec.GetProperties()[name]
		return v, ok
	})
}

// FromMapping builds an entity from a plain key/value mapping, e.g. one
// decoded row of a playlist slice file. Keys the schema does not declare
// are ignored.
func FromMapping(schema *Schema, m map[string]any) (*Entity, error) {
	return fromLookup(schema, func(name string) (any, bool) {
		v, ok := m[name]
		return v, ok
	})
}

func fromLookup(schema *Schema, lookup func(string) (any, bool)) (*Entity, error) {
	values := make([]any, len(schema.Fields))
	for i, f := range schema.Fields {
		v, ok := lookup(f.Name)
		if !ok {
			return nil, &MissingFieldError{Label: schema.Label, Field: f.Name}
		}
		values[i] = v
	}
	return &Entity{Schema: schema, values: values}, nil
}

func TrackFromMapping(m map[string]any) (*Entity, error) {
	return FromMapping(TrackSchema, m)
}

func TrackFromRecord(rec PropertyRecord) (*Entity, error) {
	return FromQueryRecord(TrackSchema, rec)
}

func PlaylistFromMapping(m map[string]any) (*Entity, error) {
	return FromMapping(PlaylistSchema, m)
}

func PlaylistFromRecord(rec PropertyRecord) (*Entity, error) {
	return FromQueryRecord(PlaylistSchema, rec)
}

// Label returns the graph label of the entity's schema.
func (e *Entity) Label() string {
	return e.Schema.Label
}

// Get returns the raw value of a declared field.
func (e *Entity) Get(name string) (any, bool) {
	for i, f := range e.Schema.Fields {
		if f.Name == name {
			return e.values[i], true
		}
	}
	return nil, false
}

// Key returns the raw value of the schema's key field.
func (e *Entity) Key() any {
	v, _ := e.Get(e.Schema.Key)
	return v
}

// ToLiteralFragment renders "field: literal, ..." for every field in
// declaration order. Text and name fields are inserted verbatim, so the
// caller must have wrapped them already (see QuoteText). All other kinds
// go through the literal serializer.
func (e *Entity) ToLiteralFragment() (string, error) {
	parts := make([]string, len(e.Schema.Fields))
	for i, f := range e.Schema.Fields {
		lit, err := e.literal(i)
		if err != nil {
			return "", err
		}
		parts[i] = f.Name + ": " + lit
	}
	return strings.Join(parts, ", "), nil
}

// FieldLiteral renders a single declared field the way ToLiteralFragment
// does.
func (e *Entity) FieldLiteral(name string) (string, error) {
	for i, f := range e.Schema.Fields {
		if f.Name == name {
			return e.literal(i)
		}
	}
	return "", &MissingFieldError{Label: e.Schema.Label, Field: name}
}

func (e *Entity) literal(i int) (string, error) {
	f, raw := e.Schema.Fields[i], e.values[i]
	if f.Kind.Verbatim() {
		if raw == nil {
			return "null", nil
		}
		return fmt.Sprint(raw), nil
	}

	lit, err := cypher.Literal(raw)
	if err != nil {
		return "", fmt.Errorf("%s.%s: %w", e.Schema.Label, f.Name, err)
	}
	return lit, nil
}

// ToMap returns the full field set as a new mapping.
func (e *Entity) ToMap() map[string]any {
	m := make(map[string]any, len(e.Schema.Fields))
	for i, f := range e.Schema.Fields {
		m[f.Name] = e.values[i]
	}
	return m
}

func (e *Entity) GetString(name string) (string, error) {
	v, ok := e.Get(name)
	if !ok {
		return "", &MissingFieldError{Label: e.Schema.Label, Field: name}
	}
	return cast.ToStringE(v)
}

func (e *Entity) GetInt(name string) (int64, error) {
	v, ok := e.Get(name)
	if !ok {
		return 0, &MissingFieldError{Label: e.Schema.Label, Field: name}
	}
	return cast.ToInt64E(v)
}

func (e *Entity) GetBool(name string) (bool, error) {
	v, ok := e.Get(name)
	if !ok {
		return false, &MissingFieldError{Label: e.Schema.Label, Field: name}
	}
	return cast.ToBoolE(v)
}

// QuoteText returns a copy of m in which every text and name field of the
// schema has been replaced by its serializer literal, so that the verbatim
// interpolation in ToLiteralFragment yields valid quoted strings. Fields
// absent from m stay absent.
func QuoteText(schema *Schema, m map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	for _, f := range schema.Fields {
		if !f.Kind.Verbatim() {
			continue
		}
		v, ok := m[f.Name]
		if !ok {
			continue
		}
		lit, err := cypher.Literal(v)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", schema.Label, f.Name, err)
		}
		out[f.Name] = lit
	}
	return out, nil
}
