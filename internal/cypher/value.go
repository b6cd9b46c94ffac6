package cypher

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
)

// ErrUnsupportedType is returned by FromAny for runtime types outside the
// literal value domain.
var ErrUnsupportedType = errors.New("unsupported value type")

// Type is the variant tag of a Value.
type Type uint8

const (
	TypeNull Type = iota
	TypeBool
	TypeInt
	TypeFloat
	TypeText
	TypeList
	TypeMap
)

func (t Type) String() string {
	switch t {
	case TypeNull:
		return "null"
	case TypeBool:
		return "bool"
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeText:
		return "text"
	case TypeList:
		return "list"
	case TypeMap:
		return "map"
	default:
		return "unknown"
	}
}

// Value is a literal-domain value. Exactly one payload field is valid,
// selected by typ. The zero Value is Null.
type Value struct {
	typ Type

	boolVal  bool
	intVal   int64
	uintVal  uint64
	floatVal float64
	textVal  string

	// unsigned selects uintVal for TypeInt.
	unsigned bool
	// bits is 32 for a Float built from a float32, 64 otherwise.
	bits int

	listVal []Value
	mapVal  []Entry
}

// Entry is one key/value pair of a Map. Maps keep their entries in
// insertion order.
type Entry struct {
	Key   string
	Value Value
}

func Null() Value {
	return Value{typ: TypeNull}
}

func Bool(v bool) Value {
	return Value{typ: TypeBool, boolVal: v}
}

func Int(v int64) Value {
	return Value{typ: TypeInt, intVal: v}
}

// Uint is an Int carrying an unsigned value, so magnitudes above
// math.MaxInt64 keep their decimal text.
func Uint(v uint64) Value {
	return Value{typ: TypeInt, uintVal: v, unsigned: true}
}

func Float(v float64) Value {
	return Value{typ: TypeFloat, floatVal: v, bits: 64}
}

// Float32 is a Float rendered with the shortest float32 decimal.
func Float32(v float32) Value {
	return Value{typ: TypeFloat, floatVal: float64(v), bits: 32}
}

func Text(v string) Value {
	return Value{typ: TypeText, textVal: v}
}

func List(values ...Value) Value {
	return Value{typ: TypeList, listVal: values}
}

func Map(entries ...Entry) Value {
	return Value{typ: TypeMap, mapVal: entries}
}

// Type returns the variant tag.
func (v Value) Type() Type {
	return v.typ
}

func (v Value) IsNull() bool {
	return v.typ == TypeNull
}

// Elements returns the items of a List, or nil for any other variant.
func (v Value) Elements() []Value {
	if v.typ != TypeList {
		return nil
	}
	return v.listVal
}

// Entries returns the pairs of a Map, or nil for any other variant.
func (v Value) Entries() []Entry {
	if v.typ != TypeMap {
		return nil
	}
	return v.mapVal
}

// FromAny converts a Go runtime value into a Value.
//
// Slices and arrays of any element type become Lists. String-keyed maps
// become Maps with keys in sorted order, since Go map iteration is not
// stable. Any other type fails with ErrUnsupportedType.
func FromAny(x any) (Value, error) {
	if x == nil {
		return Null(), nil
	}

	switch val := x.(type) {
	case Value:
		return val, nil
	case *Value:
		if val == nil {
			return Null(), nil
		}
		return *val, nil
	case bool:
		return Bool(val), nil
	case int:
		return Int(int64(val)), nil
	case int8:
		return Int(int64(val)), nil
	case int16:
		return Int(int64(val)), nil
	case int32:
		return Int(int64(val)), nil
	case int64:
		return Int(val), nil
	case uint:
		return Uint(uint64(val)), nil
	case uint8:
		return Int(int64(val)), nil
	case uint16:
		return Int(int64(val)), nil
	case uint32:
		return Int(int64(val)), nil
	case uint64:
		return Uint(val), nil
	case float32:
		return Float32(val), nil
	case float64:
		return Float(val), nil
	case string:
		return Text(val), nil
	case []any:
		items := make([]Value, 0, len(val))
		for i, elem := range val {
			item, err := FromAny(elem)
			if err != nil {
				return Value{}, fmt.Errorf("list[%d]: %w", i, err)
			}
			items = append(items, item)
		}
		return List(items...), nil
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		entries := make([]Entry, 0, len(val))
		for _, k := range keys {
			item, err := FromAny(val[k])
			if err != nil {
				return Value{}, fmt.Errorf("map[%q]: %w", k, err)
			}
			entries = append(entries, Entry{Key: k, Value: item})
		}
		return Map(entries...), nil
	}

	return fromReflect(reflect.ValueOf(x))
}

// fromReflect handles typed slices, arrays, string-keyed maps and pointers
// that the type switch in FromAny does not name.
func fromReflect(rv reflect.Value) (Value, error) {
	switch rv.Kind() {
	case reflect.Bool:
		return Bool(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Uint(rv.Uint()), nil
	case reflect.Float32:
		return Float32(float32(rv.Float())), nil
	case reflect.Float64:
		return Float(rv.Float()), nil
	case reflect.String:
		return Text(rv.String()), nil

	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return Null(), nil
		}
		return FromAny(rv.Elem().Interface())

	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return List(), nil
		}
		items := make([]Value, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			item, err := FromAny(rv.Index(i).Interface())
			if err != nil {
				return Value{}, fmt.Errorf("list[%d]: %w", i, err)
			}
			items = append(items, item)
		}
		return List(items...), nil

	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return Value{}, fmt.Errorf("%w: map key %s", ErrUnsupportedType, rv.Type().Key())
		}
		keys := rv.MapKeys()
		sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })

		entries := make([]Entry, 0, len(keys))
		for _, k := range keys {
			item, err := FromAny(rv.MapIndex(k).Interface())
			if err != nil {
				return Value{}, fmt.Errorf("map[%q]: %w", k.String(), err)
			}
			entries = append(entries, Entry{Key: k.String(), Value: item})
		}
		return Map(entries...), nil
	}

	return Value{}, fmt.Errorf("%w: %s", ErrUnsupportedType, rv.Type())
}
