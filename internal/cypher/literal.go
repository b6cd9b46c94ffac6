// Package cypher renders values as openCypher literal text.
//
// Text values spelling null, true or false (in any letter case) are
// emitted unquoted so that a caller can pre-encode those keywords as
// strings. Every other text value is wrapped in single quotes. Embedded
// quote characters are not escaped.
package cypher

import (
	"math"
	"strconv"
	"strings"
)

// ToLiteral converts v to openCypher literal syntax.
func ToLiteral(v Value) string {
	var sb strings.Builder
	writeLiteral(&sb, v)
	return sb.String()
}

// Literal converts a Go runtime value with FromAny and renders it.
func Literal(x any) (string, error) {
	v, err := FromAny(x)
	if err != nil {
		return "", err
	}
	return ToLiteral(v), nil
}

func writeLiteral(sb *strings.Builder, v Value) {
	// Order matters: the reserved text spellings are checked around the
	// typed branches, matching how loosely typed callers encode values.
	if v.typ == TypeText && strings.EqualFold(v.textVal, "null") {
		sb.WriteString(v.textVal)
		return
	}

	switch v.typ {
	case TypeInt:
		if v.unsigned {
			sb.WriteString(strconv.FormatUint(v.uintVal, 10))
		} else {
			sb.WriteString(strconv.FormatInt(v.intVal, 10))
		}
		return
	case TypeFloat:
		sb.WriteString(formatFloat(v.floatVal, v.bits))
		return
	case TypeBool:
		sb.WriteString(strconv.FormatBool(v.boolVal))
		return
	case TypeList:
		writeList(sb, v.listVal)
		return
	case TypeMap:
		writeMap(sb, v.mapVal)
		return
	case TypeNull:
		sb.WriteString("null")
		return
	}

	if strings.EqualFold(v.textVal, "true") || strings.EqualFold(v.textVal, "false") {
		sb.WriteString(v.textVal)
		return
	}

	sb.WriteByte('\'')
	sb.WriteString(v.textVal)
	sb.WriteByte('\'')
}

func writeList(sb *strings.Builder, items []Value) {
	sb.WriteByte('[')
	for i, item := range items {
		if i > 0 {
			sb.WriteString(", ")
		}
		writeLiteral(sb, item)
	}
	sb.WriteByte(']')
}

func writeMap(sb *strings.Builder, entries []Entry) {
	sb.WriteByte('{')
	for i, entry := range entries {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(entry.Key)
		sb.WriteString(": ")
		writeLiteral(sb, entry.Value)
	}
	sb.WriteByte('}')
}

// formatFloat returns the shortest decimal that round-trips at the given
// bit size. Integral values keep a ".0" suffix so they still read as
// floats, and very large or very small magnitudes switch to exponent form.
func formatFloat(f float64, bits int) string {
	if bits != 32 {
		bits = 64
	}

	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}

	abs := math.Abs(f)
	if abs >= 1e16 || (abs != 0 && abs < 1e-4) {
		return strconv.FormatFloat(f, 'e', -1, bits)
	}

	s := strconv.FormatFloat(f, 'f', -1, bits)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
