package apimanager

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

type valueKind uint8

const (
	kindString valueKind = iota
	kindInt
	kindFloat
	kindBool
)

// Value is a parameter value: a string, an integer, a float or a bool.
// The zero Value is the empty string.
type Value struct {
	kind valueKind
	s    string
	i    int64
	f    float64
	b    bool
}

// String returns a string Value.
func String(s string) Value { return Value{kind: kindString, s: s} }

// Int returns an integer Value.
func Int(i int64) Value { return Value{kind: kindInt, i: i} }

// Float returns a float Value.
func Float(f float64) Value { return Value{kind: kindFloat, f: f} }

// Bool returns a bool Value.
func Bool(b bool) Value { return Value{kind: kindBool, b: b} }

// String formats the value the same way for the query string and for
// multipart fields.
func (v Value) String() string {
	switch v.kind {
	case kindInt:
		return strconv.FormatInt(v.i, 10)
	case kindFloat:
		return strconv.FormatFloat(v.f, 'f', -1, 64)
	case kindBool:
		return strconv.FormatBool(v.b)
	default:
		return v.s
	}
}

// Interface returns the native Go value: string, int64, float64 or bool.
func (v Value) Interface() any {
	switch v.kind {
	case kindInt:
		return v.i
	case kindFloat:
		return v.f
	case kindBool:
		return v.b
	default:
		return v.s
	}
}

// MarshalJSON encodes the value as its native JSON type.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

// UnmarshalJSON decodes a JSON scalar. Integral numbers become Int, other
// numbers Float.
func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	switch x := raw.(type) {
	case string:
		*v = String(x)
	case bool:
		*v = Bool(x)
	case json.Number:
		if !strings.ContainsAny(x.String(), ".eE") {
			if i, err := x.Int64(); err == nil {
				*v = Int(i)
				return nil
			}
		}
		f, err := x.Float64()
		if err != nil {
			return err
		}
		*v = Float(f)
	default:
		return fmt.Errorf("apimanager: parameter must be a string, number or bool, got %s", data)
	}
	return nil
}

// Params maps parameter names to values.
type Params map[string]Value

// Keys returns the parameter names in sorted order.
func (p Params) Keys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
