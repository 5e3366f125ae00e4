package sums

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/url"
	"slices"
	"strconv"
	"strings"
)

// Kind identifies the JSON type held by a Value.
type Kind int

const (
	Undefined Kind = iota
	Null
	Bool
	Number
	String
	Array
	Object
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "boolean"
	case Number:
		return "number"
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	default:
		return "undefined"
	}
}

// Value is a decoded JSON value. The zero Value is Undefined, which is what
// a missing object member reads as.
type Value struct {
	kind   Kind
	b      bool
	n      json.Number
	s      string
	items  []Value
	fields map[string]Value
}

func NullValue() Value { return Value{kind: Null} }

func BoolValue(b bool) Value { return Value{kind: Bool, b: b} }

func NumberValue(n json.Number) Value { return Value{kind: Number, n: n} }

func StringValue(s string) Value { return Value{kind: String, s: s} }

func ArrayValue(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{kind: Array, items: items}
}

func ObjectValue(fields map[string]Value) Value {
	if fields == nil {
		fields = map[string]Value{}
	}
	return Value{kind: Object, fields: fields}
}

func (v Value) Kind() Kind { return v.kind }

// Field returns the named member of an object, or Undefined.
func (v Value) Field(name string) Value {
	if v.kind != Object {
		return Value{}
	}
	return v.fields[name]
}

// Items returns the elements of an array, or nil for any other kind.
func (v Value) Items() []Value {
	if v.kind != Array {
		return nil
	}
	return v.items
}

// Float converts a Number to float64. It reports false for other kinds and
// for numbers that are not finite once converted, such as 1e400.
func (v Value) Float() (float64, bool) {
	if v.kind != Number {
		return 0, false
	}
	f, err := v.n.Float64()
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Parse decodes a JSON document. Only an object or array is accepted at the
// top level; an empty or blank document is an empty object.
func Parse(data []byte) (Value, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return ObjectValue(nil), nil
	}
	if trimmed[0] != '{' && trimmed[0] != '[' {
		return Value{}, fmt.Errorf("%w: unexpected token %q at position 0", ErrMalformedBody, trimmed[0])
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return Value{}, fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return Value{}, fmt.Errorf("%w: unexpected data after JSON document", ErrMalformedBody)
	}

	return fromAny(raw), nil
}

func fromAny(raw any) Value {
	switch t := raw.(type) {
	case nil:
		return NullValue()
	case bool:
		return BoolValue(t)
	case json.Number:
		return NumberValue(t)
	case string:
		return StringValue(t)
	case []any:
		items := make([]Value, len(t))
		for i, item := range t {
			items[i] = fromAny(item)
		}
		return ArrayValue(items...)
	case map[string]any:
		fields := make(map[string]Value, len(t))
		for k, item := range t {
			fields[k] = fromAny(item)
		}
		return ObjectValue(fields)
	default:
		return Value{}
	}
}

// formArrayLimit is the highest index "name[i]" keeps as an array position;
// larger indices make the field an object keyed by the index.
const formArrayLimit = 20

type indexedValue struct {
	index int
	value string
}

// FromForm converts URL-encoded values into an object. A key that repeats,
// ends in "[]" or carries an index such as "numbers[0]" becomes an array of
// strings ordered by index; any other key becomes a string.
func FromForm(values url.Values) Value {
	fields := make(map[string]Value, len(values))
	indexed := make(map[string][]indexedValue)
	oversized := make(map[string]map[string]Value)

	for key, vals := range values {
		if name, i, ok := formIndex(key); ok {
			for _, v := range vals {
				if i > formArrayLimit {
					if oversized[name] == nil {
						oversized[name] = make(map[string]Value)
					}
					oversized[name][strconv.Itoa(i)] = StringValue(v)
					continue
				}
				indexed[name] = append(indexed[name], indexedValue{i, v})
			}
			continue
		}

		name, isList := strings.CutSuffix(key, "[]")
		if existing := fields[name]; !isList && len(vals) == 1 && existing.kind == Undefined {
			fields[name] = StringValue(vals[0])
			continue
		}
		fields[name] = appendStrings(fields[name], vals...)
	}

	for name, entries := range indexed {
		slices.SortStableFunc(entries, func(a, b indexedValue) int { return a.index - b.index })
		vals := make([]string, len(entries))
		for i, e := range entries {
			vals[i] = e.value
		}
		fields[name] = appendStrings(fields[name], vals...)
	}

	for name, members := range oversized {
		fields[name] = ObjectValue(members)
	}

	return ObjectValue(fields)
}

func appendStrings(existing Value, vals ...string) Value {
	items := make([]Value, 0, len(vals)+len(existing.items)+1)
	switch existing.kind {
	case Array:
		items = append(items, existing.items...)
	case String:
		items = append(items, existing)
	}
	for _, v := range vals {
		items = append(items, StringValue(v))
	}
	return ArrayValue(items...)
}

// formIndex splits "name[i]" into its name and non-negative index.
func formIndex(key string) (string, int, bool) {
	open := strings.IndexByte(key, '[')
	if open <= 0 || !strings.HasSuffix(key, "]") {
		return "", 0, false
	}
	i, err := strconv.Atoi(key[open+1 : len(key)-1])
	if err != nil || i < 0 {
		return "", 0, false
	}
	return key[:open], i, true
}

// MarshalJSON encodes the value back to JSON. Undefined encodes as null.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case Bool:
		return json.Marshal(v.b)
	case Number:
		return []byte(v.n.String()), nil
	case String:
		return json.Marshal(v.s)
	case Array:
		return json.Marshal(v.items)
	case Object:
		return json.Marshal(v.fields)
	default:
		return []byte("null"), nil
	}
}
