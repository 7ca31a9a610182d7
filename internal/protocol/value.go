package protocol

import (
	"bytes"
	"fmt"
	"math"
	"strconv"

	"github.com/bytedance/sonic"
)

// Kind enumerates the shapes a variable value may take
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindList
	KindObject
)

// String returns the string representation of the kind
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value is a JSON-compatible variable value: null, bool, number, string,
// ordered list, or ordered object. The zero Value is null.
type Value struct {
	kind  Kind
	b     bool
	n     float64
	i     int64
	isInt bool
	s     string
	list []Value
	obj  *Object
}

// Null returns the null value
func Null() Value { return Value{} }

// Bool wraps a boolean
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Number wraps a float. NaN and infinities fail at marshal time.
func Number(n float64) Value { return Value{kind: KindNumber, n: n} }

// Int wraps an integer. It is sent exactly, beyond the 2^53 range a float
// can hold.
func Int(n int64) Value { return Value{kind: KindNumber, i: n, isInt: true} }

// String wraps a string
func String(s string) Value { return Value{kind: KindString, s: s} }

// List wraps values in order
func List(values ...Value) Value {
	items := make([]Value, len(values))
	copy(items, values)
	return Value{kind: KindList, list: items}
}

// Strings builds a list of string values
func Strings(values ...string) Value {
	items := make([]Value, len(values))
	for i, s := range values {
		items[i] = String(s)
	}
	return Value{kind: KindList, list: items}
}

// ObjectValue wraps an object
func ObjectValue(o *Object) Value {
	if o == nil {
		o = NewObject()
	}
	return Value{kind: KindObject, obj: o.Clone()}
}

// OptionalString returns null for nil and a string value otherwise
func OptionalString(s *string) Value {
	if s == nil {
		return Null()
	}
	return String(*s)
}

// Kind reports the value's shape
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is null
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsBool returns the boolean and whether the value is a bool
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

// AsNumber returns the number and whether the value is a number
func (v Value) AsNumber() (float64, bool) {
	if v.isInt {
		return float64(v.i), true
	}
	return v.n, v.kind == KindNumber
}

// AsInt returns the integer and whether the value was built with Int
func (v Value) AsInt() (int64, bool) { return v.i, v.isInt }

// AsString returns the string and whether the value is a string
func (v Value) AsString() (string, bool) { return v.s, v.kind == KindString }

// AsList returns a copy of the items and whether the value is a list
func (v Value) AsList() ([]Value, bool) {
	if v.kind != KindList {
		return nil, false
	}
	items := make([]Value, len(v.list))
	copy(items, v.list)
	return items, true
}

// AsObject returns a copy of the object and whether the value is an object
func (v Value) AsObject() (*Object, bool) {
	if v.kind != KindObject {
		return nil, false
	}
	return v.obj.Clone(), true
}

// MarshalJSON encodes the value, rejecting non-finite numbers
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := v.encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (v Value) encode(buf *bytes.Buffer) error {
	switch v.kind {
	case KindNull:
		buf.WriteString("null")
	case KindBool:
		buf.WriteString(strconv.FormatBool(v.b))
	case KindNumber:
		if v.isInt {
			buf.WriteString(strconv.FormatInt(v.i, 10))
			break
		}
		if math.IsNaN(v.n) || math.IsInf(v.n, 0) {
			return fmt.Errorf("number %v is not representable in JSON", v.n)
		}
		buf.WriteString(strconv.FormatFloat(v.n, 'g', -1, 64))
	case KindString:
		quoted, err := sonic.Marshal(v.s)
		if err != nil {
			return err
		}
		buf.Write(quoted)
	case KindList:
		buf.WriteByte('[')
		for i, item := range v.list {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := item.encode(buf); err != nil {
				return fmt.Errorf("[%d]: %w", i, err)
			}
		}
		buf.WriteByte(']')
	case KindObject:
		return v.obj.encode(buf)
	default:
		return fmt.Errorf("unknown value kind %d", v.kind)
	}
	return nil
}

// Field is one key/value pair of an Object
type Field struct {
	Key   string
	Value Value
}

// F builds a Field
func F(key string, value Value) Field {
	return Field{Key: key, Value: value}
}

// Object is an insertion-ordered map with unique string keys
type Object struct {
	keys   []string
	values map[string]Value
}

// NewObject builds an object from fields; a repeated key overwrites in place
func NewObject(fields ...Field) *Object {
	o := &Object{values: make(map[string]Value, len(fields))}
	for _, f := range fields {
		o.Set(f.Key, f.Value)
	}
	return o
}

// Set assigns key, keeping its original position if already present
func (o *Object) Set(key string, value Value) *Object {
	if _, exists := o.values[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
	return o
}

// Get returns the value under key
func (o *Object) Get(key string) (Value, bool) {
	if o == nil {
		return Value{}, false
	}
	v, ok := o.values[key]
	return v, ok
}

// Keys returns keys in insertion order
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	keys := make([]string, len(o.keys))
	copy(keys, o.keys)
	return keys
}

// Len returns the number of keys
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// Clone returns a copy; nested values share no mutable state with o
func (o *Object) Clone() *Object {
	if o == nil {
		return NewObject()
	}
	c := &Object{
		keys:   make([]string, len(o.keys)),
		values: make(map[string]Value, len(o.values)),
	}
	copy(c.keys, o.keys)
	for k, v := range o.values {
		c.values[k] = v
	}
	return c
}

// MarshalJSON encodes keys in insertion order
func (o *Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := o.encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (o *Object) encode(buf *bytes.Buffer) error {
	buf.WriteByte('{')
	if o != nil {
		for i, key := range o.keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			quoted, err := sonic.Marshal(key)
			if err != nil {
				return err
			}
			buf.Write(quoted)
			buf.WriteByte(':')
			if err := o.values[key].encode(buf); err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
		}
	}
	buf.WriteByte('}')
	return nil
}
