package jvq

import (
	"math"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Kind identifies the variant held by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value is a JSON value: null, boolean, number, string, array or object.
// Objects preserve key insertion order. Values are shared freely between
// intermediate results during execution; treat them as immutable once
// construction finishes.
type Value struct {
	kind Kind
	b    bool
	n    float64
	s    string
	a    []*Value
	o    *orderedmap.OrderedMap[string, *Value]
}

var nullValue = &Value{kind: KindNull}

// Null returns the null value.
func Null() *Value { return nullValue }

// Bool returns a boolean value.
func Bool(b bool) *Value { return &Value{kind: KindBool, b: b} }

// Number returns a number value.
func Number(n float64) *Value { return &Value{kind: KindNumber, n: n} }

// String returns a string value.
func String(s string) *Value { return &Value{kind: KindString, s: s} }

// NewArray returns an array value holding the given elements.
func NewArray(elems ...*Value) *Value {
	return &Value{kind: KindArray, a: elems}
}

// NewObject returns an empty object value.
func NewObject() *Value {
	return &Value{kind: KindObject, o: orderedmap.New[string, *Value]()}
}

func (v *Value) Kind() Kind { return v.kind }

func (v *Value) IsNull() bool   { return v.kind == KindNull }
func (v *Value) IsBool() bool   { return v.kind == KindBool }
func (v *Value) IsNumber() bool { return v.kind == KindNumber }
func (v *Value) IsString() bool { return v.kind == KindString }
func (v *Value) IsArray() bool  { return v.kind == KindArray }
func (v *Value) IsObject() bool { return v.kind == KindObject }

// Bool reports the boolean payload; false for other kinds.
func (v *Value) Bool() bool { return v.b }

// Num reports the number payload; 0 for other kinds.
func (v *Value) Num() float64 { return v.n }

// Str reports the string payload; empty for other kinds.
func (v *Value) Str() string { return v.s }

// IsInteger reports whether v is a number equal to its floor and
// representable as a signed 64-bit integer.
func (v *Value) IsInteger() bool {
	return v.kind == KindNumber && v.n == math.Floor(v.n) &&
		v.n >= math.MinInt64 && v.n < math.MaxInt64
}

// AsInteger truncates the number payload to int64.
func (v *Value) AsInteger() int64 { return int64(v.n) }

// ArrayLen reports the element count; 0 for non-arrays.
func (v *Value) ArrayLen() int { return len(v.a) }

// ArrayIndex returns the i-th element, or null when v is not an array or
// i is out of range.
func (v *Value) ArrayIndex(i int) *Value {
	if v.kind != KindArray || i < 0 || i >= len(v.a) {
		return Null()
	}
	return v.a[i]
}

// ArrayElems returns the backing element slice; callers must not mutate it.
func (v *Value) ArrayElems() []*Value { return v.a }

// ArrayPush appends an element; no-op for non-arrays.
func (v *Value) ArrayPush(e *Value) {
	if v.kind == KindArray {
		v.a = append(v.a, e)
	}
}

// ObjectLen reports the key count; 0 for non-objects.
func (v *Value) ObjectLen() int {
	if v.kind != KindObject {
		return 0
	}
	return v.o.Len()
}

// ObjectGet returns the value at key, or null when v is not an object or
// the key is absent.
func (v *Value) ObjectGet(key string) *Value {
	if v.kind != KindObject {
		return Null()
	}
	w, ok := v.o.Get(key)
	if !ok {
		return Null()
	}
	return w
}

// ObjectHas reports whether key is present in an object.
func (v *Value) ObjectHas(key string) bool {
	if v.kind != KindObject {
		return false
	}
	_, ok := v.o.Get(key)
	return ok
}

// ObjectSet stores key→e, keeping the key's original position when it
// already exists; no-op for non-objects.
func (v *Value) ObjectSet(key string, e *Value) {
	if v.kind == KindObject {
		v.o.Set(key, e)
	}
}

// ObjectEach calls f for every key/value pair in insertion order, stopping
// early when f returns false.
func (v *Value) ObjectEach(f func(key string, e *Value) bool) {
	if v.kind != KindObject {
		return
	}
	for pair := v.o.Oldest(); pair != nil; pair = pair.Next() {
		if !f(pair.Key, pair.Value) {
			return
		}
	}
}

// ObjectKeys returns the keys in insertion order.
func (v *Value) ObjectKeys() []string {
	if v.kind != KindObject {
		return nil
	}
	keys := make([]string, 0, v.o.Len())
	for pair := v.o.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// String returns the compact JSON encoding of v.
func (v *Value) String() string {
	return Marshal(v)
}
