package jvq

import (
	"sync"
	"unicode/utf8"
)

// BuiltinFunc is the contract a builtin satisfies: it receives the
// current value and returns its outputs. Returning an empty slice with a
// nil error is legal and means the builtin emitted nothing.
type BuiltinFunc func(v *Value) ([]*Value, error)

var (
	builtinsOnce sync.Once
	builtinsMu   sync.Mutex
	builtins     map[string]BuiltinFunc
)

// initBuiltins installs the standard set on first use. Registration after
// init replaces prior entries; callers are expected to register custom
// builtins before issuing concurrent executions.
func initBuiltins() {
	builtinsOnce.Do(func() {
		builtins = map[string]BuiltinFunc{
			"keys":       builtinKeys,
			"values":     builtinValues,
			"type":       builtinType,
			"length":     builtinLength,
			"empty":      builtinEmpty,
			"reverse":    builtinReverse,
			"sort":       builtinSort,
			"to_entries": builtinToEntries,
		}
	})
}

// RegisterBuiltin installs or replaces a builtin under the given name.
func RegisterBuiltin(name string, fn BuiltinFunc) {
	initBuiltins()
	builtinsMu.Lock()
	builtins[name] = fn
	builtinsMu.Unlock()
}

// LookupBuiltin reports the builtin registered under name.
func LookupBuiltin(name string) (BuiltinFunc, bool) {
	initBuiltins()
	builtinsMu.Lock()
	fn, ok := builtins[name]
	builtinsMu.Unlock()
	return fn, ok
}

func callBuiltin(name string, v *Value) ([]*Value, error) {
	fn, ok := LookupBuiltin(name)
	if !ok {
		return nil, &unknownBuiltinError{name}
	}
	return fn(v)
}

// keys yields one array output: object keys in insertion order, or array
// indices 0…n-1.
func builtinKeys(v *Value) ([]*Value, error) {
	result := NewArray()
	switch v.Kind() {
	case KindObject:
		v.ObjectEach(func(key string, _ *Value) bool {
			result.ArrayPush(String(key))
			return true
		})
	case KindArray:
		for i := 0; i < v.ArrayLen(); i++ {
			result.ArrayPush(Number(float64(i)))
		}
	default:
		return nil, &runtimeError{"keys: input must be object or array"}
	}
	return []*Value{result}, nil
}

// values streams object values or array elements, one output each.
func builtinValues(v *Value) ([]*Value, error) {
	var outputs []*Value
	switch v.Kind() {
	case KindObject:
		v.ObjectEach(func(_ string, e *Value) bool {
			outputs = append(outputs, e)
			return true
		})
	case KindArray:
		outputs = append(outputs, v.ArrayElems()...)
	default:
		return nil, &runtimeError{"values: input must be object or array"}
	}
	return outputs, nil
}

func builtinType(v *Value) ([]*Value, error) {
	return []*Value{String(v.Kind().String())}, nil
}

// length yields the string character count, array element count or object
// key count; null, booleans and numbers count as 0.
func builtinLength(v *Value) ([]*Value, error) {
	switch v.Kind() {
	case KindString:
		return []*Value{Number(float64(utf8.RuneCountInString(v.Str())))}, nil
	case KindArray:
		return []*Value{Number(float64(v.ArrayLen()))}, nil
	case KindObject:
		return []*Value{Number(float64(v.ObjectLen()))}, nil
	default:
		return []*Value{Number(0)}, nil
	}
}

// empty yields no outputs.
func builtinEmpty(*Value) ([]*Value, error) {
	return nil, nil
}

func builtinReverse(v *Value) ([]*Value, error) {
	switch v.Kind() {
	case KindString:
		s := []byte(v.Str())
		for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
			s[i], s[j] = s[j], s[i]
		}
		return []*Value{String(string(s))}, nil
	case KindArray:
		elems := v.ArrayElems()
		reversed := make([]*Value, len(elems))
		for i, e := range elems {
			reversed[len(elems)-1-i] = e
		}
		return []*Value{NewArray(reversed...)}, nil
	default:
		return nil, &runtimeError{"reverse: input must be string or array"}
	}
}

func builtinSort(v *Value) ([]*Value, error) {
	if !v.IsArray() {
		return nil, &runtimeError{"sort: input must be array"}
	}
	return []*Value{SortArray(v)}, nil
}

// to_entries yields one array of {"key": k, "value": v} objects in
// insertion order.
func builtinToEntries(v *Value) ([]*Value, error) {
	if !v.IsObject() {
		return nil, &runtimeError{"to_entries: input must be object"}
	}
	result := NewArray()
	v.ObjectEach(func(key string, e *Value) bool {
		entry := NewObject()
		entry.ObjectSet("key", String(key))
		entry.ObjectSet("value", e)
		result.ArrayPush(entry)
		return true
	})
	return []*Value{result}, nil
}
