package jvq

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/modopayments/go-modo/v8"
	"github.com/modopayments/go-modo/v8/uuid"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// FromAny converts a Go value into the six-variant model. It accepts
// everything encoding/json and YAML decoding produce (nil, bool, all
// integer and float widths, json.Number, string, []any,
// map[string]any, ordered maps) plus the identifier and timestamp types
// custom builtins may emit: uuid values become strings, time values
// become Unix-epoch numbers. Plain map keys are sorted for determinism;
// ordered maps keep their order.
func FromAny(x any) (*Value, error) {
	switch x := x.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(x), nil
	case int:
		return Number(float64(x)), nil
	case int8:
		return Number(float64(x)), nil
	case int16:
		return Number(float64(x)), nil
	case int32:
		return Number(float64(x)), nil
	case int64:
		return Number(float64(x)), nil
	case uint:
		return Number(float64(x)), nil
	case uint8:
		return Number(float64(x)), nil
	case uint16:
		return Number(float64(x)), nil
	case uint32:
		return Number(float64(x)), nil
	case uint64:
		return Number(float64(x)), nil
	case float32:
		return Number(float64(x)), nil
	case float64:
		return Number(x), nil
	case json.Number:
		f, err := strconv.ParseFloat(x.String(), 64)
		if err != nil {
			return nil, err
		}
		return Number(f), nil
	case string:
		return String(x), nil
	case []any:
		arr := NewArray()
		for _, e := range x {
			v, err := FromAny(e)
			if err != nil {
				return nil, err
			}
			arr.ArrayPush(v)
		}
		return arr, nil
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		obj := NewObject()
		for _, k := range keys {
			v, err := FromAny(x[k])
			if err != nil {
				return nil, err
			}
			obj.ObjectSet(k, v)
		}
		return obj, nil
	case *orderedmap.OrderedMap[string, any]:
		obj := NewObject()
		for pair := x.Oldest(); pair != nil; pair = pair.Next() {
			v, err := FromAny(pair.Value)
			if err != nil {
				return nil, err
			}
			obj.ObjectSet(pair.Key, v)
		}
		return obj, nil
	case *Value:
		return x, nil
	case uuid.UUID:
		return String(x.String()), nil
	case uuid.NullUUID:
		if !x.Valid {
			return Null(), nil
		}
		return String(x.UUID.String()), nil
	case time.Time:
		return Number(float64(x.Unix())), nil
	case modo.Timestamp:
		return Number(float64(x.Unix())), nil
	default:
		return nil, fmt.Errorf("unsupported value type: %T", x)
	}
}

// ToAny converts a Value into plain Go data (nil, bool, int64 for
// integer-like numbers and float64 for other numbers, string, []any,
// map[string]any) for interop with generic marshalers. Object key order
// is not representable in a Go map and is lost.
func ToAny(v *Value) any {
	switch v.Kind() {
	case KindBool:
		return v.Bool()
	case KindNumber:
		if v.IsInteger() {
			return v.AsInteger()
		}
		return v.Num()
	case KindString:
		return v.Str()
	case KindArray:
		elems := v.ArrayElems()
		arr := make([]any, len(elems))
		for i, e := range elems {
			arr[i] = ToAny(e)
		}
		return arr
	case KindObject:
		m := make(map[string]any, v.ObjectLen())
		v.ObjectEach(func(key string, e *Value) bool {
			m[key] = ToAny(e)
			return true
		})
		return m
	default:
		return nil
	}
}
