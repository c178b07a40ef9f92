package jvq

import (
	"cmp"
	"sort"
)

// Compare returns the total order of two values: 0 if l == r, -1 if
// l < r, and +1 if l > r. Kinds order as null < boolean < number <
// string < array < object; numbers by value, strings by code point,
// booleans with false < true, arrays by first difference then length,
// objects by key list then values. This is the order sort uses.
func Compare(l, r *Value) int {
	if l.Kind() != r.Kind() {
		return cmp.Compare(l.Kind(), r.Kind())
	}
	switch l.Kind() {
	case KindNull:
		return 0
	case KindBool:
		return cmp.Compare(boolIndex(l.Bool()), boolIndex(r.Bool()))
	case KindNumber:
		return cmp.Compare(l.Num(), r.Num())
	case KindString:
		return cmp.Compare(l.Str(), r.Str())
	case KindArray:
		le, re := l.ArrayElems(), r.ArrayElems()
		for i := 0; i < len(le) && i < len(re); i++ {
			if c := Compare(le[i], re[i]); c != 0 {
				return c
			}
		}
		return cmp.Compare(len(le), len(re))
	case KindObject:
		lk, rk := l.ObjectKeys(), r.ObjectKeys()
		sort.Strings(lk)
		sort.Strings(rk)
		for i := 0; i < len(lk) && i < len(rk); i++ {
			if c := cmp.Compare(lk[i], rk[i]); c != 0 {
				return c
			}
		}
		if c := cmp.Compare(len(lk), len(rk)); c != 0 {
			return c
		}
		for _, k := range lk {
			if c := Compare(l.ObjectGet(k), r.ObjectGet(k)); c != 0 {
				return c
			}
		}
		return 0
	default:
		return 0
	}
}

func boolIndex(b bool) int {
	if b {
		return 1
	}
	return 0
}

// SortArray returns a new array with v's elements in ascending Compare
// order. The sort is stable so equal elements keep their relative order.
func SortArray(v *Value) *Value {
	elems := append([]*Value(nil), v.ArrayElems()...)
	sort.SliceStable(elems, func(i, j int) bool {
		return Compare(elems[i], elems[j]) < 0
	})
	return NewArray(elems...)
}
