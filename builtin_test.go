package jvq

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func callStandard(t *testing.T, name, input string) []*Value {
	t.Helper()
	outputs, err := callBuiltin(name, mustUnmarshal(t, input))
	require.NoError(t, err)
	return outputs
}

func TestBuiltinKeys(t *testing.T) {
	outputs := callStandard(t, "keys", `{"b":2,"a":1,"c":3}`)
	require.Len(t, outputs, 1)
	assert.Equal(t, `["b","a","c"]`, Marshal(outputs[0]))

	outputs = callStandard(t, "keys", `["x","y","z"]`)
	require.Len(t, outputs, 1)
	assert.Equal(t, "[0,1,2]", Marshal(outputs[0]))

	_, err := callBuiltin("keys", Number(1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "keys: input must be object or array")
}

func TestBuiltinValues(t *testing.T) {
	outputs := callStandard(t, "values", `{"x":1,"y":2}`)
	assert.Equal(t, []string{"1", "2"}, marshalAll(outputs))

	outputs = callStandard(t, "values", "[10,20]")
	assert.Equal(t, []string{"10", "20"}, marshalAll(outputs))

	_, err := callBuiltin("values", String("s"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "values: input must be object or array")
}

func TestBuiltinType(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"null", `"null"`},
		{"true", `"boolean"`},
		{"3.5", `"number"`},
		{`"s"`, `"string"`},
		{"[1]", `"array"`},
		{`{"a":1}`, `"object"`},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			outputs := callStandard(t, "type", tc.input)
			require.Len(t, outputs, 1)
			assert.Equal(t, tc.expected, Marshal(outputs[0]))
		})
	}
}

func TestBuiltinLength(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{`"hello"`, "5"},
		{`""`, "0"},
		{"[1,2,3]", "3"},
		{`{"a":1,"b":2}`, "2"},
		{"null", "0"},
		{"true", "0"},
		{"99", "0"},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			outputs := callStandard(t, "length", tc.input)
			require.Len(t, outputs, 1)
			assert.Equal(t, tc.expected, Marshal(outputs[0]))
		})
	}
}

func TestBuiltinEmpty(t *testing.T) {
	outputs, err := callBuiltin("empty", Number(1))
	require.NoError(t, err)
	assert.Empty(t, outputs)
}

func TestBuiltinReverse(t *testing.T) {
	outputs := callStandard(t, "reverse", `"abc"`)
	require.Len(t, outputs, 1)
	assert.Equal(t, `"cba"`, Marshal(outputs[0]))

	outputs = callStandard(t, "reverse", "[1,2,3]")
	require.Len(t, outputs, 1)
	assert.Equal(t, "[3,2,1]", Marshal(outputs[0]))

	_, err := callBuiltin("reverse", Number(1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reverse: input must be string or array")
}

func TestBuiltinReverseInvolution(t *testing.T) {
	for _, input := range []string{`"hello"`, "[1,2,3,4]", "[]", `""`} {
		t.Run(input, func(t *testing.T) {
			v := mustUnmarshal(t, input)
			once, err := callBuiltin("reverse", v)
			require.NoError(t, err)
			twice, err := callBuiltin("reverse", once[0])
			require.NoError(t, err)
			assert.Equal(t, input, Marshal(twice[0]))
		})
	}
}

func TestBuiltinSort(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"[3,1,2]", "[1,2,3]"},
		{"[]", "[]"},
		{`["b","a","c"]`, `["a","b","c"]`},
		{`[true,false]`, "[false,true]"},
		// mixed types: null < boolean < number < string < array < object
		{`["s",1,null,[1],true,{"a":1}]`, `[null,true,1,"s",[1],{"a":1}]`},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			outputs := callStandard(t, "sort", tc.input)
			require.Len(t, outputs, 1)
			assert.Equal(t, tc.expected, Marshal(outputs[0]))
		})
	}

	_, err := callBuiltin("sort", String("no"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sort: input must be array")
}

func TestBuiltinSortIdempotent(t *testing.T) {
	once := callStandard(t, "sort", "[5,3,9,1,3]")
	twice, err := callBuiltin("sort", once[0])
	require.NoError(t, err)
	assert.Equal(t, Marshal(once[0]), Marshal(twice[0]))
}

func TestBuiltinToEntries(t *testing.T) {
	outputs := callStandard(t, "to_entries", `{"x":1,"y":2}`)
	require.Len(t, outputs, 1)
	assert.Equal(t,
		`[{"key":"x","value":1},{"key":"y","value":2}]`,
		Marshal(outputs[0]))

	_, err := callBuiltin("to_entries", NewArray())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "to_entries: input must be object")
}

func TestBuiltinToEntriesRoundTrip(t *testing.T) {
	original := mustUnmarshal(t, `{"b":2,"a":1,"c":[true]}`)
	outputs, err := callBuiltin("to_entries", original)
	require.NoError(t, err)

	rebuilt := NewObject()
	for _, entry := range outputs[0].ArrayElems() {
		rebuilt.ObjectSet(entry.ObjectGet("key").Str(), entry.ObjectGet("value"))
	}
	assert.Equal(t, Marshal(original), Marshal(rebuilt))
}

func TestRegisterBuiltin(t *testing.T) {
	RegisterBuiltin("answer", func(*Value) ([]*Value, error) {
		return []*Value{Number(42)}, nil
	})
	outputs, err := callBuiltin("answer", Null())
	require.NoError(t, err)
	assert.Equal(t, []string{"42"}, marshalAll(outputs))

	// registration under an existing name replaces the prior entry
	RegisterBuiltin("answer", func(*Value) ([]*Value, error) {
		return []*Value{Number(43)}, nil
	})
	outputs, err = callBuiltin("answer", Null())
	require.NoError(t, err)
	assert.Equal(t, []string{"43"}, marshalAll(outputs))
}

func TestLookupBuiltin(t *testing.T) {
	for _, name := range []string{
		"keys", "values", "type", "length", "empty", "reverse", "sort", "to_entries",
	} {
		_, ok := LookupBuiltin(name)
		assert.True(t, ok, name)
	}
	_, ok := LookupBuiltin("definitely-not-registered")
	assert.False(t, ok)
}
