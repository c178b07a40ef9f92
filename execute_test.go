package jvq

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustUnmarshal(t *testing.T, s string) *Value {
	t.Helper()
	v, err := Unmarshal(s)
	require.NoError(t, err)
	return v
}

func runFilter(t *testing.T, src, input string) []*Value {
	t.Helper()
	prog := compileFilter(t, src)
	outputs, err := prog.Run(mustUnmarshal(t, input))
	require.NoError(t, err)
	return outputs
}

func marshalAll(outputs []*Value) []string {
	strs := make([]string, len(outputs))
	for i, v := range outputs {
		strs[i] = Marshal(v)
	}
	return strs
}

func TestExecuteBasics(t *testing.T) {
	testCases := []struct {
		src      string
		input    string
		expected []string
	}{
		{".", `{"a":1}`, []string{`{"a":1}`}},
		{".", "null", []string{"null"}},
		{".name", `{"name":"Alice","age":30}`, []string{`"Alice"`}},
		{".missing", `{"name":"Alice"}`, []string{"null"}},
		{".name", "42", []string{"null"}},
		{".a.b", `{"a":{"b":7}}`, []string{"7"}},
		{".a.b", `{"a":1}`, []string{"null"}},
		{".[0]", "[10,20,30]", []string{"10"}},
		{".[2]", "[10,20,30]", []string{"30"}},
		{".[5]", "[10,20,30]", []string{"null"}},
		{".[0]", `{"a":1}`, []string{"null"}},
		{`.["name"]`, `{"name":"Bob"}`, []string{`"Bob"`}},
		{`.["x"]`, "[1,2]", []string{"null"}},
		{".users[0].name", `{"users":[{"name":"Alice"},{"name":"Bob"}]}`, []string{`"Alice"`}},
		{".users[1].name", `{"users":[{"name":"Alice"},{"name":"Bob"}]}`, []string{`"Bob"`}},
		{".a + 5", `{"a":10}`, []string{"15"}},
		{".a + 5", `{"a":1.5}`, []string{"6.5"}},
		{".a + 5", `{"a":"x"}`, []string{"null"}},
		{".missing + 5", `{}`, []string{"null"}},
	}

	for _, tc := range testCases {
		t.Run(tc.src+" on "+tc.input, func(t *testing.T) {
			assert.Equal(t, tc.expected, marshalAll(runFilter(t, tc.src, tc.input)))
		})
	}
}

func TestExecuteIterate(t *testing.T) {
	// arrays iterate element by element, in order
	assert.Equal(t, []string{"1", "2", "3"},
		marshalAll(runFilter(t, ".[]", "[1,2,3]")))
	assert.Equal(t, []string{}, marshalAll(runFilter(t, ".[]", "[]")))

	// non-arrays pass through as a single output
	assert.Equal(t, []string{`{"a":1}`},
		marshalAll(runFilter(t, ".[]", `{"a":1}`)))
	assert.Equal(t, []string{"42"}, marshalAll(runFilter(t, ".[]", "42")))

	// iterate over a piped field
	assert.Equal(t, []string{`"x"`, `"y"`},
		marshalAll(runFilter(t, ".tags[]", `{"tags":["x","y"]}`)))

	// Iterate terminates the walk: instructions after it do not run
	assert.Equal(t, []string{`{"name":"Alice"}`, `{"name":"Bob"}`},
		marshalAll(runFilter(t, ".[] | .name",
			`[{"name":"Alice"},{"name":"Bob"}]`)))
}

func TestExecuteBuiltinCallOutputs(t *testing.T) {
	// single-output builtin: output rides the register to the end
	assert.Equal(t, []string{"3"},
		marshalAll(runFilter(t, "length", "[1,2,3]")))

	// multi-output builtin: the first output becomes the current value and
	// is emitted last; the extras go straight to the output stream
	assert.Equal(t, []string{"2", "3", "1"},
		marshalAll(runFilter(t, "values", "[1,2,3]")))

	// zero-output builtin: the current value becomes null
	assert.Equal(t, []string{"null"},
		marshalAll(runFilter(t, "empty", "[1,2,3]")))

	// builtins chain through pipes
	assert.Equal(t, []string{"5"},
		marshalAll(runFilter(t, ".users | length", `{"users":[1,2,3,4,5]}`)))
	assert.Equal(t, []string{"2"},
		marshalAll(runFilter(t, "keys | length", `{"a":1,"b":2}`)))
}

func TestExecuteBuiltinFailure(t *testing.T) {
	prog := compileFilter(t, "sort")
	_, err := prog.Run(mustUnmarshal(t, `{"a":1}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sort: input must be array")
}

func TestExecuteUnknownBuiltin(t *testing.T) {
	prog := compileFilter(t, "nosuchbuiltin")
	_, err := prog.Run(mustUnmarshal(t, "null"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unknown builtin: nosuchbuiltin")
}

func TestExecuteUnknownOpcode(t *testing.T) {
	prog := &Program{Code: []Instruction{{Op: OpCode(200), A: -1, B: -1}}}
	_, err := prog.Run(Null())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unknown opcode")
}

func TestExecuteDiscardsOutputsOnError(t *testing.T) {
	// values emits extra outputs before sort fails; Run must discard them
	prog := compileFilter(t, "values | sort")
	outputs, err := prog.Run(mustUnmarshal(t, `[1,2]`))
	require.Error(t, err)
	assert.Nil(t, outputs)
}

func TestExecuteLengthOpcode(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{`"hello"`, "5"},
		{"[1,2,3]", "3"},
		{`{"a":1,"b":2}`, "2"},
		{"null", "0"},
		{"true", "0"},
		{"12.5", "0"},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			prog := &Program{Code: []Instruction{{Op: OpLength, A: -1, B: -1}}}
			outputs, err := prog.Run(mustUnmarshal(t, tc.input))
			require.NoError(t, err)
			require.Len(t, outputs, 1)
			assert.Equal(t, tc.expected, Marshal(outputs[0]))
		})
	}
}

func TestExecuteNopAndIdentity(t *testing.T) {
	prog := &Program{Code: []Instruction{
		{Op: OpNop, A: -1, B: -1},
		{Op: OpLoadIdentity, A: -1, B: -1},
	}}
	outputs, err := prog.Run(mustUnmarshal(t, `{"x":1}`))
	require.NoError(t, err)
	assert.Equal(t, []string{`{"x":1}`}, marshalAll(outputs))
}

func TestExecuteNilInput(t *testing.T) {
	prog := compileFilter(t, ".")
	outputs, err := prog.Run(nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"null"}, marshalAll(outputs))
}

func TestExecuteEmptyProgram(t *testing.T) {
	prog := &Program{}
	outputs, err := prog.Run(Number(7))
	require.NoError(t, err)
	assert.Equal(t, []string{"7"}, marshalAll(outputs))
}

func TestRunWithEmit(t *testing.T) {
	prog := compileFilter(t, ".[]")
	var seen []string
	err := prog.RunWithEmit(mustUnmarshal(t, "[1,2,3]"), func(v *Value) {
		seen = append(seen, Marshal(v))
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3"}, seen)
}

func TestExecuteDeterminism(t *testing.T) {
	prog := compileFilter(t, ".users[0].name")
	input := mustUnmarshal(t, `{"users":[{"name":"Alice"}]}`)
	first, err := prog.Run(input)
	require.NoError(t, err)
	second, err := prog.Run(input)
	require.NoError(t, err)
	assert.Equal(t, marshalAll(first), marshalAll(second))
}
