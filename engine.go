// Package jvq is a streaming JSON query engine. It compiles jq-style
// filter text through a lex → parse → compile pipeline into a
// constant-pooled bytecode Program and executes it against a JSON input,
// producing an ordered stream of JSON outputs.
//
//	eng := jvq.New()
//	outs, err := eng.RunStreaming(".users[0].name", `{"users":[{"name":"Alice"}]}`)
//
// A compiled Program is immutable and safe to share across goroutines
// for read-only execution. The builtin registry is process-wide; install
// custom builtins with RegisterBuiltin before running filters
// concurrently.
package jvq

import "errors"

// Engine ties the pipeline stages together. The zero value is usable;
// New is a convenience.
type Engine struct {
	prog *Program
}

// New returns a fresh Engine.
func New() *Engine {
	return &Engine{}
}

// Compile runs the filter through lexing, parsing, lowering and
// validation, retaining and returning the Program.
func (e *Engine) Compile(filter string) (*Program, error) {
	if filter == "" {
		return nil, errors.New("compile error: filter cannot be empty")
	}
	tokens := newLexer(filter).Tokenize()
	if last := tokens[len(tokens)-1]; last.Type == TokenError {
		if len(last.Value) > 0 && last.Value[0] == '"' {
			return nil, &unterminatedStringError{last.Line, last.Column}
		}
		return nil, &lexError{last.Value, last.Line, last.Column}
	}
	node, err := newParser(tokens).Parse()
	if err != nil {
		return nil, err
	}
	prog, err := compile(node)
	if err != nil {
		return nil, err
	}
	debugProgram(prog, filter)
	e.prog = prog
	return prog, nil
}

// Program returns the most recently compiled Program, or nil if Compile
// has not succeeded yet.
func (e *Engine) Program() *Program {
	return e.prog
}

// Run compiles the filter, executes it against the JSON input, and
// returns the first output as JSON text. An empty output stream yields
// the literal "null".
func (e *Engine) Run(filter, jsonIn string) (string, error) {
	outputs, err := e.RunStreaming(filter, jsonIn)
	if err != nil {
		return "", err
	}
	if len(outputs) == 0 {
		return "null", nil
	}
	return outputs[0], nil
}

// RunStreaming compiles the filter, executes it against the JSON input,
// and returns every output in order, each serialized as JSON text.
func (e *Engine) RunStreaming(filter, jsonIn string) ([]string, error) {
	prog, err := e.Compile(filter)
	if err != nil {
		return nil, err
	}
	input, err := Unmarshal(jsonIn)
	if err != nil {
		return nil, &inputError{err}
	}
	values, err := prog.Run(input)
	if err != nil {
		return nil, err
	}
	outputs := make([]string, len(values))
	for i, v := range values {
		outputs[i] = Marshal(v)
	}
	return outputs, nil
}

// RegisterBuiltin installs or replaces a builtin under the given name.
// It is the method form of the package-level RegisterBuiltin.
func (e *Engine) RegisterBuiltin(name string, fn BuiltinFunc) {
	RegisterBuiltin(name, fn)
}
