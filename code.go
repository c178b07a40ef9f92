package jvq

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// OpCode is a bytecode operation.
type OpCode uint16

const (
	OpNop OpCode = iota
	OpLoadIdentity
	OpGetField
	OpGetIndexNum
	OpGetIndexStr
	OpIterate
	OpAddConst
	OpLength
	OpBuiltinCall
)

func (op OpCode) String() string {
	switch op {
	case OpNop:
		return "nop"
	case OpLoadIdentity:
		return "loadidentity"
	case OpGetField:
		return "getfield"
	case OpGetIndexNum:
		return "getindexnum"
	case OpGetIndexStr:
		return "getindexstr"
	case OpIterate:
		return "iterate"
	case OpAddConst:
		return "addconst"
	case OpLength:
		return "length"
	case OpBuiltinCall:
		return "builtincall"
	default:
		return "unknown"
	}
}

// Instruction is one bytecode operation with up to two operands. A holds
// the pool index where the opcode takes one; unused operands are -1.
type Instruction struct {
	Op OpCode
	A  int32
	B  int32
}

// ConstantPool holds the string and number tables the instruction
// operands index into.
type ConstantPool struct {
	Strings []string
	Numbers []float64
}

// AddString appends s to the string table and returns its pool index.
// Equal strings are not merged; each call adds a new entry.
func (p *ConstantPool) AddString(s string) int32 {
	p.Strings = append(p.Strings, s)
	return int32(len(p.Strings) - 1)
}

// AddNumber appends n to the number table and returns its pool index.
// Equal numbers are not merged; each call adds a new entry.
func (p *ConstantPool) AddNumber(n float64) int32 {
	p.Numbers = append(p.Numbers, n)
	return int32(len(p.Numbers) - 1)
}

// Program is a compiled filter: a linear instruction sequence plus its
// constant pool. A Program is immutable after compilation and may be
// executed against many inputs, concurrently if desired.
type Program struct {
	Code []Instruction
	Pool ConstantPool
}

// Validate checks that every pool operand is in bounds for its table.
func (p *Program) Validate() error {
	for pc, ins := range p.Code {
		switch ins.Op {
		case OpGetField, OpGetIndexStr, OpBuiltinCall:
			if ins.A < 0 || int(ins.A) >= len(p.Pool.Strings) {
				return &validationError{pool: "string", pc: pc}
			}
		case OpGetIndexNum, OpAddConst:
			if ins.A < 0 || int(ins.A) >= len(p.Pool.Numbers) {
				return &validationError{pool: "number", pc: pc}
			}
		}
	}
	return nil
}

// Disassemble renders one instruction with its resolved pool constant.
func (p *Program) Disassemble(ins Instruction) string {
	switch ins.Op {
	case OpGetField, OpGetIndexStr, OpBuiltinCall:
		if ins.A >= 0 && int(ins.A) < len(p.Pool.Strings) {
			return ins.Op.String() + " " + strconv.Quote(p.Pool.Strings[ins.A])
		}
	case OpGetIndexNum, OpAddConst:
		if ins.A >= 0 && int(ins.A) < len(p.Pool.Numbers) {
			return ins.Op.String() + " " +
				strconv.FormatFloat(p.Pool.Numbers[ins.A], 'g', -1, 64)
		}
	}
	return ins.Op.String()
}

// Dump writes a readable disassembly of the whole program.
func (p *Program) Dump(w io.Writer) {
	fmt.Fprintln(w, "strings:")
	for i, s := range p.Pool.Strings {
		fmt.Fprintf(w, "\t%d\t%q\n", i, s)
	}
	fmt.Fprintln(w, "numbers:")
	for i, n := range p.Pool.Numbers {
		fmt.Fprintf(w, "\t%d\t%s\n", i, strconv.FormatFloat(n, 'g', -1, 64))
	}
	fmt.Fprintln(w, "code:")
	for pc, ins := range p.Code {
		fmt.Fprintf(w, "\t%d\t%s\n", pc, p.Disassemble(ins))
	}
}

func (p *Program) String() string {
	var sb strings.Builder
	p.Dump(&sb)
	return sb.String()
}
