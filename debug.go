package jvq

import (
	"fmt"
	"io"
	"os"
)

var (
	debug    bool
	debugOut io.Writer
)

func init() {
	if out := os.Getenv("JVQ_DEBUG"); out != "" {
		debug = true
		if out == "stdout" {
			debugOut = os.Stdout
		} else {
			debugOut = os.Stderr
		}
	}
}

func debugProgram(p *Program, filter string) {
	if !debug {
		return
	}
	fmt.Fprintf(debugOut, "compiled %q:\n", filter)
	p.Dump(debugOut)
}

func debugState(p *Program, pc int, current *Value) {
	if !debug {
		return
	}
	fmt.Fprintf(debugOut, "\t%d\t%-25s\t%s\n", pc, p.Disassemble(p.Code[pc]), Marshal(current))
}
