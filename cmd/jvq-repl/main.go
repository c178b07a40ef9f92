// Command jvq-repl is an interactive shell for exploring a JSON document
// with jvq filters. It keeps one current document, runs each entered
// filter against it, and prints the output stream.
//
//	jvq> .users[0].name
//	"Alice"
//	jvq> :load other.json
//	jvq> :quit
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bvald/jvq"
	"github.com/bvald/jvq/registry"
)

const prompt = "jvq> "

type shell struct {
	engine   *jvq.Engine
	document *jvq.Value
	docText  string
	out      io.Writer
	errOut   io.Writer
}

func main() {
	sh := &shell{
		engine:   jvq.New(),
		document: jvq.Null(),
		docText:  "null",
		out:      os.Stdout,
		errOut:   os.Stderr,
	}
	if len(os.Args) > 1 {
		if err := sh.load(os.Args[1]); err != nil {
			fmt.Fprintln(sh.errOut, err)
			os.Exit(1)
		}
	}
	sh.loop(os.Stdin)
}

func (sh *shell) loop(in io.Reader) {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(sh.out, prompt)
		if !scanner.Scan() {
			fmt.Fprintln(sh.out)
			return
		}
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
		case line == ":quit" || line == ":q":
			return
		case strings.HasPrefix(line, ":load "):
			if err := sh.load(strings.TrimSpace(line[len(":load "):])); err != nil {
				fmt.Fprintln(sh.errOut, err)
			}
		case strings.HasPrefix(line, ":schema "):
			sh.checkSchema(strings.TrimSpace(line[len(":schema "):]))
		case strings.HasPrefix(line, ":"):
			fmt.Fprintf(sh.errOut, "unknown command %s (try :load, :schema, :quit)\n", line)
		default:
			sh.eval(line)
		}
	}
}

func (sh *shell) load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	doc, err := jvq.Unmarshal(string(data))
	if err != nil {
		return err
	}
	sh.document = doc
	sh.docText = string(data)
	return nil
}

func (sh *shell) eval(filter string) {
	prog, err := sh.engine.Compile(filter)
	if err != nil {
		fmt.Fprintln(sh.errOut, err)
		return
	}
	outputs, err := prog.Run(sh.document)
	if err != nil {
		fmt.Fprintln(sh.errOut, err)
		return
	}
	for _, v := range outputs {
		fmt.Fprintln(sh.out, jvq.Marshal(v))
	}
}

func (sh *shell) checkSchema(id string) {
	reg, err := registry.Load("schemas.json")
	if err != nil {
		fmt.Fprintln(sh.errOut, err)
		return
	}
	schema, err := reg.GetSource(context.Background(), id)
	if err != nil {
		fmt.Fprintln(sh.errOut, err)
		return
	}
	if err := registry.Validate(sh.docText, schema); err != nil {
		fmt.Fprintln(sh.errOut, err)
		return
	}
	fmt.Fprintln(sh.out, "document conforms to", id)
}
