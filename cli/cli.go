// Package cli implements the jvq command: it reads one JSON or YAML
// document, applies a filter, and prints each streamed output.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/mattn/go-isatty"

	"github.com/bvald/jvq"
	"github.com/bvald/jvq/registry"
)

const name = "jvq"

const version = "0.9.0"

var revision = "HEAD"

type cli struct {
	inStream  io.Reader
	outStream io.Writer
	errStream io.Writer

	options flagopts
}

type flagopts struct {
	NullInput  bool   `short:"n" long:"null-input"`
	YAMLInput  bool   `long:"yaml-input"`
	YAMLOutput bool   `long:"yaml-output"`
	RawOutput  bool   `short:"r" long:"raw-output"`
	Compact    bool   `short:"c" long:"compact-output"`
	Tab        bool   `long:"tab"`
	Indent     int    `long:"indent" default:"2"`
	Color      bool   `short:"C" long:"color-output"`
	Mono       bool   `short:"M" long:"monochrome-output"`
	Schema     string `short:"s" long:"schema"`
	Schemas    string `long:"schemas" default:"schemas.json"`
	Version    bool   `short:"v" long:"version"`
	Help       bool   `short:"h" long:"help"`
}

const usage = `%[1]s - streaming JSON query processor

Version: %s (rev: %s/%s)

Synopsis:
    %% echo '{"foo": 128}' | %[1]s '.foo'

Usage:
    %[1]s [OPTIONS] [FILTER] [FILE]

Options:
    -n, --null-input          use null as the input value
        --yaml-input          read input as YAML
        --yaml-output         output as YAML
    -r, --raw-output          output strings without quotes
    -c, --compact-output      output without pretty-printing
        --tab                 use tabs for indentation
        --indent N            use N spaces for indentation (default 2)
    -C, --color-output        output with colors even if piped
    -M, --monochrome-output   output without colors
    -s, --schema ID           validate the input against a registered schema
        --schemas FILE        schema registry config (default schemas.json)
    -v, --version             display version information
    -h, --help                display this help
`

func (cli *cli) run(args []string) int {
	if err := cli.runInternal(args); err != nil {
		if err.Error() != "" {
			fmt.Fprintf(cli.errStream, "%s: %s\n", name, err)
		}
		return exitCodeOf(err)
	}
	return exitCodeOK
}

func (cli *cli) runInternal(args []string) error {
	rest, err := parseFlags(args, &cli.options)
	if err != nil {
		return &flagParseError{err}
	}
	opts := &cli.options
	if opts.Help {
		fmt.Fprintf(cli.outStream, usage, name, version, revision, runtime.Version())
		return nil
	}
	if opts.Version {
		fmt.Fprintf(cli.outStream, "%s %s (rev: %s/%s)\n",
			name, version, revision, runtime.Version())
		return nil
	}

	filter := "."
	if len(rest) > 0 {
		filter = rest[0]
	}
	if len(rest) > 2 {
		return &flagParseError{fmt.Errorf("too many arguments")}
	}

	registerExtensions()

	eng := jvq.New()
	prog, err := eng.Compile(filter)
	if err != nil {
		return &queryError{filter, err}
	}

	input, err := cli.readInput(rest)
	if err != nil {
		return err
	}

	if opts.Schema != "" {
		if err := cli.validateInput(input); err != nil {
			return err
		}
	}

	value, err := cli.decodeInput(input)
	if err != nil {
		return &inputError{fmt.Errorf("Invalid JSON input: %w", err)}
	}

	outputs, err := prog.Run(value)
	if err != nil {
		return err
	}
	return cli.printOutputs(outputs)
}

func (cli *cli) readInput(rest []string) ([]byte, error) {
	if cli.options.NullInput {
		return []byte("null"), nil
	}
	if len(rest) == 2 {
		data, err := os.ReadFile(rest[1])
		if err != nil {
			return nil, &inputError{err}
		}
		return data, nil
	}
	data, err := io.ReadAll(cli.inStream)
	if err != nil {
		return nil, &inputError{err}
	}
	return data, nil
}

func (cli *cli) decodeInput(data []byte) (*jvq.Value, error) {
	if cli.options.YAMLInput {
		return decodeYAML(data)
	}
	return jvq.Unmarshal(string(data))
}

func (cli *cli) validateInput(input []byte) error {
	reg, err := registry.Load(cli.options.Schemas)
	if err != nil {
		return &inputError{err}
	}
	schema, err := reg.GetSource(context.Background(), cli.options.Schema)
	if err != nil {
		return &inputError{err}
	}
	doc := input
	if cli.options.YAMLInput {
		v, err := decodeYAML(input)
		if err != nil {
			return &inputError{err}
		}
		doc = []byte(jvq.Marshal(v))
	}
	if err := registry.Validate(string(doc), schema); err != nil {
		return &schemaError{cli.options.Schema, err}
	}
	return nil
}

func (cli *cli) printOutputs(outputs []*jvq.Value) error {
	opts := &cli.options
	for _, v := range outputs {
		if opts.YAMLOutput {
			data, err := encodeYAML(v)
			if err != nil {
				return err
			}
			if _, err := cli.outStream.Write(data); err != nil {
				return err
			}
			continue
		}
		if opts.RawOutput && v.IsString() {
			if _, err := fmt.Fprintln(cli.outStream, v.Str()); err != nil {
				return err
			}
			continue
		}
		enc := newEncoder(cli.useColors(), opts.Tab && !opts.Compact, cli.indentWidth())
		if err := enc.marshal(v, cli.outStream); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(cli.outStream); err != nil {
			return err
		}
	}
	return nil
}

func (cli *cli) indentWidth() int {
	if cli.options.Compact || cli.options.Tab {
		return 0
	}
	return cli.options.Indent
}

func (cli *cli) useColors() bool {
	if cli.options.Color {
		return true
	}
	if cli.options.Mono {
		return false
	}
	if f, ok := cli.outStream.(*os.File); ok {
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return false
}
