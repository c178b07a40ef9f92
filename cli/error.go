package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/bvald/jvq"
)

const (
	exitCodeOK = iota
	exitCodeDefaultErr
	exitCodeFlagParseErr
	exitCodeCompileErr
	exitCodeInvalidInputErr
)

type flagParseError struct {
	err error
}

func (err *flagParseError) Error() string {
	return err.err.Error()
}

func (*flagParseError) ExitCode() int {
	return exitCodeFlagParseErr
}

// queryError decorates a compile failure with a caret excerpt pointing
// at the offending token of the filter text.
type queryError struct {
	contents string
	err      error
}

func (err *queryError) Error() string {
	var pe *jvq.ParseError
	if errors.As(err.err, &pe) && !strings.ContainsRune(err.contents, '\n') {
		linestr := err.contents
		column := runewidth.StringWidth(prefixColumns(linestr, pe.Token.Column))
		return fmt.Sprintf("invalid query: %s\n    %s\n    %*c  %s",
			err.contents, linestr, column+1, '^', err.err)
	}
	return fmt.Sprintf("invalid query: %s: %s", err.contents, err.err)
}

func (*queryError) ExitCode() int {
	return exitCodeCompileErr
}

// prefixColumns returns the text before the 1-based column position.
func prefixColumns(line string, column int) string {
	if column <= 1 {
		return ""
	}
	if column-1 < len(line) {
		return line[:column-1]
	}
	return line
}

type inputError struct {
	err error
}

func (err *inputError) Error() string {
	return err.err.Error()
}

func (*inputError) ExitCode() int {
	return exitCodeInvalidInputErr
}

type schemaError struct {
	id  string
	err error
}

func (err *schemaError) Error() string {
	return "schema validation failed (" + err.id + "): " + err.err.Error()
}

func (*schemaError) ExitCode() int {
	return exitCodeInvalidInputErr
}

func exitCodeOf(err error) int {
	var coded interface{ ExitCode() int }
	if errors.As(err, &coded) {
		return coded.ExitCode()
	}
	return exitCodeDefaultErr
}
