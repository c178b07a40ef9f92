package cli

import (
	"bytes"
	"io"
	"os"
)

// Config specifies the streams to run the jvq CLI with.
//
// If Stdin is nil, an empty stdin is used. If Stdout or Stderr are nil,
// that output stream is discarded.
type Config struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Run the jvq CLI with the provided arguments, and return the exit
// code. The arguments must not contain os.Args[0].
func (cfg *Config) Run(args []string) int {
	cli := &cli{
		inStream:  cfg.Stdin,
		outStream: cfg.Stdout,
		errStream: cfg.Stderr,
	}
	if cli.inStream == nil {
		cli.inStream = bytes.NewReader(nil)
	}
	if cli.outStream == nil {
		cli.outStream = io.Discard
	}
	if cli.errStream == nil {
		cli.errStream = io.Discard
	}
	return cli.run(args)
}

// Run the jvq CLI on the standard streams.
func Run() int {
	return (&Config{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}).Run(os.Args[1:])
}
