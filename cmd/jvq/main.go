package main

import (
	"os"

	"github.com/bvald/jvq/cli"
)

func main() {
	os.Exit(cli.Run())
}
