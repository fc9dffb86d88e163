package main

import (
	"os"

	"github.com/arthur-debert/fastgen/cmd/fastgen"
)

func main() {
	os.Exit(fastgen.Run(os.Args[1:]))
}
