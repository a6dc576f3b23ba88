package main

import (
	"github.com/deepnoodle-ai/riffle/cmd/riffle/cli"
)

func main() {
	cli.Execute()
}
