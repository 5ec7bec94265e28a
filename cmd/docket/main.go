package main

import (
	"os"

	"github.com/viant/docket/cmd/docket/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
