package main

import (
	"os"

	"github.com/temirov/kbcheck/cmd/cli"
)

// main executes the kbcheck command-line application.
func main() {
	if executionError := cli.Execute(); executionError != nil {
		cli.ReportError(os.Stderr, executionError)
		os.Exit(1)
	}
}
