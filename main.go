package main

import (
	"fmt"
	"os"

	"github.com/temirov/ghissues/cmd/cli"
)

const (
	exitErrorTemplateConstant = "%v\n"
)

// main executes the ghissues command-line application.
func main() {
	if executionError := cli.Execute(); executionError != nil {
		fmt.Fprintf(os.Stderr, exitErrorTemplateConstant, executionError)
		os.Exit(cli.ResolveExitCode(executionError))
	}
}
