package main

import (
	"fmt"
	"os"

	"github.com/launchpath/cmdkit/cmd/cli"
)

const (
	exitErrorTemplateConstant = "%v\n"
)

// main executes the cmdkit command-line application.
func main() {
	if executionError := cli.Execute(); executionError != nil {
		fmt.Fprintf(os.Stderr, exitErrorTemplateConstant, executionError)
		os.Exit(cli.ExitCodeForError(executionError))
	}
}
