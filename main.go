package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/jjtools/jjprompt/cmd/cli"
	"github.com/jjtools/jjprompt/internal/utils"
)

const (
	exitErrorTemplateConstant = "%v\n"
	fallbackExitCodeConstant  = 1
)

// main executes the jjprompt command-line application. Failures carrying an
// ExitCodeError terminate silently with that status so the host shell prompt
// stays clean; everything else (flag misuse) is reported on stderr.
func main() {
	executionError := cli.Execute()
	if executionError == nil {
		return
	}

	exitCodeError := utils.ExitCodeError{}
	if errors.As(executionError, &exitCodeError) {
		os.Exit(exitCodeError.Code)
	}

	fmt.Fprintf(os.Stderr, exitErrorTemplateConstant, executionError)
	os.Exit(fallbackExitCodeConstant)
}
