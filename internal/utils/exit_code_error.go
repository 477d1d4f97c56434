package utils

import "fmt"

const exitCodeErrorTemplateConstant = "exit status %d"

// ExitCodeError carries a process exit status for failures that must stay
// silent on the user's terminal. The entrypoint maps it to the exit code
// without printing anything.
type ExitCodeError struct {
	Code int
}

// NewExitCodeError constructs an ExitCodeError for the provided status.
func NewExitCodeError(exitCode int) ExitCodeError {
	return ExitCodeError{Code: exitCode}
}

// Error describes the carried exit status.
func (exitError ExitCodeError) Error() string {
	return fmt.Sprintf(exitCodeErrorTemplateConstant, exitError.Code)
}
