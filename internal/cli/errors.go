package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// exitCoder is an error with an explicit process exit code.
type exitCoder interface {
	error
	ExitCode() int
}

// UsageError is a mistake in how lazydiff was invoked (exit code 2).
type UsageError struct {
	Message string
}

func (e UsageError) Error() string { return e.Message }
func (e UsageError) ExitCode() int { return 2 }

func usageErrorf(format string, args ...any) UsageError {
	return UsageError{Message: fmt.Sprintf(format, args...)}
}

// ExitError wraps an error with a specific exit code.
type ExitError struct {
	Code int
	Err  error
}

func (e ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Err.Error()
}

func (e ExitError) Unwrap() error { return e.Err }
func (e ExitError) ExitCode() int { return e.Code }

// reportError prints err to errOut and returns the exit code for it. Usage errors are followed by the command's usage text.
func reportError(cmd *cobra.Command, err error, errOut io.Writer) int {
	code := 1
	var ec exitCoder
	if errors.As(err, &ec) {
		code = ec.ExitCode()
	}
	if code == 0 {
		return 0
	}

	if msg := err.Error(); msg != "" {
		fmt.Fprintf(errOut, "Error: %s\n", msg)
	}
	if code == 2 && cmd != nil {
		fmt.Fprintln(errOut)
		fmt.Fprint(errOut, cmd.UsageString())
	}
	return code
}
