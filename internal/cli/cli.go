// Package cli is the lazydiff command line: it parses arguments, checks the files it was given, and hands a session to the terminal UI.
package cli

import (
	"bytes"
	"errors"
	"io"
	"os"
	"strings"
)

// Version is the lazydiff version. It is a var so build tooling can override it (for example via `-ldflags "-X .../internal/cli.Version=1.2.3"`).
var Version = "0.1.0"

// In/Out/Err override standard I/O. If nil, defaults are used. Overriding is useful for testing.
type RunOptions struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// Run runs the CLI with args (typically you'd use os.Args).
//
// It returns a recommended exit code (0, 1, or 2) and an error, if any:
//   - 0 -> err == nil
//   - 1 -> err != nil, but the structure of args is sound (flags are correct, etc).
//   - 2 -> err != nil, args parse error or misuse of flags, etc.
func Run(args []string, opts *RunOptions) (int, error) {
	argv := []string{}
	if len(args) > 0 {
		argv = args[1:]
	}

	var in io.Reader = os.Stdin
	var out io.Writer = os.Stdout
	var errW io.Writer = os.Stderr
	if opts != nil {
		if opts.In != nil {
			in = opts.In
		}
		if opts.Out != nil {
			out = opts.Out
		}
		if opts.Err != nil {
			errW = opts.Err
		}
	}

	// Tee stderr so a non-zero exit also comes back as an error value.
	var stderrBuf bytes.Buffer
	errTee := io.MultiWriter(errW, &stderrBuf)

	root := newRootCommand()
	root.SetArgs(argv)
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errTee)

	cmd, err := root.ExecuteC()
	if err == nil {
		return 0, nil
	}

	exitCode := reportError(cmd, err, errTee)
	if exitCode == 0 {
		return 0, nil
	}

	msg := strings.TrimSpace(stderrBuf.String())
	if first, _, ok := strings.Cut(msg, "\n"); ok {
		msg = first
	}
	msg = strings.TrimPrefix(msg, "Error: ")
	if msg == "" {
		msg = "command failed"
	}
	return exitCode, errors.New(msg)
}
