package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/wmeints/lazydiff/internal/diff"
	"github.com/wmeints/lazydiff/internal/session"
	"github.com/wmeints/lazydiff/internal/simplelogger"
	"github.com/wmeints/lazydiff/internal/tui"
)

// launchTUI shows a session in the terminal. Tests replace it.
var launchTUI = func(s *session.Session) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("lazydiff needs an interactive terminal")
	}
	return tui.Run(s)
}

func newRootCommand() *cobra.Command {
	var (
		showVersion bool
		algorithm   string
	)

	cmd := &cobra.Command{
		Use:   "lazydiff [source] [target]",
		Short: "A terminal-based diff viewer",
		Long: "lazydiff shows the line diff between a source and a target file. Missing files are picked with a file browser.\n" +
			"Lines or ranges of the diff can be copied to the clipboard or exported as a patch file.",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 2 {
				return usageErrorf("accepts at most 2 args, received %d", len(args))
			}
			return nil
		},
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				fmt.Fprintf(cmd.OutOrStdout(), "lazydiff %s\n", Version)
				return nil
			}

			differ, err := diff.DifferByName(algorithm)
			if err != nil {
				return UsageError{Message: err.Error()}
			}

			var sourcePath, targetPath string
			if len(args) > 0 {
				sourcePath = args[0]
			}
			if len(args) > 1 {
				targetPath = args[1]
			}
			return runDiff(cmd, sourcePath, targetPath, differ)
		},
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return UsageError{Message: err.Error()}
	})

	cmd.Flags().BoolVar(&showVersion, "version", false, "print the version and exit")
	cmd.Flags().StringVar(&algorithm, "algorithm", diff.DifferDMP, fmt.Sprintf("line diff algorithm (%s or %s)", diff.DifferDMP, diff.DifferDifflib))

	return cmd
}

func runDiff(cmd *cobra.Command, sourcePath, targetPath string, differ diff.LineDiffer) error {
	if sourcePath == "" && targetPath == "" {
		fmt.Fprintln(cmd.OutOrStdout(), "No files specified, entering interactive mode")
	}

	// Check the files before the terminal switches to the alternate screen, so errors stay visible.
	if sourcePath != "" {
		if err := validateFile(sourcePath, "Source"); err != nil {
			return ExitError{Code: 1, Err: err}
		}
	}
	if targetPath != "" {
		if err := validateFile(targetPath, "Target"); err != nil {
			return ExitError{Code: 1, Err: err}
		}
	}

	s, err := session.New(sourcePath, targetPath, session.Options{Differ: differ})
	if err != nil {
		return ExitError{Code: 1, Err: err}
	}

	simplelogger.Log("cli: starting session source=%q target=%q mode=%s", sourcePath, targetPath, s.Mode())
	if err := launchTUI(s); err != nil {
		return ExitError{Code: 1, Err: err}
	}
	return nil
}
