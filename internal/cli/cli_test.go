package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wmeints/lazydiff/internal/session"
)

// stubTUI replaces the terminal UI for the duration of a test and records the session it was given.
func stubTUI(t *testing.T, err error) **session.Session {
	t.Helper()
	var got *session.Session
	prev := launchTUI
	launchTUI = func(s *session.Session) error {
		got = s
		return err
	}
	t.Cleanup(func() { launchTUI = prev })
	return &got
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func TestRun_Help(t *testing.T) {
	var out bytes.Buffer
	var errOut bytes.Buffer
	code, err := Run([]string{"lazydiff", "-h"}, &RunOptions{Out: &out, Err: &errOut})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
	if !strings.Contains(out.String(), "lazydiff [source] [target]") {
		t.Fatalf("expected usage line in help, got: %q", out.String())
	}
	if errOut.Len() != 0 {
		t.Fatalf("expected empty stderr, got: %q", errOut.String())
	}
}

func TestRun_Version(t *testing.T) {
	got := stubTUI(t, nil)
	var out bytes.Buffer
	code, err := Run([]string{"lazydiff", "--version"}, &RunOptions{Out: &out, Err: &bytes.Buffer{}})
	if err != nil || code != 0 {
		t.Fatalf("expected success, got code=%d err=%v", code, err)
	}
	if out.String() != "lazydiff "+Version+"\n" {
		t.Fatalf("unexpected version output: %q", out.String())
	}
	if *got != nil {
		t.Fatalf("expected no TUI launch for --version")
	}
}

func TestRun_TooManyArgs_IsUsageError(t *testing.T) {
	stubTUI(t, nil)
	var errOut bytes.Buffer
	code, err := Run([]string{"lazydiff", "a", "b", "c"}, &RunOptions{Out: &bytes.Buffer{}, Err: &errOut})
	if err == nil {
		t.Fatalf("expected non-nil error")
	}
	if code != 2 {
		t.Fatalf("expected exit code 2, got %d (err=%v)", code, err)
	}
	if !strings.Contains(errOut.String(), "Usage:") {
		t.Fatalf("expected usage on stderr, got: %q", errOut.String())
	}
}

func TestRun_UnknownFlag_IsUsageError(t *testing.T) {
	stubTUI(t, nil)
	code, err := Run([]string{"lazydiff", "--nope"}, &RunOptions{Out: &bytes.Buffer{}, Err: &bytes.Buffer{}})
	if err == nil || code != 2 {
		t.Fatalf("expected usage error, got code=%d err=%v", code, err)
	}
}

func TestRun_UnknownAlgorithm_IsUsageError(t *testing.T) {
	got := stubTUI(t, nil)
	dir := t.TempDir()
	src := writeFile(t, dir, "a.txt", "a\n")
	tgt := writeFile(t, dir, "b.txt", "b\n")

	code, err := Run([]string{"lazydiff", "--algorithm", "patience", src, tgt}, &RunOptions{Out: &bytes.Buffer{}, Err: &bytes.Buffer{}})
	if err == nil || code != 2 {
		t.Fatalf("expected usage error, got code=%d err=%v", code, err)
	}
	if *got != nil {
		t.Fatalf("expected no TUI launch")
	}
}

func TestRun_MissingSource(t *testing.T) {
	got := stubTUI(t, nil)
	dir := t.TempDir()
	missing := filepath.Join(dir, "missing.txt")
	tgt := writeFile(t, dir, "b.txt", "b\n")

	var errOut bytes.Buffer
	code, err := Run([]string{"lazydiff", missing, tgt}, &RunOptions{Out: &bytes.Buffer{}, Err: &errOut})
	if code != 1 {
		t.Fatalf("expected exit code 1, got %d (err=%v)", code, err)
	}
	want := "Source file '" + missing + "' does not exist"
	if err == nil || err.Error() != want {
		t.Fatalf("expected error %q, got %v", want, err)
	}
	if errOut.String() != "Error: "+want+"\n" {
		t.Fatalf("unexpected stderr: %q", errOut.String())
	}
	if *got != nil {
		t.Fatalf("expected no TUI launch")
	}
}

func TestRun_TargetIsDirectory(t *testing.T) {
	stubTUI(t, nil)
	dir := t.TempDir()
	src := writeFile(t, dir, "a.txt", "a\n")

	code, err := Run([]string{"lazydiff", src, dir}, &RunOptions{Out: &bytes.Buffer{}, Err: &bytes.Buffer{}})
	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	want := "Target path '" + dir + "' is not a file"
	if err == nil || err.Error() != want {
		t.Fatalf("expected error %q, got %v", want, err)
	}
}

func TestRun_BothFilesStartInDiffView(t *testing.T) {
	got := stubTUI(t, nil)
	dir := t.TempDir()
	src := writeFile(t, dir, "a.txt", "Line 1\nLine 2\n")
	tgt := writeFile(t, dir, "b.txt", "Line 1\nLine 2 modified\n")

	code, err := Run([]string{"lazydiff", "--algorithm", "difflib", src, tgt}, &RunOptions{Out: &bytes.Buffer{}, Err: &bytes.Buffer{}})
	if err != nil || code != 0 {
		t.Fatalf("expected success, got code=%d err=%v", code, err)
	}
	s := *got
	if s == nil {
		t.Fatalf("expected TUI launch")
	}
	if s.Mode() != session.ModeDiffView {
		t.Fatalf("expected diff view, got %v", s.Mode())
	}
	if s.Model().Len() != 3 {
		t.Fatalf("expected 3 entries, got %d", s.Model().Len())
	}
}

func TestRun_NoFilesEntersInteractiveMode(t *testing.T) {
	got := stubTUI(t, nil)
	t.Chdir(t.TempDir())

	var out bytes.Buffer
	code, err := Run([]string{"lazydiff"}, &RunOptions{Out: &out, Err: &bytes.Buffer{}})
	if err != nil || code != 0 {
		t.Fatalf("expected success, got code=%d err=%v", code, err)
	}
	if out.String() != "No files specified, entering interactive mode\n" {
		t.Fatalf("unexpected stdout: %q", out.String())
	}
	if s := *got; s == nil || s.Mode() != session.ModeSelectingSource {
		t.Fatalf("expected source selection session, got %+v", s)
	}
}

func TestRun_SourceOnlySelectsTarget(t *testing.T) {
	got := stubTUI(t, nil)
	dir := t.TempDir()
	t.Chdir(dir)
	src := writeFile(t, dir, "a.txt", "a\n")

	code, err := Run([]string{"lazydiff", src}, &RunOptions{Out: &bytes.Buffer{}, Err: &bytes.Buffer{}})
	if err != nil || code != 0 {
		t.Fatalf("expected success, got code=%d err=%v", code, err)
	}
	if s := *got; s == nil || s.Mode() != session.ModeSelectingTarget || s.SourcePath() != src {
		t.Fatalf("expected target selection for %s, got %+v", src, s)
	}
}

func TestRun_TUIErrorExitsOne(t *testing.T) {
	stubTUI(t, errors.New("no tty"))
	dir := t.TempDir()
	src := writeFile(t, dir, "a.txt", "a\n")
	tgt := writeFile(t, dir, "b.txt", "b\n")

	code, err := Run([]string{"lazydiff", src, tgt}, &RunOptions{Out: &bytes.Buffer{}, Err: &bytes.Buffer{}})
	if code != 1 || err == nil || err.Error() != "no tty" {
		t.Fatalf("expected exit 1 with tui error, got code=%d err=%v", code, err)
	}
}

func TestValidateFile(t *testing.T) {
	dir := t.TempDir()
	f := writeFile(t, dir, "f.txt", "")

	if err := validateFile(f, "Source"); err != nil {
		t.Fatalf("expected regular file to validate, got %v", err)
	}
	if err := validateFile(dir, "Source"); err == nil || err.Error() != "Source path '"+dir+"' is not a file" {
		t.Fatalf("unexpected error for directory: %v", err)
	}
	missing := filepath.Join(dir, "nope")
	if err := validateFile(missing, "Target"); err == nil || err.Error() != "Target file '"+missing+"' does not exist" {
		t.Fatalf("unexpected error for missing file: %v", err)
	}
}
