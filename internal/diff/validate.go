package diff

import (
	"fmt"
)

// validate checks that m reconstructs source and target line by line, returning an error on the first violation.
func (m Model) validate(source, target string) error {
	if err := checkSide(m.entries, StatusRemoved, splitLines(source)); err != nil {
		return fmt.Errorf("source: %w", err)
	}
	if err := checkSide(m.entries, StatusAdded, splitLines(target)); err != nil {
		return fmt.Errorf("target: %w", err)
	}
	return nil
}

// checkSide compares the Unchanged+side entries of entries against want.
func checkSide(entries []Entry, side Status, want []string) error {
	n := 0
	for i, e := range entries {
		if e.Status != StatusUnchanged && e.Status != side {
			continue
		}
		if n >= len(want) {
			return fmt.Errorf("entry[%d]: extra line %q", i, e.Text)
		}
		if e.Text != want[n] {
			return fmt.Errorf("entry[%d]: got %q, want %q (line %d)", i, e.Text, want[n], n+1)
		}
		n++
	}
	if n != len(want) {
		return fmt.Errorf("missing %d line(s) starting at line %d", len(want)-n, n+1)
	}
	return nil
}
