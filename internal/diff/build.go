package diff

import (
	"strings"

	"github.com/wmeints/lazydiff/internal/simplelogger"
)

// Build diffs sourceText to targetText with differ and flattens the resulting groups into one Entry per physical line, preserving order. Build has no side effects:
// calling it again with the same inputs yields an identical Model.
func Build(differ LineDiffer, sourceText, targetText string) Model {
	if differ == nil {
		differ = DMPDiffer{}
	}

	var entries []Entry
	for _, c := range differ.DiffLines(sourceText, targetText) {
		for _, line := range splitLines(c.Text) {
			entries = append(entries, Entry{Status: c.Status, Text: line})
		}
	}
	m := Model{entries: entries}

	if err := m.validate(sourceText, targetText); err != nil {
		simplelogger.Log("diff: model does not reconstruct inputs: %v", err)
	}

	return m
}

// splitLines splits text into lines without terminators. A trailing terminator does not produce an empty final line, but an unterminated final line is kept.
func splitLines(text string) []string {
	raw := splitPreserveEOL(text, defaultEOL)
	if len(raw) == 0 {
		return nil
	}
	lines := make([]string, len(raw))
	for i, ln := range raw {
		core, _ := trimEOL(ln, defaultEOL)
		lines[i] = strings.TrimSuffix(core, "\r")
	}
	return lines
}

// splitPreserveEOL splits text by eol and preserves the eol on each line, except possibly the last.
func splitPreserveEOL(text, eol string) []string {
	if text == "" {
		return nil
	}
	if eol == "" {
		eol = defaultEOL
	}
	var lines []string
	for {
		idx := strings.Index(text, eol)
		if idx == -1 {
			if text != "" {
				lines = append(lines, text)
			}
			break
		}
		lines = append(lines, text[:idx+len(eol)])
		text = text[idx+len(eol):]
		if text == "" {
			break
		}
	}
	return lines
}

// trimEOL removes a trailing eol from a line if present.
func trimEOL(line, eol string) (string, bool) {
	if eol != "" && strings.HasSuffix(line, eol) {
		return line[:len(line)-len(eol)], true
	}
	return line, false
}
