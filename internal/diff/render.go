package diff

import (
	"strings"
)

// RenderPatch renders m as a unified-diff style patch.
//
// The output always starts with "--- <sourcePath>" and "+++ <targetPath>" header lines, followed by one line per entry: the entry's Status.Prefix and its text.
// Every line, including the last, ends with "\n".
//
// If rng is non-nil, only entries whose index is within rng (inclusive) are emitted. Range ends outside the model are clamped; a range that selects nothing
// yields only the two header lines.
//
// RenderPatch is deterministic: the same model and range always produce the same bytes.
func RenderPatch(sourcePath, targetPath string, m Model, rng *Range) string {
	start, end := 0, m.Len()-1
	if rng != nil {
		start = max(rng.Start, 0)
		end = min(rng.End, m.Len()-1)
	}

	var b strings.Builder

	// File headers
	b.WriteString("--- " + sourcePath + defaultEOL)
	b.WriteString("+++ " + targetPath + defaultEOL)

	for i := start; i <= end; i++ {
		e := m.entries[i]
		b.WriteByte(e.Status.Prefix())
		b.WriteString(e.Text)
		b.WriteString(defaultEOL)
	}

	return b.String()
}
