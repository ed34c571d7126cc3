package diff

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// Names accepted by DifferByName.
const (
	DifferDMP     = "dmp"
	DifferDifflib = "difflib"
)

// DifferByName returns the LineDiffer registered under name. An empty name selects the default (DifferDMP).
func DifferByName(name string) (LineDiffer, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", DifferDMP:
		return DMPDiffer{}, nil
	case DifferDifflib:
		return DifflibDiffer{}, nil
	default:
		return nil, fmt.Errorf("unknown diff algorithm %q (want %q or %q)", name, DifferDMP, DifferDifflib)
	}
}

// DMPDiffer aligns lines with diff-match-patch in line mode. Within each run of changes between two unchanged blocks, removed lines are reported before added lines.
type DMPDiffer struct{}

// DiffLines implements LineDiffer.
func (DMPDiffer) DiffLines(a, b string) []Change {
	lineArray := []string{}
	lineIndex := map[string]int{}
	rOld, okOld := linesToRunes(a, &lineArray, lineIndex)
	rNew, okNew := linesToRunes(b, &lineArray, lineIndex)
	if !okOld || !okNew {
		return DifflibDiffer{}.DiffLines(a, b)
	}

	dmp := diffmatchpatch.New()
	lineDiffs := dmp.DiffMainRunes(rOld, rNew, false)
	lineDiffs = dmp.DiffCleanupMerge(lineDiffs)

	// Decode rune-string back to the original lines using the lineArray mapping.
	decode := func(s string) string {
		if s == "" {
			return ""
		}
		var out strings.Builder
		for _, r := range s {
			idx := runeLineIndex(r)
			if idx >= 0 && idx < len(lineArray) {
				out.WriteString(lineArray[idx])
			}
		}
		return out.String()
	}

	var changes []Change
	var dels, ins strings.Builder

	flush := func() {
		if dels.Len() > 0 {
			changes = append(changes, Change{Status: StatusRemoved, Text: dels.String()})
			dels.Reset()
		}
		if ins.Len() > 0 {
			changes = append(changes, Change{Status: StatusAdded, Text: ins.String()})
			ins.Reset()
		}
	}

	for _, d := range lineDiffs {
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			flush()
			if text := decode(d.Text); text != "" {
				changes = append(changes, Change{Status: StatusUnchanged, Text: text})
			}
		case diffmatchpatch.DiffDelete:
			dels.WriteString(decode(d.Text))
		case diffmatchpatch.DiffInsert:
			ins.WriteString(decode(d.Text))
		}
	}
	flush()

	return changes
}

// Line indices are encoded as runes, skipping the surrogate range so every index survives the string round trip inside diff-match-patch.
const (
	surrogateMin = 0xD800
	surrogateLen = 0x800
	maxLineRune  = utf8.MaxRune
)

// linesToRunes encodes each line of text as one rune, adding unseen lines to lineArray. It reports false once there are more distinct lines than encodable runes.
func linesToRunes(text string, lineArray *[]string, lineIndex map[string]int) ([]rune, bool) {
	lines := splitPreserveEOL(text, defaultEOL)
	runes := make([]rune, 0, len(lines))
	for _, line := range lines {
		idx, ok := lineIndex[line]
		if !ok {
			idx = len(*lineArray)
			*lineArray = append(*lineArray, line)
			lineIndex[line] = idx
		}
		r := lineIndexRune(idx)
		if r > maxLineRune {
			return nil, false
		}
		runes = append(runes, r)
	}
	return runes, true
}

func lineIndexRune(idx int) rune {
	if idx >= surrogateMin {
		idx += surrogateLen
	}
	return rune(idx)
}

func runeLineIndex(r rune) int {
	idx := int(r)
	if idx >= surrogateMin+surrogateLen {
		idx -= surrogateLen
	}
	return idx
}

// DifflibDiffer aligns lines with difflib's SequenceMatcher (longest matching blocks, no junk heuristic). Replaced blocks are reported as removed lines followed
// by added lines.
type DifflibDiffer struct{}

// DiffLines implements LineDiffer.
func (DifflibDiffer) DiffLines(a, b string) []Change {
	oldLines := splitPreserveEOL(a, defaultEOL)
	newLines := splitPreserveEOL(b, defaultEOL)

	m := difflib.NewMatcherWithJunk(oldLines, newLines, false, nil)

	var changes []Change
	for _, op := range m.GetOpCodes() {
		switch op.Tag {
		case 'e':
			changes = append(changes, Change{Status: StatusUnchanged, Text: strings.Join(oldLines[op.I1:op.I2], "")})
		case 'd':
			changes = append(changes, Change{Status: StatusRemoved, Text: strings.Join(oldLines[op.I1:op.I2], "")})
		case 'i':
			changes = append(changes, Change{Status: StatusAdded, Text: strings.Join(newLines[op.J1:op.J2], "")})
		case 'r':
			changes = append(changes,
				Change{Status: StatusRemoved, Text: strings.Join(oldLines[op.I1:op.I2], "")},
				Change{Status: StatusAdded, Text: strings.Join(newLines[op.J1:op.J2], "")},
			)
		}
	}
	return changes
}
