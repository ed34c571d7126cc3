package diff

// Status is the comparison status of one line.
type Status int

const (
	StatusUnchanged Status = iota
	StatusRemoved
	StatusAdded
)

// Prefix returns the unified-diff marker for s: ' ', '-', or '+'.
func (s Status) Prefix() byte {
	switch s {
	case StatusRemoved:
		return '-'
	case StatusAdded:
		return '+'
	default:
		return ' '
	}
}

func (s Status) String() string {
	switch s {
	case StatusUnchanged:
		return "unchanged"
	case StatusRemoved:
		return "removed"
	case StatusAdded:
		return "added"
	default:
		return "unknown"
	}
}

// Entry is one physical line of comparison output.
type Entry struct {
	Status Status
	Text   string // Line content without its terminator.
}

// Change is one group produced by a LineDiffer. Text is a block of one or more lines, usually '\n' terminated (the last line of the input may not be).
type Change struct {
	Status Status
	Text   string
}

// LineDiffer aligns two texts line by line.
//
// Implementations must return groups whose Unchanged+Removed texts concatenate to a and whose Unchanged+Added texts concatenate to b.
type LineDiffer interface {
	DiffLines(a, b string) []Change
}

// Range is an inclusive range of entry indices.
type Range struct {
	Start int
	End   int
}

// Len returns the number of indices in r (0 if End < Start).
func (r Range) Len() int {
	if r.End < r.Start {
		return 0
	}
	return r.End - r.Start + 1
}

// Contains reports whether i is within r.
func (r Range) Contains(i int) bool {
	return i >= r.Start && i <= r.End
}

// Stats counts changed lines in a Model.
type Stats struct {
	Additions int
	Deletions int
}

// Model is the ordered sequence of entries for one (source, target) pair. A Model is immutable; the zero value is an empty model.
type Model struct {
	entries []Entry
}

// NewModel returns a Model holding a copy of entries.
func NewModel(entries []Entry) Model {
	if len(entries) == 0 {
		return Model{}
	}
	return Model{entries: append([]Entry(nil), entries...)}
}

// Len returns the number of entries.
func (m Model) Len() int {
	return len(m.entries)
}

// At returns the entry at index i. It panics if i is out of range.
func (m Model) At(i int) Entry {
	return m.entries[i]
}

// Entries returns a copy of the entries.
func (m Model) Entries() []Entry {
	return append([]Entry(nil), m.entries...)
}

// Stats returns the number of added and removed lines.
func (m Model) Stats() Stats {
	var s Stats
	for _, e := range m.entries {
		switch e.Status {
		case StatusAdded:
			s.Additions++
		case StatusRemoved:
			s.Deletions++
		}
	}
	return s
}

// defaultEOL is the EOL ('\n').
const defaultEOL = "\n"
