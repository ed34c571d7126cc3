// Package browser implements the file picker used to choose the source and target files: a flat, scrollable listing of one directory at a time.
package browser

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// ParentName is the display name of the parent directory marker.
const ParentName = ".."

// Entry is one row in the listing.
type Entry struct {
	Name     string
	Path     string // Absolute path. For the parent marker, the parent directory.
	IsDir    bool
	IsParent bool
}

// ResultKind says what EnterSelected did.
type ResultKind int

const (
	ResultNothing          ResultKind = iota // nothing selectable (empty listing, or not a regular file)
	ResultEnteredDirectory                   // the browser moved into a new directory
	ResultSelectedFile                       // a regular file was chosen; Result.Path is set
)

// Result is returned by EnterSelected.
type Result struct {
	Kind ResultKind
	Path string
}

// Browser lists a directory: the parent marker first (unless at the filesystem root), then directories, then files, each group sorted by name.
type Browser struct {
	dir      string
	entries  []Entry
	selected int
	scroll   int
}

// New returns a Browser listing dir. A relative dir is made absolute.
func New(dir string) (*Browser, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	b := &Browser{dir: abs}
	if err := b.Load(); err != nil {
		return nil, err
	}
	return b, nil
}

// Dir returns the directory being listed.
func (b *Browser) Dir() string { return b.dir }

// Entries returns the current listing. Callers must not modify it.
func (b *Browser) Entries() []Entry { return b.entries }

// Selected returns the index of the highlighted entry.
func (b *Browser) Selected() int { return b.selected }

// Scroll returns the index of the first visible entry.
func (b *Browser) Scroll() int { return b.scroll }

// Load re-lists the current directory and resets the selection and scroll position.
func (b *Browser) Load() error {
	entries, err := listEntries(b.dir)
	if err != nil {
		return err
	}
	b.entries = entries
	b.selected = 0
	b.scroll = 0
	return nil
}

// MoveUp moves the highlight up one entry, scrolling up if it leaves the visible window.
func (b *Browser) MoveUp() {
	if b.selected > 0 {
		b.selected--
		if b.selected < b.scroll {
			b.scroll = b.selected
		}
	}
}

// MoveDown moves the highlight down one entry. Call UpdateScroll afterwards to keep it visible.
func (b *Browser) MoveDown() {
	if b.selected+1 < len(b.entries) {
		b.selected++
	}
}

// UpdateScroll adjusts the scroll position so the highlighted entry is within a window of viewportHeight rows.
func (b *Browser) UpdateScroll(viewportHeight int) {
	viewportHeight = max(viewportHeight, 1)
	if b.selected >= b.scroll+viewportHeight {
		b.scroll = b.selected - viewportHeight + 1
	} else if b.selected < b.scroll {
		b.scroll = b.selected
	}
}

// EnterSelected acts on the highlighted entry: directories (and the parent marker) are entered and re-listed, regular files are returned.
//
// If the new directory cannot be listed, the browser stays where it was and the error is returned.
func (b *Browser) EnterSelected() (Result, error) {
	if len(b.entries) == 0 {
		return Result{Kind: ResultNothing}, nil
	}
	e := b.entries[b.selected]

	if e.IsParent || e.IsDir {
		prev := b.dir
		b.dir = e.Path
		if err := b.Load(); err != nil {
			b.dir = prev
			return Result{Kind: ResultNothing}, err
		}
		return Result{Kind: ResultEnteredDirectory}, nil
	}

	info, err := os.Stat(e.Path)
	if err != nil {
		return Result{Kind: ResultNothing}, err
	}
	if !info.Mode().IsRegular() {
		return Result{Kind: ResultNothing}, nil
	}
	return Result{Kind: ResultSelectedFile, Path: e.Path}, nil
}

// DisplayName returns the label for e: directories end in "/".
func DisplayName(e Entry) string {
	if e.IsParent {
		return ParentName
	}
	if e.IsDir {
		return e.Name + "/"
	}
	return e.Name
}

// listEntries lists dir in browser order.
func listEntries(dir string) ([]Entry, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}

	var entries []Entry
	if parent := filepath.Dir(dir); parent != dir {
		entries = append(entries, Entry{Name: ParentName, Path: parent, IsDir: true, IsParent: true})
	}

	listed := make([]Entry, 0, len(dirEntries))
	for _, d := range dirEntries {
		p := filepath.Join(dir, d.Name())
		listed = append(listed, Entry{Name: d.Name(), Path: p, IsDir: isDir(p, d)})
	}
	slices.SortFunc(listed, func(a, b Entry) int {
		if a.IsDir != b.IsDir {
			if a.IsDir {
				return -1
			}
			return 1
		}
		return strings.Compare(a.Name, b.Name)
	})

	return append(entries, listed...), nil
}

// isDir reports whether d is a directory, following symlinks.
func isDir(path string, d fs.DirEntry) bool {
	if d.Type()&fs.ModeSymlink == 0 {
		return d.IsDir()
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
