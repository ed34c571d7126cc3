// Package export writes patches to new files named diff_<unix-nanos>.patch.
package export

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

const maxNameAttempts = 1000

// Exporter writes patch files into Dir (the current directory when empty).
type Exporter struct {
	Dir string

	now func() time.Time
}

// New returns an Exporter writing into dir.
func New(dir string) *Exporter {
	return &Exporter{Dir: dir}
}

// WriteNewFile writes patch to a file that did not exist before the call and returns its name (joined with Dir when Dir is set).
//
// The name is derived from a nanosecond timestamp. Files are created exclusively, so two calls never share a name even when the clock has not advanced: on collision
// the timestamp is bumped until a free name is found.
func (e *Exporter) WriteNewFile(patch string) (string, error) {
	now := time.Now
	dir := ""
	if e != nil {
		dir = e.Dir
		if e.now != nil {
			now = e.now
		}
	}

	nanos := now().UnixNano()
	for attempt := 0; attempt < maxNameAttempts; attempt++ {
		name := fileName(nanos + int64(attempt))
		if dir != "" {
			name = filepath.Join(dir, name)
		}

		f, err := os.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("failed to write to file: %w", err)
		}

		_, werr := f.WriteString(patch)
		cerr := f.Close()
		if werr == nil {
			werr = cerr
		}
		if werr != nil {
			_ = os.Remove(name)
			return "", fmt.Errorf("failed to write to file: %w", werr)
		}
		return name, nil
	}
	return "", fmt.Errorf("failed to write to file: no free name after %d attempts", maxNameAttempts)
}

func fileName(nanos int64) string {
	return fmt.Sprintf("diff_%d.patch", nanos)
}
