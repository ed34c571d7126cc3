// Package clipboard copies text to the system clipboard.
//
// The system clipboard is shared with every other process on the machine, so writes from this process are serialized with a package-level mutex. There is no
// transactionality beyond a single blocking write that reports success or failure.
package clipboard

import (
	"errors"
	"fmt"
	"sync"

	atotto "github.com/atotto/clipboard"
)

// ErrUnavailable indicates that the clipboard is not usable on this system (typically because the required OS integration or command-line utilities are missing).
var ErrUnavailable = errors.New("clipboard not available in this environment")

type backend interface {
	write(string) error
}

type systemBackend struct{}

func (systemBackend) write(s string) error {
	return atotto.WriteAll(s)
}

var (
	// writeMu guards the system clipboard for all System values in this process.
	writeMu sync.Mutex

	unsupported = func() bool { return atotto.Unsupported }
)

// System writes to the OS clipboard. A System whose backend was missing at construction stays unavailable: every SetText fails with ErrUnavailable.
type System struct {
	backend backend
	err     error
}

// New probes the system clipboard and returns a System. It never fails; use Available to check the result of the probe.
func New() *System {
	if unsupported() {
		return &System{err: errors.New("no clipboard utility found (install wl-clipboard, xclip, or xsel)")}
	}
	return &System{backend: systemBackend{}}
}

// Available reports whether the clipboard was usable when c was created.
func (c *System) Available() bool {
	return c != nil && c.err == nil && c.backend != nil
}

// SetText replaces the clipboard contents with text.
func (c *System) SetText(text string) error {
	if !c.Available() {
		if c != nil && c.err != nil {
			return errors.Join(ErrUnavailable, c.err)
		}
		return ErrUnavailable
	}

	writeMu.Lock()
	defer writeMu.Unlock()

	if err := c.backend.write(text); err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	return nil
}
