// Package simplelogger writes a debug log for lazydiff. The terminal belongs to the TUI, so log output goes to a file named by an environment variable and
// nowhere else.
package simplelogger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// EnvVar names the environment variable holding the log file path.
const EnvVar = "LAZYDIFF_LOG_FILE"

const stampLayout = "15:04:05.000"

var (
	mu  sync.Mutex
	now = time.Now
)

// Log appends one printf-style entry, stamped with the time of day, to the file named by LAZYDIFF_LOG_FILE.
//
// If LAZYDIFF_LOG_FILE is unset/empty or the path can't be opened as a file, Log is a no-op.
func Log(format string, args ...any) {
	path := os.Getenv(EnvVar)
	if path == "" {
		return
	}
	entry := formatEntry(now(), fmt.Sprintf(format, args...))

	mu.Lock()
	defer mu.Unlock()

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	defer f.Close()
	_, _ = io.WriteString(f, entry)
}

// formatEntry stamps msg with t. Continuation lines of a multi-line msg are indented under the first line's text.
func formatEntry(t time.Time, msg string) string {
	stamp := t.Format(stampLayout) + " "
	msg = strings.TrimRight(msg, "\n")
	return stamp + strings.ReplaceAll(msg, "\n", "\n"+strings.Repeat(" ", len(stamp))) + "\n"
}
