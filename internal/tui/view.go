package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/wmeints/lazydiff/internal/browser"
	"github.com/wmeints/lazydiff/internal/diff"
	"github.com/wmeints/lazydiff/internal/session"
)

const (
	ellipsis = "…"
	tabWidth = 4
	noFile   = "(none)"
)

var (
	borderStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	labelStyle      = lipgloss.NewStyle().Bold(true)
	addedStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	removedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	unchangedStyle  = lipgloss.NewStyle()
	rangeBackground = lipgloss.Color("237")
	entryStyle      = lipgloss.NewStyle()
	selectedEntry   = lipgloss.NewStyle().Background(lipgloss.Color("8")).Bold(true)
	statusStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)
)

func (m model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	inner := max(m.width-2, 1)

	var pane string
	switch m.s.Mode() {
	case session.ModeSelectingSource, session.ModeSelectingTarget:
		pane = box(m.browserTitle(), m.browserRows(inner), inner, m.s.ViewportHeight())
	default:
		pane = box(m.diffTitle(), m.diffRows(inner), inner, m.s.ViewportHeight())
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		box("Files", []string{m.headerLine(inner)}, inner, 1),
		pane,
		box("", []string{m.statusLine(inner)}, inner, 1),
	)
}

func (m model) headerLine(width int) string {
	src, tgt := m.s.SourcePath(), m.s.TargetPath()
	if src == "" {
		src = noFile
	}
	if tgt == "" {
		tgt = noFile
	}

	var stats string
	if m.s.SourcePath() != "" && m.s.TargetPath() != "" {
		st := m.s.Model().Stats()
		stats = "  " + addedStyle.Render(fmt.Sprintf("+%d", st.Additions)) + " " + removedStyle.Render(fmt.Sprintf("-%d", st.Deletions))
	}

	const srcLabel, tgtLabel = "Source: ", "  Target: "
	avail := width - len(srcLabel) - len(tgtLabel) - lipgloss.Width(stats)
	src = truncateLeft(src, max(avail/2, 1))
	tgt = truncateLeft(tgt, max(avail-runewidth.StringWidth(src), 1))

	line := labelStyle.Render(srcLabel) + src + labelStyle.Render(tgtLabel) + tgt + stats
	if lipgloss.Width(line) > width {
		// Too narrow for anything useful; drop the styling and cut.
		return truncate(srcLabel+src+tgtLabel+tgt, width)
	}
	return line
}

func (m model) diffTitle() string {
	if m.s.Mode() == session.ModeSelection {
		return "Diff [SELECTION]"
	}
	return "Diff"
}

func (m model) diffRows(width int) []string {
	dm := m.s.Model()
	start := m.s.ScrollOffset()
	end := min(dm.Len(), start+m.s.ViewportHeight())
	selecting := m.s.Mode() == session.ModeSelection
	rng, hasRange := m.s.Range()

	rows := make([]string, 0, max(end-start, 0))
	for i := start; i < end; i++ {
		e := dm.At(i)
		text := runewidth.FillRight(truncate(string(e.Status.Prefix())+e.Text, width), width)

		style := statusLineStyle(e.Status)
		if selecting && hasRange && rng.Contains(i) {
			style = style.Background(rangeBackground)
		}
		if selecting && i == m.s.Cursor() {
			style = style.Reverse(true)
		}
		rows = append(rows, style.Render(text))
	}
	return rows
}

func statusLineStyle(s diff.Status) lipgloss.Style {
	switch s {
	case diff.StatusAdded:
		return addedStyle
	case diff.StatusRemoved:
		return removedStyle
	default:
		return unchangedStyle
	}
}

func (m model) browserTitle() string {
	b := m.s.Browser()
	if m.s.Mode() == session.ModeSelectingSource {
		return "Select Source File - " + b.Dir()
	}
	return "Select Target File - " + b.Dir()
}

func (m model) browserRows(width int) []string {
	b := m.s.Browser()
	entries := b.Entries()
	start := b.Scroll()
	end := min(len(entries), start+m.s.ViewportHeight())

	rows := make([]string, 0, max(end-start, 0))
	for i := start; i < end; i++ {
		text := runewidth.FillRight(truncate(browser.DisplayName(entries[i]), width), width)
		style := entryStyle
		if i == b.Selected() {
			style = selectedEntry
		}
		rows = append(rows, style.Render(text))
	}
	return rows
}

func (m model) statusLine(width int) string {
	if msg := m.s.Status(); msg != "" {
		return statusStyle.Render(truncate(msg, width))
	}
	h := m.help
	h.Width = width
	return h.View(m.keys.help(m.s.Mode()))
}

// box draws rows inside a border of the given inner size, with title set into the top edge. Rows must already fit width.
func box(title string, rows []string, width, height int) string {
	b := lipgloss.NormalBorder()

	var label string
	if title != "" && width > 4 {
		label = b.Top + " " + truncate(title, width-3) + " "
	}
	fill := max(width-runewidth.StringWidth(label), 0)

	var sb strings.Builder
	sb.WriteString(borderStyle.Render(b.TopLeft+label+strings.Repeat(b.Top, fill)+b.TopRight) + "\n")
	for i := range height {
		var row string
		if i < len(rows) {
			row = rows[i]
		}
		pad := max(width-lipgloss.Width(row), 0)
		sb.WriteString(borderStyle.Render(b.Left) + row + strings.Repeat(" ", pad) + borderStyle.Render(b.Right) + "\n")
	}
	sb.WriteString(borderStyle.Render(b.BottomLeft + strings.Repeat(b.Bottom, width) + b.BottomRight))
	return sb.String()
}

// truncate expands tabs and cuts s to at most width cells, marking the cut with an ellipsis.
func truncate(s string, width int) string {
	s = strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
	return runewidth.Truncate(s, width, ellipsis)
}

// truncateLeft cuts s to at most width cells by dropping its start, which keeps the file name of a long path visible.
func truncateLeft(s string, width int) string {
	if runewidth.StringWidth(s) <= width {
		return s
	}
	keep := width - runewidth.StringWidth(ellipsis)
	if keep <= 0 {
		return truncate(ellipsis, width)
	}

	runes := []rune(s)
	w := 0
	i := len(runes)
	for i > 0 {
		rw := runewidth.RuneWidth(runes[i-1])
		if w+rw > keep {
			break
		}
		w += rw
		i--
	}
	return ellipsis + string(runes[i:])
}
