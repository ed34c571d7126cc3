package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wmeints/lazydiff/internal/browser"
	"github.com/wmeints/lazydiff/internal/session"
)

type nopClipboard struct{ text string }

func (c *nopClipboard) SetText(text string) error {
	c.text = text
	return nil
}

type nopExporter struct{}

func (nopExporter) WriteNewFile(string) (string, error) { return "diff_1.patch", nil }

func newTestSession(t *testing.T, withFiles bool) (*session.Session, string) {
	t.Helper()
	dir := t.TempDir()
	src := filepath.Join(dir, "a.txt")
	tgt := filepath.Join(dir, "b.txt")
	require.NoError(t, os.WriteFile(src, []byte("Line 1\nLine 2\nLine 3\nLine to remove\n"), 0o644))
	require.NoError(t, os.WriteFile(tgt, []byte("Line 1\nLine 2 modified\nLine 3\nLine added\n"), 0o644))

	b, err := browser.New(dir)
	require.NoError(t, err)
	opts := session.Options{Clipboard: &nopClipboard{}, Exporter: nopExporter{}, Browser: b}

	var s *session.Session
	if withFiles {
		s, err = session.New(src, tgt, opts)
	} else {
		s, err = session.New("", "", opts)
	}
	require.NoError(t, err)
	return s, dir
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func sized(t *testing.T, m model, w, h int) model {
	t.Helper()
	updated, _ := m.Update(tea.WindowSizeMsg{Width: w, Height: h})
	return updated.(model)
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestKeyMapInput(t *testing.T) {
	tests := []struct {
		msg  tea.KeyMsg
		want session.Input
	}{
		{runes("q"), session.InputQuit},
		{runes("s"), session.InputSelectSource},
		{runes("t"), session.InputSelectTarget},
		{runes("v"), session.InputToggleSelection},
		{tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, session.InputToggleAnchor},
		{runes(" "), session.InputToggleAnchor},
		{runes("c"), session.InputCopy},
		{runes("e"), session.InputExport},
		{tea.KeyMsg{Type: tea.KeyUp}, session.InputUp},
		{runes("k"), session.InputUp},
		{tea.KeyMsg{Type: tea.KeyDown}, session.InputDown},
		{runes("j"), session.InputDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, session.InputConfirm},
		{tea.KeyMsg{Type: tea.KeyEsc}, session.InputCancel},
	}
	for _, tt := range tests {
		got, ok := defaultKeyMap.input(tt.msg)
		if assert.True(t, ok, "key %q", tt.msg.String()) {
			assert.Equal(t, tt.want, got, "key %q", tt.msg.String())
		}
	}

	_, ok := defaultKeyMap.input(runes("x"))
	assert.False(t, ok)
}

func TestUpdate_WindowSizeSetsViewport(t *testing.T) {
	s, _ := newTestSession(t, true)
	m := sized(t, newModel(s), 80, 30)
	assert.Equal(t, 22, s.ViewportHeight())

	sized(t, m, 80, 5)
	assert.Equal(t, 1, s.ViewportHeight())
}

func TestUpdate_KeysDriveSession(t *testing.T) {
	s, _ := newTestSession(t, true)
	m := sized(t, newModel(s), 80, 30)

	updated, cmd := m.Update(runes("v"))
	m = updated.(model)
	assert.Nil(t, cmd)
	assert.Equal(t, session.ModeSelection, s.Mode())

	m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	r, ok := s.Range()
	require.True(t, ok)
	assert.Equal(t, 2, r.Len())

	m.Update(runes("c"))
	assert.Equal(t, "Selection copied to clipboard!", s.Status())
}

func TestUpdate_Quit(t *testing.T) {
	s, _ := newTestSession(t, true)
	m := sized(t, newModel(s), 80, 30)

	_, cmd := m.Update(runes("q"))
	assert.True(t, isQuit(cmd))
}

func TestUpdate_CtrlCQuitsFromBrowser(t *testing.T) {
	s, _ := newTestSession(t, true)
	m := sized(t, newModel(s), 80, 30)
	m.Update(runes("s"))
	require.Equal(t, session.ModeSelectingSource, s.Mode())

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.True(t, isQuit(cmd))
}

func TestUpdate_QInBrowserCancels(t *testing.T) {
	s, _ := newTestSession(t, true)
	m := sized(t, newModel(s), 80, 30)
	m.Update(runes("t"))

	_, cmd := m.Update(runes("q"))

	assert.False(t, isQuit(cmd))
	assert.Equal(t, session.ModeDiffView, s.Mode())
}

func TestUpdate_UnboundKeyClearsStatus(t *testing.T) {
	s, _ := newTestSession(t, true)
	m := sized(t, newModel(s), 80, 30)
	m.Update(runes("e"))
	require.Equal(t, "Diff exported to diff_1.patch", s.Status())

	_, cmd := m.Update(runes("x"))

	assert.Nil(t, cmd)
	assert.Empty(t, s.Status())
}

func TestView_EmptyBeforeFirstSize(t *testing.T) {
	s, _ := newTestSession(t, true)
	assert.Equal(t, "", newModel(s).View())
}

func TestView_DiffFillsTerminal(t *testing.T) {
	s, _ := newTestSession(t, true)
	m := sized(t, newModel(s), 60, 20)

	view := m.View()
	lines := strings.Split(view, "\n")

	assert.Len(t, lines, 20)
	assert.Contains(t, view, "Files")
	assert.Contains(t, view, "Source: ")
	assert.Contains(t, view, "+2 -2")
	assert.Contains(t, view, "-Line 2")
	assert.Contains(t, view, "+Line 2 modified")
	assert.Contains(t, view, " Line 3")
	assert.Contains(t, view, "select source")
}

func TestView_StatusReplacesHelp(t *testing.T) {
	s, _ := newTestSession(t, true)
	m := sized(t, newModel(s), 80, 20)
	m.Update(runes("v"))

	view := m.View()

	assert.Contains(t, view, "Diff [SELECTION]")
	assert.Contains(t, view, "SELECTION MODE - Press Space to mark start/end, v to exit")
	assert.NotContains(t, view, "select source")
}

func TestView_Browser(t *testing.T) {
	s, dir := newTestSession(t, false)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))
	require.NoError(t, s.Browser().Load())
	m := sized(t, newModel(s), 200, 20)
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyUp})

	view := m.View()

	assert.Contains(t, view, "Select Source File - "+dir)
	assert.Contains(t, view, "..")
	assert.NotContains(t, view, "../")
	assert.Contains(t, view, "sub/")
	assert.Contains(t, view, "a.txt")
	assert.Contains(t, view, "(none)")
	assert.Len(t, strings.Split(view, "\n"), 20)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab…", truncate("abcdef", 3))
	assert.Equal(t, "    x", truncate("\tx", 10))
}

func TestTruncateLeft(t *testing.T) {
	assert.Equal(t, "/a/b.txt", truncateLeft("/a/b.txt", 20))
	assert.Equal(t, "…/b.txt", truncateLeft("/long/dir/b.txt", 7))
	assert.Equal(t, "…", truncateLeft("abcdef", 1))
}

func TestBoxSize(t *testing.T) {
	out := box("Title", []string{"row"}, 10, 3)
	lines := strings.Split(out, "\n")

	require.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[0], "┌─ Title "))
	assert.Equal(t, "│row       │", lines[1])
}
