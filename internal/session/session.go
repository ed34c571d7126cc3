// Package session holds the interactive state of one lazydiff run: the diff model for the chosen source and target files, the navigation and selection state over
// it, and the file browser used to pick the files. Every user action is a single synchronous call to Handle.
//
// The session never touches the terminal. Collaborators that reach outside the process (file reads, the clipboard, patch export) are injected through Options so
// the state machine can be driven directly in tests.
package session

import (
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/wmeints/lazydiff/internal/browser"
	"github.com/wmeints/lazydiff/internal/clipboard"
	"github.com/wmeints/lazydiff/internal/diff"
	"github.com/wmeints/lazydiff/internal/export"
	"github.com/wmeints/lazydiff/internal/simplelogger"
)

// Mode is the controlling state of a Session.
type Mode int

const (
	ModeDiffView Mode = iota
	ModeSelectingSource
	ModeSelectingTarget
	ModeSelection
)

func (m Mode) String() string {
	switch m {
	case ModeDiffView:
		return "diff"
	case ModeSelectingSource:
		return "select-source"
	case ModeSelectingTarget:
		return "select-target"
	case ModeSelection:
		return "selection"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Input is one user action, already decoded from whatever key produced it.
type Input int

const (
	InputUp Input = iota
	InputDown
	InputSelectSource
	InputSelectTarget
	InputToggleSelection // enter or leave ModeSelection
	InputToggleAnchor
	InputConfirm
	InputCancel
	InputCopy
	InputExport
	InputQuit
)

// Status messages shown after an action.
const (
	msgSelectionMode   = "SELECTION MODE - Press Space to mark start/end, v to exit"
	msgSelectionExited = "Selection mode exited"
	msgNoSelection     = "No selection made. Press Space to mark start/end."
	msgNothingToSelect = "Nothing to select"
	msgPleaseSelect    = "Please select a file"
)

// Selection is an anchored range of model indices. Start is where the anchor was placed and End follows the cursor; either may be the larger.
type Selection struct {
	Start int
	End   int
}

// Clipboard receives copied patches. *clipboard.System implements it.
type Clipboard interface {
	SetText(text string) error
}

// Exporter writes a patch to a new file and returns the file's name. *export.Exporter implements it.
type Exporter interface {
	WriteNewFile(patch string) (string, error)
}

// Options configures a Session. Zero fields are filled with defaults that use the real filesystem and system clipboard.
type Options struct {
	Differ diff.LineDiffer // default: diff.DMPDiffer

	// ReadText loads a file's text. The default reads the file and requires valid UTF-8.
	ReadText func(path string) (string, error)

	Clipboard Clipboard        // default: clipboard.New()
	Exporter  Exporter         // default: export.New("")
	Browser   *browser.Browser // default: a browser on the current directory
}

func (o Options) withDefaults() (Options, error) {
	if o.Differ == nil {
		o.Differ = diff.DMPDiffer{}
	}
	if o.ReadText == nil {
		o.ReadText = readText
	}
	if o.Clipboard == nil {
		o.Clipboard = clipboard.New()
	}
	if o.Exporter == nil {
		o.Exporter = export.New("")
	}
	if o.Browser == nil {
		b, err := browser.New(".")
		if err != nil {
			return o, fmt.Errorf("failed to open file browser: %w", err)
		}
		o.Browser = b
	}
	return o, nil
}

// readText reads path as UTF-8 text.
func readText(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", fmt.Errorf("%s is not valid UTF-8 text", path)
	}
	return string(b), nil
}

// Session is the state machine behind the lazydiff UI. It is not safe for concurrent use; the event loop owns it.
type Session struct {
	opts Options

	mode       Mode
	sourcePath string
	targetPath string
	model      diff.Model

	viewportHeight int
	scroll         int

	// cursor and selection are only meaningful in ModeSelection.
	cursor    int
	selection *Selection

	status string
}

// New starts a session for sourcePath and targetPath, either of which may be empty.
//
// With both paths the diff is built immediately and the session starts in ModeDiffView; a read failure is returned. Otherwise the session starts by asking for
// whichever path is missing (the source first when neither is given).
func New(sourcePath, targetPath string, opts Options) (*Session, error) {
	opts, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}
	s := &Session{
		opts:           opts,
		sourcePath:     sourcePath,
		targetPath:     targetPath,
		viewportHeight: 1,
	}

	switch {
	case sourcePath != "" && targetPath != "":
		s.mode = ModeDiffView
		model, err := s.build(sourcePath, targetPath)
		if err != nil {
			return nil, err
		}
		s.model = model
	case sourcePath != "":
		s.mode = ModeSelectingTarget
		s.status = fmt.Sprintf("Source: %s - Select target file", sourcePath)
	case targetPath != "":
		s.mode = ModeSelectingSource
		s.status = fmt.Sprintf("Target: %s - Select source file", targetPath)
	default:
		s.mode = ModeSelectingSource
		s.status = msgPleaseSelect
	}

	return s, nil
}

// Mode returns the current mode.
func (s *Session) Mode() Mode { return s.mode }

// Model returns the current diff model. It is empty until both paths are known.
func (s *Session) Model() diff.Model { return s.model }

// SourcePath returns the source file path, or "" if not chosen yet.
func (s *Session) SourcePath() string { return s.sourcePath }

// TargetPath returns the target file path, or "" if not chosen yet.
func (s *Session) TargetPath() string { return s.targetPath }

// ScrollOffset returns the index of the first visible model entry.
func (s *Session) ScrollOffset() int { return s.scroll }

// Cursor returns the highlighted model index in ModeSelection.
func (s *Session) Cursor() int { return s.cursor }

// Selection returns the anchored selection, or nil if no anchor is placed.
func (s *Session) Selection() *Selection {
	if s.selection == nil {
		return nil
	}
	sel := *s.selection
	return &sel
}

// Status returns the message produced by the last action, if any.
func (s *Session) Status() string { return s.status }

// Browser returns the file browser shown in the Selecting modes.
func (s *Session) Browser() *browser.Browser { return s.opts.Browser }

// ViewportHeight returns the number of model rows visible at once.
func (s *Session) ViewportHeight() int { return s.viewportHeight }

// SetViewportHeight sets the number of visible rows (at least 1) and re-clamps the scroll positions so they remain valid for the new height.
func (s *Session) SetViewportHeight(h int) {
	s.viewportHeight = max(h, 1)
	s.clampScroll()
	if s.mode == ModeSelection {
		s.followCursor()
	}
	s.opts.Browser.UpdateScroll(s.viewportHeight)
}

// Range returns the inclusive selected range, independent of the direction the cursor moved after anchoring.
func (s *Session) Range() (diff.Range, bool) {
	if s.selection == nil {
		return diff.Range{}, false
	}
	return diff.Range{
		Start: min(s.selection.Start, s.selection.End),
		End:   max(s.selection.Start, s.selection.End),
	}, true
}

// Patch renders the current model as a patch, limited to the selected range if there is one.
func (s *Session) Patch() string {
	var rng *diff.Range
	if r, ok := s.Range(); ok {
		rng = &r
	}
	return diff.RenderPatch(s.sourcePath, s.targetPath, s.model, rng)
}

// ClearStatus drops the status message. Keys that map to no Input still dismiss it.
func (s *Session) ClearStatus() { s.status = "" }

// Handle applies in and reports whether the session should end. The previous status message is cleared first. Inputs that make no sense in the current mode do
// nothing.
func (s *Session) Handle(in Input) (quit bool) {
	s.status = ""

	switch s.mode {
	case ModeDiffView:
		return s.handleDiffView(in)
	case ModeSelectingSource, ModeSelectingTarget:
		return s.handleBrowser(in)
	case ModeSelection:
		return s.handleSelection(in)
	}
	return false
}

func (s *Session) handleDiffView(in Input) bool {
	switch in {
	case InputQuit:
		return true
	case InputSelectSource:
		s.startBrowsing(ModeSelectingSource)
	case InputSelectTarget:
		s.startBrowsing(ModeSelectingTarget)
	case InputToggleSelection:
		s.enterSelection()
	case InputUp:
		if s.scroll > 0 {
			s.scroll--
		}
	case InputDown:
		if s.scroll+s.viewportHeight < s.model.Len() {
			s.scroll++
		}
	case InputCopy:
		s.copyPatch("Diff")
	case InputExport:
		s.exportPatch("Diff")
	}
	return false
}

func (s *Session) handleBrowser(in Input) bool {
	b := s.opts.Browser
	switch in {
	case InputUp:
		b.MoveUp()
		b.UpdateScroll(s.viewportHeight)
	case InputDown:
		b.MoveDown()
		b.UpdateScroll(s.viewportHeight)
	case InputConfirm:
		s.confirmBrowser()
	case InputCancel, InputQuit:
		if s.sourcePath == "" || s.targetPath == "" {
			return true
		}
		s.mode = ModeDiffView
	}
	return false
}

func (s *Session) handleSelection(in Input) bool {
	switch in {
	case InputQuit:
		return true
	case InputToggleSelection:
		s.mode = ModeDiffView
		s.selection = nil
		s.status = msgSelectionExited
	case InputToggleAnchor:
		s.toggleAnchor()
	case InputUp:
		if s.cursor > 0 {
			s.cursor--
			s.followCursor()
			s.extendSelection()
		}
	case InputDown:
		if s.cursor+1 < s.model.Len() {
			s.cursor++
			s.followCursor()
			s.extendSelection()
		}
	case InputCopy:
		if _, ok := s.Range(); !ok {
			s.status = msgNoSelection
			return false
		}
		s.copyPatch("Selection")
	case InputExport:
		if _, ok := s.Range(); !ok {
			s.status = msgNoSelection
			return false
		}
		s.exportPatch("Selection")
	}
	return false
}

// startBrowsing switches to a Selecting mode with a fresh listing of the browser's directory.
func (s *Session) startBrowsing(mode Mode) {
	s.mode = mode
	b := s.opts.Browser
	if err := b.Load(); err != nil {
		simplelogger.Log("session: reload %s: %v", b.Dir(), err)
		s.status = fmt.Sprintf("Error: %v", err)
	}
	b.UpdateScroll(s.viewportHeight)
}

// confirmBrowser enters the highlighted directory or takes the highlighted file as the path being chosen.
func (s *Session) confirmBrowser() {
	res, err := s.opts.Browser.EnterSelected()
	if err != nil {
		s.status = fmt.Sprintf("Error: %v", err)
		return
	}
	if res.Kind != browser.ResultSelectedFile {
		return
	}

	sourcePath, targetPath := s.sourcePath, s.targetPath
	var label string
	if s.mode == ModeSelectingSource {
		sourcePath = res.Path
		label = "Source"
		if targetPath == "" {
			s.sourcePath = sourcePath
			s.startBrowsing(ModeSelectingTarget)
			if s.status == "" {
				s.status = fmt.Sprintf("Source: %s - Now select target file", sourcePath)
			}
			return
		}
	} else {
		targetPath = res.Path
		label = "Target"
		if sourcePath == "" {
			s.targetPath = targetPath
			s.startBrowsing(ModeSelectingSource)
			if s.status == "" {
				s.status = fmt.Sprintf("Target: %s - Now select source file", targetPath)
			}
			return
		}
	}

	model, err := s.build(sourcePath, targetPath)
	if err != nil {
		// The previous pair, if there was one, stays on screen unchanged.
		if s.sourcePath != "" && s.targetPath != "" {
			s.mode = ModeDiffView
		}
		s.status = fmt.Sprintf("Error loading files: %v", err)
		return
	}

	s.mode = ModeDiffView
	s.sourcePath, s.targetPath = sourcePath, targetPath
	s.model = model
	s.scroll = 0
	s.cursor = 0
	s.selection = nil
	s.status = fmt.Sprintf("%s file updated: %s", label, res.Path)
}

// build reads both files and diffs them.
func (s *Session) build(sourcePath, targetPath string) (diff.Model, error) {
	sourceText, err := s.opts.ReadText(sourcePath)
	if err != nil {
		simplelogger.Log("session: read source %s: %v", sourcePath, err)
		return diff.Model{}, fmt.Errorf("failed to read source file: %w", err)
	}
	targetText, err := s.opts.ReadText(targetPath)
	if err != nil {
		simplelogger.Log("session: read target %s: %v", targetPath, err)
		return diff.Model{}, fmt.Errorf("failed to read target file: %w", err)
	}

	m := diff.Build(s.opts.Differ, sourceText, targetText)
	st := m.Stats()
	simplelogger.Log("session: built diff %s -> %s: %d entries (+%d -%d)", sourcePath, targetPath, m.Len(), st.Additions, st.Deletions)
	return m, nil
}

func (s *Session) enterSelection() {
	if s.model.Len() == 0 {
		s.status = msgNothingToSelect
		return
	}
	s.mode = ModeSelection
	s.cursor = s.scroll
	s.selection = nil
	s.status = msgSelectionMode
}

// toggleAnchor places the anchor at the cursor. Once placed, the anchor stays until selection mode is exited; pressing again only reports the range.
func (s *Session) toggleAnchor() {
	if s.selection == nil {
		s.selection = &Selection{Start: s.cursor, End: s.cursor}
		s.status = fmt.Sprintf("Selection start: line %d", s.cursor+1)
		return
	}
	r, _ := s.Range()
	s.status = fmt.Sprintf("Selection: lines %d-%d (%d lines selected)", r.Start+1, r.End+1, r.Len())
}

// extendSelection moves the selection's free end to the cursor.
func (s *Session) extendSelection() {
	if s.selection != nil {
		s.selection.End = s.cursor
	}
}

// followCursor scrolls the minimum amount needed to keep the cursor visible.
func (s *Session) followCursor() {
	if s.cursor < s.scroll {
		s.scroll = s.cursor
	} else if s.cursor >= s.scroll+s.viewportHeight {
		s.scroll = s.cursor - s.viewportHeight + 1
	}
}

// clampScroll keeps the last page from scrolling past the final entry.
func (s *Session) clampScroll() {
	n := s.model.Len()
	if n <= s.viewportHeight {
		s.scroll = 0
		return
	}
	s.scroll = min(max(s.scroll, 0), n-s.viewportHeight)
}

func (s *Session) copyPatch(what string) {
	if err := s.opts.Clipboard.SetText(s.Patch()); err != nil {
		simplelogger.Log("session: copy: %v", err)
		if errors.Is(err, clipboard.ErrUnavailable) {
			s.status = "Error: Clipboard not available in this environment"
			return
		}
		s.status = fmt.Sprintf("Error: %v", err)
		return
	}
	s.status = what + " copied to clipboard!"
}

func (s *Session) exportPatch(what string) {
	name, err := s.opts.Exporter.WriteNewFile(s.Patch())
	if err != nil {
		simplelogger.Log("session: export: %v", err)
		s.status = fmt.Sprintf("Error: %v", err)
		return
	}
	s.status = fmt.Sprintf("%s exported to %s", what, name)
}
