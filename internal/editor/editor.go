// Package editor implements the modal editing loop: the mode state machine,
// the command line and the full-frame renderer.
package editor

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/willibrandon/vex/internal/buffer"
	"github.com/willibrandon/vex/internal/input"
	"github.com/willibrandon/vex/internal/logger"
	"github.com/willibrandon/vex/internal/motion"
)

// ErrQuit is returned by Process when the user asked to leave the editor.
var ErrQuit = errors.New("quit")

// KeySource delivers decoded keys, blocking until one is available.
type KeySource interface {
	ReadKey() (input.Key, error)
}

// Options configures an Editor.
type Options struct {
	TabStop       int
	LineNumbers   bool
	GutterWidth   int
	StatusTimeout time.Duration
	Version       string

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
	// Logger defaults to the global logger.
	Logger *slog.Logger
}

// DefaultOptions returns the options used when no configuration is loaded.
func DefaultOptions() Options {
	return Options{
		TabStop:       buffer.DefaultTabStop,
		LineNumbers:   true,
		GutterWidth:   4,
		StatusTimeout: 5 * time.Second,
		Version:       "dev",
	}
}

// Editor is the single owner of the buffer, cursor, viewport and mode.
type Editor struct {
	buf  *buffer.Buffer
	keys KeySource
	out  io.Writer
	opts Options
	log  *slog.Logger

	// Cursor in raw characters, and its rendered column
	cx, cy int
	rx     int

	// Text area size and scroll offsets
	screenRows, screenCols int
	rowOffset, colOffset   int

	mode         Mode
	pendingOp    Operator
	pendingCount int

	statusMsg  string
	statusTime time.Time

	// prompt is the command line being typed, shown while in ModeCommand
	prompt string

	motions  *motion.Registry
	commands *CommandRegistry
	appliers map[Operator]RangeFunc
}

// New creates an editor for a terminal of rows by cols cells. Two rows are
// reserved for the status bar and the message line.
func New(keys KeySource, out io.Writer, rows, cols int, opts Options) *Editor {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = logger.With("component", "editor")
	}
	defaults := DefaultOptions()
	if opts.StatusTimeout <= 0 {
		opts.StatusTimeout = defaults.StatusTimeout
	}
	if opts.GutterWidth < 1 {
		opts.GutterWidth = defaults.GutterWidth
	}
	if opts.Version == "" {
		opts.Version = defaults.Version
	}

	e := &Editor{
		buf:      buffer.New(opts.TabStop),
		keys:     keys,
		out:      out,
		opts:     opts,
		log:      opts.Logger,
		mode:     ModeNormal,
		motions:  motion.Default(),
		commands: NewCommandRegistry(),
		appliers: defaultAppliers(),
	}
	e.Resize(rows, cols)
	registerCommands(e.commands)
	return e
}

// Resize sets the terminal size.
func (e *Editor) Resize(rows, cols int) {
	e.screenRows = max(1, rows-2)
	e.screenCols = max(1, cols)
}

// Buffer returns the text being edited.
func (e *Editor) Buffer() *buffer.Buffer {
	return e.buf
}

// Mode returns the current mode.
func (e *Editor) Mode() Mode {
	return e.mode
}

// Cursor returns the cursor position in raw characters.
func (e *Editor) Cursor() motion.Position {
	return motion.Position{Row: e.cy, Col: e.cx}
}

// StatusMessage returns the current status text, even if it has expired.
func (e *Editor) StatusMessage() string {
	return e.statusMsg
}

// SetStatus sets the transient status message.
func (e *Editor) SetStatus(format string, args ...any) {
	e.statusMsg = fmt.Sprintf(format, args...)
	e.statusTime = e.opts.Now()
}

// Open loads path into the buffer and resets the cursor. Failures are
// reported on the status line and leave the current buffer in place.
func (e *Editor) Open(path string) {
	res, err := e.buf.Load(path)
	if err != nil {
		e.log.Warn("Failed to load file", "path", path, "error", err)
		e.SetStatus("%v", err)
		return
	}

	e.cx, e.cy = 0, 0
	e.rowOffset, e.colOffset = 0, 0
	e.log.Info("Loaded file", "path", res.Path, "rows", res.Rows, "new_file", res.NewFile)
	if res.NewFile {
		e.SetStatus("\"%s\" [New File]", res.Path)
		return
	}
	e.SetStatus("\"%s\" %dL", res.Path, res.Rows)
}

// Save writes the buffer to path, or to its own filename when path is empty.
// It reports whether the save succeeded.
func (e *Editor) Save(path string) bool {
	res, err := e.buf.Save(path)
	if errors.Is(err, buffer.ErrNoFilename) {
		e.SetStatus("No file name")
		return false
	}
	if err != nil {
		e.log.Warn("Failed to save file", "path", path, "error", err)
		e.SetStatus("%v", err)
		return false
	}

	e.log.Info("Saved file", "path", res.Path, "lines", res.Lines, "bytes", res.Bytes)
	e.SetStatus("\"%s\" %dL, %dB written", res.Path, res.Lines, res.Bytes)
	return true
}

// Run repaints and processes keys until the user quits. It returns nil on
// a requested quit and the underlying error on a fatal failure.
func (e *Editor) Run() error {
	for {
		if err := e.Refresh(); err != nil {
			return err
		}
		k, err := e.keys.ReadKey()
		if err != nil {
			return err
		}
		if err := e.Process(k); err != nil {
			if errors.Is(err, ErrQuit) {
				return nil
			}
			return err
		}
	}
}

// Process handles one key in the current mode.
func (e *Editor) Process(k input.Key) error {
	switch e.mode {
	case ModeInsert:
		return e.processInsert(k)
	default:
		return e.processNormal(k)
	}
}

func (e *Editor) switchMode(m Mode) {
	if e.mode == m {
		return
	}
	e.log.Debug("Mode change", "from", e.mode, "to", m)
	e.mode = m
}

func (e *Editor) processNormal(k input.Key) error {
	if k.IsDigit() && (k != '0' || e.pendingCount > 0) {
		e.pendingCount = min(e.pendingCount*10+int(k-'0'), maxCount)
		return nil
	}

	switch k {
	case input.KeyEscape:
		e.clearPending()
		return nil
	case input.Ctrl('l'):
		return nil
	case input.Ctrl('s'):
		e.clearPending()
		e.Save("")
		return nil
	case input.Ctrl('q'):
		e.clearPending()
		return quit(e, "")
	case input.Ctrl('c'):
		e.clearPending()
		e.SetStatus("Press ^Q or type :q to quit")
		return nil
	case ':':
		e.clearPending()
		return e.commandLine()
	case 'c':
		return e.operatorKey(OpChange)
	case 'd':
		return e.operatorKey(OpDelete)
	case 'y':
		return e.operatorKey(OpYank)
	}

	if e.pendingOp == OpNone {
		switch k {
		case 'i':
			e.enterInsert(nil)
			return nil
		case 'I':
			e.enterInsert(motion.LineStart)
			return nil
		case 'a':
			e.enterInsert(motion.Right)
			return nil
		case 'A':
			e.enterInsert(motion.LineEnd)
			return nil
		}
	}

	e.applyMotion(k)
	return nil
}

// enterInsert optionally moves the cursor, then switches to Insert mode.
func (e *Editor) enterInsert(move motion.Func) {
	e.clearPending()
	if move != nil {
		e.moveTo(move(e.motionContext(), e.Cursor(), 1))
	}
	e.switchMode(ModeInsert)
}

// operatorKey sets the pending operator. Repeating it ("dd") applies the
// operator to count whole rows.
func (e *Editor) operatorKey(op Operator) error {
	if e.pendingOp != op {
		e.pendingOp = op
		return nil
	}

	ctx := e.motionContext()
	start := motion.Position{Row: e.cy}
	end := motion.LineEnd(ctx, start, max(1, e.pendingCount))
	e.clearPending()
	e.applyOperator(op, start, end)
	return nil
}

// applyMotion resolves k through the motion registry. With an operator
// pending, the motion defines the operator's range instead of moving the
// cursor. Pending state is cleared in every case.
func (e *Editor) applyMotion(k input.Key) {
	start := e.Cursor()
	count := e.pendingCount
	op := e.pendingOp
	e.clearPending()

	end, err := e.motions.Resolve(k, e.motionContext(), start, count)
	if err != nil {
		e.log.Debug("Motion failed", "key", k.String(), "error", err)
		if errors.Is(err, motion.ErrNotSupported) {
			e.SetStatus("motion '%s' not yet supported", k)
		} else {
			e.SetStatus("Unknown motion '%s'", k)
		}
		return
	}

	if op != OpNone {
		e.applyOperator(op, start, end)
		return
	}
	e.moveTo(end)
}

func (e *Editor) clearPending() {
	e.pendingOp = OpNone
	e.pendingCount = 0
}

func (e *Editor) motionContext() motion.Context {
	return motion.Context{
		Lines:     e.buf,
		PageRows:  e.screenRows,
		RowOffset: e.rowOffset,
	}
}

// moveTo places the cursor at p, clamped to the buffer.
func (e *Editor) moveTo(p motion.Position) {
	e.cy = max(0, min(p.Row, e.buf.RowCount()-1))
	e.cx = max(0, min(p.Col, e.buf.RowLen(e.cy)))
}

func (e *Editor) processInsert(k input.Key) error {
	switch k {
	case input.KeyEscape, input.Ctrl('c'):
		e.switchMode(ModeNormal)
		e.moveTo(motion.Left(e.motionContext(), e.Cursor(), 1))
	case input.KeyEnter:
		e.insertNewline()
	case input.KeyBackspace, input.Ctrl('h'):
		e.deleteBackward()
	case input.KeyDelete:
		e.deleteForward()
	case input.Ctrl('s'):
		e.Save("")
	case input.KeyArrowUp, input.KeyArrowDown, input.KeyArrowLeft, input.KeyArrowRight,
		input.KeyHome, input.KeyEnd, input.KeyPageUp, input.KeyPageDown:
		if end, err := e.motions.Resolve(k, e.motionContext(), e.Cursor(), 1); err == nil {
			e.moveTo(end)
		}
	default:
		if k.IsText() {
			e.insertChar(k.Byte())
		}
	}
	return nil
}

func (e *Editor) insertChar(c byte) {
	if e.cy >= e.buf.RowCount() {
		e.buf.InsertRow(e.buf.RowCount(), nil)
	}
	e.buf.InsertChar(e.cy, e.cx, c)
	e.cx++
}

func (e *Editor) insertNewline() {
	if e.buf.RowCount() == 0 {
		e.buf.InsertRow(0, nil)
	}
	e.buf.SplitRow(e.cy, e.cx)
	e.cy++
	e.cx = 0
}

func (e *Editor) deleteBackward() {
	switch {
	case e.cx > 0:
		e.buf.DeleteChar(e.cy, e.cx-1)
		e.cx--
	case e.cy > 0:
		e.cx = e.buf.RowLen(e.cy - 1)
		e.buf.JoinRow(e.cy)
		e.cy--
	}
}

func (e *Editor) deleteForward() {
	if e.cx < e.buf.RowLen(e.cy) {
		e.buf.DeleteChar(e.cy, e.cx)
		return
	}
	e.buf.JoinRow(e.cy + 1)
}
