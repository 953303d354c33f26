// Package motion computes cursor targets for Normal-mode movement keys.
//
// A motion is a pure function of a start position and a repeat count; it
// reads row lengths through Lines but never modifies the text.
package motion

import (
	"errors"
	"fmt"

	"github.com/willibrandon/vex/internal/input"
)

var (
	// ErrUnknownMotion is returned for keys with no registered motion.
	ErrUnknownMotion = errors.New("unknown motion")
	// ErrNotSupported is returned for motions that are declared but have no
	// movement rule yet.
	ErrNotSupported = errors.New("motion not yet supported")
)

// Position is a cursor location in raw-character coordinates.
type Position struct {
	Row int // Zero-based row index
	Col int // Zero-based character column
}

// Lines is the read-only view of the text a motion needs.
type Lines interface {
	RowCount() int
	RowLen(row int) int
}

// Context carries everything a motion may consult besides the start
// position.
type Context struct {
	Lines     Lines
	PageRows  int // Visible text rows
	RowOffset int // First visible row
}

// Func computes the target of a motion. count is always at least 1.
type Func func(ctx Context, start Position, count int) Position

type entry struct {
	fn        Func
	supported bool
	help      string
}

// Registry maps trigger keys to motions.
type Registry struct {
	motions map[input.Key]entry
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{motions: make(map[input.Key]entry)}
}

// Add registers fn under key.
func (r *Registry) Add(key input.Key, fn Func, help string) {
	r.motions[key] = entry{fn: fn, supported: true, help: help}
}

// Declare registers key as a motion without a movement rule. Resolving it
// returns the start position and ErrNotSupported.
func (r *Registry) Declare(key input.Key, help string) {
	r.motions[key] = entry{help: help}
}

// Has reports whether key is registered, supported or not.
func (r *Registry) Has(key input.Key) bool {
	_, ok := r.motions[key]
	return ok
}

// Help returns the description registered for key.
func (r *Registry) Help(key input.Key) string {
	return r.motions[key].help
}

// Resolve applies the motion bound to key. On error the start position is
// returned unchanged.
func (r *Registry) Resolve(key input.Key, ctx Context, start Position, count int) (Position, error) {
	e, ok := r.motions[key]
	if !ok {
		return start, fmt.Errorf("%w: '%s'", ErrUnknownMotion, key)
	}
	if !e.supported {
		return start, fmt.Errorf("%w: '%s'", ErrNotSupported, key)
	}
	return e.fn(ctx, start, max(1, count)), nil
}

// Default returns a registry with the standard motion set.
func Default() *Registry {
	r := NewRegistry()

	r.Add('h', Left, "Move cursor left")
	r.Add('l', Right, "Move cursor right")
	r.Add('j', Down, "Move cursor down")
	r.Add('k', Up, "Move cursor up")
	r.Add('_', LineStart, "Move to start of line")
	r.Add('$', LineEnd, "Move to end of line")
	r.Add('g', FirstRow, "Move to first line")
	r.Add('G', LastRow, "Move to last line")

	r.Add(input.KeyArrowLeft, Left, "Move cursor left")
	r.Add(input.KeyArrowRight, Right, "Move cursor right")
	r.Add(input.KeyArrowDown, Down, "Move cursor down")
	r.Add(input.KeyArrowUp, Up, "Move cursor up")
	r.Add(input.KeyHome, LineStart, "Move to start of line")
	r.Add(input.KeyEnd, LineEnd, "Move to end of line")
	r.Add(input.KeyPageUp, PageUp, "Scroll one screen up")
	r.Add(input.KeyPageDown, PageDown, "Scroll one screen down")

	// TODO: give w/b/W/B a movement rule once word and WORD boundaries are
	// settled (whitespace-delimited vs punctuation classes).
	r.Declare('w', "Move to next word")
	r.Declare('b', "Move to previous word")
	r.Declare('W', "Move to next WORD")
	r.Declare('B', "Move to previous WORD")

	return r
}
