// Package buffer holds the editor's text as an ordered list of rows and
// loads and saves it as plain text files.
package buffer

import (
	"bytes"
	"slices"
)

// DefaultTabStop is the render width of a tab stop.
const DefaultTabStop = 8

// Buffer is an ordered collection of rows. The index of a row is its line
// number. A buffer with zero rows is valid.
type Buffer struct {
	rows     []*Row
	dirty    bool
	filename string
	tabStop  int
}

// New returns an empty buffer. A tabStop below one falls back to
// DefaultTabStop.
func New(tabStop int) *Buffer {
	if tabStop < 1 {
		tabStop = DefaultTabStop
	}
	return &Buffer{tabStop: tabStop}
}

// TabStop returns the tab stop used for rendering.
func (b *Buffer) TabStop() int {
	return b.tabStop
}

// RowCount returns the number of rows.
func (b *Buffer) RowCount() int {
	return len(b.rows)
}

// Row returns the row at idx, or nil when idx is out of range.
func (b *Buffer) Row(idx int) *Row {
	if idx < 0 || idx >= len(b.rows) {
		return nil
	}
	return b.rows[idx]
}

// RowLen returns the raw length of the row at idx, or 0 when idx is out of
// range.
func (b *Buffer) RowLen(idx int) int {
	if r := b.Row(idx); r != nil {
		return r.Len()
	}
	return 0
}

// Lines returns a copy of every row's raw content.
func (b *Buffer) Lines() []string {
	lines := make([]string, len(b.rows))
	for i, r := range b.rows {
		lines[i] = r.String()
	}
	return lines
}

// Dirty reports whether the content differs from the last load or save.
func (b *Buffer) Dirty() bool {
	return b.dirty
}

// Filename returns the associated file path, which may be empty.
func (b *Buffer) Filename() string {
	return b.filename
}

// SetFilename associates the buffer with path.
func (b *Buffer) SetFilename(path string) {
	b.filename = path
}

// InsertRow inserts a row holding text at index at. The index is clamped
// into [0, RowCount].
func (b *Buffer) InsertRow(at int, text []byte) {
	at = max(0, min(at, len(b.rows)))
	b.rows = slices.Insert(b.rows, at, newRow(text, b.tabStop))
	b.dirty = true
}

// DeleteRow removes the row at index at. Out of range indexes are a no-op
// and report false.
func (b *Buffer) DeleteRow(at int) bool {
	if at < 0 || at >= len(b.rows) {
		return false
	}
	b.rows = slices.Delete(b.rows, at, at+1)
	b.dirty = true
	return true
}

// AppendText appends text to the end of the row at idx.
func (b *Buffer) AppendText(idx int, text []byte) bool {
	r := b.Row(idx)
	if r == nil {
		return false
	}
	r.chars = append(r.chars, text...)
	r.update(b.tabStop)
	b.dirty = true
	return true
}

// InsertChar inserts c into the row at idx before column at. A column
// outside [0, len] appends at the end of the row.
func (b *Buffer) InsertChar(idx, at int, c byte) bool {
	r := b.Row(idx)
	if r == nil {
		return false
	}
	if at < 0 || at > len(r.chars) {
		at = len(r.chars)
	}
	r.chars = slices.Insert(r.chars, at, c)
	r.update(b.tabStop)
	b.dirty = true
	return true
}

// DeleteChar removes the character at column at of the row at idx.
func (b *Buffer) DeleteChar(idx, at int) bool {
	r := b.Row(idx)
	if r == nil || at < 0 || at >= len(r.chars) {
		return false
	}
	r.chars = slices.Delete(r.chars, at, at+1)
	r.update(b.tabStop)
	b.dirty = true
	return true
}

// SplitRow breaks the row at idx before column at, moving the remainder into
// a new row directly below.
func (b *Buffer) SplitRow(idx, at int) bool {
	r := b.Row(idx)
	if r == nil {
		return false
	}
	at = max(0, min(at, len(r.chars)))
	tail := append([]byte(nil), r.chars[at:]...)
	r.chars = r.chars[:at]
	r.update(b.tabStop)
	b.InsertRow(idx+1, tail)
	return true
}

// JoinRow appends the row at idx to the row above it and removes it.
func (b *Buffer) JoinRow(idx int) bool {
	if idx <= 0 || idx >= len(b.rows) {
		return false
	}
	b.AppendText(idx-1, b.rows[idx].chars)
	return b.DeleteRow(idx)
}

// Serialize returns the content with every row terminated by a newline. An
// empty buffer serializes to zero bytes.
func (b *Buffer) Serialize() []byte {
	total := 0
	for _, r := range b.rows {
		total += len(r.chars) + 1
	}

	var out bytes.Buffer
	out.Grow(total)
	for _, r := range b.rows {
		out.Write(r.chars)
		out.WriteByte('\n')
	}
	return out.Bytes()
}

// replace swaps in a fresh set of rows and marks the buffer clean.
func (b *Buffer) replace(lines [][]byte) {
	rows := make([]*Row, len(lines))
	for i, line := range lines {
		rows[i] = newRow(line, b.tabStop)
	}
	b.rows = rows
	b.dirty = false
}
