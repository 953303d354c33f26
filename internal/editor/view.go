package editor

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

// filenameCells is the widest a filename may be in the status bar.
const filenameCells = 20

// Refresh paints one frame and writes it with a single Write.
func (e *Editor) Refresh() error {
	_, err := io.WriteString(e.out, e.Frame())
	return err
}

// Frame scrolls the viewport and returns the bytes of a full redraw.
func (e *Editor) Frame() string {
	e.scroll()

	var b strings.Builder
	b.WriteString(seqHideCursor)
	b.WriteString(seqHome)

	e.drawRows(&b)
	e.drawStatusBar(&b)
	e.drawMessage(&b)

	if e.prompt != "" {
		b.WriteString(ansi.CursorPosition(min(ansi.StringWidth(e.prompt), e.screenCols-1)+1, e.screenRows+2))
	} else {
		col := e.rx - e.colOffset + e.gutterWidth() + 1
		row := e.cy - e.rowOffset + 1
		b.WriteString(ansi.CursorPosition(col, row))
	}

	b.WriteString(seqShowCursor)
	return b.String()
}

func (e *Editor) drawRows(b *strings.Builder) {
	rows := e.buf.RowCount()
	gutter := e.gutterWidth()
	cols := e.textCols()

	for y := 0; y < e.screenRows; y++ {
		fileRow := y + e.rowOffset
		switch {
		case rows == 0:
			e.drawBannerRow(b, y)
		case fileRow >= rows:
			b.WriteString(fillerMarker)
		default:
			if gutter > 0 {
				b.WriteString(lineNumber(fileRow+1, gutter-1))
				b.WriteByte(' ')
			}
			render := e.buf.Row(fileRow).Render()
			start := min(e.colOffset, len(render))
			end := min(start+cols, len(render))
			b.Write(render[start:end])
		}

		b.WriteString(seqClearLine)
		b.WriteString(seqNewline)
	}
}

// lineNumber right-aligns n in width cells, keeping the low digits when n
// does not fit.
func lineNumber(n, width int) string {
	s := strconv.Itoa(n)
	if len(s) > width {
		return s[len(s)-width:]
	}
	return strings.Repeat(" ", width-len(s)) + s
}

// drawBannerRow draws the empty-buffer screen: a filler marker on every row
// and the version banner centered a third of the way down.
func (e *Editor) drawBannerRow(b *strings.Builder, y int) {
	if y != e.screenRows/3 {
		b.WriteString(fillerMarker)
		return
	}

	msg := ansi.Truncate(fmt.Sprintf("vex -- version %s", e.opts.Version), e.screenCols, "")
	padding := (e.screenCols - ansi.StringWidth(msg)) / 2
	if padding > 0 {
		b.WriteString(fillerMarker)
		padding--
	}
	b.WriteString(strings.Repeat(" ", padding))
	b.WriteString(msg)
}

// statusLeft is "<MODE> <name>[+] - <n> lines".
func (e *Editor) statusLeft() string {
	name := e.buf.Filename()
	if name == "" {
		name = "[No Name]"
	}
	name = runewidth.Truncate(name, filenameCells, "")

	modified := ""
	if e.buf.Dirty() {
		modified = "[+]"
	}
	return fmt.Sprintf("%s %s%s - %d lines", e.mode, name, modified, e.buf.RowCount())
}

// statusRight is the 1-based "<line>:<col>" of the cursor.
func (e *Editor) statusRight() string {
	return fmt.Sprintf("%d:%d", e.cy+1, e.cx+1)
}

// drawStatusBar draws the reverse-video bar padded to the full width with
// the cursor position right-aligned when it fits.
func (e *Editor) drawStatusBar(b *strings.Builder) {
	left := ansi.Truncate(e.statusLeft(), e.screenCols, "")
	right := e.statusRight()

	width := ansi.StringWidth(left)
	gap := e.screenCols - width - ansi.StringWidth(right)

	var bar strings.Builder
	bar.WriteString(left)
	if gap >= 0 {
		bar.WriteString(strings.Repeat(" ", gap))
		bar.WriteString(right)
	} else {
		bar.WriteString(strings.Repeat(" ", e.screenCols-width))
	}

	b.WriteString(statusBarStyle.Styled(bar.String()))
	b.WriteString(seqNewline)
}

// drawMessage draws the command prompt, or the status message while it is
// younger than the status timeout.
func (e *Editor) drawMessage(b *strings.Builder) {
	b.WriteString(seqClearLine)

	if e.prompt != "" {
		b.WriteString(ansi.Truncate(e.prompt, e.screenCols, ""))
		return
	}
	if e.statusMsg != "" && e.opts.Now().Sub(e.statusTime) < e.opts.StatusTimeout {
		b.WriteString(ansi.Truncate(e.statusMsg, e.screenCols, ""))
	}
}
