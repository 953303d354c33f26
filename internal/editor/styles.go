package editor

import "github.com/charmbracelet/x/ansi"

// Terminal sequences used to paint a frame.
const (
	seqHideCursor = ansi.HideCursor
	seqShowCursor = ansi.ShowCursor
	seqHome       = ansi.CursorHomePosition
	seqClearLine  = ansi.EraseLineRight
	seqNewline    = "\r\n"

	fillerMarker = "~"
)

// statusBarStyle draws the status bar in reverse video.
var statusBarStyle = ansi.Style{}.Reverse()
