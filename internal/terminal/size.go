package terminal

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/x/ansi"
)

var errBadCursorReport = errors.New("malformed cursor position report")

// querySize pushes the cursor as far right and down as the terminal allows
// and reads back its position.
func querySize(rw io.ReadWriter) (rows, cols int, err error) {
	seq := ansi.CursorForward(999) + ansi.CursorDown(999) + ansi.RequestCursorPositionReport
	if _, err := io.WriteString(rw, seq); err != nil {
		return 0, 0, err
	}

	var buf [32]byte
	var one [1]byte
	n := 0
	for n < len(buf)-1 {
		if k, _ := rw.Read(one[:]); k != 1 {
			break
		}
		if one[0] == 'R' {
			break
		}
		buf[n] = one[0]
		n++
	}
	return parseCursorReport(buf[:n])
}

// parseCursorReport parses "ESC [ rows ; cols" (the trailing R already
// stripped).
func parseCursorReport(b []byte) (rows, cols int, err error) {
	if len(b) < 2 || b[0] != '\x1b' || b[1] != '[' {
		return 0, 0, errBadCursorReport
	}
	if _, err := fmt.Sscanf(string(b[2:]), "%d;%d", &rows, &cols); err != nil {
		return 0, 0, fmt.Errorf("%w: %v", errBadCursorReport, err)
	}
	return rows, cols, nil
}
