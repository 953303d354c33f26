// Package terminal puts the controlling terminal into raw mode, reads input
// bytes with a short poll timeout and reports the window size.
package terminal

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/x/ansi"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// ErrNotTerminal is returned by Open when the input is not a terminal.
var ErrNotTerminal = errors.New("input is not a terminal")

// ClearScreen erases the screen and homes the cursor.
const ClearScreen = ansi.EraseEntireScreen + ansi.CursorHomePosition

// Terminal is a terminal in raw mode. It must be restored with Restore on
// every exit path.
type Terminal struct {
	in   *os.File
	out  *os.File
	fd   int
	orig *unix.Termios
}

// Open switches in to raw mode: no echo, no line buffering, no signal keys,
// no output post-processing, and reads that return after at most a tenth
// of a second even when no byte arrived.
func Open(in, out *os.File) (*Terminal, error) {
	fd := int(in.Fd())
	if !term.IsTerminal(fd) {
		return nil, ErrNotTerminal
	}

	orig, err := unix.IoctlGetTermios(fd, ioctlGetTermios)
	if err != nil {
		return nil, fmt.Errorf("tcgetattr: %w", err)
	}

	raw := *orig
	raw.Iflag &^= unix.BRKINT | unix.ICRNL | unix.INPCK | unix.ISTRIP | unix.IXON
	raw.Oflag &^= unix.OPOST
	raw.Cflag |= unix.CS8
	raw.Lflag &^= unix.ECHO | unix.ICANON | unix.ISIG | unix.IEXTEN
	raw.Cc[unix.VMIN] = 0
	raw.Cc[unix.VTIME] = 1

	if err := unix.IoctlSetTermios(fd, ioctlSetTermiosFlush, &raw); err != nil {
		return nil, fmt.Errorf("tcsetattr: %w", err)
	}

	return &Terminal{in: in, out: out, fd: fd, orig: orig}, nil
}

// Restore puts the terminal back into the mode it had before Open. It is
// safe to call more than once.
func (t *Terminal) Restore() error {
	if t == nil || t.orig == nil {
		return nil
	}
	if err := unix.IoctlSetTermios(t.fd, ioctlSetTermiosFlush, t.orig); err != nil {
		return fmt.Errorf("tcsetattr: %w", err)
	}
	t.orig = nil
	return nil
}

// Read reads raw input. It returns 0 bytes and a nil error when the poll
// window expires without input.
func (t *Terminal) Read(p []byte) (int, error) {
	n, err := unix.Read(t.fd, p)
	if errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.EINTR) {
		return 0, nil
	}
	if n < 0 {
		n = 0
	}
	return n, err
}

// Write writes p to the terminal output.
func (t *Terminal) Write(p []byte) (int, error) {
	return t.out.Write(p)
}

// Size returns the window size in rows and columns. The ioctl path is tried
// first; terminals that report no width are measured by moving the cursor
// to the bottom-right corner and asking for its position.
func (t *Terminal) Size() (rows, cols int, err error) {
	cols, rows, err = term.GetSize(t.fd)
	if err == nil && cols > 0 {
		return rows, cols, nil
	}
	rows, cols, err = querySize(t)
	if err != nil {
		return 0, 0, fmt.Errorf("get window size: %w", err)
	}
	return rows, cols, nil
}
