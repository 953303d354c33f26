package input

import (
	"errors"
	"fmt"
	"io"
	"syscall"
)

// Decoder reads raw bytes and resolves them into keys.
//
// The underlying reader is expected to behave like a terminal in raw mode
// with a short read timeout: a read returning zero bytes and no error means
// no input arrived within the poll window.
type Decoder struct {
	r   io.Reader
	buf [1]byte
}

// NewDecoder returns a Decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: r}
}

// ReadKey blocks until one key is available. Empty reads are retried; any
// other read error is returned and should be treated as fatal.
func (d *Decoder) ReadKey() (Key, error) {
	var c byte
	for {
		n, err := d.r.Read(d.buf[:])
		if n == 1 {
			c = d.buf[0]
			break
		}
		if err != nil && !errors.Is(err, syscall.EAGAIN) {
			return 0, fmt.Errorf("read: %w", err)
		}
	}

	if Key(c) != KeyEscape {
		return Key(c), nil
	}
	return d.readEscape(), nil
}

// next reads one follow-up byte of an escape sequence. Any short read means
// the sequence is incomplete.
func (d *Decoder) next() (byte, bool) {
	if n, _ := d.r.Read(d.buf[:]); n != 1 {
		return 0, false
	}
	return d.buf[0], true
}

func (d *Decoder) readEscape() Key {
	first, ok := d.next()
	if !ok {
		return KeyEscape
	}
	second, ok := d.next()
	if !ok {
		return KeyEscape
	}

	switch first {
	case '[':
		if second >= '0' && second <= '9' {
			third, ok := d.next()
			if !ok || third != '~' {
				return KeyEscape
			}
			return tildeKey(second)
		}
		switch second {
		case 'A':
			return KeyArrowUp
		case 'B':
			return KeyArrowDown
		case 'C':
			return KeyArrowRight
		case 'D':
			return KeyArrowLeft
		case 'F':
			return KeyEnd
		case 'H':
			return KeyHome
		}
	case 'O':
		switch second {
		case 'F':
			return KeyEnd
		case 'H':
			return KeyHome
		}
	}
	return KeyEscape
}

// tildeKey maps the digit of an "ESC [ digit ~" sequence. Terminals disagree
// on Home and End, so 1/7 and 4/8 alias each other.
func tildeKey(digit byte) Key {
	switch digit {
	case '1', '7':
		return KeyHome
	case '3':
		return KeyDelete
	case '4', '8':
		return KeyEnd
	case '5':
		return KeyPageUp
	case '6':
		return KeyPageDown
	}
	return KeyEscape
}
