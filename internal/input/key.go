// Package input decodes raw terminal bytes into logical key events.
package input

import "fmt"

// Key is a single decoded key event. Values below KeyArrowUp are raw bytes
// (printable characters and control characters); values from KeyArrowUp
// upward are symbolic keys resolved from escape sequences.
type Key int

const (
	KeyEnter     Key = '\r'
	KeyEscape    Key = '\x1b'
	KeyBackspace Key = 127

	KeyArrowUp Key = iota + 1000
	KeyArrowDown
	KeyArrowLeft
	KeyArrowRight
	KeyDelete
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
)

// Ctrl returns the key produced by holding Control and pressing c.
func Ctrl(c byte) Key {
	return Key(c & 0x1f)
}

// IsSymbolic reports whether k was resolved from an escape sequence.
func (k Key) IsSymbolic() bool {
	return k >= KeyArrowUp
}

// IsPrintable reports whether k is a printable byte (space through tilde)
// or a tab.
func (k Key) IsPrintable() bool {
	return k == '\t' || (k >= ' ' && k < 127)
}

// IsText reports whether k is typed into the buffer as-is: a tab, or any
// byte from space upward other than DEL. Bytes of multi-byte UTF-8
// characters qualify.
func (k Key) IsText() bool {
	return k == '\t' || (k >= ' ' && k <= 0xff && k != KeyBackspace)
}

// IsDigit reports whether k is an ASCII digit.
func (k Key) IsDigit() bool {
	return k >= '0' && k <= '9'
}

// Byte returns the raw byte for non-symbolic keys.
func (k Key) Byte() byte {
	return byte(k)
}

// String returns a human-readable name, used in status messages and logs.
func (k Key) String() string {
	switch k {
	case KeyEnter:
		return "enter"
	case KeyEscape:
		return "esc"
	case KeyBackspace:
		return "backspace"
	case '\t':
		return "tab"
	case KeyArrowUp:
		return "up"
	case KeyArrowDown:
		return "down"
	case KeyArrowLeft:
		return "left"
	case KeyArrowRight:
		return "right"
	case KeyDelete:
		return "delete"
	case KeyHome:
		return "home"
	case KeyEnd:
		return "end"
	case KeyPageUp:
		return "pgup"
	case KeyPageDown:
		return "pgdown"
	}
	if k >= 0 && k < ' ' {
		return fmt.Sprintf("ctrl+%c", byte(k)+'a'-1)
	}
	if k.IsPrintable() {
		return string(rune(k))
	}
	return fmt.Sprintf("key(%d)", int(k))
}
