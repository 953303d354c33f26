package editor

// Mode is the current editing mode.
type Mode int

const (
	// ModeNormal is the initial mode for navigation and operators
	ModeNormal Mode = iota
	// ModeInsert inserts typed characters at the cursor
	ModeInsert
	// ModeCommand reads an ex command on the message line
	ModeCommand
	// ModeVisual is reserved. No key enters it.
	ModeVisual
)

func (m Mode) String() string {
	return [...]string{"NORMAL", "INSERT", "COMMAND", "VISUAL"}[m]
}

// Operator is a Normal-mode operator waiting for a motion.
type Operator int

const (
	OpNone Operator = iota
	OpDelete
	OpYank
	OpChange
)

func (o Operator) String() string {
	return [...]string{"", "d", "y", "c"}[o]
}

// maxCount caps the accumulated repeat count.
const maxCount = 1_000_000
