package editor

import (
	"errors"

	"github.com/willibrandon/vex/internal/buffer"
	"github.com/willibrandon/vex/internal/motion"
)

// ErrOperatorNotSupported is returned by range appliers that have no
// editing rule yet.
var ErrOperatorNotSupported = errors.New("operator not yet supported")

// RangeFunc applies an operator to the half-open range [start, end).
type RangeFunc func(b *buffer.Buffer, start, end motion.Position) error

func defaultAppliers() map[Operator]RangeFunc {
	return map[Operator]RangeFunc{
		OpDelete: deleteRange,
		OpYank:   yankRange,
		OpChange: changeRange,
	}
}

// TODO: implement delete, yank and change once word motions exist to give
// them character-wise ranges worth testing against.
func deleteRange(*buffer.Buffer, motion.Position, motion.Position) error {
	return ErrOperatorNotSupported
}

func yankRange(*buffer.Buffer, motion.Position, motion.Position) error {
	return ErrOperatorNotSupported
}

func changeRange(*buffer.Buffer, motion.Position, motion.Position) error {
	return ErrOperatorNotSupported
}

// orderRange returns a and b with the earlier position first.
func orderRange(a, b motion.Position) (motion.Position, motion.Position) {
	if b.Row < a.Row || (b.Row == a.Row && b.Col < a.Col) {
		return b, a
	}
	return a, b
}

// applyOperator hands the range to the operator's applier. The cursor moves
// to the start of the range only when the applier succeeds.
func (e *Editor) applyOperator(op Operator, start, end motion.Position) {
	start, end = orderRange(start, end)

	apply, ok := e.appliers[op]
	if !ok {
		return
	}
	err := apply(e.buf, start, end)
	switch {
	case errors.Is(err, ErrOperatorNotSupported):
		e.log.Debug("Operator not supported", "operator", op.String())
		e.SetStatus("operator %s not yet supported", op)
	case err != nil:
		e.log.Warn("Operator failed", "operator", op.String(), "error", err)
		e.SetStatus("%v", err)
	default:
		e.moveTo(start)
	}
}
