package bfvm

import (
	"fmt"
	"strings"
)

// Program is a compiled operation sequence. It is not modified after compilation
// and can be shared by several VMs.
type Program struct {
	Ops []Op
}

func (p *Program) Len() int {
	if p == nil {
		return 0
	}
	return len(p.Ops)
}

func (p *Program) String() string {
	var b strings.Builder
	for i, op := range p.Ops {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(op.String())
	}
	return b.String()
}

// Validate checks that every jump has an in-range target and pairs with its counterpart.
func (p *Program) Validate() error {
	if p == nil {
		return nil
	}
	ops := p.Ops
	for i, op := range ops {
		arg := op.Arg()
		switch op.Code() {

		case OpMovePointer, OpAdjustCell, OpReadByte, OpWriteByte,
			OpSetCellZero, OpMoveCellTo:

		case OpScanForZero:
			if arg == 0 {
				return fmt.Errorf("%w: zero scan stride at %d", ErrInvalidProgram, i)
			}

		case OpJumpIfZero:
			if arg < 1 || arg > len(ops) {
				return fmt.Errorf("%w: jump target %d out of range at %d", ErrInvalidProgram, arg, i)
			}
			back := ops[arg-1]
			if back.Code() != OpJumpIfNotZero || back.Arg() != i {
				return fmt.Errorf("%w: unpaired jump at %d", ErrInvalidProgram, i)
			}

		case OpJumpIfNotZero:
			if arg < 0 || arg >= len(ops) {
				return fmt.Errorf("%w: jump target %d out of range at %d", ErrInvalidProgram, arg, i)
			}
			open := ops[arg]
			if open.Code() != OpJumpIfZero || open.Arg() != i+1 {
				return fmt.Errorf("%w: unpaired jump at %d", ErrInvalidProgram, i)
			}

		default:
			return fmt.Errorf("%w: unknown op %s at %d", ErrInvalidProgram, op, i)
		}
	}
	return nil
}
