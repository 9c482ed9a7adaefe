package bfvm

import (
	"fmt"
	"io"
)

// Run executes until the program counter passes the end of the program or an
// error occurs. Errors are terminal: they are yielded once and Run returns.
func (v *VM) Run(yield func(*Interrupt, error) bool) {
	if v.Program == nil {
		return
	}
	ops := v.Program.Ops
	tape := &v.Tape
	ptr := v.Pointer
	pc := v.PC
	steps := v.Steps
	profile := v.Profile
	countdown := v.Budget

	sync := func() {
		v.Pointer = ptr
		v.PC = pc
		v.Steps = steps
	}
	defer sync()

	fail := func(err error) {
		sync()
		yield(nil, err)
	}

	for pc < len(ops) {
		op := ops[pc]
		steps++

		switch op.Code() {

		case OpMovePointer:
			next := ptr + op.Arg()
			if next < 0 || next >= TapeSize {
				fail(&BoundsError{PC: pc, Pointer: next})
				return
			}
			ptr = next
			pc++

		case OpAdjustCell:
			tape[ptr] += byte(op.Arg())
			pc++

		case OpWriteByte:
			v.buf[0] = tape[ptr]
			if _, err := v.output.Write(v.buf[:]); err != nil {
				fail(fmt.Errorf("write at pc %d: %w", pc, err))
				return
			}
			pc++

		case OpReadByte:
			if v.input == nil {
				fail(&InputExhaustedError{PC: pc, Pointer: ptr})
				return
			}
			if _, err := io.ReadFull(v.input, v.buf[:]); err != nil {
				if err == io.EOF {
					fail(&InputExhaustedError{PC: pc, Pointer: ptr})
				} else {
					fail(fmt.Errorf("read at pc %d: %w", pc, err))
				}
				return
			}
			tape[ptr] = v.buf[0]
			pc++

		case OpJumpIfZero:
			if tape[ptr] == 0 {
				pc = op.Arg()
			} else {
				pc++
			}

		case OpJumpIfNotZero:
			if tape[ptr] != 0 {
				pc = op.Arg()
			} else {
				pc++
			}

		case OpSetCellZero:
			tape[ptr] = 0
			pc++

		case OpScanForZero:
			stride := op.Arg()
			for tape[ptr] != 0 {
				next := ptr + stride
				if next < 0 || next >= TapeSize {
					fail(&BoundsError{PC: pc, Pointer: next})
					return
				}
				ptr = next
			}
			pc++

		case OpMoveCellTo:
			if value := tape[ptr]; value != 0 {
				dest := ptr + op.Arg()
				if dest < 0 || dest >= TapeSize {
					fail(&BoundsError{PC: pc, Pointer: dest})
					return
				}
				tape[dest] += value
				tape[ptr] = 0
			}
			pc++

		default:
			fail(fmt.Errorf("%w: unknown op %s at pc %d", ErrInvalidProgram, op, pc))
			return
		}

		if profile != nil {
			profile.observe(op)
		}

		if countdown > 0 {
			countdown--
			if countdown == 0 {
				countdown = v.Budget
				sync()
				if !yield(InterruptBudget, nil) {
					return
				}
			}
		}
	}
}
