package bfvm

import (
	"encoding/gob"
	"fmt"
	"io"
)

const TapeSize = 30000

type VM struct {
	Program *Program
	Tape    [TapeSize]byte
	Pointer int
	PC      int
	Steps   int

	// Budget > 0 makes Run yield InterruptBudget every Budget executed ops.
	Budget int

	// Profile collects loop body traces when non-nil.
	Profile *Profile

	input  io.Reader
	output io.Writer
	buf    [1]byte
}

func NewVM(program *Program, input io.Reader, output io.Writer) *VM {
	vm := &VM{
		Program: program,
	}
	vm.Attach(input, output)
	return vm
}

// Attach sets the byte streams used by read and write operations.
func (v *VM) Attach(input io.Reader, output io.Writer) {
	if output == nil {
		output = io.Discard
	}
	v.input = input
	v.output = output
}

func (v *VM) Done() bool {
	return v.PC >= v.Program.Len()
}

func (v *VM) Cell() byte {
	return v.Tape[v.Pointer]
}

// snapshot wraps the state so profiling survives gob dropping an empty Profile.
type snapshot struct {
	State     *VM
	Profiling bool
	Trace     []Op
}

func (v *VM) Snapshot(w io.Writer) error {
	s := snapshot{
		State: v,
	}
	if v.Profile != nil {
		s.Profiling = true
		s.Trace = v.Profile.trace
	}
	enc := gob.NewEncoder(w)
	if err := enc.Encode(s); err != nil {
		return err
	}
	return nil
}

// Restore replaces the state with a snapshot. Attached streams are kept.
func (v *VM) Restore(r io.Reader) error {
	var s snapshot
	dec := gob.NewDecoder(r)
	if err := dec.Decode(&s); err != nil {
		return err
	}
	if s.State == nil {
		return fmt.Errorf("%w: empty snapshot", ErrInvalidProgram)
	}
	restored := *s.State
	if err := restored.Program.Validate(); err != nil {
		return err
	}
	if restored.Pointer < 0 || restored.Pointer >= TapeSize {
		return fmt.Errorf("%w: snapshot pointer %d", ErrInvalidProgram, restored.Pointer)
	}
	if restored.PC < 0 || restored.PC > restored.Program.Len() {
		return fmt.Errorf("%w: snapshot pc %d", ErrInvalidProgram, restored.PC)
	}
	if restored.Steps < 0 {
		return fmt.Errorf("%w: snapshot steps %d", ErrInvalidProgram, restored.Steps)
	}
	if restored.Budget < 0 {
		return fmt.Errorf("%w: snapshot budget %d", ErrInvalidProgram, restored.Budget)
	}
	if s.Profiling {
		if restored.Profile == nil {
			restored.Profile = NewProfile()
		}
		if restored.Profile.Counts == nil {
			restored.Profile.Counts = make(map[string]int)
		}
		restored.Profile.trace = s.Trace
	} else {
		restored.Profile = nil
	}
	restored.input = v.input
	restored.output = v.output
	*v = restored
	return nil
}
