package bfvm

import (
	"errors"
	"fmt"
	"io"
)

var (
	ErrOutOfBounds    = errors.New("data pointer out of bounds")
	ErrInputExhausted = errors.New("input exhausted")
	ErrInvalidProgram = errors.New("invalid program")
)

// BoundsError reports a move that would leave the tape. Pointer is the rejected position.
type BoundsError struct {
	PC      int
	Pointer int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("data pointer %d outside tape [0, %d) at pc %d", e.Pointer, TapeSize, e.PC)
}

func (e *BoundsError) Is(target error) bool {
	return target == ErrOutOfBounds
}

type InputExhaustedError struct {
	PC      int
	Pointer int
}

func (e *InputExhaustedError) Error() string {
	return fmt.Sprintf("read at pc %d (cell %d): input exhausted", e.PC, e.Pointer)
}

func (e *InputExhaustedError) Is(target error) bool {
	return target == ErrInputExhausted
}

func (e *InputExhaustedError) Unwrap() error {
	return io.EOF
}
