package bflang

import (
	"errors"
	"fmt"
)

var ErrUnmatchedBracket = errors.New("unmatched bracket")

// SyntaxError reports an unmatched bracket. Index is the position in the
// instruction sequence. Offset is the byte offset in source, or -1 when the
// program was compiled from instructions.
type SyntaxError struct {
	Bracket Instruction
	Index   int
	Offset  int
}

func (e *SyntaxError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("unmatched '%s' at offset %d (instruction %d)", e.Bracket, e.Offset, e.Index)
	}
	return fmt.Sprintf("unmatched '%s' at instruction %d", e.Bracket, e.Index)
}

func (e *SyntaxError) Is(target error) bool {
	return target == ErrUnmatchedBracket
}
