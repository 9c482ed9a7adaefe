package bflang

import (
	"bytes"

	"github.com/reusee/taibf/bfvm"
)

// Decompile expands a program back into primitive instructions. Collapsed
// loops come back in a canonical shape: [-] for a cleared cell, [>>] for a
// scan, [->>+<<] for a move.
func Decompile(program *bfvm.Program) []Instruction {
	var ret []Instruction
	repeat := func(pos, neg Instruction, n int) {
		inst := pos
		if n < 0 {
			inst = neg
			n = -n
		}
		for range n {
			ret = append(ret, inst)
		}
	}

	for _, op := range program.Ops {
		arg := op.Arg()
		switch op.Code() {
		case bfvm.OpMovePointer:
			repeat(MoveForward, MoveBackward, arg)
		case bfvm.OpAdjustCell:
			repeat(Increment, Decrement, arg)
		case bfvm.OpReadByte:
			ret = append(ret, Read)
		case bfvm.OpWriteByte:
			ret = append(ret, Write)
		case bfvm.OpJumpIfZero:
			ret = append(ret, LoopOpen)
		case bfvm.OpJumpIfNotZero:
			ret = append(ret, LoopClose)
		case bfvm.OpSetCellZero:
			ret = append(ret, LoopOpen, Decrement, LoopClose)
		case bfvm.OpScanForZero:
			ret = append(ret, LoopOpen)
			repeat(MoveForward, MoveBackward, arg)
			ret = append(ret, LoopClose)
		case bfvm.OpMoveCellTo:
			ret = append(ret, LoopOpen, Decrement)
			repeat(MoveForward, MoveBackward, arg)
			ret = append(ret, Increment)
			repeat(MoveForward, MoveBackward, -arg)
			ret = append(ret, LoopClose)
		}
	}
	return ret
}

// Format renders a program as source text with runs of at most width symbols per line.
func Format(program *bfvm.Program, width int) []byte {
	src := Encode(Decompile(program))
	if width <= 0 {
		return src
	}
	buf := new(bytes.Buffer)
	for len(src) > width {
		buf.Write(src[:width])
		buf.WriteByte('\n')
		src = src[width:]
	}
	buf.Write(src)
	return buf.Bytes()
}
