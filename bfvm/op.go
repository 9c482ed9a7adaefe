package bfvm

import (
	"strconv"
	"strings"
)

// Op is one compiled operation: the code lives in the low 8 bits, the signed
// argument in the remaining bits.
type Op uint64

const (
	OpMovePointer Op = iota + 1
	OpAdjustCell
	OpReadByte
	OpWriteByte
	OpJumpIfZero
	OpJumpIfNotZero
	OpSetCellZero
	OpScanForZero
	OpMoveCellTo
)

const codeMask = 0xff

func (o Op) With(arg int) Op {
	return o&codeMask | Op(int64(arg)<<8)
}

func (o Op) Code() Op {
	return o & codeMask
}

func (o Op) Arg() int {
	return int(int64(o) >> 8)
}

func (o Op) IsJump() bool {
	switch o.Code() {
	case OpJumpIfZero, OpJumpIfNotZero:
		return true
	}
	return false
}

func (o Op) String() string {
	arg := o.Arg()
	switch o.Code() {
	case OpMovePointer:
		return signed(">", "<", arg)
	case OpAdjustCell:
		return signed("+", "-", arg)
	case OpReadByte:
		return ","
	case OpWriteByte:
		return "."
	case OpJumpIfZero:
		return "[" + strconv.Itoa(arg)
	case OpJumpIfNotZero:
		return "]" + strconv.Itoa(arg)
	case OpSetCellZero:
		return "Z"
	case OpScanForZero:
		return "S" + strconv.Itoa(arg)
	case OpMoveCellTo:
		return "M" + strconv.Itoa(arg)
	}
	return "?" + strconv.FormatUint(uint64(o), 16)
}

func signed(pos, neg string, n int) string {
	sym := pos
	if n < 0 {
		sym = neg
		n = -n
	}
	if n == 1 {
		return sym
	}
	return sym + strconv.Itoa(n)
}

func formatOps(ops []Op) string {
	var b strings.Builder
	for _, op := range ops {
		b.WriteString(op.String())
	}
	return b.String()
}
