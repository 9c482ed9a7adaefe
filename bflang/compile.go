package bflang

import (
	"errors"

	"github.com/reusee/taibf/bfvm"
)

type compiler struct {
	code     []bfvm.Op
	loops    []loopContext
	noMerge  bool
	noIdioms bool
	stats    *Stats
}

type loopContext struct {
	openIP int
	index  int
}

// Stats describes what a compilation did.
type Stats struct {
	Instructions int
	Ops          int
	Loops        int
	SetCellZero  int
	ScanForZero  int
	MoveCellTo   int
}

func (s Stats) Idioms() int {
	return s.SetCellZero + s.ScanForZero + s.MoveCellTo
}

// WithStats fills stats after a successful compilation.
func WithStats(stats *Stats) Option {
	return func(c *compiler) {
		c.stats = stats
	}
}

func newCompiler(opts []Option) *compiler {
	c := &compiler{}
	for _, opt := range opts {
		opt(c)
	}
	if c.stats == nil {
		c.stats = new(Stats)
	}
	return c
}

func (c *compiler) emit(op bfvm.Op) {
	c.code = append(c.code, op)
}

func (c *compiler) currentIP() int {
	return len(c.code)
}

// Compile turns instructions into a program. Unmatched brackets fail with *SyntaxError.
func Compile(insts []Instruction, opts ...Option) (*bfvm.Program, error) {
	c := newCompiler(opts)
	*c.stats = Stats{
		Instructions: len(insts),
	}

	for i := 0; i < len(insts); i++ {
		inst := insts[i]
		switch inst {

		case MoveForward, MoveBackward, Increment, Decrement:
			n := 1
			if !c.noMerge {
				for i+n < len(insts) && insts[i+n] == inst {
					n++
				}
			}
			c.emit(runOp(inst, n))
			i += n - 1

		case Read:
			c.emit(bfvm.OpReadByte)

		case Write:
			c.emit(bfvm.OpWriteByte)

		case LoopOpen:
			c.loops = append(c.loops, loopContext{
				openIP: c.currentIP(),
				index:  i,
			})
			// patched when the loop closes
			c.emit(bfvm.OpJumpIfZero)

		case LoopClose:
			if len(c.loops) == 0 {
				return nil, &SyntaxError{
					Bracket: LoopClose,
					Index:   i,
					Offset:  -1,
				}
			}
			loop := c.loops[len(c.loops)-1]
			c.loops = c.loops[:len(c.loops)-1]
			c.closeLoop(loop.openIP)

		}
	}

	if len(c.loops) > 0 {
		return nil, &SyntaxError{
			Bracket: LoopOpen,
			Index:   c.loops[0].index,
			Offset:  -1,
		}
	}

	c.stats.Ops = len(c.code)
	return &bfvm.Program{
		Ops: c.code,
	}, nil
}

func runOp(inst Instruction, n int) bfvm.Op {
	switch inst {
	case MoveForward:
		return bfvm.OpMovePointer.With(n)
	case MoveBackward:
		return bfvm.OpMovePointer.With(-n)
	case Increment:
		return bfvm.OpAdjustCell.With(n)
	case Decrement:
		return bfvm.OpAdjustCell.With(-n)
	}
	panic("not a run instruction: " + inst.String())
}

func (c *compiler) closeLoop(openIP int) {
	if !c.noIdioms {
		if op, ok := matchIdiom(c.code[openIP+1:]); ok {
			c.code = append(c.code[:openIP], op)
			switch op.Code() {
			case bfvm.OpSetCellZero:
				c.stats.SetCellZero++
			case bfvm.OpScanForZero:
				c.stats.ScanForZero++
			case bfvm.OpMoveCellTo:
				c.stats.MoveCellTo++
			}
			return
		}
	}
	c.stats.Loops++
	c.code[openIP] = bfvm.OpJumpIfZero.With(c.currentIP() + 1)
	c.emit(bfvm.OpJumpIfNotZero.With(openIP))
}

// CompileSource decodes and compiles src. Syntax errors carry the byte offset of the bracket.
func CompileSource(src []byte, opts ...Option) (*bfvm.Program, error) {
	program, err := Compile(Decode(src), opts...)
	if err != nil {
		var syntaxErr *SyntaxError
		if errors.As(err, &syntaxErr) {
			offsets := Offsets(src)
			if syntaxErr.Index < len(offsets) {
				syntaxErr.Offset = offsets[syntaxErr.Index]
			}
		}
		return nil, err
	}
	return program, nil
}
