package bflang

type Instruction uint8

const (
	MoveForward Instruction = iota + 1
	MoveBackward
	Increment
	Decrement
	Read
	Write
	LoopOpen
	LoopClose
)

var symbols = [...]byte{
	MoveForward:  '>',
	MoveBackward: '<',
	Increment:    '+',
	Decrement:    '-',
	Read:         ',',
	Write:        '.',
	LoopOpen:     '[',
	LoopClose:    ']',
}

var instructions = func() (ret [256]Instruction) {
	for inst, sym := range symbols {
		if sym != 0 {
			ret[sym] = Instruction(inst)
		}
	}
	return
}()

func (i Instruction) Symbol() byte {
	if int(i) < len(symbols) {
		return symbols[i]
	}
	return 0
}

func (i Instruction) String() string {
	if sym := i.Symbol(); sym != 0 {
		return string(sym)
	}
	return "?"
}

// Decode maps every recognized symbol to its instruction. Other bytes are comments and are dropped.
func Decode(src []byte) []Instruction {
	ret := make([]Instruction, 0, len(src))
	for _, b := range src {
		if inst := instructions[b]; inst != 0 {
			ret = append(ret, inst)
		}
	}
	return ret
}

// Offsets returns the source byte offset of each instruction Decode would produce.
func Offsets(src []byte) []int {
	var ret []int
	for i, b := range src {
		if instructions[b] != 0 {
			ret = append(ret, i)
		}
	}
	return ret
}

// Encode renders instructions back to source symbols.
func Encode(insts []Instruction) []byte {
	ret := make([]byte, 0, len(insts))
	for _, inst := range insts {
		if sym := inst.Symbol(); sym != 0 {
			ret = append(ret, sym)
		}
	}
	return ret
}
