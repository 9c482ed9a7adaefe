package bflang

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/reusee/taibf/bfvm"
)

const helloWorld = `
++++++++[>++++[>++>+++>+++>+<<<<-]>+>+>->>+[<]<-]>>.
>---.+++++++..+++.>>.<-.<.+++.------.--------.>>+.>++.
`

type result struct {
	output []byte
	vm     *bfvm.VM
	err    error
}

func execute(t *testing.T, src string, input string, opts ...Option) result {
	t.Helper()
	program := compile(t, src, opts...)
	out := new(bytes.Buffer)
	vm := bfvm.NewVM(program, strings.NewReader(input), out)
	var ret error
	for _, err := range vm.Run {
		if err != nil {
			ret = err
		}
	}
	return result{
		output: out.Bytes(),
		vm:     vm,
		err:    ret,
	}
}

func TestScenarioMultiply(t *testing.T) {
	res := execute(t, "++++[>++++<-]>.", "")
	if res.err != nil {
		t.Fatal(res.err)
	}
	if !bytes.Equal(res.output, []byte{16}) {
		t.Fatalf("got %v", res.output)
	}
	if !res.vm.Done() {
		t.Fatal("should terminate")
	}
}

func TestScenarioClear(t *testing.T) {
	program := compile(t, "+[-]")
	if program.Ops[1] != bfvm.OpSetCellZero {
		t.Fatalf("got %v", program)
	}
	res := execute(t, "+[-]", "")
	if res.err != nil {
		t.Fatal(res.err)
	}
	if len(res.output) != 0 {
		t.Fatalf("got %v", res.output)
	}
	if res.vm.Tape[0] != 0 || res.vm.Pointer != 0 {
		t.Fatalf("got cell %d pointer %d", res.vm.Tape[0], res.vm.Pointer)
	}
}

func TestScenarioEmpty(t *testing.T) {
	res := execute(t, "nothing to see\n", "")
	if res.err != nil {
		t.Fatal(res.err)
	}
	if res.vm.Program.Len() != 0 {
		t.Fatalf("got %v", res.vm.Program)
	}
	if len(res.output) != 0 || res.vm.Steps != 0 {
		t.Fatal()
	}
	if res.vm.Tape != [bfvm.TapeSize]byte{} {
		t.Fatal("tape modified")
	}
}

func TestHelloWorld(t *testing.T) {
	res := execute(t, helloWorld, "")
	if res.err != nil {
		t.Fatal(res.err)
	}
	if str := string(res.output); str != "Hello World!\n" {
		t.Fatalf("got %q", str)
	}
}

func TestSetCellZeroCollapse(t *testing.T) {
	for _, body := range []string{"-", "+"} {
		for v := range 256 {
			src := ">" + strings.Repeat("+", v) + "[" + body + "]"
			for _, opts := range [][]Option{nil, Unoptimized()} {
				res := execute(t, src, "", opts...)
				if res.err != nil {
					t.Fatal(res.err)
				}
				if res.vm.Tape[1] != 0 {
					t.Fatalf("got %d", res.vm.Tape[1])
				}
				if res.vm.Pointer != 1 {
					t.Fatalf("got %d", res.vm.Pointer)
				}
			}
		}
	}
}

func TestScanForZeroCollapse(t *testing.T) {
	for _, c := range []struct {
		src    string
		expect int
	}{
		{"+>+>+>>+>+<<<<<[>]", 3},
		{"+>+>+>>+>+<<<<<[>>]", 6},
		{">>>>>>+<<+<<+>>>>[<<]", 0},
		{"[>>>]", 0},
		{">>>>>>+<<<+<<<+[>>>]", 9},
	} {
		optimized := execute(t, c.src, "")
		plain := execute(t, c.src, "", Unoptimized()...)
		if optimized.err != nil || plain.err != nil {
			t.Fatalf("%s: got %v %v", c.src, optimized.err, plain.err)
		}
		if optimized.vm.Pointer != c.expect {
			t.Fatalf("%s: got %d", c.src, optimized.vm.Pointer)
		}
		if plain.vm.Pointer != c.expect {
			t.Fatalf("%s: got %d", c.src, plain.vm.Pointer)
		}
	}
}

func TestMoveCellToCollapse(t *testing.T) {
	for _, k := range []int{1, 2, 5} {
		for v := 0; v < 256; v += 3 {
			for _, mirror := range []bool{false, true} {
				fwd, back := ">", "<"
				if mirror {
					fwd, back = back, fwd
				}
				// pointer at 10, destination preset to 7
				src := strings.Repeat(">", 10) +
					strings.Repeat(fwd, k) + "+++++++" + strings.Repeat(back, k) +
					strings.Repeat("+", v) +
					"[-" + strings.Repeat(fwd, k) + "+" + strings.Repeat(back, k) + "]"
				program := compile(t, src)
				last := program.Ops[len(program.Ops)-1]
				if last.Code() != bfvm.OpMoveCellTo {
					t.Fatalf("got %v", program)
				}
				res := execute(t, src, "")
				if res.err != nil {
					t.Fatal(res.err)
				}
				dest := 10 + k
				if mirror {
					dest = 10 - k
				}
				if expected := byte((7 + v) % 256); res.vm.Tape[dest] != expected {
					t.Fatalf("expected %d, got %d", expected, res.vm.Tape[dest])
				}
				if res.vm.Tape[10] != 0 || res.vm.Pointer != 10 {
					t.Fatalf("got cell %d pointer %d", res.vm.Tape[10], res.vm.Pointer)
				}
			}
		}
	}
}

var equivalencePrograms = []struct {
	name  string
	src   string
	input string
}{
	{"hello", helloWorld, ""},
	{"multiply", "++++[>++++<-]>.", ""},
	{"nested", "++[>++[>+++<-]<-]>>.", ""},
	{"add input", ",>,<[->+<]>.", "\x05\x07"},
	{"echo three", ",.,.,.", "abc"},
	{"wrap", "-.>+[+].", ""},
	{"scan", "+>+>+>>+<<<<[>]+.", ""},
	{"mirror move", ">+++++[-<+>]<.", ""},
	{"mixed runs", "+++--->>><<<+.-.", ""},
	{"copy", "+++++[->+>+<<]>>[-<<+>>]<<.>.", ""},
	{"no idioms", "+++[>+<-+-]>.", ""},
}

func TestOptimizationEquivalence(t *testing.T) {
	for _, p := range equivalencePrograms {
		t.Run(p.name, func(t *testing.T) {
			optimized := execute(t, p.src, p.input)
			variants := map[string][]Option{
				"unoptimized": Unoptimized(),
				"no merge":    {WithoutMerge()},
				"no idioms":   {WithoutIdioms()},
			}
			for name, opts := range variants {
				other := execute(t, p.src, p.input, opts...)
				if optimized.err != nil || other.err != nil {
					t.Fatalf("%s: got %v %v", name, optimized.err, other.err)
				}
				if !bytes.Equal(optimized.output, other.output) {
					t.Fatalf("%s: output %v != %v", name, optimized.output, other.output)
				}
				if optimized.vm.Tape != other.vm.Tape {
					t.Fatalf("%s: tape differs", name)
				}
				if optimized.vm.Pointer != other.vm.Pointer {
					t.Fatalf("%s: pointer %d != %d", name, optimized.vm.Pointer, other.vm.Pointer)
				}
				if optimized.vm.Steps > other.vm.Steps {
					t.Fatalf("%s: optimized took %d steps, %d without", name, optimized.vm.Steps, other.vm.Steps)
				}
			}
		})
	}
}

func TestDecompileEquivalence(t *testing.T) {
	for _, p := range equivalencePrograms {
		optimized := execute(t, p.src, p.input)
		src := string(Encode(Decompile(compile(t, p.src))))
		again := execute(t, src, p.input, Unoptimized()...)
		if optimized.err != nil || again.err != nil {
			t.Fatalf("%s: got %v %v", p.name, optimized.err, again.err)
		}
		if !bytes.Equal(optimized.output, again.output) {
			t.Fatalf("%s: output %v != %v", p.name, optimized.output, again.output)
		}
		if optimized.vm.Tape != again.vm.Tape {
			t.Fatalf("%s: tape differs", p.name)
		}
	}
}

func TestErrorEquivalence(t *testing.T) {
	for src, target := range map[string]error{
		"<":       bfvm.ErrOutOfBounds,
		"+[<]":    bfvm.ErrOutOfBounds,
		"+[-<+>]": bfvm.ErrOutOfBounds,
		",,":      bfvm.ErrInputExhausted,
		"+[>+]":   bfvm.ErrOutOfBounds,
		">+[<+]":  bfvm.ErrOutOfBounds,
	} {
		for _, opts := range [][]Option{nil, Unoptimized()} {
			res := execute(t, src, "x", opts...)
			if !errors.Is(res.err, target) {
				t.Fatalf("%s: got %v", src, res.err)
			}
		}
	}
}
