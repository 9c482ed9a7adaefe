package main

import (
	"bufio"
	"bytes"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/reusee/taibf/bflang"
	"github.com/reusee/taibf/bfvm"
	"github.com/reusee/taibf/debugs"
)

func TestFlushingReader(t *testing.T) {
	out := new(bytes.Buffer)
	w := bufio.NewWriter(out)
	r := &flushingReader{
		r: strings.NewReader("x"),
		w: w,
	}
	w.WriteString("prompt> ")
	if out.Len() != 0 {
		t.Fatal()
	}
	buf := make([]byte, 1)
	if _, err := r.Read(buf); err != nil {
		t.Fatal(err)
	}
	if out.String() != "prompt> " {
		t.Fatalf("got %q", out.String())
	}
	if buf[0] != 'x' {
		t.Fatal()
	}
}

func TestPrintProfile(t *testing.T) {
	buf := new(bytes.Buffer)
	printProfile(buf, []bfvm.ProfileEntry{
		{Trace: "-S1", Count: 3},
		{Trace: ">+<-", Count: 1},
	})
	if str := buf.String(); str != "-S1\t3\n>+<-\t1\n" {
		t.Fatalf("got %q", str)
	}
}

func TestSnapshotFile(t *testing.T) {
	program, err := bflang.CompileSource([]byte("+++>++."))
	if err != nil {
		t.Fatal(err)
	}
	out := new(bytes.Buffer)
	vm := bfvm.NewVM(program, nil, out)
	vm.Budget = 2
	for interrupt, err := range vm.Run {
		if err != nil {
			t.Fatal(err)
		}
		if interrupt != nil {
			break
		}
	}

	path := filepath.Join(t.TempDir(), "snapshot")
	if err := writeSnapshot(path, vm); err != nil {
		t.Fatal(err)
	}
	resumed, err := restore(path, nil, out)
	if err != nil {
		t.Fatal(err)
	}
	if resumed.PC != 2 || resumed.Pointer != 1 || resumed.Tape[0] != 3 {
		t.Fatalf("got pc %d pointer %d", resumed.PC, resumed.Pointer)
	}
	for _, err := range resumed.Run {
		if err != nil {
			t.Fatal(err)
		}
	}
	if !bytes.Equal(out.Bytes(), []byte{2}) {
		t.Fatalf("got %v", out.Bytes())
	}

	if _, err := restore(filepath.Join(t.TempDir(), "missing"), nil, nil); err == nil {
		t.Fatal("should error")
	}
}

func TestCaptureOutput(t *testing.T) {
	program, err := bflang.CompileSource([]byte("++++++++[>++++++++<-]>+.+."))
	if err != nil {
		t.Fatal(err)
	}
	stdout := new(bytes.Buffer)
	output, captured := captureOutput(stdout, true)
	vm := bfvm.NewVM(program, nil, output)
	for _, err := range vm.Run {
		if err != nil {
			t.Fatal(err)
		}
	}
	if stdout.String() != "AB" {
		t.Fatalf("got %q", stdout.String())
	}
	globals := debugs.VMGlobals(vm, captured.Bytes())
	if got, ok := globals["output"].([]byte); !ok || string(got) != "AB" {
		t.Fatalf("got %v", globals["output"])
	}

	w, buf := captureOutput(stdout, false)
	if w != io.Writer(stdout) || buf != nil {
		t.Fatal("should not capture")
	}
}
