package cmds

import (
	"bytes"
	"strings"
	"testing"
)

func TestUsage(t *testing.T) {
	executor := NewExecutor()
	buf := new(bytes.Buffer)
	executor.Output = buf
	executor.Define("foo", Sub(map[string]*Command{
		"bar": Func(func() {
		}).Desc("BAR"),
		"baz": Sub(map[string]*Command{
			"qux": Func(func(n int, s *string) {}).Desc("QUX"),
		}).Desc("BAZ"),
	}).Desc("FOO"))
	executor.PrintUsage()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 5 {
		t.Fatalf("got %q", buf.String())
	}
	if !strings.HasPrefix(lines[0], "-h, help, -help, --help") ||
		!strings.HasSuffix(lines[0], "print this usage") {
		t.Fatalf("got %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "foo") || !strings.HasSuffix(lines[1], "FOO") {
		t.Fatalf("got %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "  bar") {
		t.Fatalf("got %q", lines[2])
	}
	if !strings.HasPrefix(lines[4], "    qux <int> [string]") ||
		!strings.HasSuffix(lines[4], "QUX") {
		t.Fatalf("got %q", lines[4])
	}
}
