package main

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/reusee/dscope"
	"github.com/reusee/taibf/bfconfigs"
	"github.com/reusee/taibf/bflang"
	"github.com/reusee/taibf/bfrun"
	"github.com/reusee/taibf/bfvm"
	"github.com/reusee/taibf/cmds"
	"github.com/reusee/taibf/configs"
	"github.com/reusee/taibf/debugs"
	"github.com/reusee/taibf/logs"
	"github.com/reusee/taibf/modes"
)

var (
	inPath       = cmds.Var[string]("-in", "source file")
	disasm       = cmds.Switch("-disasm", "print the compiled program instead of running it")
	format       = cmds.Switch("-fmt", "print the program as canonical source instead of running it")
	formatWidth  = cmds.Var[int]("-width", "symbols per line for -fmt")
	snapshotPath = cmds.Var[string]("-snapshot", "write the machine state to a file after the run")
	resumePath   = cmds.Var[string]("-resume", "continue a run from a snapshot file")
	evalExprs    = cmds.Collect[string]("-eval", "evaluate a starlark expression over the final state")
	inspect      = cmds.Switch("-inspect", "open a starlark REPL over the final state")
)

func main() {
	cmds.Execute(os.Args[1:])
	if *inPath == "" && *resumePath == "" {
		fmt.Fprintln(os.Stderr, "error: -in <path> or -resume <path> is required")
		fmt.Fprintln(os.Stderr)
		cmds.PrintUsage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "taibf: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	scope := dscope.New(
		new(Module),
		modes.ForProduction(),
	)

	loader := dscope.Get[configs.Loader](scope)
	if err := loader.Err(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	logs.SetDefaultLevel(slog.Level(dscope.Get[bfconfigs.LogLevel](scope)))

	var ret error
	scope.Call(func(
		logger logs.Logger,
		newSpan logs.NewSpan,
		compile bfrun.Compile,
		execute bfrun.Execute,
		eval debugs.Eval,
		inspectState debugs.Inspect,
		profileTop bfconfigs.ProfileTop,
	) {
		stdout := bufio.NewWriter(os.Stdout)
		defer stdout.Flush()
		// stdout is flushed before every read so prompts show up
		stdin := &flushingReader{
			r: bufio.NewReader(os.Stdin),
			w: stdout,
		}

		wantState := len(*evalExprs) > 0 || *inspect
		output, captured := captureOutput(stdout, wantState)

		ctx, span := newSpan(ctx, "taibf")
		logger.DebugContext(ctx, "start",
			"in", *inPath,
			"resume", *resumePath,
			"span", span,
		)

		var vm *bfvm.VM
		if *resumePath != "" {
			vm, ret = restore(*resumePath, stdin, output)
			if ret != nil {
				return
			}

		} else {
			src, err := os.ReadFile(*inPath)
			if err != nil {
				ret = err
				return
			}
			program, _, err := compile(ctx, src)
			if err != nil {
				ret = err
				return
			}

			switch {
			case *disasm:
				_, ret = fmt.Fprintln(stdout, program.String())
				return
			case *format:
				_, ret = stdout.Write(append(bflang.Format(program, *formatWidth), '\n'))
				return
			}

			vm = bfvm.NewVM(program, stdin, output)
		}

		runErr := execute(ctx, vm)
		if err := stdout.Flush(); err != nil && runErr == nil {
			runErr = err
		}

		if *snapshotPath != "" {
			if err := writeSnapshot(*snapshotPath, vm); err != nil {
				ret = errors.Join(runErr, err)
				return
			}
			logger.InfoContext(ctx, "snapshot written",
				"path", *snapshotPath,
				"pc", vm.PC,
			)
		}

		if vm.Profile != nil {
			printProfile(os.Stderr, vm.Profile.Top(int(profileTop)))
		}

		if wantState {
			globals := debugs.VMGlobals(vm, captured.Bytes())
			for _, expr := range *evalExprs {
				str, err := eval(ctx, expr, globals)
				if err != nil {
					ret = errors.Join(runErr, err)
					return
				}
				fmt.Fprintf(os.Stderr, "%s = %s\n", expr, str)
			}
			if *inspect {
				inspectState(ctx, "final state", globals)
			}
		}

		ret = runErr
	})

	return ret
}

// captureOutput tees w into a buffer when enabled; the buffer is nil otherwise.
func captureOutput(w io.Writer, enabled bool) (io.Writer, *bytes.Buffer) {
	if !enabled {
		return w, nil
	}
	buf := new(bytes.Buffer)
	return io.MultiWriter(w, buf), buf
}

type flushingReader struct {
	r io.Reader
	w *bufio.Writer
}

func (f *flushingReader) Read(p []byte) (int, error) {
	if err := f.w.Flush(); err != nil {
		return 0, err
	}
	return f.r.Read(p)
}

func restore(path string, input io.Reader, output io.Writer) (*bfvm.VM, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	vm := new(bfvm.VM)
	vm.Attach(input, output)
	if err := vm.Restore(bufio.NewReader(file)); err != nil {
		return nil, fmt.Errorf("restore %s: %w", path, err)
	}
	return vm, nil
}

func writeSnapshot(path string, vm *bfvm.VM) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(file)
	if err := vm.Snapshot(w); err != nil {
		file.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
