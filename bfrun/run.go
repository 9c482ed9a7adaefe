package bfrun

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/reusee/taibf/bfconfigs"
	"github.com/reusee/taibf/bflang"
	"github.com/reusee/taibf/bfvm"
	"github.com/reusee/taibf/logs"
)

// Execute drives vm to completion. With a budget, the context is checked at
// every interrupt and a cancelled run stops with the vm left resumable.
type Execute func(ctx context.Context, vm *bfvm.VM) error

func (Module) Execute(
	logger logs.Logger,
	budget bfconfigs.Budget,
	profile bfconfigs.Profile,
) Execute {
	return func(ctx context.Context, vm *bfvm.VM) (err error) {
		defer func() {
			err = logs.WrapSpan(ctx, err)
		}()

		if vm.Budget == 0 {
			vm.Budget = int(budget)
		}
		if profile && vm.Profile == nil {
			vm.Profile = bfvm.NewProfile()
		}

		logger.DebugContext(ctx, "run start",
			"ops", vm.Program.Len(),
			"pc", vm.PC,
			"budget", vm.Budget,
		)
		start := time.Now()

		for interrupt, err := range vm.Run {
			if err != nil {
				logger.DebugContext(ctx, "run failed",
					"error", err,
					"steps", vm.Steps,
				)
				return err
			}
			if interrupt == nil || !interrupt.Budget {
				continue
			}
			logger.DebugContext(ctx, "budget interrupt",
				"steps", vm.Steps,
				"pc", vm.PC,
				"pointer", vm.Pointer,
			)
			if ctx.Err() != nil {
				return fmt.Errorf("stopped at pc %d: %w", vm.PC, context.Cause(ctx))
			}
		}

		logger.InfoContext(ctx, "run finished",
			"steps", vm.Steps,
			"duration", time.Since(start),
		)
		return nil
	}
}

type Result struct {
	Program *bfvm.Program
	Stats   *bflang.Stats
	VM      *bfvm.VM
	Span    logs.Span
}

// Run compiles src and executes it against input and output.
// The result is returned with the error when compilation succeeded, for inspection.
type Run func(ctx context.Context, src []byte, input io.Reader, output io.Writer) (*Result, error)

func (Module) Run(
	newSpan logs.NewSpan,
	compile Compile,
	execute Execute,
) Run {
	return func(ctx context.Context, src []byte, input io.Reader, output io.Writer) (*Result, error) {
		ctx, span := newSpan(ctx, "run")

		program, stats, err := compile(ctx, src)
		if err != nil {
			return nil, err
		}

		res := &Result{
			Program: program,
			Stats:   stats,
			VM:      bfvm.NewVM(program, input, output),
			Span:    span,
		}
		if err := execute(ctx, res.VM); err != nil {
			return res, err
		}
		return res, nil
	}
}
