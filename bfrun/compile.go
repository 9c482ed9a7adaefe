package bfrun

import (
	"context"
	"fmt"

	"github.com/reusee/taibf/bfconfigs"
	"github.com/reusee/taibf/bflang"
	"github.com/reusee/taibf/bfvm"
	"github.com/reusee/taibf/logs"
	"github.com/reusee/taibf/modes"
)

// Compile turns source text into a program using the configured optimization setting.
type Compile func(ctx context.Context, src []byte) (*bfvm.Program, *bflang.Stats, error)

func (Module) Compile(
	logger logs.Logger,
	optimize bfconfigs.Optimize,
	mode modes.Mode,
) Compile {
	return func(ctx context.Context, src []byte) (*bfvm.Program, *bflang.Stats, error) {
		stats := new(bflang.Stats)
		opts := []bflang.Option{
			bflang.WithStats(stats),
		}
		if !optimize {
			opts = append(opts, bflang.Unoptimized()...)
		}

		program, err := bflang.CompileSource(src, opts...)
		if err != nil {
			logger.DebugContext(ctx, "compile failed",
				"error", err,
			)
			return nil, nil, logs.WrapSpan(ctx, err)
		}

		if mode == modes.ModeDevelopment {
			if err := program.Validate(); err != nil {
				return nil, nil, logs.WrapSpan(ctx, fmt.Errorf("compiled program: %w", err))
			}
		}

		logger.DebugContext(ctx, "compiled",
			"optimize", bool(optimize),
			"instructions", stats.Instructions,
			"ops", stats.Ops,
			"loops", stats.Loops,
			"set_cell_zero", stats.SetCellZero,
			"scan_for_zero", stats.ScanForZero,
			"move_cell_to", stats.MoveCellTo,
		)

		return program, stats, nil
	}
}
