package debugs

import (
	"context"
	"maps"
	"slices"

	"github.com/reusee/taibf/logs"
	"go.starlark.net/repl"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

var fileOptions = &syntax.FileOptions{
	Set:             true,
	While:           true,
	TopLevelControl: true,
}

func toStringDict(globals map[string]any) starlark.StringDict {
	ret := make(starlark.StringDict, len(globals))
	for name, value := range globals {
		ret[name] = toStarlarkValue(value)
	}
	return ret
}

// Inspect starts a starlark REPL on stdin with globals bound.
type Inspect func(ctx context.Context, what string, globals map[string]any)

func (Module) Inspect(
	logger logs.Logger,
) Inspect {
	return func(ctx context.Context, what string, globals map[string]any) {
		logger.InfoContext(ctx, "inspect: "+what,
			"globals", slices.Sorted(maps.Keys(globals)),
		)
		defer func() {
			logger.InfoContext(ctx, "inspect end: "+what)
		}()

		thread := &starlark.Thread{
			Name: "repl",
		}
		repl.REPLOptions(fileOptions, thread, toStringDict(globals))
	}
}

// Eval evaluates a starlark expression with globals bound and returns its printed form.
type Eval func(ctx context.Context, expr string, globals map[string]any) (string, error)

func (Module) Eval(
	logger logs.Logger,
) Eval {
	return func(ctx context.Context, expr string, globals map[string]any) (string, error) {
		thread := &starlark.Thread{
			Name: "eval",
			Print: func(_ *starlark.Thread, msg string) {
				logger.InfoContext(ctx, "eval print", "msg", msg)
			},
		}
		value, err := starlark.EvalOptions(fileOptions, thread, "<expr>", expr, toStringDict(globals))
		if err != nil {
			logger.DebugContext(ctx, "eval failed",
				"expr", expr,
				"error", err,
			)
			return "", err
		}
		if str, ok := value.(starlark.String); ok {
			return string(str), nil
		}
		return value.String(), nil
	}
}
