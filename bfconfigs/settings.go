package bfconfigs

import (
	"log/slog"

	"github.com/reusee/taibf/cmds"
	"github.com/reusee/taibf/configs"
	"github.com/reusee/taibf/vars"
)

var (
	noOptFlag      = cmds.Switch("-no-opt", "compile without merging runs or collapsing loops")
	profileFlag    = cmds.Switch("-profile", "report the most frequent loop bodies")
	profileTopFlag = cmds.Var[int]("-profile-top", "number of loop bodies to report")
	budgetFlag     = cmds.Var[int]("-budget", "instructions between interrupts")
)

const (
	DefaultProfileTop = 10
	DefaultLogLevel   = slog.LevelWarn
)

type Optimize bool

func (Module) Optimize(
	loader configs.Loader,
) Optimize {
	if *noOptFlag {
		return false
	}
	if v, ok, err := configs.Lookup[bool](loader, "optimize"); err == nil && ok {
		return Optimize(v)
	}
	return true
}

type Profile bool

func (Module) Profile(
	loader configs.Loader,
) Profile {
	return Profile(*profileFlag || configs.First[bool](loader, "profile"))
}

type ProfileTop int

func (Module) ProfileTop(
	loader configs.Loader,
) ProfileTop {
	return ProfileTop(vars.FirstNonZero(
		max(*profileTopFlag, 0),
		configs.First[int](loader, "profile_top"),
		DefaultProfileTop,
	))
}

// Budget is the number of instructions a run executes between interrupts, 0 for none.
type Budget int

func (Module) Budget(
	loader configs.Loader,
) Budget {
	return Budget(vars.FirstNonZero(
		max(*budgetFlag, 0),
		configs.First[int](loader, "budget"),
	))
}

// LogLevel is the configured level; -log-* flags take precedence over it.
type LogLevel slog.Level

func (Module) LogLevel(
	loader configs.Loader,
) LogLevel {
	level := DefaultLogLevel
	if str := configs.First[string](loader, "log_level"); str != "" {
		if err := level.UnmarshalText([]byte(str)); err != nil {
			level = DefaultLogLevel
		}
	}
	return LogLevel(level)
}
