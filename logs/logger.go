package logs

import (
	"context"
	"log/slog"
	"os"
	"path"
	"strings"
	"sync/atomic"
	"time"

	"github.com/reusee/taibf/cmds"
	slogmulti "github.com/samber/slog-multi"
	slogjournal "github.com/systemd/slog-journal"
)

var (
	level        = new(slog.LevelVar)
	levelFlagged atomic.Bool
)

func init() {
	for name, l := range map[string]slog.Level{
		"-log-debug": slog.LevelDebug,
		"-log-info":  slog.LevelInfo,
		"-log-warn":  slog.LevelWarn,
		"-log-error": slog.LevelError,
	} {
		cmds.Define(name, cmds.Func(func() {
			level.Set(l)
			levelFlagged.Store(true)
		}).Desc("set log level to "+strings.ToLower(l.String())))
	}
	level.Set(slog.LevelWarn)
}

// SetDefaultLevel sets the log level unless one was given on the command line.
func SetDefaultLevel(l slog.Level) {
	if levelFlagged.Load() {
		return
	}
	level.Set(l)
}

func Level() slog.Level {
	return level.Level()
}

type Logger = *slog.Logger

func (Module) Logger(
	writer Writer,
) Logger {
	textHandler := slog.NewTextHandler(
		writer,
		&slog.HandlerOptions{
			Level: level,
		},
	)

	if !isSystemdService() {
		return slog.New(&Handler{
			Handler: textHandler,
		})
	}

	journalHandler, err := slogjournal.NewHandler(&slogjournal.Options{
		ReplaceGroup: func(key string) string {
			return toJournalKey(key)
		},
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			a.Key = toJournalKey(a.Key)
			return a
		},
	})
	if err != nil {
		record := slog.NewRecord(time.Now(), slog.LevelWarn, "new systemd journal handler", 0)
		record.Add("error", err)
		_ = textHandler.Handle(context.Background(), record)
		return slog.New(&Handler{
			Handler: textHandler,
		})
	}

	// stderr of a service goes to the journal too, keep only errors there
	return slog.New(&Handler{
		Handler: slogmulti.Router().
			Add(journalHandler).
			Add(textHandler, func(_ context.Context, record slog.Record) bool {
				return record.Level >= slog.LevelError
			}).
			Handler(),
	})
}

func toJournalKey(str string) string {
	str = strings.ToUpper(str)
	str = strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' ||
			r >= '0' && r <= '9' {
			return r
		}
		return '_'
	}, str)
	return str
}

func isSystemdService() bool {
	content, err := os.ReadFile("/proc/self/cgroup")
	if err != nil {
		return false
	}
	parts := strings.SplitN(strings.TrimSpace(string(content)), ":", 3)
	if len(parts) < 3 {
		return false
	}
	return strings.HasSuffix(path.Dir(parts[2]), ".service")
}
