package cmds

import (
	"fmt"
	"io"
	"maps"
	"reflect"
	"slices"
	"strings"
)

func (p *Executor) PrintUsage() {
	printCommands(p.Output, p.commands, 0)
}

func printCommands(w io.Writer, commands map[string]*Command, depth int) {
	for _, name := range slices.Sorted(maps.Keys(commands)) {
		command := commands[name]
		if command == nil || slices.Contains(command.Aliases, name) {
			continue
		}

		names := name
		if len(command.Aliases) > 0 {
			names = strings.Join(append([]string{name}, command.Aliases...), ", ")
		}
		line := strings.Repeat("  ", depth) + names + argsHint(command)
		if command.Description != "" {
			fmt.Fprintf(w, "%-32s %s\n", line, command.Description)
		} else {
			fmt.Fprintln(w, line)
		}

		if len(command.Subs) > 0 {
			printCommands(w, command.Subs, depth+1)
		}
	}
}

func argsHint(command *Command) string {
	if !command.Func.IsValid() {
		return ""
	}
	var b strings.Builder
	fnType := command.Func.Type()
	for i := range fnType.NumIn() {
		t := fnType.In(i)
		if t.Kind() == reflect.Pointer {
			fmt.Fprintf(&b, " [%s]", t.Elem().Kind())
		} else {
			fmt.Fprintf(&b, " <%s>", t.Kind())
		}
	}
	return b.String()
}
