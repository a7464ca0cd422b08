package cmds

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
)

func (e *Executor) PrintUsage() {
	printCommands(e.output, e.commands, 0)
}

func printCommands(w io.Writer, commands map[string]*Command, depth int) {
	// aliases share one *Command; print each command once
	names := make(map[*Command][]string)
	var order []*Command
	for _, name := range slices.Sorted(maps.Keys(commands)) {
		cmd := commands[name]
		if _, ok := names[cmd]; !ok {
			order = append(order, cmd)
		}
		names[cmd] = append(names[cmd], name)
	}
	indent := strings.Repeat("  ", depth)
	for _, cmd := range order {
		fmt.Fprintf(w, "%s%s", indent, strings.Join(names[cmd], ", "))
		if cmd.Description != "" {
			fmt.Fprintf(w, "\t%s", cmd.Description)
		}
		fmt.Fprintln(w)
		if len(cmd.Subs) > 0 {
			printCommands(w, cmd.Subs, depth+1)
		}
	}
}
