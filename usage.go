package unagi

import (
	"fmt"
	"io"
	"strings"
)

// Usage prints the command line synopsis for prog.
func Usage(w io.Writer, prog string) {
	names := make([]string, 0, len(commandArgs))
	for _, ca := range commandArgs {
		names = append(names, ca.name)
	}

	fmt.Fprintf(w, "usage:\n\n  %s [flags] PORT COMMAND args ...\n\n", prog)
	fmt.Fprintf(w, "    COMMAND: %s\n\n", strings.Join(names, ", "))
	for i, ca := range commandArgs {
		line := fmt.Sprintf("    (%d)%s %s PORT %s %s", i+1, strings.Repeat(" ", 2-len(fmt.Sprint(i+1))), prog, ca.name, ca.args)
		fmt.Fprintln(w, strings.TrimRight(line, " "))
	}
	fmt.Fprintln(w)
}
