package main

import (
	"fmt"
	"io"

	"github.com/reusee/taibf/bfvm"
)

func printProfile(w io.Writer, entries []bfvm.ProfileEntry) {
	for _, entry := range entries {
		fmt.Fprintf(w, "%s\t%d\n", entry.Trace, entry.Count)
	}
}
