// Command mdtree parses Markdown into a document tree and prints, exports
// or pages through it.
package main

import (
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
)

func main() {
	// Fall back to UTF-8 so non-ASCII text displays in the viewer.
	tcell.SetEncodingFallback(tcell.EncodingFallbackUTF8)

	cmd := newRootCmd(os.Stdin, os.Stdout, os.Stderr)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "mdtree: %v\n", err)
		os.Exit(1)
	}
}
