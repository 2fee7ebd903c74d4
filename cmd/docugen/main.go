// Command docugen runs documentation flows from the terminal: list them,
// render a prompt from an input file, or run a flow against the configured
// model provider.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
