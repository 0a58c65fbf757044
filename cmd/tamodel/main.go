// Command tamodel inspects and edits timed-automata project files.
//
// Usage: tamodel <command> [options]
package main

import (
	"os"
)

func main() {
	if err := newCLI(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}
