// Package main provides the riveter CLI.
//
// riveter builds entity hierarchies from YAML definition files, validates
// them and merges plain YAML documents with the same engine.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
