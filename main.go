// Package main is the entry point for grainmgr, the terminal client of the
// Grain Management System.
package main

import (
	"grainmgr/cli/cmd"
)

func main() {
	cmd.Execute()
}
