package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		printError(err.Error())
		os.Exit(1)
	}
}

func printError(msg string) {
	if useColor(os.Stderr) {
		msg = color.RedString(msg)
	}
	fmt.Fprintln(os.Stderr, msg)
}
