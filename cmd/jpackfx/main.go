package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

func main() {
	root, c := newRootCommand()
	err := root.Execute()
	c.release()
	if err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("❌ %v", err))
		os.Exit(1)
	}
}
