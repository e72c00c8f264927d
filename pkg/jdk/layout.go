package jdk

import "path/filepath"

// layout knows where the tool binaries live inside a JDK root on one
// operating system.
type layout interface {
	binDir(root string) string
	executable(name string) string
}

type unixLayout struct{}

func (unixLayout) binDir(root string) string      { return filepath.Join(root, "bin") }
func (unixLayout) executable(name string) string { return name }

type macLayout struct{}

// JDK bundles on macOS keep the home directory inside the bundle.
func (macLayout) binDir(root string) string      { return filepath.Join(root, "Contents", "Home", "bin") }
func (macLayout) executable(name string) string { return name }

type windowsLayout struct{}

func (windowsLayout) binDir(root string) string      { return filepath.Join(root, "bin") }
func (windowsLayout) executable(name string) string { return name + ".exe" }

// layouts is the dispatch table for the closed set of JDK variants. It is
// also what the JSON decoder consults for the operating-system discriminator.
var layouts = map[OperatingSystem]layout{
	Linux:   unixLayout{},
	OSX:     macLayout{},
	Windows: windowsLayout{},
}
