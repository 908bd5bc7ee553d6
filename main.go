// The main package for the webmapper executable.
package main

import (
	"github.com/webmapper-go/webmapper/cmd"
)

// main is the entry point of the application.
// It defers all execution to the Cobra CLI library.
func main() {
	cmd.Execute()
}
