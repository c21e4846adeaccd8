// Command redistrict is a thin batch CLI wrapper around the plan package:
// it loads a graph and an optional seed assignment, runs the requested
// search drivers, and writes the resulting assignment back out as CSV.
package main

import "github.com/openmander/redistrict-core/cmd/redistrict/cmd"

func main() {
	cmd.Execute()
}
