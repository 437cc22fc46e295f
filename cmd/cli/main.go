// gotime parses date/time text with reference-moment layouts.
//
// A layout is written as the reference moment "Mon Jan 2 15:04:05 MST 2006"
// in the shape the input uses, and gotime reports the fields it finds.
package main

import (
	"os"

	"github.com/ccollicutt/gotime/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
