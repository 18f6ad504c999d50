// main is the command-line entrypoint for riskline.
package main

import (
	"fmt"
	"os"

	"github.com/amckenna/riskline/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "❌", err)
		os.Exit(1)
	}
}
