// By Navid M (c)
// Date: 2025
// License: GPL3
//
// Entry point of the orcaparse command line tool.

package main

import (
	"errors"
	"fmt"
	"os"

	"orcaparse/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		if !errors.Is(err, cli.ErrInvalid) {
			fmt.Fprintf(os.Stderr, "orcaparse: %v\n", err)
		}
		os.Exit(1)
	}
}
