// Command tomescan tokenizes a tome string literal and prints the
// token stream: the quotes, content runs, escape sequences, and
// interpolation delimiters.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
)

func main() {
	cmd := newRootCommand(afero.NewOsFs(), os.Stdout)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
