package main

import (
	"context"
	"errors"
	"fmt"
	"os"
)

func main() {
	os.Exit(run())
}

// run executes the root command and maps the outcome to an exit code. A
// cancelled scrape (Ctrl-C) exits with the conventional interrupt code and
// no error message; partial results were already printed.
func run() int {
	err := newRootCommand().Execute()
	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled):
		return 130
	default:
		fmt.Fprintf(os.Stderr, "reelmatch: %v\n", err)
		return 1
	}
}
