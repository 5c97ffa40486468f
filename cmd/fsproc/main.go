package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/vvka-141/fsproc/internal/cli"
	"github.com/vvka-141/fsproc/pkg/fsproc"
)

func main() {
	// Recover from panics to ensure graceful exits with stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
			os.Exit(fsproc.ExitPanic)
		}
	}()

	if os.Getenv("FSPROC_TEST_PANIC") == "1" {
		panic("intentional test panic")
	}

	if err := cli.Execute(); err != nil {
		os.Exit(fsproc.ExitCodeForError(err))
	}
}
