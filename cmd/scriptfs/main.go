package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/vvka-141/scriptfs/internal/cli"
	"github.com/vvka-141/scriptfs/pkg/scriptfs"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
			os.Exit(scriptfs.ExitPanic)
		}
	}()

	if os.Getenv("SCRIPTFS_TEST_PANIC") == "1" {
		panic("intentional test panic")
	}

	if err := cli.Execute(); err != nil {
		os.Exit(scriptfs.ExitCodeForError(err))
	}
}
