package main

import (
	"os"

	"github.com/idilsaglam/task-cli/internal/cli"
)

func main() {
	// Exit codes: 0 ok, 1 error, 2 usage.
	os.Exit(cli.Run(os.Args[1:], os.Stdout, os.Stderr))
}
