// Package main provides the entry point for the matchlog CLI.
package main

import (
	"fmt"
	"os"

	"github.com/jask/matchlog/cmd/matchlog/commands"
)

func main() {
	env := commands.NewEnv()
	err := commands.NewRootCommand(env).Execute()
	if closeErr := env.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
