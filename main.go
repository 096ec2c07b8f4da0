package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/grovetools/agsess/cmd"
	"github.com/grovetools/agsess/internal/session"
)

func main() {
	if err := cmd.NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps not-found conditions to a distinct code so scripts can
// tell them apart from hard failures.
func exitCode(err error) int {
	var dataErr *session.DataNotFoundError
	var sessErr *session.SessionNotFoundError
	var wsErr *session.WorkspaceNotFoundError
	if errors.As(err, &dataErr) || errors.As(err, &sessErr) || errors.As(err, &wsErr) {
		return 2
	}
	return 1
}
