package main

// Analyze text, code or a resume file from the command line:
//   go run ./cmd/analyze sentiment "I can't wait to ship this"
//   go run ./cmd/analyze complexity < solver.go
//   go run ./cmd/analyze resume --file resume.pdf

import (
	"fmt"
	"os"

	"portfolio-backend/internal/shared/config"
)

func main() {
	if err := newRootCmd(config.Load()).Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
