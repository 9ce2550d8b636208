package profilereport

import (
	"io"
)

// ShowHelp prints usage information for the report tool.
func ShowHelp(w io.Writer) {
	_, _ = io.WriteString(w, `StyleMatch Profile Report
=========================

Scores built-in style archetypes against a running service through
POST /preview/matches and compares the rankings they produce.

Usage:
  go run ./cmd/profile-report [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:9080")
  -limit int
        Products requested per profile (default 100)
  -top int
        Window used for the cross-profile overlap (default 20)
  -workers int
        Concurrent preview requests (default 4)
  -timeout duration
        HTTP request timeout (default 30s)
  -verbose
        Enable debug logging
  -help
        Show this help message

Examples:
  go run ./cmd/profile-report -url http://localhost:8080 -top 10
`)
}
