//go:build tools
// +build tools

// Package tools documents development tool dependencies.
// These tools are installed globally via `go install` and are not tracked in go.mod
// since they are development tools, not runtime dependencies.
package tools

// Development tools (install via `go install`):
//
// Air - Live reload for the UI server while editing templates and handlers
//   Install: go install github.com/air-verse/air@v1.63.0
//   Run: air --build.cmd "go build -o ./tmp/mindful ./cmd/mindful" --build.bin ./tmp/mindful
//   Docs: https://github.com/air-verse/air
//
// mockgen - Regenerates internal/mocks from the ports and ui interfaces
//   Run: go generate ./internal/mocks
//   Version: v0.6.0 (invoked through `go run`, matches go.uber.org/mock in go.mod)
