//go:build tools

// Package tools pins build and lint tooling in go.mod.
package tools

import (
	_ "github.com/a-h/templ/cmd/templ"
	_ "github.com/go-task/task/v3/cmd/task"
	_ "github.com/golangci/golangci-lint/v2/cmd/golangci-lint"
)
