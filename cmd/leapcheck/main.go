// Package main provides the CLI for the leapcheck data validation engine.
package main

import "github.com/leapstack-labs/leapcheck/internal/cli"

func main() {
	cli.Execute()
}
