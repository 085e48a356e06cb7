// Package main provides the wordbook CLI.
package main

import "github.com/mesh-intelligence/wordbook/internal/cli"

func main() {
	cli.Execute()
}
