// Package main provides the entry point for the brb CLI tool.
package main

import (
	"brb/cmd"
)

func main() {
	cmd.Execute()
}
