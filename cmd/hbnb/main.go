// Package main is the entrypoint for the hbnb command shell.
package main

import "github.com/hbnb-network/hbnb/internal/cli"

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cli.Execute(version)
}
