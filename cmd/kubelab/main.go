// Package main is the entry point for the kubelab CLI.
//
// kubelab compiles a sparse lab request ("a kind cluster for module m1/pt")
// into a resolved topology: VM definitions with names, roles, addresses and
// sizes, plus the environment files the provisioning scripts source.
//
// Commands: init, validate, compile, tools, version.
//
// For detailed usage information, run:
//
//	kubelab --help
package main

import (
	"fmt"
	"os"

	"github.com/imamik/kubelab/cmd/kubelab/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
