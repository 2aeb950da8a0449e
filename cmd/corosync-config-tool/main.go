// Package main is the entry point for the corosync-config-tool CLI.
//
// corosync-config-tool turns a YAML cluster topology into corosync
// configuration (node lists, interface blocks, complete corosync.conf
// files) and installs it on every node over SSH.
//
// Commands: init, node, render, insert, apply, exec, check, keygen.
//
// For detailed usage information, run:
//
//	corosync-config-tool --help
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/shikifyj/corosync-config-tool/cmd/corosync-config-tool/commands"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	commands.SetVersionInfo(version, commit, date)
	err := commands.Root().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
