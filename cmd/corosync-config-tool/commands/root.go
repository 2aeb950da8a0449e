// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument parsing,
// flag binding, and validation. Command execution is delegated to handler
// functions in the handlers package.
package commands

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/shikifyj/corosync-config-tool/cmd/corosync-config-tool/handlers"
	"github.com/shikifyj/corosync-config-tool/internal/settings"
)

// Root returns the root command for the corosync-config-tool CLI.
//
// Shared flags (topology, log directory, SSH access, dry-run) are persistent
// and can also be set through COROSYNC_TOOL_* environment variables.
func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "corosync-config-tool",
		Short:        "Generate and distribute corosync cluster configuration",
		SilenceUsage: true,
	}
	settings.AddFlags(cmd.PersistentFlags())

	// Topology
	cmd.AddCommand(Init())
	cmd.AddCommand(Node())

	// Configuration
	cmd.AddCommand(Render())
	cmd.AddCommand(Insert())
	cmd.AddCommand(Apply())

	// Remote access
	cmd.AddCommand(Exec())
	cmd.AddCommand(Check())
	cmd.AddCommand(Keygen())

	cmd.AddCommand(Version())
	cmd.AddCommand(Completion())

	return cmd
}

// newEnv is swapped in tests.
var newEnv = handlers.NewEnv

// withEnv resolves settings, opens the run's log file and calls fn. The
// log is closed and metrics are written on every path.
func withEnv(cmd *cobra.Command, fn func(env *handlers.Env) error) (err error) {
	s, err := settings.Load(cmd.Flags())
	if err != nil {
		return err
	}
	env, err := newEnv(s, time.Now())
	if err != nil {
		return err
	}
	defer func() {
		if cerr := env.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	env.Out = cmd.OutOrStdout()
	return fn(env)
}
