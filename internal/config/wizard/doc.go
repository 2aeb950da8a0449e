// Package wizard provides an interactive topology wizard.
//
// It uses charmbracelet/huh to ask for the cluster name, the corosync
// version and each node's heartbeat lines. RunWizard returns the raw
// answers; BuildTopology turns them into a validated config.Topology and
// WriteTopology saves it with a descriptive header.
package wizard
