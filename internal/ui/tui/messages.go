// Package tui shows the progress of pushing a configuration to every
// cluster node as a Bubble Tea dashboard.
package tui

// NodeStepMsg reports that Node started (or finished, when Done) step
// Step of Total.
type NodeStepMsg struct {
	Node  string
	Step  int
	Total int
	Label string
	Done  bool
	Err   error
}

// TickMsg is sent periodically to refresh the display.
type TickMsg struct{}

// ErrMsg carries an error.
type ErrMsg struct{ Err error }

// DoneMsg signals that the operation is complete.
type DoneMsg struct{}
