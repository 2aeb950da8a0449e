package wizard

import "errors"

// Validation errors for the interactive wizard.
var (
	errClusterNameRequired    = errors.New("cluster name is required")
	errClusterNameInvalid     = errors.New("cluster name must be 1-64 letters, digits, hyphens or underscores")
	errNodeNameRequired       = errors.New("node name is required")
	errNodeNameInvalid        = errors.New("node name must be a hostname (letters, digits, hyphens and dots)")
	errHeartbeatLinesRequired = errors.New("at least one heartbeat line is required")
	errNodeIDInvalid          = errors.New("node id must be a positive integer")
	errAddressInvalid         = errors.New("not an IPv4 address")
)
