// Package config defines the cluster topology model.
//
// A [Topology] is loaded once from a YAML file (corosync_config.yaml by
// default), optionally changed by callers and written back explicitly with
// [Topology.SaveFile]. All corosync fragments (bind addresses, interface
// blocks, node lists) are derived from it without mutating it.
package config
