// Package corosync assembles a complete corosync.conf from a stock base
// file and a cluster topology, and turns it into the shell commands that
// install it on a node.
package corosync

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/shikifyj/corosync-config-tool/internal/config"
	"github.com/shikifyj/corosync-config-tool/internal/textedit"
)

// Supported corosync major versions.
const (
	Version2 = 2
	Version3 = 3
)

// DefaultPath is where corosync reads its configuration.
const DefaultPath = "/etc/corosync/corosync.conf"

const (
	// ring0InterfaceEnd closes the ring 0 interface block of the v2 base.
	ring0InterfaceEnd = "\t\tttl: 1\n\t}"
	quorumAnchor      = "quorum {"
	heredocMarker     = "COROSYNC_CONF_EOF"
)

var (
	//go:embed templates/corosync2.conf
	baseV2 string
	//go:embed templates/corosync3.conf
	baseV3 string
)

// ErrUnsupportedVersion is returned for corosync versions other than 2 and 3.
var ErrUnsupportedVersion = errors.New("unsupported corosync version")

// Base returns the stock configuration shipped for version.
func Base(version int) (string, error) {
	switch version {
	case Version2:
		return baseV2, nil
	case Version3:
		return baseV3, nil
	default:
		return "", fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}
}

// Build fills base with the cluster described by topo.
//
// For version 2 the ring 0 bindnetaddr is set, the remaining rings are
// added as interface blocks and the node list is written without ids.
// Version 3 uses knet links and needs a nodeid on every node.
func Build(base string, topo *config.Topology, version int) (string, error) {
	if version != Version2 && version != Version3 {
		return "", fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}

	name, err := topo.Name()
	if err != nil {
		return "", err
	}

	buf := textedit.NewBuffer("", base)
	if err := buf.SetValue("cluster_name", name); err != nil {
		return "", fmt.Errorf("failed to set cluster name: %w", err)
	}

	var nodeList string
	if version == Version2 {
		if err := buildInterfaces(buf, topo); err != nil {
			return "", err
		}
		nodeList, err = topo.NodeListBasic()
	} else {
		nodeList, err = topo.NodeListWithIDs()
	}
	if err != nil {
		return "", err
	}

	if err := buf.Insert(nodeList+"\n", quorumAnchor, textedit.Above); err != nil {
		return "", fmt.Errorf("failed to insert nodelist: %w", err)
	}
	return buf.String(), nil
}

func buildInterfaces(buf *textedit.Buffer, topo *config.Topology) error {
	bindAddr, err := topo.BindNetAddress()
	if err != nil {
		return err
	}
	if err := buf.SetValue("bindnetaddr", bindAddr); err != nil {
		return fmt.Errorf("failed to set bindnetaddr: %w", err)
	}

	interfaces, err := topo.InterfaceBlocks()
	if err != nil {
		return err
	}
	if interfaces == "" {
		return nil
	}
	if err := buf.SetValue("rrp_mode", "passive"); err != nil {
		return fmt.Errorf("failed to set rrp_mode: %w", err)
	}
	if err := buf.Insert(interfaces, ring0InterfaceEnd, textedit.Under); err != nil {
		return fmt.Errorf("failed to insert interfaces: %w", err)
	}
	return nil
}

// Commands returns the shell commands that install conf at path: the
// current file is backed up to path.bak, the new one written through a
// quoted heredoc so nothing in conf is expanded, and corosync restarted
// when restart is set.
func Commands(conf, path string, restart bool) []string {
	if path == "" {
		path = DefaultPath
	}
	quoted := shellQuote(path)

	cmds := []string{
		fmt.Sprintf("mkdir -p %s", shellQuote(parentDir(path))),
		fmt.Sprintf("if [ -f %[1]s ]; then cp -p %[1]s %[2]s; fi", quoted, shellQuote(path+".bak")),
		fmt.Sprintf("cat > %s <<'%s'\n%s\n%s", quoted, heredocMarker, strings.TrimRight(conf, "\n"), heredocMarker),
	}
	if restart {
		cmds = append(cmds, "systemctl restart corosync")
	}
	return cmds
}

func parentDir(path string) string {
	i := strings.LastIndex(path, "/")
	switch {
	case i < 0:
		return "."
	case i == 0:
		return "/"
	default:
		return path[:i]
	}
}

// shellQuote wraps s in single quotes for sh.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
