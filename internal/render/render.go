// Package render emits corosync configuration blocks.
//
// Blocks are brace-delimited. Node fields are indented by four spaces and
// every nested block by one tab:
//
//	nodelist {
//		node {
//		    ring0_addr: 10.0.0.1
//		    name: node-a
//		}
//	}
//
// Output is built line by line in the target grammar; nothing here goes
// through a generic serializer.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shikifyj/corosync-config-tool/internal/textedit"
)

const (
	indent = "\t"
	// nodeFieldIndent indents the fields of a node block.
	nodeFieldIndent = "    "

	// InterfaceMcastPort is the multicast port of every generated interface block.
	InterfaceMcastPort = 5407
	// InterfaceTTL is the multicast TTL of every generated interface block.
	InterfaceTTL = 1
)

// NodeBlock is the input for one node entry of a nodelist.
type NodeBlock struct {
	Name           string
	HeartbeatLines []string
	// ID is written as nodeid when set.
	ID *int
}

// block accumulates "key: value" lines and wraps them in "name { ... }".
type block struct {
	name   string
	indent string
	lines  []string
}

func (b *block) set(key, value string) {
	b.lines = append(b.lines, key+": "+value)
}

func (b *block) String() string {
	var sb strings.Builder
	sb.WriteString(b.name)
	sb.WriteString(" {\n")
	for _, line := range b.lines {
		sb.WriteString(b.indent)
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	sb.WriteString("}")
	return sb.String()
}

// RingKey returns the nodelist key for ring i, e.g. "ring0_addr".
func RingKey(i int) string {
	return fmt.Sprintf("ring%d_addr", i)
}

// RenderNode renders a single node block with its fields indented by four
// spaces. Heartbeat line i becomes ring i's address; nodeid is only
// written when id is non-nil.
func RenderNode(heartbeatLines []string, name string, id *int) string {
	b := &block{name: "node", indent: nodeFieldIndent}
	for i, addr := range heartbeatLines {
		b.set(RingKey(i), addr)
	}
	b.set("name", name)
	if id != nil {
		b.set("nodeid", strconv.Itoa(*id))
	}
	return b.String()
}

// RenderNodeList renders every node in order inside a nodelist block.
func RenderNodeList(nodes []NodeBlock) string {
	var sb strings.Builder
	sb.WriteString("nodelist {\n")
	for _, n := range nodes {
		sb.WriteString(textedit.Indent(RenderNode(n.HeartbeatLines, n.Name, n.ID), indent))
		sb.WriteString("\n")
	}
	sb.WriteString("}")
	return sb.String()
}

// RenderInterfaces renders one interface block per bind address after the
// first. Index 0 belongs to the primary interface and is skipped, so ring
// numbers start at 1. Blocks are indented one level for embedding in a
// totem section and joined without a wrapper.
func RenderInterfaces(bindAddrs []string) string {
	if len(bindAddrs) < 2 {
		return ""
	}
	blocks := make([]string, 0, len(bindAddrs)-1)
	for ring, addr := range bindAddrs[1:] {
		b := &block{name: "interface", indent: indent}
		b.set("ringnumber", strconv.Itoa(ring+1))
		b.set("bindnetaddr", addr)
		b.set("mcastport", strconv.Itoa(InterfaceMcastPort))
		b.set("ttl", strconv.Itoa(InterfaceTTL))
		blocks = append(blocks, textedit.Indent(b.String(), indent))
	}
	return strings.Join(blocks, "\n")
}

// ParseRingAddrs reads the ringN_addr values of a rendered node block back
// in ring order. Keys are matched exactly after trimming indentation; gaps
// in ring numbering end the list.
func ParseRingAddrs(text string) []string {
	found := map[int]string{}
	for _, line := range strings.Split(text, "\n") {
		key, value, ok := strings.Cut(strings.TrimSpace(line), ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		var ring int
		if _, err := fmt.Sscanf(key, "ring%d_addr", &ring); err != nil || ring < 0 || key != RingKey(ring) {
			continue
		}
		if _, dup := found[ring]; !dup {
			found[ring] = strings.TrimSpace(value)
		}
	}

	var addrs []string
	for i := 0; ; i++ {
		addr, ok := found[i]
		if !ok {
			return addrs
		}
		addrs = append(addrs, addr)
	}
}
