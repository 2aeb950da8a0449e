package wizard

import (
	"strconv"

	"github.com/charmbracelet/huh"
)

// CorosyncVersionOptions lists the supported corosync major versions.
var CorosyncVersionOptions = []huh.Option[int]{
	huh.NewOption("corosync 3 (knet, nodeid required)", 3),
	huh.NewOption("corosync 2 (udp/multicast rings)", 2),
}

// maxNodes bounds the node count offered by the wizard.
const maxNodes = 16

// NodeCountOptions returns the selectable node counts, 2 to maxNodes.
func NodeCountOptions() []huh.Option[int] {
	opts := make([]huh.Option[int], 0, maxNodes-1)
	for n := 2; n <= maxNodes; n++ {
		opts = append(opts, huh.NewOption(strconv.Itoa(n)+" nodes", n))
	}
	return opts
}
