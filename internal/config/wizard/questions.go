package wizard

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/shikifyj/corosync-config-tool/internal/util/netutil"
)

var (
	clusterNameRegex = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
	nodeNameRegex    = regexp.MustCompile(`^[A-Za-z0-9](?:[A-Za-z0-9.-]{0,251}[A-Za-z0-9])?$`)
)

// runClusterIdentityGroup prompts for the cluster name, corosync version
// and node count.
func runClusterIdentityGroup(ctx context.Context, result *WizardResult, nodeCount *int) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Cluster Name").
				Description("Written to totem.cluster_name").
				Placeholder("my-cluster").
				Value(&result.ClusterName).
				Validate(validateClusterName),
			huh.NewSelect[int]().
				Title("Corosync Version").
				Options(CorosyncVersionOptions...).
				Value(&result.CorosyncVersion),
			huh.NewSelect[int]().
				Title("Node Count").
				Options(NodeCountOptions()...).
				Value(nodeCount),
			huh.NewInput().
				Title("Bind Network Address (Optional)").
				Description("Ring 0 network for corosync 2. Leave empty to derive it from the first node.").
				Placeholder("10.0.0.0").
				Value(&result.BindNetAddr).
				Validate(validateOptionalAddress),
		).Title("Cluster"),
	).RunWithContext(ctx)
}

// runNodeQuestions prompts for one node.
func runNodeQuestions(ctx context.Context, index, version int, answer *NodeAnswer) error {
	fields := []huh.Field{
		huh.NewInput().
			Title("Node Name").
			Description("Hostname as reported by uname -n").
			Placeholder(fmt.Sprintf("node-%d", index+1)).
			Value(&answer.Name).
			Validate(validateNodeName),
		huh.NewInput().
			Title("Heartbeat Lines").
			Description("Comma-separated IPv4 addresses, ring 0 first. Ring 0 is also used for SSH.").
			Placeholder("10.0.0.11, 10.0.1.11").
			Value(&answer.HeartbeatLines).
			Validate(validateHeartbeatLines),
	}

	idField := huh.NewInput().
		Title("Node ID").
		Value(&answer.ID)
	if version >= 3 {
		idField = idField.Description("Required for corosync 3").Validate(validateNodeID)
	} else {
		idField = idField.Description("Optional for corosync 2").Validate(validateOptionalNodeID)
	}
	fields = append(fields, idField)

	return huh.NewForm(
		huh.NewGroup(fields...).Title(fmt.Sprintf("Node %d", index+1)),
	).RunWithContext(ctx)
}

// validateClusterName validates the cluster name format.
func validateClusterName(s string) error {
	if s == "" {
		return errClusterNameRequired
	}
	if !clusterNameRegex.MatchString(s) {
		return errClusterNameInvalid
	}
	return nil
}

func validateNodeName(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return errNodeNameRequired
	}
	if !nodeNameRegex.MatchString(s) {
		return errNodeNameInvalid
	}
	return nil
}

func validateHeartbeatLines(s string) error {
	lines := parseList(s)
	if len(lines) == 0 {
		return errHeartbeatLinesRequired
	}
	for _, addr := range lines {
		if !netutil.IsIPv4(addr) {
			return fmt.Errorf("%q: %w", addr, errAddressInvalid)
		}
	}
	return nil
}

func validateOptionalAddress(s string) error {
	s = strings.TrimSpace(s)
	if s == "" || netutil.IsIPv4(s) {
		return nil
	}
	return fmt.Errorf("%q: %w", s, errAddressInvalid)
}

func validateNodeID(s string) error {
	_, err := parseNodeID(s)
	return err
}

func validateOptionalNodeID(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return validateNodeID(s)
}

func parseNodeID(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || id < 1 {
		return 0, errNodeIDInvalid
	}
	return id, nil
}

// parseList splits a comma-separated list, dropping blanks.
func parseList(input string) []string {
	parts := strings.Split(input, ",")
	items := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}
