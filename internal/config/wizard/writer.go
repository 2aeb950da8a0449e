package wizard

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shikifyj/corosync-config-tool/internal/config"
)

// Function variable for dependency injection in tests.
var confirmOverwrite = defaultConfirmOverwrite

// WriteTopology writes topo to outputPath with a descriptive header.
func WriteTopology(topo *config.Topology, outputPath string, version int) error {
	body, err := topo.Marshal()
	if err != nil {
		return fmt.Errorf("failed to marshal topology: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(generateHeader(outputPath, version, time.Now()))
	sb.WriteString("\n")
	sb.Write(body)

	if err := os.WriteFile(outputPath, []byte(sb.String()), 0o600); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

func generateHeader(outputPath string, version int, now time.Time) string {
	return fmt.Sprintf(`# corosync cluster topology
# Generated by: corosync-config-tool init
# Generated at: %s
#
# Usage:
#   corosync-config-tool render conf --version %d -t %s
#   corosync-config-tool apply --version %d -t %s
`, now.Format(time.RFC3339), version, outputPath, version, outputPath)
}

// FileExists checks if a file exists at the given path.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ConfirmOverwrite prompts the user to confirm overwriting an existing file.
func ConfirmOverwrite(path string) (bool, error) {
	return confirmOverwrite(path)
}

// defaultConfirmOverwrite is the default implementation that prompts via stdin.
func defaultConfirmOverwrite(path string) (bool, error) {
	fmt.Printf("\nFile already exists: %s\n", path)
	fmt.Print("Overwrite? (y/n): ")

	var response string
	if _, err := fmt.Scanln(&response); err != nil {
		return false, err
	}

	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes", nil
}
