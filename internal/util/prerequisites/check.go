// Package prerequisites checks that the programs a local install shells out
// to are present on this machine.
package prerequisites

import (
	"fmt"
	"os/exec"
	"strings"
)

// Tool is a program looked up in PATH.
type Tool struct {
	Name string
	// Required tools fail the check when missing; others only warn.
	Required    bool
	Description string
}

// LocalInstallTools returns the programs used when corosync.conf is written
// on this machine. systemctl is only required when the service is restarted.
func LocalInstallTools(restart bool) []Tool {
	return []Tool{
		{Name: "sh", Required: true, Description: "runs the install commands"},
		{Name: "systemctl", Required: restart, Description: "restarts the corosync service"},
		{Name: "corosync", Description: "the cluster engine the config is written for"},
	}
}

// CheckResult is the outcome for a single tool.
type CheckResult struct {
	Tool  Tool
	Found bool
	Path  string
}

// CheckResults holds the outcome for every checked tool.
type CheckResults struct {
	Results []CheckResult
	Missing []Tool
}

// HasErrors reports whether a required tool is missing.
func (r *CheckResults) HasErrors() bool {
	for _, tool := range r.Missing {
		if tool.Required {
			return true
		}
	}
	return false
}

// Error returns an error naming every missing required tool, or nil.
func (r *CheckResults) Error() error {
	var missing []string
	for _, tool := range r.Missing {
		if tool.Required {
			missing = append(missing, fmt.Sprintf("%s (%s)", tool.Name, tool.Description))
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("missing required tools: %s", strings.Join(missing, ", "))
}

// Optional returns the names of missing tools that are not required.
func (r *CheckResults) Optional() []string {
	var names []string
	for _, tool := range r.Missing {
		if !tool.Required {
			names = append(names, tool.Name)
		}
	}
	return names
}

// lookPath is replaced in tests.
var lookPath = exec.LookPath

// Check looks up every tool in PATH.
func Check(tools []Tool) *CheckResults {
	results := &CheckResults{}
	for _, tool := range tools {
		result := CheckResult{Tool: tool}
		if path, err := lookPath(tool.Name); err == nil {
			result.Found = true
			result.Path = path
		} else {
			results.Missing = append(results.Missing, tool)
		}
		results.Results = append(results.Results, result)
	}
	return results
}
