// Package settings holds runtime options shared by all commands.
//
// Values come from persistent flags and COROSYNC_TOOL_* environment
// variables (flag names upper-cased, dashes replaced by underscores), e.g.
// COROSYNC_TOOL_SSH_PASSWORD. Flags win over the environment.
package settings

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/shikifyj/corosync-config-tool/internal/config"
	"github.com/shikifyj/corosync-config-tool/internal/platform/ssh"
)

// EnvPrefix prefixes every environment variable.
const EnvPrefix = "COROSYNC_TOOL"

// Flag names.
const (
	FlagTopology    = "topology"
	FlagLogDir      = "log-dir"
	FlagVerbose     = "verbose"
	FlagSSHUser     = "ssh-user"
	FlagSSHPort     = "ssh-port"
	FlagSSHPassword = "ssh-password"
	FlagSSHKey      = "ssh-key"
	FlagSSHTimeout  = "ssh-timeout"
	FlagMetricsFile = "metrics-file"
	FlagDryRun      = "dry-run"
)

// Settings are the resolved runtime options.
type Settings struct {
	Topology    string        `mapstructure:"topology"`
	LogDir      string        `mapstructure:"log-dir"`
	Verbose     int           `mapstructure:"verbose"`
	SSHUser     string        `mapstructure:"ssh-user"`
	SSHPort     int           `mapstructure:"ssh-port"`
	SSHPassword string        `mapstructure:"ssh-password"`
	SSHKey      string        `mapstructure:"ssh-key"`
	SSHTimeout  time.Duration `mapstructure:"ssh-timeout"`
	MetricsFile string        `mapstructure:"metrics-file"`
	DryRun      bool          `mapstructure:"dry-run"`
}

// AddFlags registers the shared flags on fs.
func AddFlags(fs *pflag.FlagSet) {
	fs.StringP(FlagTopology, "t", config.DefaultTopologyFile, "Path to the cluster topology YAML")
	fs.String(FlagLogDir, ".", "Directory for the per-run log file")
	fs.IntP(FlagVerbose, "v", 0, "Log verbosity")
	fs.String(FlagSSHUser, "root", "SSH user for cluster nodes")
	fs.Int(FlagSSHPort, 22, "SSH port of cluster nodes")
	fs.String(FlagSSHPassword, "", "SSH password (prefer "+EnvPrefix+"_SSH_PASSWORD)")
	fs.String(FlagSSHKey, "", "Path to an SSH private key")
	fs.Duration(FlagSSHTimeout, 8*time.Second, "SSH connection timeout")
	fs.String(FlagMetricsFile, "", "Write Prometheus metrics to this file on exit")
	fs.Bool(FlagDryRun, false, "Log commands without executing them")
}

// Load resolves settings from fs and the environment.
func Load(fs *pflag.FlagSet) (*Settings, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(fs); err != nil {
		return nil, fmt.Errorf("failed to bind flags: %w", err)
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks ranges.
func (s *Settings) Validate() error {
	if s.SSHPort < 1 || s.SSHPort > 65535 {
		return fmt.Errorf("ssh-port %d out of range", s.SSHPort)
	}
	if s.SSHTimeout <= 0 {
		return fmt.Errorf("ssh-timeout must be positive, got %s", s.SSHTimeout)
	}
	return nil
}

// HasCredentials reports whether a password or key is configured.
func (s *Settings) HasCredentials() bool {
	return s.SSHPassword != "" || s.SSHKey != ""
}

// ReadKey reads the configured private key, or returns nil when none is set.
func (s *Settings) ReadKey() ([]byte, error) {
	if s.SSHKey == "" {
		return nil, nil
	}
	// #nosec G304
	key, err := os.ReadFile(s.SSHKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read ssh key: %w", err)
	}
	return key, nil
}

// SSHConfig returns the session config for node. Per-node ssh_user and
// ssh_port override the global values.
func (s *Settings) SSHConfig(node config.Node, key []byte) ssh.Config {
	cfg := ssh.Config{
		Host:        node.Address(),
		Port:        s.SSHPort,
		User:        s.SSHUser,
		Password:    s.SSHPassword,
		PrivateKey:  key,
		DialTimeout: s.SSHTimeout,
	}
	if node.SSHUser != "" {
		cfg.User = node.SSHUser
	}
	if node.SSHPort != 0 {
		cfg.Port = node.SSHPort
	}
	return cfg
}
