package settings

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shikifyj/corosync-config-tool/internal/config"
)

func newFlagSet(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	AddFlags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestLoad_Defaults(t *testing.T) {
	s, err := Load(newFlagSet(t))
	require.NoError(t, err)

	assert.Equal(t, config.DefaultTopologyFile, s.Topology)
	assert.Equal(t, ".", s.LogDir)
	assert.Equal(t, "root", s.SSHUser)
	assert.Equal(t, 22, s.SSHPort)
	assert.Equal(t, 8*time.Second, s.SSHTimeout)
	assert.False(t, s.DryRun)
	assert.False(t, s.HasCredentials())
}

func TestLoad_Flags(t *testing.T) {
	s, err := Load(newFlagSet(t, "--topology", "c.yaml", "--ssh-port", "2222", "--ssh-timeout", "3s", "--dry-run", "-v", "1"))
	require.NoError(t, err)

	assert.Equal(t, "c.yaml", s.Topology)
	assert.Equal(t, 2222, s.SSHPort)
	assert.Equal(t, 3*time.Second, s.SSHTimeout)
	assert.True(t, s.DryRun)
	assert.Equal(t, 1, s.Verbose)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("COROSYNC_TOOL_SSH_PASSWORD", "from-env")
	t.Setenv("COROSYNC_TOOL_SSH_USER", "admin")

	s, err := Load(newFlagSet(t))
	require.NoError(t, err)
	assert.Equal(t, "from-env", s.SSHPassword)
	assert.Equal(t, "admin", s.SSHUser)
	assert.True(t, s.HasCredentials())
}

func TestLoad_FlagBeatsEnvironment(t *testing.T) {
	t.Setenv("COROSYNC_TOOL_SSH_USER", "admin")

	s, err := Load(newFlagSet(t, "--ssh-user", "deploy"))
	require.NoError(t, err)
	assert.Equal(t, "deploy", s.SSHUser)
}

func TestLoad_Invalid(t *testing.T) {
	_, err := Load(newFlagSet(t, "--ssh-port", "70000"))
	assert.ErrorContains(t, err, "ssh-port")

	_, err = Load(newFlagSet(t, "--ssh-timeout", "0s"))
	assert.ErrorContains(t, err, "ssh-timeout")
}

func TestReadKey(t *testing.T) {
	s := &Settings{}
	key, err := s.ReadKey()
	require.NoError(t, err)
	assert.Nil(t, key)

	path := filepath.Join(t.TempDir(), "id")
	require.NoError(t, os.WriteFile(path, []byte("KEY"), 0o600))
	s.SSHKey = path
	key, err = s.ReadKey()
	require.NoError(t, err)
	assert.Equal(t, []byte("KEY"), key)

	s.SSHKey = filepath.Join(t.TempDir(), "missing")
	_, err = s.ReadKey()
	assert.Error(t, err)
}

func TestSSHConfig(t *testing.T) {
	s := &Settings{SSHUser: "root", SSHPort: 22, SSHPassword: "pw", SSHTimeout: 8 * time.Second}

	cfg := s.SSHConfig(config.Node{Name: "a", HeartbeatLines: []string{"10.0.0.1", "10.0.1.1"}}, nil)
	assert.Equal(t, "10.0.0.1", cfg.Host)
	assert.Equal(t, "root", cfg.User)
	assert.Equal(t, 22, cfg.Port)
	assert.Equal(t, "pw", cfg.Password)
	assert.Equal(t, 8*time.Second, cfg.DialTimeout)

	cfg = s.SSHConfig(config.Node{Name: "b", HeartbeatLines: []string{"10.0.0.2"}, SSHUser: "admin", SSHPort: 2222}, []byte("k"))
	assert.Equal(t, "admin", cfg.User)
	assert.Equal(t, 2222, cfg.Port)
	assert.Equal(t, []byte("k"), cfg.PrivateKey)
}
