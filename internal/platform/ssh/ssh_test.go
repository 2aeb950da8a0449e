package ssh

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/ssh"

	"github.com/shikifyj/corosync-config-tool/internal/util/keygen"
)

func echoHandler(command string) (string, string, uint32) {
	switch command {
	case "fail":
		return "", "boom\n", 1
	default:
		return "ran: " + command + "\n", "", 0
	}
}

func TestConfig_Defaults(t *testing.T) {
	cfg := Config{Host: "10.0.0.1"}.withDefaults()

	assert.Equal(t, defaultPort, cfg.Port)
	assert.Equal(t, defaultUser, cfg.User)
	assert.Equal(t, 8*time.Second, cfg.DialTimeout)
	assert.NotNil(t, cfg.HostKeyCallback)
	assert.Equal(t, "10.0.0.1:22", cfg.Addr())
}

func TestConfig_DefaultsDoNotOverride(t *testing.T) {
	cfg := Config{Host: "h", Port: 2222, User: "admin", DialTimeout: time.Second}.withDefaults()

	assert.Equal(t, 2222, cfg.Port)
	assert.Equal(t, "admin", cfg.User)
	assert.Equal(t, time.Second, cfg.DialTimeout)
}

func TestOpen_PasswordExec(t *testing.T) {
	srv := startTestServer(t, "secret", nil, echoHandler)

	s := Open(Config{Host: srv.addr, Port: srv.port, Password: "secret", DialTimeout: 2 * time.Second})
	t.Cleanup(func() { _ = s.Close() })
	require.True(t, s.Connected(), "open failed: %v", s.Err())
	assert.Equal(t, srv.addr, s.Host())

	stdout, stderr, err := s.Exec(context.Background(), "hostname")
	require.NoError(t, err)
	assert.Equal(t, "ran: hostname\n", string(stdout))
	assert.Empty(t, stderr)

	// the connection is reused for further commands
	stdout, _, err = s.Exec(context.Background(), "uptime")
	require.NoError(t, err)
	assert.Equal(t, "ran: uptime\n", string(stdout))
}

func TestOpen_KeyAuth(t *testing.T) {
	kp, err := keygen.GenerateEd25519KeyPair("test")
	require.NoError(t, err)
	pub, _, _, _, err := ssh.ParseAuthorizedKey(kp.PublicKey)
	require.NoError(t, err)

	srv := startTestServer(t, "", pub, echoHandler)

	s := Open(Config{Host: srv.addr, Port: srv.port, PrivateKey: kp.PrivateKey})
	t.Cleanup(func() { _ = s.Close() })
	require.True(t, s.Connected(), "open failed: %v", s.Err())
}

func TestExec_NonZeroExit(t *testing.T) {
	srv := startTestServer(t, "secret", nil, echoHandler)
	s := Open(Config{Host: srv.addr, Port: srv.port, Password: "secret"})
	t.Cleanup(func() { _ = s.Close() })
	require.True(t, s.Connected())

	_, stderr, err := s.Exec(context.Background(), "fail")
	require.Error(t, err)
	assert.Equal(t, "boom\n", string(stderr))

	var exitErr *ssh.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 1, exitErr.ExitStatus())
}

func TestOpen_AuthFailureIsDisconnected(t *testing.T) {
	srv := startTestServer(t, "secret", nil, echoHandler)

	s := Open(Config{Host: srv.addr, Port: srv.port, Password: "wrong"})
	assert.False(t, s.Connected())

	var connErr *ConnectionError
	require.ErrorAs(t, s.Err(), &connErr)
	assert.True(t, connErr.Auth)

	_, _, err := s.Exec(context.Background(), "hostname")
	assert.ErrorAs(t, err, &connErr)
	assert.NoError(t, s.Close())
}

func TestOpen_NetworkFailureIsDisconnected(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())

	s := Open(Config{Host: "127.0.0.1", Port: port, Password: "x", DialTimeout: time.Second})
	assert.False(t, s.Connected())

	var connErr *ConnectionError
	require.ErrorAs(t, s.Err(), &connErr)
	assert.False(t, connErr.Auth)
	assert.Contains(t, connErr.Error(), "failed to connect to 127.0.0.1")
}

func TestOpen_NoCredentials(t *testing.T) {
	s := Open(Config{Host: "127.0.0.1"})
	assert.False(t, s.Connected())
	assert.ErrorContains(t, s.Err(), "no password or private key configured")
}

func TestOpen_InvalidKey(t *testing.T) {
	s := Open(Config{Host: "127.0.0.1", PrivateKey: []byte("invalid key")})
	assert.ErrorContains(t, s.Err(), "failed to parse private key")
}

func TestClose_Idempotent(t *testing.T) {
	srv := startTestServer(t, "secret", nil, echoHandler)
	s := Open(Config{Host: srv.addr, Port: srv.port, Password: "secret"})
	require.True(t, s.Connected())

	require.NoError(t, s.Close())
	assert.NoError(t, s.Close())
	assert.False(t, s.Connected())

	_, _, err := s.Exec(context.Background(), "hostname")
	assert.True(t, errors.Is(err, ErrDisconnected))
}

func TestExec_CanceledContext(t *testing.T) {
	srv := startTestServer(t, "secret", nil, echoHandler)
	s := Open(Config{Host: srv.addr, Port: srv.port, Password: "secret"})
	t.Cleanup(func() { _ = s.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := s.Exec(ctx, "hostname")
	assert.ErrorIs(t, err, context.Canceled)
}
