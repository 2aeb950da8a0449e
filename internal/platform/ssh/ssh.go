// Package ssh opens remote shell sessions on cluster nodes.
//
// Opening a session never fails from the caller's point of view: when the
// node cannot be reached or rejects the credentials, Open returns a
// disconnected Session that carries the ConnectionError and fails every
// Exec. Connections are not retried.
//
// Security: host keys are not verified unless HostKeyCallback is set.
// Nodes being bootstrapped usually have no known_hosts entry yet.
package ssh

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/ssh"
)

const (
	defaultPort        = 22
	defaultUser        = "root"
	defaultDialTimeout = 8 * time.Second
)

// ErrDisconnected is returned by Exec on a session that never connected
// or has been closed.
var ErrDisconnected = errors.New("ssh session is not connected")

// ConnectionError reports why a session could not be established.
type ConnectionError struct {
	Addr string
	// Auth is true when the server was reached but rejected the credentials.
	Auth bool
	Err  error
}

func (e *ConnectionError) Error() string {
	if e.Auth {
		return fmt.Sprintf("ssh authentication to %s failed: %v", e.Addr, e.Err)
	}
	return fmt.Sprintf("failed to connect to %s: %v", e.Addr, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// Config holds SSH session configuration.
type Config struct {
	Host string
	Port int
	User string

	// Password and PrivateKey select the authentication methods. Both may
	// be set; the key is tried first.
	Password   string
	PrivateKey []byte

	// DialTimeout bounds connection establishment.
	// If zero, defaultDialTimeout is used.
	DialTimeout time.Duration

	// HostKeyCallback handles host key verification.
	// If nil, ssh.InsecureIgnoreHostKey() is used.
	HostKeyCallback ssh.HostKeyCallback
}

// withDefaults returns a copy of cfg with zero values replaced.
func (cfg Config) withDefaults() Config {
	if cfg.Port == 0 {
		cfg.Port = defaultPort
	}
	if cfg.User == "" {
		cfg.User = defaultUser
	}
	if cfg.DialTimeout == 0 {
		cfg.DialTimeout = defaultDialTimeout
	}
	if cfg.HostKeyCallback == nil {
		cfg.HostKeyCallback = ssh.InsecureIgnoreHostKey() //nolint:gosec // nodes being bootstrapped have no known host key
	}
	return cfg
}

// Addr returns host:port.
func (cfg Config) Addr() string {
	return net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
}

// Session is an authenticated connection to one host.
type Session struct {
	config Config
	client *ssh.Client
	err    error
}

// Open connects and authenticates. It does not return an error; check
// Connected or Err on the result.
func Open(cfg Config) *Session {
	cfg = cfg.withDefaults()
	s := &Session{config: cfg}

	auth, err := authMethods(cfg)
	if err != nil {
		s.err = &ConnectionError{Addr: cfg.Addr(), Auth: true, Err: err}
		return s
	}

	client, err := ssh.Dial("tcp", cfg.Addr(), &ssh.ClientConfig{
		User:            cfg.User,
		Auth:            auth,
		HostKeyCallback: cfg.HostKeyCallback,
		Timeout:         cfg.DialTimeout,
	})
	if err != nil {
		s.err = &ConnectionError{Addr: cfg.Addr(), Auth: isAuthError(err), Err: err}
		return s
	}
	s.client = client
	return s
}

func authMethods(cfg Config) ([]ssh.AuthMethod, error) {
	var methods []ssh.AuthMethod
	if len(cfg.PrivateKey) > 0 {
		signer, err := ssh.ParsePrivateKey(cfg.PrivateKey)
		if err != nil {
			return nil, fmt.Errorf("failed to parse private key: %w", err)
		}
		methods = append(methods, ssh.PublicKeys(signer))
	}
	if cfg.Password != "" {
		methods = append(methods, ssh.Password(cfg.Password))
	}
	if len(methods) == 0 {
		return nil, errors.New("no password or private key configured")
	}
	return methods, nil
}

// isAuthError reports whether the handshake failed on authentication.
// x/crypto/ssh does not export a typed error for this.
func isAuthError(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return false
	}
	return strings.Contains(err.Error(), "unable to authenticate")
}

// Connected reports whether the session is usable.
func (s *Session) Connected() bool {
	return s != nil && s.client != nil
}

// Err returns the ConnectionError of a session that failed to open.
func (s *Session) Err() error {
	if s == nil {
		return ErrDisconnected
	}
	return s.err
}

// Host returns the remote host.
func (s *Session) Host() string {
	return s.config.Host
}

// Exec runs command on the remote host and returns its stdout and stderr.
// A non-zero exit status is returned as *ssh.ExitError. Once dispatched,
// the command runs to completion; ctx is only checked before that.
func (s *Session) Exec(ctx context.Context, command string) ([]byte, []byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	if !s.Connected() {
		if err := s.Err(); err != nil {
			return nil, nil, err
		}
		return nil, nil, ErrDisconnected
	}

	session, err := s.client.NewSession()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create SSH session on %s: %w", s.config.Host, err)
	}
	defer func() { _ = session.Close() }()

	var stdout, stderr bytes.Buffer
	session.Stdout = &stdout
	session.Stderr = &stderr

	if err := session.Run(command); err != nil {
		return stdout.Bytes(), stderr.Bytes(), fmt.Errorf("command failed on %s: %w", s.config.Host, err)
	}
	return stdout.Bytes(), stderr.Bytes(), nil
}

// Close releases the connection. It is safe to call more than once and on
// a disconnected session.
func (s *Session) Close() error {
	if s == nil || s.client == nil {
		return nil
	}
	err := s.client.Close()
	s.client = nil
	if s.err == nil {
		s.err = ErrDisconnected
	}
	return err
}
