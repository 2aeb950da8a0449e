// Package netutil provides small network helpers: local address discovery,
// /24 prefix derivation and TCP reachability probes.
package netutil

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

const (
	// probeAddr is only used to pick a route; no packet is sent.
	probeAddr = "8.8.8.8:80"

	// UnknownHost is reported when the local address cannot be determined.
	UnknownHost = "unknown"
)

// dialUDP is replaced in tests.
var dialUDP = func(addr string) (net.Conn, error) {
	return net.Dial("udp4", addr)
}

// HostIP returns the address of the interface that carries the default
// route. Connecting a UDP socket only selects a local endpoint, so this
// works without network traffic. Returns UnknownHost on failure.
func HostIP() string {
	conn, err := dialUDP(probeAddr)
	if err != nil {
		return UnknownHost
	}
	defer func() { _ = conn.Close() }()

	addr, ok := conn.LocalAddr().(*net.UDPAddr)
	if !ok || addr.IP == nil {
		return UnknownHost
	}
	return addr.IP.String()
}

// NetworkPrefix24 returns the /24 network of an IPv4 address, e.g.
// "10.1.2.3" becomes "10.1.2.0".
func NetworkPrefix24(ip string) (string, error) {
	parsed := net.ParseIP(strings.TrimSpace(ip))
	if parsed == nil || parsed.To4() == nil {
		return "", fmt.Errorf("invalid IPv4 address %q", ip)
	}
	v4 := parsed.To4()
	return net.IPv4(v4[0], v4[1], v4[2], 0).String(), nil
}

// IsIPv4 reports whether s is a dotted IPv4 address.
func IsIPv4(s string) bool {
	ip := net.ParseIP(s)
	return ip != nil && ip.To4() != nil && !strings.Contains(s, ":")
}

// PortOpen probes a TCP port once.
func PortOpen(host string, port int, timeout time.Duration) bool {
	conn, err := net.DialTimeout("tcp", net.JoinHostPort(host, strconv.Itoa(port)), timeout)
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}
