package net

import (
	"fmt"
	"net"
	"strconv"
	"strings"
)

// Scheme prefixes share links handed to touch devices.
const Scheme = "touchboard://"

// OutgoingIP finds the address other machines on the LAN should use to
// reach this host. No packets are sent; dialing UDP only selects a route.
func OutgoingIP() string {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		return firstIPv4().String()
	}
	defer conn.Close()
	return conn.LocalAddr().(*net.UDPAddr).IP.String()
}

// ShareLink formats the link for a relay on port.
func ShareLink(ip string, port int) string {
	return Scheme + net.JoinHostPort(ip, strconv.Itoa(port))
}

// IsLink reports whether s looks like a share link.
func IsLink(s string) bool {
	return strings.HasPrefix(s, Scheme)
}

// ParseLink extracts host:port from a share link.
func ParseLink(link string) (string, error) {
	if !IsLink(link) {
		return "", fmt.Errorf("link %q does not start with %s", link, Scheme)
	}
	addr := strings.TrimSuffix(strings.TrimPrefix(link, Scheme), "/")
	if _, _, err := net.SplitHostPort(addr); err != nil {
		return "", fmt.Errorf("link %q: %w", link, err)
	}
	return addr, nil
}
