package utils

import (
	"net"
	"strconv"
	"strings"
)

// NormalizeAddress turns a configured router address into a base URL.
//
// Addresses without an http/https scheme get "http://" prepended after one
// trailing slash is stripped. Addresses that already carry a scheme are kept
// as-is apart from surrounding whitespace and a trailing slash.
func NormalizeAddress(address string) string {
	base := strings.TrimSpace(address)
	base = strings.TrimSuffix(base, "/")
	if base == "" {
		return ""
	}
	if !hasHTTPScheme(base) {
		base = "http://" + base
	}
	return base
}

func hasHTTPScheme(address string) bool {
	lower := strings.ToLower(address)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// ExtractHost returns the host part of a router address: scheme, path and
// port are removed. IPv6 literals are returned without brackets.
func ExtractHost(address string) string {
	value := strings.TrimSpace(address)
	if idx := strings.Index(value, "://"); idx != -1 {
		value = value[idx+3:]
	}
	if idx := strings.Index(value, "/"); idx != -1 {
		value = value[:idx]
	}
	if host, _, err := net.SplitHostPort(value); err == nil {
		return host
	}
	return strings.Trim(value, "[]")
}

// IsValidPort reports whether port is a decimal TCP/UDP port in 1..65535.
func IsValidPort(port string) bool {
	n, err := strconv.Atoi(port)
	return err == nil && n >= 1 && n <= 65535
}
