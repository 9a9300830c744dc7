package utils

import (
	"net"
	"net/netip"
)

// IPNetToPrefix converts an IPv4 IPNet into a netip.Prefix that keeps the host address.
// ok is false for IPv6 networks and non-canonical masks.
func IPNetToPrefix(ipNet *net.IPNet) (prefix netip.Prefix, ok bool) {
	if ipNet == nil {
		return netip.Prefix{}, false
	}
	ip4 := ipNet.IP.To4()
	if ip4 == nil {
		return netip.Prefix{}, false
	}
	ones, bits := ipNet.Mask.Size()
	if bits != 32 {
		return netip.Prefix{}, false
	}
	addr, _ := netip.AddrFromSlice(ip4)
	return netip.PrefixFrom(addr, ones), true
}

// ParseIPv4 parses s as an IPv4 address (IPv4-mapped IPv6 is unmapped).
func ParseIPv4(s string) (netip.Addr, bool) {
	addr, err := netip.ParseAddr(s)
	if err != nil {
		return netip.Addr{}, false
	}
	addr = addr.Unmap()
	if !addr.Is4() {
		return netip.Addr{}, false
	}
	return addr, true
}
