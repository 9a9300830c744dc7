//go:build linux

package networking

import (
	"net"

	"github.com/vishvananda/netlink"
)

// Mock types for testing

type mockNetlinkLink struct {
	name     string
	mac      string
	up       bool
	loopback bool
	index    int
}

func (m *mockNetlinkLink) Attrs() *netlink.LinkAttrs {
	flags := net.Flags(0)
	if m.up {
		flags |= net.FlagUp
	}
	if m.loopback {
		flags |= net.FlagLoopback
	}
	attrs := &netlink.LinkAttrs{
		Name:  m.name,
		Index: m.index,
		Flags: flags,
	}
	if m.mac != "" {
		attrs.HardwareAddr, _ = net.ParseMAC(m.mac)
	}
	return attrs
}

func (m *mockNetlinkLink) Type() string { return "mock" }

func mustAddr(cidr string) netlink.Addr {
	ip, ipNet, err := net.ParseCIDR(cidr)
	if err != nil {
		panic(err)
	}
	ipNet.IP = ip
	return netlink.Addr{IPNet: ipNet}
}
