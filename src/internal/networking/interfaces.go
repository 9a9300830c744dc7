package networking

import (
	"net/netip"

	"github.com/maksimkurb/keen-tray/src/internal/utils"
)

// LocalInterface is a network interface of this machine.
type LocalInterface struct {
	Name     string
	MAC      string
	IPv4     []netip.Prefix
	Loopback bool
}

// InterfaceSource enumerates local network interfaces.
type InterfaceSource interface {
	LocalInterfaces() ([]LocalInterface, error)
}

// SystemInterfaces reads interfaces from the running system.
type SystemInterfaces struct{}

// Ensure SystemInterfaces satisfies InterfaceSource
var _ InterfaceSource = SystemInterfaces{}

// LocalNetworks returns the IPv4 networks of all interfaces in interface
// order. The result is meant to be recomputed for every query.
func LocalNetworks(ifaces []LocalInterface) []netip.Prefix {
	var networks []netip.Prefix
	for _, iface := range ifaces {
		for _, prefix := range iface.IPv4 {
			networks = append(networks, prefix.Masked())
		}
	}
	return networks
}

// IPInNetworks reports whether ip is an IPv4 address inside one of networks.
func IPInNetworks(ip string, networks []netip.Prefix) bool {
	addr, ok := utils.ParseIPv4(ip)
	if !ok {
		return false
	}
	return addrInNetworks(addr, networks)
}

func addrInNetworks(addr netip.Addr, networks []netip.Prefix) bool {
	for _, network := range networks {
		if network.Contains(addr) {
			return true
		}
	}
	return false
}
