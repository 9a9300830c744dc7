//go:build !linux

package networking

import (
	"net"

	"github.com/maksimkurb/keen-tray/src/internal/log"
	"github.com/maksimkurb/keen-tray/src/internal/utils"
)

// LocalInterfaces lists interfaces and their IPv4 addresses via package net.
func (SystemInterfaces) LocalInterfaces() ([]LocalInterface, error) {
	netIfaces, err := net.Interfaces()
	if err != nil {
		return nil, err
	}

	ifaces := make([]LocalInterface, 0, len(netIfaces))
	for _, netIface := range netIfaces {
		iface := LocalInterface{
			Name:     netIface.Name,
			Loopback: netIface.Flags&net.FlagLoopback != 0,
		}
		if len(netIface.HardwareAddr) > 0 {
			iface.MAC = utils.NormalizeMAC(netIface.HardwareAddr.String())
		}

		addrs, err := netIface.Addrs()
		if err != nil {
			log.Warnf("Failed to list addresses of %s: %v", netIface.Name, err)
		}
		for _, addr := range addrs {
			ipNet, ok := addr.(*net.IPNet)
			if !ok {
				continue
			}
			if prefix, ok := utils.IPNetToPrefix(ipNet); ok {
				iface.IPv4 = append(iface.IPv4, prefix)
			}
		}

		ifaces = append(ifaces, iface)
	}
	return ifaces, nil
}
