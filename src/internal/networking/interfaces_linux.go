//go:build linux

package networking

import (
	"net"

	"github.com/vishvananda/netlink"

	"github.com/maksimkurb/keen-tray/src/internal/log"
	"github.com/maksimkurb/keen-tray/src/internal/utils"
)

// LocalInterfaces lists links and their IPv4 addresses via netlink.
func (SystemInterfaces) LocalInterfaces() ([]LocalInterface, error) {
	links, err := netlink.LinkList()
	if err != nil {
		return nil, err
	}

	ifaces := make([]LocalInterface, 0, len(links))
	for _, link := range links {
		addrs, err := netlink.AddrList(link, netlink.FAMILY_V4)
		if err != nil {
			log.Warnf("Failed to list addresses of %s: %v", link.Attrs().Name, err)
		}
		ifaces = append(ifaces, linkToInterface(link, addrs))
	}
	return ifaces, nil
}

func linkToInterface(link netlink.Link, addrs []netlink.Addr) LocalInterface {
	attrs := link.Attrs()
	iface := LocalInterface{
		Name:     attrs.Name,
		Loopback: attrs.Flags&net.FlagLoopback != 0,
	}
	if len(attrs.HardwareAddr) > 0 {
		iface.MAC = utils.NormalizeMAC(attrs.HardwareAddr.String())
	}
	for _, addr := range addrs {
		if prefix, ok := utils.IPNetToPrefix(addr.IPNet); ok {
			iface.IPv4 = append(iface.IPv4, prefix)
		}
	}
	return iface
}
