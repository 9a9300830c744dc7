package networking

import (
	"context"
	"net/netip"

	"github.com/maksimkurb/keen-tray/src/internal/config"
	"github.com/maksimkurb/keen-tray/src/internal/log"
	"github.com/maksimkurb/keen-tray/src/internal/utils"
)

// Candidate is a configured router reachable from one of the local networks,
// together with the address to contact it on.
type Candidate struct {
	Router  config.RouterConfig
	Address string
}

// Candidates returns the routers that appear to be on a local network, in
// configuration order.
//
// A router qualifies when its last known network_ip lies in a local network
// (the candidate address is then that IP), or when the host of its configured
// address does. If resolver is non-nil, a host name is resolved and its first
// local IPv4 address is used for matching; the candidate then keeps the
// configured address.
func Candidates(ctx context.Context, routers []config.RouterConfig, networks []netip.Prefix, resolver HostResolver) []Candidate {
	var candidates []Candidate

	for _, router := range routers {
		if router.NetworkIP != "" && IPInNetworks(router.NetworkIP, networks) {
			log.Debugf("Router %q: network IP %s is on a local network", router.Name, router.NetworkIP)
			candidates = append(candidates, Candidate{Router: router, Address: router.NetworkIP})
			continue
		}

		host := utils.ExtractHost(router.Address)
		if IPInNetworks(host, networks) {
			log.Debugf("Router %q: address %s is on a local network", router.Name, host)
			candidates = append(candidates, Candidate{Router: router, Address: router.Address})
			continue
		}

		if resolver != nil && host != "" {
			if _, isIP := utils.ParseIPv4(host); !isIP && resolvesLocally(ctx, resolver, host, networks) {
				log.Debugf("Router %q: host %s resolves to a local network", router.Name, host)
				candidates = append(candidates, Candidate{Router: router, Address: router.Address})
				continue
			}
		}

		log.Debugf("Router %q is not on any local network", router.Name)
	}

	return candidates
}

func resolvesLocally(ctx context.Context, resolver HostResolver, host string, networks []netip.Prefix) bool {
	addrs, err := resolver.ResolveIPv4(ctx, host)
	if err != nil {
		log.Debugf("Failed to resolve %s: %v", host, err)
		return false
	}
	for _, addr := range addrs {
		if addrInNetworks(addr.Unmap(), networks) {
			return true
		}
	}
	return false
}
