package networking

import (
	"context"
	"fmt"
	"net"
	"net/netip"
	"time"

	"github.com/miekg/dns"

	"github.com/maksimkurb/keen-tray/src/internal/log"
)

const (
	defaultDNSPort   = "53"
	resolvConfPath   = "/etc/resolv.conf"
	dnsClientTimeout = 3 * time.Second
)

// HostResolver resolves router host names to IPv4 addresses.
type HostResolver interface {
	ResolveIPv4(ctx context.Context, host string) ([]netip.Addr, error)
}

// DNSResolver queries A records directly from a list of DNS servers.
type DNSResolver struct {
	servers []string
	client  *dns.Client
}

// Ensure DNSResolver satisfies HostResolver
var _ HostResolver = (*DNSResolver)(nil)

// NewDNSResolver creates a resolver using servers ("ip" or "ip:port").
func NewDNSResolver(servers []string) *DNSResolver {
	addrs := make([]string, 0, len(servers))
	for _, server := range servers {
		if _, _, err := net.SplitHostPort(server); err != nil {
			server = net.JoinHostPort(server, defaultDNSPort)
		}
		addrs = append(addrs, server)
	}
	return &DNSResolver{
		servers: addrs,
		client: &dns.Client{
			Net:     "udp",
			Timeout: dnsClientTimeout,
		},
	}
}

// NewSystemDNSResolver creates a resolver from the servers in /etc/resolv.conf.
func NewSystemDNSResolver() (*DNSResolver, error) {
	conf, err := dns.ClientConfigFromFile(resolvConfPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", resolvConfPath, err)
	}
	servers := make([]string, 0, len(conf.Servers))
	for _, server := range conf.Servers {
		servers = append(servers, net.JoinHostPort(server, conf.Port))
	}
	return NewDNSResolver(servers), nil
}

// ResolveIPv4 returns the A records of host from the first server that
// answers. An IP literal is returned as is.
func (r *DNSResolver) ResolveIPv4(ctx context.Context, host string) ([]netip.Addr, error) {
	if addr, err := netip.ParseAddr(host); err == nil {
		return []netip.Addr{addr.Unmap()}, nil
	}
	if len(r.servers) == 0 {
		return nil, fmt.Errorf("no DNS servers configured")
	}

	req := new(dns.Msg)
	req.SetQuestion(dns.Fqdn(host), dns.TypeA)

	var lastErr error
	for _, server := range r.servers {
		resp, _, err := r.client.ExchangeContext(ctx, req, server)
		if err != nil {
			log.Debugf("DNS query for %s via %s failed: %v", host, server, err)
			lastErr = err
			continue
		}
		if resp.Rcode != dns.RcodeSuccess {
			lastErr = fmt.Errorf("%s answered %s", server, dns.RcodeToString[resp.Rcode])
			continue
		}

		var addrs []netip.Addr
		for _, rr := range resp.Answer {
			if a, ok := rr.(*dns.A); ok {
				if addr, ok := netip.AddrFromSlice(a.A.To4()); ok {
					addrs = append(addrs, addr)
				}
			}
		}
		return addrs, nil
	}
	return nil, fmt.Errorf("failed to resolve %s: %w", host, lastErr)
}
