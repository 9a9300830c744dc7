package keenetic

import (
	"strings"

	"github.com/maksimkurb/keen-tray/src/internal/log"
)

// ParseDNSProxyConfig extracts the upstreams from the text of a DNS proxy
// profile. Only "dns_server = " lines are considered:
//
//	dns_server = 192.168.1.1 domain.com                        plain IPv4, domain-restricted
//	dns_server = 127.0.0.1:40500 . # p0.freedns.controld.com   DoT, comment is the SNI
//	dns_server = 127.0.0.1:40508 . # https://dns.example/p0@x  DoH, "@..." suffix dropped
func ParseDNSProxyConfig(config string) []DNSServerInfo {
	var servers []DNSServerInfo

	for _, line := range strings.Split(config, "\n") {
		line = strings.TrimSpace(line)
		value, ok := strings.CutPrefix(line, dnsServerPrefix)
		if !ok {
			continue
		}

		value, comment, _ := strings.Cut(value, commentDelimiter)
		comment = strings.TrimSpace(comment)

		fields := strings.Fields(value)
		if len(fields) == 0 {
			log.Errorf("Empty or malformed dns_server line: %q", line)
			continue
		}

		server := dnsServerFromEntry(fields[0], comment)
		if len(fields) > 1 && fields[1] != dotSymbol {
			domain := fields[1]
			server.Domain = &domain
		}
		servers = append(servers, server)
	}

	return servers
}

func dnsServerFromEntry(addr, comment string) DNSServerInfo {
	switch {
	case strings.HasPrefix(addr, localhostPrefix) && strings.HasPrefix(comment, httpsPrefix):
		uri, _, _ := strings.Cut(comment, atSymbol)
		ip, port := splitHostPortSuffix(addr)
		return DNSServerInfo{Type: DNSServerTypeDoH, Proxy: ip, Endpoint: uri, Port: port}

	case strings.HasPrefix(addr, localhostPrefix) && comment != "":
		ip, port := splitHostPortSuffix(addr)
		return DNSServerInfo{Type: DNSServerTypeDoT, Proxy: ip, Endpoint: comment, Port: port}

	case strings.HasPrefix(addr, localhostPrefix):
		return DNSServerInfo{Type: DNSServerTypePlain, Proxy: addr, Endpoint: addr}

	case strings.Contains(addr, "."):
		ip, port := splitHostPortSuffix(addr)
		return DNSServerInfo{Type: DNSServerTypePlain, Proxy: ip, Endpoint: ip, Port: port}

	default:
		return DNSServerInfo{Type: DNSServerTypePlainIPv6, Proxy: addr, Endpoint: addr}
	}
}

// splitHostPortSuffix splits "ip:port" at the last colon; without a port the
// address is returned unchanged.
func splitHostPortSuffix(addr string) (ip, port string) {
	if idx := strings.LastIndex(addr, ":"); idx > 0 && idx < len(addr)-1 {
		return addr[:idx], addr[idx+1:]
	}
	return addr, ""
}
