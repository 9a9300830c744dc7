package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/maksimkurb/keen-tray/src/internal/credentials"
	"github.com/maksimkurb/keen-tray/src/internal/domain"
	"github.com/maksimkurb/keen-tray/src/internal/keenetic"
)

// DNSServerInfo is a router upstream DNS server as shown by the CLI and API.
type DNSServerInfo struct {
	Type     string  `json:"type"`
	Endpoint string  `json:"endpoint"`
	Domain   *string `json:"domain,omitempty"`
	Proxy    string  `json:"proxy"`
	Port     string  `json:"port,omitempty"`
}

// DNSService lists the upstream DNS servers of the active router.
type DNSService struct {
	clients     domain.ClientFactory
	credentials credentials.Store
}

// NewDNSService creates a new DNS service.
func NewDNSService(deps *domain.AppDependencies) *DNSService {
	return &DNSService{
		clients:     deps.ClientFactory(),
		credentials: deps.Credentials(),
	}
}

// GetDNSServers retrieves the DNS servers of the target router.
func (s *DNSService) GetDNSServers(ctx context.Context, target RouterTarget) ([]DNSServerInfo, error) {
	client, err := connect(s.clients, s.credentials, target)
	if err != nil {
		return nil, err
	}

	servers, err := client.ListDNSServers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch DNS servers: %w", err)
	}

	result := make([]DNSServerInfo, 0, len(servers))
	for _, server := range servers {
		result = append(result, FormatDNSServerForAPI(server))
	}
	return result, nil
}

// FormatDNSServers renders servers one per line for CLI output.
func (s *DNSService) FormatDNSServers(servers []DNSServerInfo) string {
	var sb strings.Builder

	for _, server := range servers {
		domain := "-"
		if server.Domain != nil {
			domain = *server.Domain
		}
		if server.Port != "" {
			sb.WriteString(fmt.Sprintf("  [%s] %-35s [for domain: %-15s] %s:%s\n",
				server.Type, server.Endpoint, domain, server.Proxy, server.Port))
		} else {
			sb.WriteString(fmt.Sprintf("  [%s] %-35s [for domain: %-15s] %s\n",
				server.Type, server.Endpoint, domain, server.Proxy))
		}
	}

	return sb.String()
}

// FormatDNSServerForAPI converts keenetic.DNSServerInfo to DNSServerInfo.
func FormatDNSServerForAPI(server keenetic.DNSServerInfo) DNSServerInfo {
	return DNSServerInfo{
		Type:     string(server.Type),
		Endpoint: server.Endpoint,
		Domain:   server.Domain,
		Proxy:    server.Proxy,
		Port:     server.Port,
	}
}
