package config

import (
	"strings"
	"time"

	"github.com/maksimkurb/keen-tray/src/internal/utils"
)

const (
	CurrentConfigVersion = 1

	DefaultRequestTimeoutSeconds  = 10
	DefaultRefreshIntervalSeconds = 30
	DefaultAPIListenAddr          = "127.0.0.1:8097"
	DefaultTooltipFormat          = "Keenetic Tray - {short}"
)

type Config struct {
	// ConfigVersion is the configuration file version.
	ConfigVersion uint8 `toml:"config_version" json:"config_version"`
	// General holds general configuration.
	General GeneralConfig `toml:"general" json:"general"`
	// Routers is the ordered list of routers. The first reachable one is used.
	Routers []RouterConfig `toml:"router,omitempty" json:"routers"`

	_absConfigFilePath string
}

type GeneralConfig struct {
	// RequestTimeoutSeconds is the timeout of a single router request (0 = no timeout).
	RequestTimeoutSeconds int `toml:"request_timeout_seconds" json:"request_timeout_seconds" validate:"gte=0"`
	// RefreshIntervalSeconds is the period of watch and serve refreshes.
	RefreshIntervalSeconds int `toml:"refresh_interval_seconds" json:"refresh_interval_seconds" validate:"gte=1"`
	// APIListenAddr is the listen address of the local API server.
	APIListenAddr string `toml:"api_listen_addr" json:"api_listen_addr" validate:"hostport_or_empty"`
	// ResolveHostnames enables DNS resolution of router host names for subnet matching.
	ResolveHostnames bool `toml:"resolve_hostnames" json:"resolve_hostnames"`
	// DNSServers overrides the servers from /etc/resolv.conf (ip or ip:port).
	DNSServers []string `toml:"dns_servers,omitempty" json:"dns_servers,omitempty" validate:"dive,dns_server"`
	// TooltipFormat is the tray tooltip template. Available tags: {router}, {label}, {short}, {interface}.
	TooltipFormat string `toml:"tooltip_format" json:"tooltip_format"`
}

type RouterConfig struct {
	// Name identifies the router and keys its password in the credential store.
	Name string `toml:"name" json:"name" validate:"required"`
	// Address is the management URL, e.g. http://192.168.1.1.
	Address string `toml:"address" json:"address" validate:"required"`
	// Login is the management user name.
	Login string `toml:"login" json:"login" validate:"required"`
	// NetworkIP is the router's home bridge IPv4 address, learned on registration.
	NetworkIP string `toml:"network_ip,omitempty" json:"network_ip,omitempty" validate:"ipv4_or_empty"`
	// KeenDNSURLs are the router's KeenDNS domains, learned on registration.
	KeenDNSURLs []string `toml:"keendns_urls,omitempty" json:"keendns_urls,omitempty" validate:"dive,domain_name"`
}

// NewDefaultConfig returns a configuration with defaults and no routers.
func NewDefaultConfig() *Config {
	return &Config{
		ConfigVersion: CurrentConfigVersion,
		General: GeneralConfig{
			RequestTimeoutSeconds:  DefaultRequestTimeoutSeconds,
			RefreshIntervalSeconds: DefaultRefreshIntervalSeconds,
			APIListenAddr:          DefaultAPIListenAddr,
			TooltipFormat:          DefaultTooltipFormat,
		},
	}
}

// NewRouterConfig creates a router entry with a normalized address.
func NewRouterConfig(name, address, login string) RouterConfig {
	router := RouterConfig{Name: name, Address: address, Login: login}
	router.Normalize()
	return router
}

// Normalize trims the fields and normalizes the address scheme.
func (r *RouterConfig) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Login = strings.TrimSpace(r.Login)
	r.NetworkIP = strings.TrimSpace(r.NetworkIP)
	if strings.TrimSpace(r.Address) != "" {
		r.Address = utils.NormalizeAddress(r.Address)
	}
}

// RequestTimeout returns the per-request timeout.
func (g GeneralConfig) RequestTimeout() time.Duration {
	return time.Duration(g.RequestTimeoutSeconds) * time.Second
}

// RefreshInterval returns the refresh period.
func (g GeneralConfig) RefreshInterval() time.Duration {
	return time.Duration(g.RefreshIntervalSeconds) * time.Second
}

// Path returns the absolute path the configuration was loaded from.
func (c *Config) Path() string {
	return c._absConfigFilePath
}
