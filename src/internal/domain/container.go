package domain

import (
	"time"

	"github.com/maksimkurb/keen-tray/src/internal/credentials"
	"github.com/maksimkurb/keen-tray/src/internal/keenetic"
	"github.com/maksimkurb/keen-tray/src/internal/log"
	"github.com/maksimkurb/keen-tray/src/internal/networking"
)

// AppDependencies is a dependency injection container that holds all application dependencies.
//
// This container provides a centralized place to manage dependencies and enables:
//   - Easy testing with mock implementations
//   - Configuration-driven dependency creation
//   - Explicit dependency management instead of global state
//
// Usage:
//
//	deps := domain.NewAppDependencies(domain.AppConfig{
//	    RequestTimeout: 10 * time.Second,
//	})
//	client := deps.ClientFactory()("http://192.168.1.1", "admin", password)
type AppDependencies struct {
	clientFactory ClientFactory
	credentials   credentials.Store
	interfaces    networking.InterfaceSource
	resolver      networking.HostResolver
}

// AppConfig holds configuration for creating application dependencies.
type AppConfig struct {
	// RequestTimeout is the per-request HTTP timeout of router sessions (0 = none).
	RequestTimeout time.Duration

	// ResolveHostnames enables DNS resolution of router host names when
	// matching routers against local networks.
	ResolveHostnames bool

	// DNSServers are used for host name resolution instead of /etc/resolv.conf.
	DNSServers []string

	// Credentials overrides the OS keyring password store.
	Credentials credentials.Store
}

// NewAppDependencies creates a new dependency container with production implementations.
//
// This factory method creates real implementations of all interfaces using the
// provided configuration. For testing, use NewTestDependencies or inject mocks directly.
func NewAppDependencies(cfg AppConfig) *AppDependencies {
	timeout := cfg.RequestTimeout
	factory := func(address, login, password string) RouterClient {
		return keenetic.NewClientForRouter(address, login, password, keenetic.WithTimeout(timeout))
	}

	store := cfg.Credentials
	if store == nil {
		store = credentials.NewKeyringStore()
	}

	var resolver networking.HostResolver
	if cfg.ResolveHostnames {
		if len(cfg.DNSServers) > 0 {
			resolver = networking.NewDNSResolver(cfg.DNSServers)
		} else if systemResolver, err := networking.NewSystemDNSResolver(); err != nil {
			log.Warnf("Host name resolution disabled: %v", err)
		} else {
			resolver = systemResolver
		}
	}

	return &AppDependencies{
		clientFactory: factory,
		credentials:   store,
		interfaces:    networking.SystemInterfaces{},
		resolver:      resolver,
	}
}

// NewTestDependencies creates a dependency container with mock implementations.
//
// This is a convenience method for testing. Provide mock implementations for
// any dependencies you want to control in your tests; resolver may be nil.
func NewTestDependencies(
	clientFactory ClientFactory,
	store credentials.Store,
	interfaces networking.InterfaceSource,
	resolver networking.HostResolver,
) *AppDependencies {
	return &AppDependencies{
		clientFactory: clientFactory,
		credentials:   store,
		interfaces:    interfaces,
		resolver:      resolver,
	}
}

// ClientFactory returns the router client factory.
func (d *AppDependencies) ClientFactory() ClientFactory {
	return d.clientFactory
}

// Credentials returns the password store.
func (d *AppDependencies) Credentials() credentials.Store {
	return d.credentials
}

// Interfaces returns the local interface source.
func (d *AppDependencies) Interfaces() networking.InterfaceSource {
	return d.interfaces
}

// Resolver returns the host name resolver, or nil when resolution is disabled.
func (d *AppDependencies) Resolver() networking.HostResolver {
	return d.resolver
}
