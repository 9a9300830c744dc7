// Package domain defines core interfaces for dependency injection and abstraction.
//
// This package contains the fundamental interfaces that enable loose coupling between
// components and facilitate testing through dependency injection.
package domain

import (
	"context"

	"github.com/maksimkurb/keen-tray/src/internal/keenetic"
)

// RouterClient defines the interface for interacting with one Keenetic router.
//
// *keenetic.Client implements it; tests use mocks.MockRouterClient. Every
// method authenticates first, so callers never call Login explicitly except
// to check credentials.
type RouterClient interface {
	// BaseURL returns the normalized router address the client talks to.
	BaseURL() string

	// Login authenticates the client's session.
	Login(ctx context.Context) error

	// ListCertificates returns the router's KeenDNS domains.
	ListCertificates(ctx context.Context) ([]string, error)

	// GetBridgeIP returns the home bridge address, or "" if unknown.
	GetBridgeIP(ctx context.Context) (string, error)

	// ListPolicies returns the router policies keyed by name.
	ListPolicies(ctx context.Context) (map[string]keenetic.PolicyInfo, error)

	// ListClients returns the reconciled client table keyed by MAC.
	ListClients(ctx context.Context) (map[string]*keenetic.ClientRecord, error)

	// SetClientPolicy assigns a policy to a client and permits it.
	SetClientPolicy(ctx context.Context, mac string, policy keenetic.PolicyAssignment) error

	// ApplyDefaultPolicy restores the default policy of a client.
	ApplyDefaultPolicy(ctx context.Context, mac string) error

	// BlockClient denies network access to a client.
	BlockClient(ctx context.Context, mac string) error

	// ListDNSServers returns the upstreams of the router's System DNS profile.
	ListDNSServers(ctx context.Context) ([]keenetic.DNSServerInfo, error)
}

// Ensure *keenetic.Client satisfies RouterClient
var _ RouterClient = (*keenetic.Client)(nil)

// ClientFactory creates a client with a fresh session for one router address
// and set of credentials.
type ClientFactory func(address, login, password string) RouterClient
