// Package mocks provides mock implementations for testing.
//
// This package should ONLY be imported in test files (_test.go).
// The Go toolchain will automatically exclude this package from production builds
// since it's not imported in any production code.
package mocks

import (
	"context"
	"sync"

	"github.com/maksimkurb/keen-tray/src/internal/domain"
	kerrors "github.com/maksimkurb/keen-tray/src/internal/errors"
	"github.com/maksimkurb/keen-tray/src/internal/keenetic"
	"github.com/maksimkurb/keen-tray/src/internal/utils"
)

// Mutation kinds recorded by MockRouterClient.
const (
	MutationSetPolicy = "set_policy"
	MutationDefault   = "default"
	MutationBlock     = "block"
)

// Mutation is a client policy change received by a MockRouterClient.
type Mutation struct {
	Kind   string
	MAC    string
	Policy keenetic.PolicyAssignment
}

// MockRouterClient is a mock implementation of the domain.RouterClient interface.
//
// It allows tests to provide custom behavior for each method through function fields.
// If a function field is nil, a sensible default implementation is used: login
// succeeds and every table is empty.
//
// Example usage:
//
//	mock := &MockRouterClient{
//	    ListPoliciesFunc: func(ctx context.Context) (map[string]keenetic.PolicyInfo, error) {
//	        return map[string]keenetic.PolicyInfo{"Policy0": {}}, nil
//	    },
//	}
//	policies, err := mock.ListPolicies(ctx)
type MockRouterClient struct {
	Address string

	LoginFunc            func(ctx context.Context) error
	ListCertificatesFunc func(ctx context.Context) ([]string, error)
	GetBridgeIPFunc      func(ctx context.Context) (string, error)
	ListPoliciesFunc     func(ctx context.Context) (map[string]keenetic.PolicyInfo, error)
	ListClientsFunc      func(ctx context.Context) (map[string]*keenetic.ClientRecord, error)
	ListDNSServersFunc   func(ctx context.Context) ([]keenetic.DNSServerInfo, error)
	MutationErr          error

	mu         sync.Mutex
	loginCalls int
	mutations  []Mutation
}

// Ensure MockRouterClient satisfies domain.RouterClient
var _ domain.RouterClient = (*MockRouterClient)(nil)

func (m *MockRouterClient) BaseURL() string {
	return utils.NormalizeAddress(m.Address)
}

func (m *MockRouterClient) Login(ctx context.Context) error {
	m.mu.Lock()
	m.loginCalls++
	m.mu.Unlock()
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx)
	}
	return nil
}

func (m *MockRouterClient) ListCertificates(ctx context.Context) ([]string, error) {
	if m.ListCertificatesFunc != nil {
		return m.ListCertificatesFunc(ctx)
	}
	return nil, nil
}

func (m *MockRouterClient) GetBridgeIP(ctx context.Context) (string, error) {
	if m.GetBridgeIPFunc != nil {
		return m.GetBridgeIPFunc(ctx)
	}
	return "", nil
}

func (m *MockRouterClient) ListPolicies(ctx context.Context) (map[string]keenetic.PolicyInfo, error) {
	if m.ListPoliciesFunc != nil {
		return m.ListPoliciesFunc(ctx)
	}
	return map[string]keenetic.PolicyInfo{}, nil
}

func (m *MockRouterClient) ListClients(ctx context.Context) (map[string]*keenetic.ClientRecord, error) {
	if m.ListClientsFunc != nil {
		return m.ListClientsFunc(ctx)
	}
	return map[string]*keenetic.ClientRecord{}, nil
}

func (m *MockRouterClient) ListDNSServers(ctx context.Context) ([]keenetic.DNSServerInfo, error) {
	if m.ListDNSServersFunc != nil {
		return m.ListDNSServersFunc(ctx)
	}
	return nil, nil
}

func (m *MockRouterClient) SetClientPolicy(_ context.Context, mac string, policy keenetic.PolicyAssignment) error {
	kind := MutationSetPolicy
	if policy.IsClear() {
		kind = MutationDefault
	}
	return m.record(Mutation{Kind: kind, MAC: utils.NormalizeMAC(mac), Policy: policy})
}

func (m *MockRouterClient) ApplyDefaultPolicy(ctx context.Context, mac string) error {
	return m.SetClientPolicy(ctx, mac, keenetic.ClearPolicy())
}

func (m *MockRouterClient) BlockClient(_ context.Context, mac string) error {
	return m.record(Mutation{Kind: MutationBlock, MAC: utils.NormalizeMAC(mac)})
}

func (m *MockRouterClient) record(mutation Mutation) error {
	if m.MutationErr != nil {
		return m.MutationErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mutations = append(m.mutations, mutation)
	return nil
}

// LoginCalls returns the number of Login calls.
func (m *MockRouterClient) LoginCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loginCalls
}

// Mutations returns the recorded policy changes.
func (m *MockRouterClient) Mutations() []Mutation {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Mutation(nil), m.mutations...)
}

// FactoryCall is one invocation of a MockRouterFleet factory.
type FactoryCall struct {
	Address  string
	Login    string
	Password string
}

// MockRouterFleet serves MockRouterClients by address through a
// domain.ClientFactory. Addresses without a client get one whose login fails
// with a transport error, like an unreachable router.
type MockRouterFleet struct {
	Routers map[string]*MockRouterClient

	mu    sync.Mutex
	calls []FactoryCall
}

// NewMockRouterFleet creates an empty fleet.
func NewMockRouterFleet() *MockRouterFleet {
	return &MockRouterFleet{Routers: map[string]*MockRouterClient{}}
}

// Add registers a client for address and returns it.
func (f *MockRouterFleet) Add(address string, client *MockRouterClient) *MockRouterClient {
	if client == nil {
		client = &MockRouterClient{}
	}
	client.Address = address
	f.Routers[address] = client
	return client
}

// Factory returns a domain.ClientFactory backed by the fleet.
func (f *MockRouterFleet) Factory() domain.ClientFactory {
	return func(address, login, password string) domain.RouterClient {
		f.mu.Lock()
		f.calls = append(f.calls, FactoryCall{Address: address, Login: login, Password: password})
		f.mu.Unlock()

		if client, ok := f.Routers[address]; ok {
			return client
		}
		return &MockRouterClient{
			Address: address,
			LoginFunc: func(context.Context) error {
				return kerrors.NewTransportError("connection refused", nil)
			},
		}
	}
}

// Calls returns the recorded factory invocations.
func (f *MockRouterFleet) Calls() []FactoryCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]FactoryCall(nil), f.calls...)
}
