package mocks

import (
	"github.com/maksimkurb/keen-tray/src/internal/networking"
)

// MockInterfaceSource is a mock implementation of networking.InterfaceSource.
//
// This allows testing router selection and interface correlation without
// depending on the interfaces of the machine running the tests.
type MockInterfaceSource struct {
	// LocalInterfacesFunc is called by LocalInterfaces if not nil
	LocalInterfacesFunc func() ([]networking.LocalInterface, error)

	// Interfaces is returned by LocalInterfaces when LocalInterfacesFunc is nil
	Interfaces []networking.LocalInterface

	// Track calls for verification in tests
	LocalInterfacesCalls int
}

// Ensure MockInterfaceSource satisfies networking.InterfaceSource
var _ networking.InterfaceSource = (*MockInterfaceSource)(nil)

// LocalInterfaces returns the configured interfaces.
func (m *MockInterfaceSource) LocalInterfaces() ([]networking.LocalInterface, error) {
	m.LocalInterfacesCalls++
	if m.LocalInterfacesFunc != nil {
		return m.LocalInterfacesFunc()
	}
	return m.Interfaces, nil
}

// NewMockInterfaceSource creates a source returning ifaces.
func NewMockInterfaceSource(ifaces ...networking.LocalInterface) *MockInterfaceSource {
	return &MockInterfaceSource{Interfaces: ifaces}
}
