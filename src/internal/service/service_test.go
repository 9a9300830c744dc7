package service

import (
	"net/netip"
	"testing"

	"github.com/maksimkurb/keen-tray/src/internal/credentials"
	"github.com/maksimkurb/keen-tray/src/internal/domain"
	"github.com/maksimkurb/keen-tray/src/internal/mocks"
	"github.com/maksimkurb/keen-tray/src/internal/networking"
)

const testMAC = "aa:bb:cc:dd:ee:ff"

func strPtr(s string) *string { return &s }

func wlanInterface(t *testing.T, mac, cidr string) networking.LocalInterface {
	t.Helper()
	prefix, err := netip.ParsePrefix(cidr)
	if err != nil {
		t.Fatalf("invalid prefix %q: %v", cidr, err)
	}
	return networking.LocalInterface{Name: "wlan0", MAC: mac, IPv4: []netip.Prefix{prefix}}
}

type testEnv struct {
	fleet      *mocks.MockRouterFleet
	store      *credentials.MemoryStore
	interfaces *mocks.MockInterfaceSource
	deps       *domain.AppDependencies
}

func newTestEnv(t *testing.T, passwords map[string]string, ifaces ...networking.LocalInterface) *testEnv {
	t.Helper()
	env := &testEnv{
		fleet:      mocks.NewMockRouterFleet(),
		store:      credentials.NewMemoryStore(passwords),
		interfaces: mocks.NewMockInterfaceSource(ifaces...),
	}
	env.deps = domain.NewTestDependencies(env.fleet.Factory(), env.store, env.interfaces, nil)
	return env
}
