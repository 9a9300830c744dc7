package domain

import (
	"testing"

	"github.com/maksimkurb/keen-tray/src/internal/credentials"
	"github.com/maksimkurb/keen-tray/src/internal/keenetic"
	"github.com/maksimkurb/keen-tray/src/internal/networking"
)

func TestNewAppDependencies(t *testing.T) {
	t.Run("Default configuration", func(t *testing.T) {
		deps := NewAppDependencies(AppConfig{Credentials: credentials.NewMemoryStore(nil)})

		if deps.ClientFactory() == nil {
			t.Fatal("Expected client factory to be created")
		}
		client := deps.ClientFactory()("192.168.1.1", "admin", "secret")
		if _, ok := client.(*keenetic.Client); !ok {
			t.Errorf("Expected *keenetic.Client, got %T", client)
		}
		if client.BaseURL() != "http://192.168.1.1" {
			t.Errorf("Expected normalized address, got %s", client.BaseURL())
		}
		if deps.Interfaces() == nil {
			t.Error("Expected interface source to be created")
		}
		if deps.Resolver() != nil {
			t.Error("Expected resolver to be disabled by default")
		}
	})

	t.Run("Keyring by default", func(t *testing.T) {
		deps := NewAppDependencies(AppConfig{})

		if _, ok := deps.Credentials().(*credentials.KeyringStore); !ok {
			t.Errorf("Expected keyring store, got %T", deps.Credentials())
		}
	})

	t.Run("Configured DNS servers", func(t *testing.T) {
		deps := NewAppDependencies(AppConfig{
			ResolveHostnames: true,
			DNSServers:       []string{"192.168.1.1"},
			Credentials:      credentials.NewMemoryStore(nil),
		})

		if _, ok := deps.Resolver().(*networking.DNSResolver); !ok {
			t.Errorf("Expected DNS resolver, got %T", deps.Resolver())
		}
	})
}

func TestNewTestDependencies(t *testing.T) {
	store := credentials.NewMemoryStore(map[string]string{"home": "secret"})
	deps := NewTestDependencies(nil, store, networking.SystemInterfaces{}, nil)

	if deps.Credentials() != store {
		t.Error("Expected injected credential store")
	}
	if deps.Resolver() != nil {
		t.Error("Expected nil resolver")
	}
}
