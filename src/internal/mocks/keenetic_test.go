package mocks

import (
	"context"
	"errors"
	"testing"

	kerrors "github.com/maksimkurb/keen-tray/src/internal/errors"
	"github.com/maksimkurb/keen-tray/src/internal/keenetic"
)

// TestMockRouterClient_DefaultBehavior verifies that the mock returns sensible defaults
func TestMockRouterClient_DefaultBehavior(t *testing.T) {
	mock := &MockRouterClient{Address: "192.168.1.1"}
	ctx := context.Background()

	if err := mock.Login(ctx); err != nil {
		t.Fatalf("Expected login to succeed, got: %v", err)
	}
	if mock.BaseURL() != "http://192.168.1.1" {
		t.Errorf("Expected normalized base URL, got %q", mock.BaseURL())
	}

	policies, err := mock.ListPolicies(ctx)
	if err != nil || len(policies) != 0 {
		t.Errorf("Expected empty policies, got %v (%v)", policies, err)
	}
	clients, err := mock.ListClients(ctx)
	if err != nil || len(clients) != 0 {
		t.Errorf("Expected empty clients, got %v (%v)", clients, err)
	}
	if mock.LoginCalls() != 1 {
		t.Errorf("Expected 1 login call, got %d", mock.LoginCalls())
	}
}

func TestMockRouterClient_RecordsMutations(t *testing.T) {
	mock := &MockRouterClient{}
	ctx := context.Background()

	_ = mock.SetClientPolicy(ctx, "AA:BB:CC:DD:EE:FF", keenetic.NamedPolicy("Policy0"))
	_ = mock.ApplyDefaultPolicy(ctx, "aa:bb:cc:dd:ee:ff")
	_ = mock.BlockClient(ctx, "aa:bb:cc:dd:ee:ff")

	mutations := mock.Mutations()
	want := []string{MutationSetPolicy, MutationDefault, MutationBlock}
	if len(mutations) != len(want) {
		t.Fatalf("Expected %d mutations, got %d", len(want), len(mutations))
	}
	for i, kind := range want {
		if mutations[i].Kind != kind || mutations[i].MAC != "aa:bb:cc:dd:ee:ff" {
			t.Errorf("mutation %d = %+v, want kind %s", i, mutations[i], kind)
		}
	}

	mock.MutationErr = errors.New("write failed")
	if err := mock.BlockClient(ctx, "aa:bb:cc:dd:ee:ff"); err == nil {
		t.Error("Expected MutationErr to be returned")
	}
	if len(mock.Mutations()) != len(want) {
		t.Error("Failed mutation should not be recorded")
	}
}

func TestMockRouterFleet(t *testing.T) {
	fleet := NewMockRouterFleet()
	home := fleet.Add("192.168.1.1", nil)
	factory := fleet.Factory()

	if client := factory("192.168.1.1", "admin", "secret"); client != home {
		t.Error("Expected the registered client for a known address")
	}

	unknown := factory("10.0.0.1", "admin", "secret")
	if err := unknown.Login(context.Background()); !errors.Is(err, kerrors.ErrTransport) {
		t.Errorf("Expected transport error for an unknown address, got %v", err)
	}

	calls := fleet.Calls()
	if len(calls) != 2 || calls[1].Address != "10.0.0.1" || calls[0].Password != "secret" {
		t.Errorf("Unexpected factory calls: %+v", calls)
	}
}
