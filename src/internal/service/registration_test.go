package service

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/maksimkurb/keen-tray/src/internal/config"
	kerrors "github.com/maksimkurb/keen-tray/src/internal/errors"
	"github.com/maksimkurb/keen-tray/src/internal/mocks"
)

func loadTestConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.LoadConfig(filepath.Join(t.TempDir(), "keen-tray.toml"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	return cfg
}

func TestRouterRegistration_Register(t *testing.T) {
	env := newTestEnv(t, nil)
	env.fleet.Add("http://192.168.1.1", &mocks.MockRouterClient{
		GetBridgeIPFunc: func(context.Context) (string, error) { return "192.168.1.1", nil },
		ListCertificatesFunc: func(context.Context) ([]string, error) {
			return []string{"home.keenetic.pro"}, nil
		},
	})
	cfg := loadTestConfig(t)

	saved, err := NewRouterRegistration(env.deps).Register(context.Background(), cfg, RegisterRequest{
		Name:     "home",
		Address:  "192.168.1.1",
		Login:    "admin",
		Password: "secret",
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	want := config.RouterConfig{
		Name:        "home",
		Address:     "http://192.168.1.1",
		Login:       "admin",
		NetworkIP:   "192.168.1.1",
		KeenDNSURLs: []string{"home.keenetic.pro"},
	}
	if !reflect.DeepEqual(saved, want) {
		t.Errorf("Register() = %+v, want %+v", saved, want)
	}
	if password, ok, _ := env.store.Get("home"); !ok || password != "secret" {
		t.Errorf("stored password = %q, %v", password, ok)
	}

	reloaded, err := config.LoadConfig(cfg.Path())
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if !reflect.DeepEqual(reloaded.Routers, []config.RouterConfig{want}) {
		t.Errorf("saved routers = %+v", reloaded.Routers)
	}
}

func TestRouterRegistration_DiscoveryIsBestEffort(t *testing.T) {
	env := newTestEnv(t, nil)
	env.fleet.Add("http://192.168.1.1", &mocks.MockRouterClient{
		GetBridgeIPFunc: func(context.Context) (string, error) {
			return "", kerrors.NewInvalidResponseError("status 404", nil)
		},
		ListCertificatesFunc: func(context.Context) ([]string, error) {
			return nil, kerrors.NewTransportError("timeout", nil)
		},
	})
	cfg := loadTestConfig(t)

	saved, err := NewRouterRegistration(env.deps).Register(context.Background(), cfg, RegisterRequest{
		Name: "home", Address: "192.168.1.1", Login: "admin", Password: "secret",
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if saved.NetworkIP != "" || len(saved.KeenDNSURLs) != 0 {
		t.Errorf("Register() = %+v, want no discovered fields", saved)
	}
}

func TestRouterRegistration_Edit(t *testing.T) {
	env := newTestEnv(t, map[string]string{"home": "old", "office": "pw"})
	env.fleet.Add("http://192.168.2.1", nil)
	cfg := loadTestConfig(t)
	cfg.Routers = []config.RouterConfig{
		config.NewRouterConfig("home", "192.168.1.1", "admin"),
		config.NewRouterConfig("office", "10.0.0.1", "admin"),
	}

	_, err := NewRouterRegistration(env.deps).Register(context.Background(), cfg, RegisterRequest{
		Name: "cottage", Address: "192.168.2.1", Login: "root", Password: "new", OriginalName: "home",
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if names := []string{cfg.Routers[0].Name, cfg.Routers[1].Name}; !reflect.DeepEqual(names, []string{"cottage", "office"}) {
		t.Errorf("routers = %v, want [cottage office]", names)
	}
	if _, ok, _ := env.store.Get("home"); ok {
		t.Errorf("password of the renamed router was kept")
	}
	if password, ok, _ := env.store.Get("cottage"); !ok || password != "new" {
		t.Errorf("cottage password = %q, %v", password, ok)
	}
}

func TestRouterRegistration_Errors(t *testing.T) {
	tests := []struct {
		name    string
		req     RegisterRequest
		wantErr error
	}{
		{"missing fields", RegisterRequest{Name: "x", Address: "192.168.1.1"}, kerrors.ErrValidation},
		{"duplicate name", RegisterRequest{Name: "office", Address: "192.168.1.1", Login: "admin"}, kerrors.ErrValidation},
		{"wrong password", RegisterRequest{Name: "home", Address: "192.168.1.1", Login: "admin", Password: "bad"}, kerrors.ErrAuthFailed},
		{"unreachable", RegisterRequest{Name: "home", Address: "192.168.9.9", Login: "admin"}, kerrors.ErrTransport},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, map[string]string{"office": "pw"})
			env.fleet.Add("http://192.168.1.1", &mocks.MockRouterClient{
				LoginFunc: func(context.Context) error {
					return kerrors.NewAuthFailedError("status 401", nil)
				},
			})
			cfg := loadTestConfig(t)
			cfg.Routers = []config.RouterConfig{config.NewRouterConfig("office", "10.0.0.1", "admin")}

			_, err := NewRouterRegistration(env.deps).Register(context.Background(), cfg, tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Register() error = %v, want %v", err, tt.wantErr)
			}
			if len(cfg.Routers) != 1 {
				t.Errorf("routers changed on failure: %+v", cfg.Routers)
			}
			if _, ok, _ := env.store.Get(tt.req.Name); ok && tt.req.Name != "office" {
				t.Errorf("password stored on failure")
			}
		})
	}
}

func TestRouterRegistration_Remove(t *testing.T) {
	env := newTestEnv(t, map[string]string{"home": "pw"})
	cfg := loadTestConfig(t)
	cfg.Routers = []config.RouterConfig{config.NewRouterConfig("home", "192.168.1.1", "admin")}

	registration := NewRouterRegistration(env.deps)
	if err := registration.Remove(cfg, "home"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if len(cfg.Routers) != 0 {
		t.Errorf("routers = %+v, want none", cfg.Routers)
	}
	if _, ok, _ := env.store.Get("home"); ok {
		t.Errorf("password was not deleted")
	}
	if err := registration.Remove(cfg, "missing"); err != nil {
		t.Errorf("Remove() of an unknown router error = %v", err)
	}
}

func TestRouterRegistration_VerifyThenSave(t *testing.T) {
	env := newTestEnv(t, nil)
	env.fleet.Add("http://192.168.1.1", nil)
	registration := NewRouterRegistration(env.deps)
	cfg := loadTestConfig(t)
	req := RegisterRequest{Name: "home", Address: "192.168.1.1", Login: "admin", Password: "secret"}

	router, err := registration.Verify(context.Background(), cfg, req)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if len(cfg.Routers) != 0 {
		t.Errorf("Verify() changed the configuration: %+v", cfg.Routers)
	}
	if _, ok, _ := env.store.Get("home"); ok {
		t.Error("Verify() stored the password")
	}

	// Another save for the same name lands between Verify and Save.
	_ = cfg.AddRouter(config.NewRouterConfig("home", "192.168.1.2", "admin"))

	err = registration.Save(cfg, req, router)
	if !errors.Is(err, kerrors.ErrValidation) {
		t.Fatalf("Save() error = %v, want validation error", err)
	}
	if _, ok, _ := env.store.Get("home"); ok {
		t.Error("rejected Save() stored the password")
	}
}
