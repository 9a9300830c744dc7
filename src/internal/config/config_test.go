package config

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	kerrors "github.com/maksimkurb/keen-tray/src/internal/errors"
)

func TestLoadConfig_NonExistentFile(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "missing", "keen-tray.toml")

	cfg, err := LoadConfig(configFile)
	if err != nil {
		t.Fatalf("Expected defaults for missing file, got error: %v", err)
	}
	if len(cfg.Routers) != 0 {
		t.Errorf("Expected no routers, got %d", len(cfg.Routers))
	}
	if !reflect.DeepEqual(cfg.General, NewDefaultConfig().General) {
		t.Errorf("Expected default general config, got %+v", cfg.General)
	}
	if cfg.Path() != configFile {
		t.Errorf("Expected path %s, got %s", configFile, cfg.Path())
	}
}

func TestLoadConfig_InvalidTOML(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "invalid.toml")

	invalidTOML := `[general
	request_timeout_seconds = 5`

	if err := os.WriteFile(configFile, []byte(invalidTOML), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	_, err := LoadConfig(configFile)
	if !errors.Is(err, kerrors.ErrConfig) {
		t.Errorf("Expected config error for invalid TOML, got %v", err)
	}
}

func TestLoadConfig_ValidConfig(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "valid.toml")

	validTOML := `config_version = 1

[general]
refresh_interval_seconds = 60
resolve_hostnames = true

[[router]]
name = "home"
address = "192.168.1.1/"
login = "admin"
network_ip = "192.168.1.1"
keendns_urls = ["home.keenetic.pro"]

[[router]]
name = "office"
address = "https://office.example.com"
login = "root"
`

	if err := os.WriteFile(configFile, []byte(validTOML), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	cfg, err := LoadConfig(configFile)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if err := cfg.ValidateConfig(); err != nil {
		t.Fatalf("Expected valid config, got: %v", err)
	}

	if cfg.General.RefreshIntervalSeconds != 60 {
		t.Errorf("Expected refresh interval 60, got %d", cfg.General.RefreshIntervalSeconds)
	}
	if cfg.General.RequestTimeoutSeconds != DefaultRequestTimeoutSeconds {
		t.Errorf("Expected default request timeout, got %d", cfg.General.RequestTimeoutSeconds)
	}
	if !cfg.General.ResolveHostnames {
		t.Error("Expected resolve_hostnames to be true")
	}

	want := []RouterConfig{
		{
			Name:        "home",
			Address:     "http://192.168.1.1",
			Login:       "admin",
			NetworkIP:   "192.168.1.1",
			KeenDNSURLs: []string{"home.keenetic.pro"},
		},
		{
			Name:    "office",
			Address: "https://office.example.com",
			Login:   "root",
		},
	}
	if !reflect.DeepEqual(cfg.Routers, want) {
		t.Errorf("Routers = %+v, want %+v", cfg.Routers, want)
	}
}

func TestWriteConfig_RoundTrip(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "nested", "keen-tray.toml")

	cfg, err := LoadConfig(configFile)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if err := cfg.AddRouter(NewRouterConfig("home", "192.168.1.1", "admin")); err != nil {
		t.Fatalf("AddRouter() error = %v", err)
	}
	if err := cfg.WriteConfig(); err != nil {
		t.Fatalf("WriteConfig() error = %v", err)
	}

	reloaded, err := LoadConfig(configFile)
	if err != nil {
		t.Fatalf("LoadConfig() after write error = %v", err)
	}
	if !reflect.DeepEqual(reloaded.Routers, cfg.Routers) {
		t.Errorf("Routers after reload = %+v, want %+v", reloaded.Routers, cfg.Routers)
	}
	if !reflect.DeepEqual(reloaded.General, cfg.General) {
		t.Errorf("General after reload = %+v, want %+v", reloaded.General, cfg.General)
	}
}

func TestWriteConfig_RejectsInvalid(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "keen-tray.toml"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	cfg.Routers = append(cfg.Routers, RouterConfig{Name: "home"})

	err = cfg.WriteConfig()
	if !errors.Is(err, kerrors.ErrValidation) {
		t.Fatalf("Expected validation error, got %v", err)
	}
	if _, statErr := os.Stat(cfg.Path()); !os.IsNotExist(statErr) {
		t.Error("Expected no file to be written")
	}
}

func TestConfig_RouterOperations(t *testing.T) {
	cfg := NewDefaultConfig()

	if err := cfg.AddRouter(NewRouterConfig("home", "192.168.1.1", "admin")); err != nil {
		t.Fatalf("AddRouter(home) error = %v", err)
	}
	if err := cfg.AddRouter(NewRouterConfig("office", "10.0.0.1", "admin")); err != nil {
		t.Fatalf("AddRouter(office) error = %v", err)
	}
	if err := cfg.AddRouter(NewRouterConfig("home", "192.168.2.1", "admin")); err == nil {
		t.Error("Expected error for duplicate router name")
	}

	t.Run("FindRouter", func(t *testing.T) {
		router, ok := cfg.FindRouter("office")
		if !ok || router.Address != "http://10.0.0.1" {
			t.Errorf("FindRouter(office) = %+v, %v", router, ok)
		}
		if _, ok := cfg.FindRouter("missing"); ok {
			t.Error("Expected missing router not to be found")
		}
	})

	t.Run("ReplaceRouter keeps position on rename", func(t *testing.T) {
		if err := cfg.ReplaceRouter("home", NewRouterConfig("house", "192.168.1.1", "admin")); err != nil {
			t.Fatalf("ReplaceRouter() error = %v", err)
		}
		if cfg.Routers[0].Name != "house" || len(cfg.Routers) != 2 {
			t.Errorf("Unexpected routers after rename: %+v", cfg.Routers)
		}
	})

	t.Run("ReplaceRouter rejects name of another router", func(t *testing.T) {
		if err := cfg.ReplaceRouter("house", NewRouterConfig("office", "192.168.1.1", "admin")); err == nil {
			t.Error("Expected duplicate name error")
		}
	})

	t.Run("ReplaceRouter appends unknown", func(t *testing.T) {
		if err := cfg.ReplaceRouter("", NewRouterConfig("cottage", "172.16.0.1", "admin")); err != nil {
			t.Fatalf("ReplaceRouter() error = %v", err)
		}
		if len(cfg.Routers) != 3 || cfg.Routers[2].Name != "cottage" {
			t.Errorf("Unexpected routers after append: %+v", cfg.Routers)
		}
	})

	t.Run("RemoveRouter", func(t *testing.T) {
		if !cfg.RemoveRouter("office") {
			t.Error("Expected office to be removed")
		}
		if cfg.RemoveRouter("office") {
			t.Error("Expected second removal to report false")
		}
		var names []string
		for _, r := range cfg.Routers {
			names = append(names, r.Name)
		}
		if !reflect.DeepEqual(names, []string{"house", "cottage"}) {
			t.Errorf("Unexpected router order: %v", names)
		}
	})
}

func TestConfig_Clone(t *testing.T) {
	cfg := NewDefaultConfig()
	router := NewRouterConfig("home", "192.168.1.1", "admin")
	router.KeenDNSURLs = []string{"home.keenetic.pro"}
	cfg.Routers = []RouterConfig{router}
	cfg.General.DNSServers = []string{"1.1.1.1"}

	clone := cfg.Clone()
	if !reflect.DeepEqual(clone, cfg) {
		t.Fatalf("Clone() = %+v, want %+v", clone, cfg)
	}

	clone.Routers[0].KeenDNSURLs[0] = "other.keenetic.pro"
	clone.General.DNSServers[0] = "8.8.8.8"
	clone.RemoveRouter("home")

	if cfg.Routers[0].KeenDNSURLs[0] != "home.keenetic.pro" || cfg.General.DNSServers[0] != "1.1.1.1" || len(cfg.Routers) != 1 {
		t.Errorf("modifying the clone changed the original: %+v", cfg)
	}
}

func TestConfig_Hash(t *testing.T) {
	a := NewDefaultConfig()
	b := NewDefaultConfig()

	hashA, err := a.Hash()
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	hashB, _ := b.Hash()
	if hashA != hashB {
		t.Error("Expected equal configs to hash equally")
	}

	_ = b.AddRouter(NewRouterConfig("home", "192.168.1.1", "admin"))
	hashB, _ = b.Hash()
	if hashA == hashB {
		t.Error("Expected different configs to hash differently")
	}

	data, err := b.SerializeConfig()
	if err != nil {
		t.Fatal(err)
	}
	sum := sha256.Sum256(data.Bytes())
	if want := hex.EncodeToString(sum[:]); hashB != want {
		t.Errorf("Hash() = %s, want SHA-256 of the serialized file %s", hashB, want)
	}
}

func TestConfig_HashIgnoresFormatting(t *testing.T) {
	dir := t.TempDir()
	plain := filepath.Join(dir, "plain.toml")
	commented := filepath.Join(dir, "commented.toml")

	writeFile(t, plain, "[[router]]\nname = \"home\"\naddress = \"http://192.168.1.1\"\nlogin = \"admin\"\n")
	writeFile(t, commented, "# my routers\n\n[[router]]\n  name    = \"home\"   # LAN\n  address = \"http://192.168.1.1\"\n  login   = \"admin\"\n")

	a, err := LoadConfig(plain)
	if err != nil {
		t.Fatal(err)
	}
	b, err := LoadConfig(commented)
	if err != nil {
		t.Fatal(err)
	}

	hashA, _ := a.Hash()
	hashB, _ := b.Hash()
	if hashA != hashB {
		t.Errorf("formatting changed the hash: %s != %s", hashA, hashB)
	}
}

func TestNewRouterConfig(t *testing.T) {
	router := NewRouterConfig("  home ", "192.168.1.1/", " admin")
	want := RouterConfig{Name: "home", Address: "http://192.168.1.1", Login: "admin"}
	if !reflect.DeepEqual(router, want) {
		t.Errorf("NewRouterConfig() = %+v, want %+v", router, want)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}
