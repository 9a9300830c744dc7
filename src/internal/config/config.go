package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/pelletier/go-toml/v2"

	kerrors "github.com/maksimkurb/keen-tray/src/internal/errors"
	"github.com/maksimkurb/keen-tray/src/internal/log"
)

const (
	appDirName     = "keen-tray"
	configFileName = "keen-tray.toml"
)

// DefaultConfigPath returns <user config dir>/keen-tray/keen-tray.toml.
func DefaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", kerrors.NewConfigError("failed to determine user config directory", err)
	}
	return filepath.Join(dir, appDirName, configFileName), nil
}

// LoadConfig reads the configuration at configPath. A missing file yields the
// defaults with no routers.
func LoadConfig(configPath string) (*Config, error) {
	configFile, err := filepath.Abs(filepath.Clean(configPath))
	if err != nil {
		return nil, kerrors.NewConfigError("failed to get absolute path", err)
	}

	config := NewDefaultConfig()
	config._absConfigFilePath = configFile

	content, err := os.ReadFile(configFile)
	if errors.Is(err, os.ErrNotExist) {
		log.Debugf("Configuration file %s not found, using defaults", configFile)
		return config, nil
	}
	if err != nil {
		return nil, kerrors.NewConfigError("failed to read config file", err)
	}

	if err := toml.Unmarshal(content, config); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			log.Errorf("%s", derr.String())
			row, col := derr.Position()
			return nil, kerrors.NewConfigError(fmt.Sprintf("failed to parse config file at line %d, column %d", row, col), err)
		}
		return nil, kerrors.NewConfigError("failed to parse config file", err)
	}

	for i := range config.Routers {
		config.Routers[i].Normalize()
	}

	log.Debugf("Configuration file path: %s (%d router(s))", configFile, len(config.Routers))
	return config, nil
}

func (c *Config) SerializeConfig() (*bytes.Buffer, error) {
	buf := bytes.Buffer{}
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(c); err != nil {
		return nil, err
	}
	return &buf, nil
}

// WriteConfig validates and writes the configuration back to its file,
// creating the parent directory if needed.
func (c *Config) WriteConfig() error {
	if c._absConfigFilePath == "" {
		return kerrors.NewConfigError("configuration has no file path", nil)
	}
	if err := c.ValidateConfig(); err != nil {
		return err
	}

	data, err := c.SerializeConfig()
	if err != nil {
		return kerrors.NewConfigError("failed to serialize config", err)
	}
	if err := os.MkdirAll(filepath.Dir(c._absConfigFilePath), 0755); err != nil {
		return kerrors.NewConfigError("failed to create config directory", err)
	}
	if err := os.WriteFile(c._absConfigFilePath, data.Bytes(), 0644); err != nil {
		return kerrors.NewConfigError("failed to write config file", err)
	}
	return nil
}

// Clone returns a deep copy of the configuration bound to the same file.
func (c *Config) Clone() *Config {
	clone := *c
	clone.General.DNSServers = slices.Clone(c.General.DNSServers)
	clone.Routers = slices.Clone(c.Routers)
	for i := range clone.Routers {
		clone.Routers[i].KeenDNSURLs = slices.Clone(clone.Routers[i].KeenDNSURLs)
	}
	return &clone
}

// FindRouter returns the router with the given name.
func (c *Config) FindRouter(name string) (RouterConfig, bool) {
	if idx := c.routerIndex(name); idx >= 0 {
		return c.Routers[idx], true
	}
	return RouterConfig{}, false
}

// AddRouter appends router. Names must be unique.
func (c *Config) AddRouter(router RouterConfig) error {
	router.Normalize()
	if c.routerIndex(router.Name) >= 0 {
		return duplicateRouterError(router.Name)
	}
	c.Routers = append(c.Routers, router)
	return nil
}

// ReplaceRouter replaces the router called originalName with router, keeping
// its position. If originalName is empty or unknown, router is appended.
func (c *Config) ReplaceRouter(originalName string, router RouterConfig) error {
	router.Normalize()

	idx := -1
	if originalName != "" {
		idx = c.routerIndex(originalName)
	}
	if existing := c.routerIndex(router.Name); existing >= 0 && existing != idx {
		return duplicateRouterError(router.Name)
	}

	if idx < 0 {
		c.Routers = append(c.Routers, router)
		return nil
	}
	c.Routers[idx] = router
	return nil
}

// RemoveRouter removes the router with the given name and reports whether it
// was present.
func (c *Config) RemoveRouter(name string) bool {
	idx := c.routerIndex(name)
	if idx < 0 {
		return false
	}
	c.Routers = append(c.Routers[:idx], c.Routers[idx+1:]...)
	return true
}

func (c *Config) routerIndex(name string) int {
	for i := range c.Routers {
		if c.Routers[i].Name == name {
			return i
		}
	}
	return -1
}

func duplicateRouterError(name string) error {
	return ValidationErrors{{
		ItemName:  name,
		FieldPath: "name",
		Message:   fmt.Sprintf("router named %q already exists", name),
	}}
}
