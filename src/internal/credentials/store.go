// Package credentials stores router passwords outside the configuration
// file, keyed by router name.
package credentials

import (
	"errors"
	"sync"

	"github.com/zalando/go-keyring"

	kerrors "github.com/maksimkurb/keen-tray/src/internal/errors"
)

// KeyringService is the service name router passwords are filed under.
const KeyringService = "router_manager"

// Store is a password store keyed by router name.
//
// A missing password is not an error: Get returns ok == false and the router
// is skipped as a login candidate.
type Store interface {
	Get(routerName string) (password string, ok bool, err error)
	Set(routerName, password string) error
	Delete(routerName string) error
}

// KeyringStore keeps passwords in the operating system keyring.
type KeyringStore struct {
	service string
}

// Ensure KeyringStore satisfies Store
var _ Store = (*KeyringStore)(nil)

// NewKeyringStore creates a store using the default service name.
func NewKeyringStore() *KeyringStore {
	return &KeyringStore{service: KeyringService}
}

func (s *KeyringStore) Get(routerName string) (string, bool, error) {
	password, err := keyring.Get(s.service, routerName)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, kerrors.NewCredentialsError("failed to read password for "+routerName, err)
	}
	return password, true, nil
}

func (s *KeyringStore) Set(routerName, password string) error {
	if err := keyring.Set(s.service, routerName, password); err != nil {
		return kerrors.NewCredentialsError("failed to store password for "+routerName, err)
	}
	return nil
}

// Delete removes the password. Deleting a missing password succeeds.
func (s *KeyringStore) Delete(routerName string) error {
	err := keyring.Delete(s.service, routerName)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return kerrors.NewCredentialsError("failed to delete password for "+routerName, err)
	}
	return nil
}

// MemoryStore is an in-process Store, safe for concurrent use.
type MemoryStore struct {
	mu        sync.RWMutex
	passwords map[string]string
}

// Ensure MemoryStore satisfies Store
var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates a store holding passwords.
func NewMemoryStore(passwords map[string]string) *MemoryStore {
	s := &MemoryStore{passwords: make(map[string]string, len(passwords))}
	for name, password := range passwords {
		s.passwords[name] = password
	}
	return s
}

func (s *MemoryStore) Get(routerName string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	password, ok := s.passwords[routerName]
	return password, ok, nil
}

func (s *MemoryStore) Set(routerName, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.passwords[routerName] = password
	return nil
}

func (s *MemoryStore) Delete(routerName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.passwords, routerName)
	return nil
}
