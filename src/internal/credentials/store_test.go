package credentials

import (
	"errors"
	"testing"

	"github.com/zalando/go-keyring"

	kerrors "github.com/maksimkurb/keen-tray/src/internal/errors"
)

func testStore(t *testing.T, store Store) {
	t.Helper()

	if _, ok, err := store.Get("home"); err != nil || ok {
		t.Fatalf("Get(missing) = ok %v, err %v", ok, err)
	}

	if err := store.Set("home", "secret"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	password, ok, err := store.Get("home")
	if err != nil || !ok || password != "secret" {
		t.Fatalf("Get() = %q, %v, %v", password, ok, err)
	}

	if err := store.Set("home", "changed"); err != nil {
		t.Fatalf("Set() overwrite error = %v", err)
	}
	if password, _, _ := store.Get("home"); password != "changed" {
		t.Errorf("Expected overwritten password, got %q", password)
	}

	if err := store.Delete("home"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, ok, _ := store.Get("home"); ok {
		t.Error("Expected password to be deleted")
	}
	if err := store.Delete("home"); err != nil {
		t.Errorf("Delete(missing) error = %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	testStore(t, NewMemoryStore(nil))
}

func TestMemoryStore_Initial(t *testing.T) {
	initial := map[string]string{"home": "secret"}
	store := NewMemoryStore(initial)
	initial["home"] = "mutated"

	if password, ok, _ := store.Get("home"); !ok || password != "secret" {
		t.Errorf("Get() = %q, %v; want copy of initial map", password, ok)
	}
}

func TestKeyringStore(t *testing.T) {
	keyring.MockInit()
	testStore(t, NewKeyringStore())
}

func TestKeyringStore_Error(t *testing.T) {
	keyring.MockInitWithError(errors.New("keyring locked"))
	store := NewKeyringStore()

	if _, _, err := store.Get("home"); !errors.Is(err, kerrors.ErrCredentials) {
		t.Errorf("Get() error = %v, want credentials error", err)
	}
	if err := store.Set("home", "secret"); !errors.Is(err, kerrors.ErrCredentials) {
		t.Errorf("Set() error = %v, want credentials error", err)
	}
	if err := store.Delete("home"); !errors.Is(err, kerrors.ErrCredentials) {
		t.Errorf("Delete() error = %v, want credentials error", err)
	}
}
