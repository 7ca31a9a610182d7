package vault

import (
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

const probeAccount = "__vault_probe__"

// KeyringBackend stores values in the operating system's credential store
// (macOS Keychain, Windows Credential Manager, Secret Service on Linux).
// Keychain items hold text, so bytes are base64 encoded.
type KeyringBackend struct{}

// NewKeyringBackend creates a keyring backend
func NewKeyringBackend() *KeyringBackend {
	return &KeyringBackend{}
}

func (k *KeyringBackend) Name() string { return "keyring" }

// Available reports whether the OS credential store answers for service
func (k *KeyringBackend) Available(service string) bool {
	_, err := keyring.Get(service, probeAccount)
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}

func (k *KeyringBackend) Get(service, account string) ([]byte, error) {
	encoded, err := keyring.Get(service, account)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("keyring get: %w", err)
	}
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("keyring item %q is not valid base64: %w", account, err)
	}
	return data, nil
}

// Set overwrites any existing item for the same service and account
func (k *KeyringBackend) Set(service, account string, data []byte) error {
	if err := keyring.Set(service, account, base64.StdEncoding.EncodeToString(data)); err != nil {
		return fmt.Errorf("keyring set: %w", err)
	}
	return nil
}

func (k *KeyringBackend) Delete(service, account string) error {
	if err := keyring.Delete(service, account); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("keyring delete: %w", err)
	}
	return nil
}
