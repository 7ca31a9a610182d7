package vault

import (
	"encoding/binary"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/GriffinCanCode/PatternAssistant/core/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/PatternAssistant/core/internal/logging"
	"go.uber.org/zap"
)

// Vault exposes byte-level save/load/delete over one Backend, scoped to a
// service identifier. Failures degrade to false/absent and are logged;
// callers treat a storage fault the same as "never set".
type Vault struct {
	service string
	backend Backend
	logger  *logging.Logger
	metrics *monitoring.Metrics
}

// New creates a vault for service on backend
func New(service string, backend Backend, logger *logging.Logger, metrics *monitoring.Metrics) *Vault {
	return &Vault{
		service: service,
		backend: backend,
		logger:  logging.OrNop(logger).Named("vault").With(zap.String("backend", backend.Name())),
		metrics: metrics,
	}
}

// Service returns the service identifier
func (v *Vault) Service() string { return v.service }

// BackendName names the storage facility in use
func (v *Vault) BackendName() string { return v.backend.Name() }

// Save stores data under key, overwriting any previous value
func (v *Vault) Save(data []byte, key string) bool {
	op := "insert"
	if _, err := v.backend.Get(v.service, key); err == nil {
		op = "update"
	}

	if err := v.backend.Set(v.service, key, data); err != nil {
		v.logger.Warn("Save failed", zap.String("key", key), zap.String("op", op), zap.Error(err))
		v.metrics.RecordVault("save", "error")
		return false
	}
	v.logger.Debug("Saved", zap.String("key", key), zap.String("op", op), zap.Int("bytes", len(data)))
	v.metrics.RecordVault("save", "ok")
	return true
}

// Load returns the bytes under key, or false when absent or unreadable
func (v *Vault) Load(key string) ([]byte, bool) {
	data, err := v.backend.Get(v.service, key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			v.metrics.RecordVault("load", "absent")
		} else {
			v.logger.Warn("Load failed", zap.String("key", key), zap.Error(err))
			v.metrics.RecordVault("load", "error")
		}
		return nil, false
	}
	v.metrics.RecordVault("load", "ok")
	return data, true
}

// Delete removes key; deleting an absent key succeeds
func (v *Vault) Delete(key string) bool {
	if err := v.backend.Delete(v.service, key); err != nil && !errors.Is(err, ErrNotFound) {
		v.logger.Warn("Delete failed", zap.String("key", key), zap.Error(err))
		v.metrics.RecordVault("delete", "error")
		return false
	}
	v.metrics.RecordVault("delete", "ok")
	return true
}

// SaveString stores s as UTF-8 bytes
func (v *Vault) SaveString(s string, key string) bool {
	return v.Save([]byte(s), key)
}

// LoadString returns the UTF-8 string under key
func (v *Vault) LoadString(key string) (string, bool) {
	data, ok := v.Load(key)
	if !ok || !utf8.Valid(data) {
		return "", false
	}
	return string(data), true
}

// SaveBool stores b as a single byte
func (v *Vault) SaveBool(b bool, key string) bool {
	var data byte
	if b {
		data = 1
	}
	return v.Save([]byte{data}, key)
}

// LoadBool returns the boolean under key
func (v *Vault) LoadBool(key string) (bool, bool) {
	data, ok := v.Load(key)
	if !ok || len(data) != 1 || data[0] > 1 {
		return false, false
	}
	return data[0] == 1, true
}

// SaveInt stores n as eight bytes in native byte order
func (v *Vault) SaveInt(n int64, key string) bool {
	data := make([]byte, 8)
	binary.NativeEndian.PutUint64(data, uint64(n))
	return v.Save(data, key)
}

// LoadInt returns the integer under key
func (v *Vault) LoadInt(key string) (int64, bool) {
	data, ok := v.Load(key)
	if !ok || len(data) != 8 {
		return 0, false
	}
	return int64(binary.NativeEndian.Uint64(data)), true
}

// SelectSecure picks the most secure usable backend. "auto" prefers the OS
// keyring and falls back to the encrypted file store.
func SelectSecure(kind, service, dir string, logger *logging.Logger) (Backend, error) {
	logger = logging.OrNop(logger).Named("vault")
	switch kind {
	case "keyring":
		return NewKeyringBackend(), nil
	case "file":
		return NewEncryptedFileBackend(dir), nil
	case "auto", "":
		kr := NewKeyringBackend()
		if kr.Available(service) {
			return kr, nil
		}
		logger.Info("OS keyring unavailable, using encrypted file store", zap.String("dir", dir))
		return NewEncryptedFileBackend(dir), nil
	default:
		return nil, fmt.Errorf("unknown vault backend %q", kind)
	}
}
