package session

import (
	"errors"
	"sync"
	"time"

	"github.com/GriffinCanCode/PatternAssistant/core/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/PatternAssistant/core/internal/logging"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

var (
	// ErrEmptyToken is returned when establishing a session with no token
	ErrEmptyToken = errors.New("session: empty token")
	// ErrPersist is returned when the token could not be written to the vault
	ErrPersist = errors.New("session: failed to persist token")
	// ErrClear is returned when the stored token could be neither deleted nor blanked
	ErrClear = errors.New("session: failed to clear stored token")
)

// Store is the slice of the credential vault the session needs
type Store interface {
	SaveString(s string, key string) bool
	LoadString(key string) (string, bool)
	Delete(key string) bool
}

// Manager owns the authentication token. The vault is the source of truth
// across restarts; the in-memory copy is what protocol calls read.
type Manager struct {
	store   Store
	key     string
	token   string
	logger  *logging.Logger
	metrics *monitoring.Metrics
	mu      sync.RWMutex
}

// NewManager creates a session manager storing its token under key
func NewManager(store Store, key string, logger *logging.Logger, metrics *monitoring.Metrics) *Manager {
	return &Manager{
		store:   store,
		key:     key,
		logger:  logging.OrNop(logger).Named("session"),
		metrics: metrics,
	}
}

// Init loads a previously persisted token into memory. An empty stored
// value counts as signed out.
func (m *Manager) Init() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	token, ok := m.store.LoadString(m.key)
	if !ok || token == "" {
		m.token = ""
		m.metrics.SetAuthenticated(false)
		return false
	}
	m.token = token
	m.metrics.SetAuthenticated(true)
	m.logger.Debug("Session restored")
	return true
}

// Token implements protocol.TokenSource
func (m *Manager) Token() (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token, m.token != ""
}

// IsAuthenticated reports whether a token is held in memory
func (m *Manager) IsAuthenticated() bool {
	_, ok := m.Token()
	return ok
}

// Establish persists token and then adopts it. Memory is untouched if the
// write fails.
func (m *Manager) Establish(token string) error {
	if token == "" {
		return ErrEmptyToken
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.store.SaveString(token, m.key) {
		m.logger.Warn("Could not persist token")
		return ErrPersist
	}
	m.token = token
	m.metrics.SetAuthenticated(true)
	m.logger.Info("Session established")
	return nil
}

// Clear signs out. The in-memory token is always dropped; ErrClear means the
// vault may still hold the old value.
func (m *Manager) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.token = ""
	m.metrics.SetAuthenticated(false)

	if m.store.Delete(m.key) {
		m.logger.Info("Session cleared")
		return nil
	}
	if m.store.SaveString("", m.key) {
		m.logger.Warn("Delete failed, stored token blanked instead")
		return nil
	}
	m.logger.Error("Stored token could not be removed")
	return ErrClear
}

// ExpiresAt reads the exp claim when the token is a JWT. The signature is
// not checked; the server remains the authority.
func (m *Manager) ExpiresAt() (time.Time, bool) {
	token, ok := m.Token()
	if !ok {
		return time.Time{}, false
	}

	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

// Expired reports whether the held token carries an exp claim in the past
func (m *Manager) Expired(now time.Time) bool {
	exp, ok := m.ExpiresAt()
	if !ok {
		return false
	}
	expired := !now.Before(exp)
	if expired {
		m.logger.Debug("Token past exp claim", zap.Time("exp", exp))
	}
	return expired
}

// Close drops the in-memory token without touching the vault
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
}
