package core

import (
	"fmt"
	"sync"

	"github.com/GriffinCanCode/PatternAssistant/core/internal/extract"
	"github.com/GriffinCanCode/PatternAssistant/core/internal/infrastructure/config"
	"github.com/GriffinCanCode/PatternAssistant/core/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/PatternAssistant/core/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/PatternAssistant/core/internal/logging"
	"github.com/GriffinCanCode/PatternAssistant/core/internal/media"
	"github.com/GriffinCanCode/PatternAssistant/core/internal/protocol"
	"github.com/GriffinCanCode/PatternAssistant/core/internal/providers/assistant"
	"github.com/GriffinCanCode/PatternAssistant/core/internal/providers/auth"
	"github.com/GriffinCanCode/PatternAssistant/core/internal/providers/projects"
	"github.com/GriffinCanCode/PatternAssistant/core/internal/providers/transcript"
	"github.com/GriffinCanCode/PatternAssistant/core/internal/session"
	"github.com/GriffinCanCode/PatternAssistant/core/internal/shared/paths"
	"github.com/GriffinCanCode/PatternAssistant/core/internal/vault"
	"go.uber.org/zap"
)

// OnboardedKey is the plain preference recording first-run completion
const OnboardedKey = "hasOnboarded"

// Core owns every service the UI talks to. Build one at startup with New
// and dispose of it with Close; nothing here is a package-level singleton.
type Core struct {
	Config  *config.Config
	Logger  *logging.Logger
	Metrics *monitoring.Metrics
	Tracer  *tracing.Tracer // nil when LOG_TRACE is off

	Vault   *vault.Vault
	Prefs   *vault.Vault
	Session *session.Manager
	Client  *protocol.Client
	Codec   *media.Codec

	Auth       *auth.Provider
	Assistant  *assistant.Provider
	Transcript *transcript.Provider
	Projects   *projects.Provider

	closeOnce sync.Once
	closed    bool
	mu        sync.RWMutex
}

// Option overrides a dependency New would otherwise build from config
type Option func(*options)

type options struct {
	logger  *logging.Logger
	secure  vault.Backend
	prefs   vault.Backend
	metrics *monitoring.Metrics
}

// WithLogger uses l instead of building a logger from config
func WithLogger(l *logging.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithSecureBackend stores the credential in b instead of the configured backend
func WithSecureBackend(b vault.Backend) Option {
	return func(o *options) { o.secure = b }
}

// WithPrefsBackend stores plain flags in b instead of the prefs file
func WithPrefsBackend(b vault.Backend) Option {
	return func(o *options) { o.prefs = b }
}

// WithMetrics records into m instead of a fresh registry
func WithMetrics(m *monitoring.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// New validates cfg, wires the services and loads the persisted credential
func New(cfg *config.Config, opts ...Option) (*Core, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	logger := o.logger
	if logger == nil {
		var err error
		logger, err = logging.New(logging.Config{
			Level:       cfg.Logging.Level,
			Development: cfg.Logging.Development,
			File:        cfg.Logging.File,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create logger: %w", err)
		}
	}

	metrics := o.metrics
	if metrics == nil {
		metrics = monitoring.NewMetrics()
	}

	layout := paths.At(cfg.Vault.Dir)

	secure := o.secure
	if secure == nil {
		var err error
		secure, err = vault.SelectSecure(cfg.Vault.Backend, cfg.Vault.Service, layout.Secrets(), logger)
		if err != nil {
			return nil, err
		}
	}
	prefs := o.prefs
	if prefs == nil {
		prefs = vault.NewPlainFileBackend(layout.Prefs())
	}

	secureVault := vault.New(cfg.Vault.Service, secure, logger, metrics)
	prefsVault := vault.New(cfg.Vault.Service, prefs, logger, metrics)

	sess := session.NewManager(secureVault, cfg.Vault.TokenKey, logger, metrics)
	sess.Init()

	var tracer *tracing.Tracer
	if cfg.Logging.Trace {
		tracer = tracing.New("pattern-core", logger)
	}

	client, err := protocol.NewClient(protocol.Options{
		Endpoint:     cfg.API.Endpoint,
		Timeout:      cfg.API.Timeout,
		UserAgent:    cfg.API.UserAgent,
		AttachToken:  cfg.API.AttachToken,
		RateLimitRPS: cfg.API.RateLimitRPS,
		Tokens:       sess,
		Logger:       logger,
		Metrics:      metrics,
		Tracer:       tracer,
	})
	if err != nil {
		tracer.Close()
		return nil, fmt.Errorf("failed to create protocol client: %w", err)
	}

	codec := media.NewCodec(cfg.Media.MaxDimension, cfg.Media.Quality, logger, metrics)

	c := &Core{
		Config:     cfg,
		Logger:     logger,
		Metrics:    metrics,
		Tracer:     tracer,
		Vault:      secureVault,
		Prefs:      prefsVault,
		Session:    sess,
		Client:     client,
		Codec:      codec,
		Auth:       auth.NewProvider(client, sess, logger),
		Assistant:  assistant.NewProvider(client, extract.New(extract.Aliases), logger),
		Transcript: transcript.NewProvider(client, logger),
		Projects:   projects.NewProvider(client, codec, logger),
	}

	logger.Info("Core ready",
		zap.String("endpoint", client.Endpoint()),
		zap.String("vault_backend", secureVault.BackendName()),
		zap.Bool("attach_token", cfg.API.AttachToken),
		zap.Bool("authenticated", sess.IsAuthenticated()))
	return c, nil
}

// HasOnboarded reports whether first-run onboarding was completed
func (c *Core) HasOnboarded() bool {
	done, ok := c.Prefs.LoadBool(OnboardedKey)
	return ok && done
}

// SetOnboarded records first-run completion
func (c *Core) SetOnboarded(done bool) bool {
	return c.Prefs.SaveBool(done, OnboardedKey)
}

// Closed reports whether Close has run
func (c *Core) Closed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}

// Close drops in-memory credential state and flushes logs. The stored
// credential is kept for the next start.
func (c *Core) Close() error {
	c.closeOnce.Do(func() {
		c.mu.Lock()
		c.closed = true
		c.mu.Unlock()

		c.Session.Close()
		c.Tracer.Close()
		totals := c.Metrics.Snapshot()
		c.Logger.Info("Core closed",
			zap.Int64("operations", totals.TotalOperations),
			zap.Int64("errors", totals.TotalErrors),
			zap.Float64("operation_seconds", totals.TotalDuration))
		// Sync on stdout reports EINVAL/ENOTTY on most platforms
		_ = c.Logger.Sync()
	})
	return nil
}
