package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/GriffinCanCode/PatternAssistant/core/internal/logging"
	"github.com/GriffinCanCode/PatternAssistant/core/internal/protocol"
	"github.com/GriffinCanCode/PatternAssistant/core/internal/shared/types"
	"github.com/GriffinCanCode/PatternAssistant/core/internal/shared/utils"
	"go.uber.org/zap"
)

const userFields = `user { id email createdAt }`

const (
	loginMutation = `mutation Login($input: LoginInput!) {
  login(input: $input) { ` + userFields + ` accessToken tokenType }
}`

	registerMutation = `mutation Register($input: RegisterInput!) {
  register(input: $input) { ` + userFields + ` accessToken tokenType }
}`

	refreshMutation = `mutation RefreshToken {
  refreshToken { ` + userFields + ` accessToken tokenType }
}`

	meQuery = `query Me {
  me { id email createdAt }
}`
)

var (
	// ErrInvalidCredentials is returned for an empty email or password
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrMissingToken is returned when the server answers without an access token
	ErrMissingToken = errors.New("server returned no access token")
	// ErrNotAuthenticated is returned for calls that need a held token
	ErrNotAuthenticated = errors.New("not authenticated")
)

// Session is the credential state the auth flows write to
type Session interface {
	Establish(token string) error
	Clear() error
	IsAuthenticated() bool
}

// Provider runs the account operations and keeps the session in step with
// their results. Only these flows write the credential.
type Provider struct {
	client  *protocol.Client
	session Session
	logger  *logging.Logger
}

// NewProvider creates an auth provider
func NewProvider(client *protocol.Client, session Session, logger *logging.Logger) *Provider {
	return &Provider{
		client:  client,
		session: session,
		logger:  logging.OrNop(logger).Named("auth"),
	}
}

// Login signs in and persists the returned token
func (p *Provider) Login(ctx context.Context, email, password string) (*types.AuthPayload, error) {
	// Strength rules apply to new accounts only; the server judges the rest
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	out, err := protocol.Execute[struct {
		Login types.AuthPayload `json:"login"`
	}](ctx, p.client, protocol.NewOperation(loginMutation, credentialsInput(email, password)))
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	return p.adopt("login", &out.Login)
}

// Register creates an account and persists the returned token
func (p *Provider) Register(ctx context.Context, email, password string) (*types.AuthPayload, error) {
	if err := utils.ValidateEmail(email, true); err != nil {
		return nil, err
	}
	if err := utils.ValidatePassword(password); err != nil {
		return nil, err
	}

	out, err := protocol.Execute[struct {
		Register types.AuthPayload `json:"register"`
	}](ctx, p.client, protocol.NewOperation(registerMutation, credentialsInput(email, password)))
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	return p.adopt("register", &out.Register)
}

// Refresh exchanges the held token for a new one and overwrites the stored
// credential
func (p *Provider) Refresh(ctx context.Context) (*types.AuthPayload, error) {
	if !p.session.IsAuthenticated() {
		return nil, ErrNotAuthenticated
	}

	out, err := protocol.Execute[struct {
		RefreshToken types.AuthPayload `json:"refreshToken"`
	}](ctx, p.client, protocol.NewOperation(refreshMutation, nil))
	if err != nil {
		return nil, fmt.Errorf("refresh token: %w", err)
	}
	return p.adopt("refresh", &out.RefreshToken)
}

// Me fetches the signed-in user
func (p *Provider) Me(ctx context.Context) (*types.User, error) {
	if !p.session.IsAuthenticated() {
		return nil, ErrNotAuthenticated
	}

	out, err := protocol.Execute[struct {
		Me *types.User `json:"me"`
	}](ctx, p.client, protocol.NewOperation(meQuery, nil))
	if err != nil {
		return nil, fmt.Errorf("me: %w", err)
	}
	if out.Me == nil {
		return nil, ErrNotAuthenticated
	}
	return out.Me, nil
}

// Logout forgets the credential locally. Memory is cleared even when the
// store reports a failure.
func (p *Provider) Logout() error {
	if err := p.session.Clear(); err != nil {
		p.logger.Warn("Logout left a stored token behind", zap.Error(err))
		return err
	}
	p.logger.Info("Logged out")
	return nil
}

func (p *Provider) adopt(flow string, payload *types.AuthPayload) (*types.AuthPayload, error) {
	if payload.AccessToken == "" {
		return nil, fmt.Errorf("%s: %w", flow, ErrMissingToken)
	}
	if err := p.session.Establish(payload.AccessToken); err != nil {
		return nil, fmt.Errorf("%s: %w", flow, err)
	}
	p.logger.Info("Signed in", zap.String("flow", flow), zap.String("user_id", payload.User.ID))
	return payload, nil
}

func credentialsInput(email, password string) *protocol.Object {
	return protocol.NewObject(
		protocol.F("input", protocol.ObjectValue(protocol.NewObject(
			protocol.F("email", protocol.String(email)),
			protocol.F("password", protocol.String(password)),
		))),
	)
}
