// Package services contains application services for the CourseHub client.
// This file defines the authentication service: session restore, login,
// registration, identity-provider login, logout and token refresh.
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/dmitrijs2005/coursehub/internal/client/api"
	"github.com/dmitrijs2005/coursehub/internal/client/events"
	"github.com/dmitrijs2005/coursehub/internal/client/models"
	"github.com/dmitrijs2005/coursehub/internal/client/session"
	"github.com/dmitrijs2005/coursehub/internal/client/tokens"
	"github.com/dmitrijs2005/coursehub/internal/common"
	"github.com/dmitrijs2005/coursehub/internal/logging"
)

// CredentialStore persists the credential pair.
type CredentialStore interface {
	Save(ctx context.Context, pair models.TokenPair) error
	Load(ctx context.Context) (models.TokenPair, error)
	RefreshToken(ctx context.Context) (string, error)
	Clear(ctx context.Context) error
}

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Initialize: restore the session from stored credentials, refreshing
//     an expired access token; reports whether a user is signed in.
//   - Login / Register / LoginWithProvider: obtain a pair, store it, set the
//     session and publish a login event.
//   - Logout: clear credentials and session, publish a logout event.
//   - Refresh: rotate the pair; failure logs out and publishes unauthorized.
//   - Token / ForceRefresh: api.TokenSource for authenticated requests.
//
// The service is the only writer of the session store.
type AuthService interface {
	api.TokenSource

	Initialize(ctx context.Context) (bool, error)
	Login(ctx context.Context, email, password string) (*models.Identity, error)
	Register(ctx context.Context, in RegisterInput) (*models.Identity, error)
	LoginWithProvider(ctx context.Context, providerToken string) (*models.Identity, error)
	Logout(ctx context.Context) error
	Refresh(ctx context.Context) (models.TokenPair, error)
	CurrentUser() *models.Identity
}

// RegisterInput is the sign-up form.
type RegisterInput struct {
	FullName  string
	Email     string
	Password  string
	Password2 string
}

type authService struct {
	client  api.Client
	creds   CredentialStore
	session *session.Store
	bus     *events.Bus
	log     logging.Logger
	now     func() time.Time

	refreshGroup singleflight.Group

	// stateMu serializes writes of credentials and session. gen counts
	// sign-ins and sign-outs so a refresh that started before one of them
	// does not write its result afterwards.
	stateMu sync.Mutex
	gen     uint64
}

// NewAuthService constructs an AuthService.
func NewAuthService(client api.Client, creds CredentialStore, sess *session.Store, bus *events.Bus, log logging.Logger) AuthService {
	return &authService{
		client:  client,
		creds:   creds,
		session: sess,
		bus:     bus,
		log:     log.With("component", "auth"),
		now:     time.Now,
	}
}

// Initialize restores the session at start-up. Missing credentials leave
// the client anonymous without an error. A failed refresh clears
// everything and is returned.
func (a *authService) Initialize(ctx context.Context) (bool, error) {
	a.session.SetLoading(true)
	defer a.session.SetLoading(false)

	pair, err := a.creds.Load(ctx)
	if errors.Is(err, common.ErrNoCredentials) {
		a.log.Debug(ctx, "no stored credentials")
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load credentials: %w", err)
	}

	if tokens.IsExpired(pair.Access, a.now()) {
		a.log.Info(ctx, "access token expired, refreshing")
		if _, err := a.Refresh(ctx); err != nil {
			return false, err
		}
		return true, nil
	}

	identity, err := tokens.IdentityFromToken(pair.Access)
	if err != nil {
		a.failRefresh(ctx, a.generation(), err)
		return false, err
	}
	a.session.SetUser(identity)
	a.log.Info(ctx, "session restored", "user_id", identity.UserID)
	return true, nil
}

// Login authenticates with email and password. On failure the session is
// left untouched and a *UserError is returned.
func (a *authService) Login(ctx context.Context, email, password string) (*models.Identity, error) {
	pair, err := a.client.ObtainToken(ctx, email, password)
	if err != nil {
		a.log.Debug(ctx, "login rejected", "error", err)
		return nil, userErrorFrom(err, genericFailure)
	}
	return a.signIn(ctx, pair)
}

// Register creates the account and then logs in with the same credentials.
func (a *authService) Register(ctx context.Context, in RegisterInput) (*models.Identity, error) {
	if in.Password != in.Password2 {
		return nil, newUserError("Passwords do not match")
	}

	err := a.client.Register(ctx, api.RegisterRequest{
		FullName:  in.FullName,
		Email:     in.Email,
		Password:  in.Password,
		Password2: in.Password2,
	})
	if err != nil {
		a.log.Debug(ctx, "registration rejected", "error", err)
		return nil, fieldUserError(err, genericFailure, "full_name", "email", "password", "password2")
	}

	return a.Login(ctx, in.Email, in.Password)
}

// LoginWithProvider exchanges an identity-provider session token for a
// backend pair and signs in with it.
func (a *authService) LoginWithProvider(ctx context.Context, providerToken string) (*models.Identity, error) {
	pair, err := a.client.ProviderLogin(ctx, providerToken)
	if err != nil {
		a.log.Debug(ctx, "provider login rejected", "error", err)
		return nil, userErrorFrom(err, genericFailure)
	}
	return a.signIn(ctx, pair)
}

func (a *authService) signIn(ctx context.Context, pair models.TokenPair) (*models.Identity, error) {
	if !pair.Complete() {
		return nil, &UserError{Message: genericFailure, Err: common.ErrNoCredentials}
	}
	identity, err := tokens.IdentityFromToken(pair.Access)
	if err != nil {
		return nil, &UserError{Message: genericFailure, Err: err}
	}
	a.stateMu.Lock()
	if err := a.creds.Save(ctx, pair); err != nil {
		a.stateMu.Unlock()
		return nil, fmt.Errorf("save credentials: %w", err)
	}
	a.gen++
	a.session.SetUser(identity)
	a.stateMu.Unlock()

	a.log.Info(ctx, "signed in", "user_id", identity.UserID)
	a.bus.Publish(events.Event{Type: events.Login, User: identity})
	return identity, nil
}

// Logout is idempotent. The session is reset and the event published even
// when clearing storage fails; that failure is returned.
func (a *authService) Logout(ctx context.Context) error {
	a.stateMu.Lock()
	err := a.creds.Clear(ctx)
	if err != nil {
		a.log.Error(ctx, "failed to clear credentials", "error", err)
		err = fmt.Errorf("clear credentials: %w", err)
	}
	a.gen++
	a.session.Reset()
	a.stateMu.Unlock()

	a.bus.Publish(events.Event{Type: events.Logout})
	return err
}

// Refresh rotates the credential pair. Concurrent callers share one
// in-flight refresh. The refresh outlives a cancelled caller so the others
// still get its result.
func (a *authService) Refresh(ctx context.Context) (models.TokenPair, error) {
	v, err, shared := a.refreshGroup.Do("refresh", func() (any, error) {
		return a.refresh(context.WithoutCancel(ctx))
	})
	if shared {
		a.log.Debug(ctx, "joined in-flight refresh")
	}
	if err != nil {
		return models.TokenPair{}, err
	}
	return v.(models.TokenPair), nil
}

func (a *authService) refresh(ctx context.Context) (models.TokenPair, error) {
	gen := a.generation()

	refreshToken, err := a.creds.RefreshToken(ctx)
	if err != nil {
		return models.TokenPair{}, a.failRefresh(ctx, gen, err)
	}
	if refreshToken == "" {
		return models.TokenPair{}, a.failRefresh(ctx, gen, common.ErrNoCredentials)
	}
	if tokens.IsRefreshExpired(refreshToken, a.now()) {
		return models.TokenPair{}, a.failRefresh(ctx, gen, common.ErrTokenExpired)
	}

	pair, err := a.client.RefreshToken(ctx, refreshToken)
	if err != nil {
		return models.TokenPair{}, a.failRefresh(ctx, gen, err)
	}
	identity, err := tokens.IdentityFromToken(pair.Access)
	if err != nil {
		return models.TokenPair{}, a.failRefresh(ctx, gen, err)
	}

	a.stateMu.Lock()
	if a.gen != gen {
		a.stateMu.Unlock()
		a.log.Debug(ctx, "session changed during refresh, dropping result")
		return models.TokenPair{}, fmt.Errorf("%w: %w", common.ErrRefreshFailed, common.ErrSessionChanged)
	}
	if err := a.creds.Save(ctx, pair); err != nil {
		a.stateMu.Unlock()
		return models.TokenPair{}, a.failRefresh(ctx, gen, err)
	}
	a.session.SetUser(identity)
	a.stateMu.Unlock()

	a.log.Debug(ctx, "credentials refreshed", "user_id", identity.UserID)
	return pair, nil
}

func (a *authService) generation() uint64 {
	a.stateMu.Lock()
	defer a.stateMu.Unlock()
	return a.gen
}

// failRefresh performs the full logout that follows a failed refresh and
// returns the wrapped cause. When the session changed since gen, the newer
// sign-in or sign-out stands and nothing is cleared.
func (a *authService) failRefresh(ctx context.Context, gen uint64, cause error) error {
	a.stateMu.Lock()
	if a.gen != gen {
		a.stateMu.Unlock()
		return fmt.Errorf("%w: %w", common.ErrRefreshFailed, common.ErrSessionChanged)
	}
	a.log.Warn(ctx, "token refresh failed, signing out", "error", cause)
	if err := a.creds.Clear(ctx); err != nil {
		a.log.Error(ctx, "failed to clear credentials", "error", err)
	}
	a.gen++
	a.session.Reset()
	a.stateMu.Unlock()

	a.bus.Publish(events.Event{Type: events.Unauthorized})
	return fmt.Errorf("%w: %w", common.ErrRefreshFailed, cause)
}

// Token returns a valid access token, refreshing first when the stored one
// is expired. Without an access entry there is no session to extend, the
// same as at start-up, so ErrNoCredentials is returned even if a refresh
// entry outlived it.
func (a *authService) Token(ctx context.Context) (string, error) {
	pair, err := a.creds.Load(ctx)
	if err != nil && !errors.Is(err, common.ErrNoCredentials) {
		return "", fmt.Errorf("load credentials: %w", err)
	}
	if pair.Access == "" {
		return "", common.ErrNoCredentials
	}
	if !tokens.IsExpired(pair.Access, a.now()) {
		return pair.Access, nil
	}

	pair, err = a.Refresh(ctx)
	if err != nil {
		return "", err
	}
	return pair.Access, nil
}

func (a *authService) ForceRefresh(ctx context.Context) (string, error) {
	pair, err := a.Refresh(ctx)
	if err != nil {
		return "", err
	}
	return pair.Access, nil
}

func (a *authService) CurrentUser() *models.Identity {
	return a.session.User()
}
