package session

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/darkcod/eatadmin/internal/errs"
)

// Authenticator performs the unauthenticated login call and returns a token.
// Implemented by the API client; injected here to keep the controller testable.
type Authenticator interface {
	Login(ctx context.Context, login, secret string) (string, error)
}

// State is the in-memory projection of the credential. Subject and Role are
// set iff Token is set and passed the admin gate at the last rebuild.
type State struct {
	Token   string
	Subject string
	Role    string
	Loading bool
}

// LoggedIn reports whether the state holds an admin session.
func (s State) LoggedIn() bool { return s.Token != "" }

// Controller is the single process-wide session authority. It rebuilds State
// from the Store and is the onUnauthorized capability handed to the gateway.
type Controller struct {
	store Store
	auth  Authenticator
	log   *zap.Logger

	mu    sync.Mutex
	state State
}

// NewController constructs a Controller around the given store and authenticator.
func NewController(store Store, auth Authenticator, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{store: store, auth: auth, log: log, state: State{Loading: true}}
}

// State returns a copy of the current session state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Bootstrap rebuilds the session from the persisted credential. An absent or
// non-admin token resolves to a clean logged-out state.
func (c *Controller) Bootstrap(ctx context.Context) State {
	c.mu.Lock()
	c.state.Loading = true
	c.mu.Unlock()

	token, ok := c.store.Read(ctx)
	if !ok || !IsAdminToken(token) {
		return c.Logout(ctx)
	}

	claims, err := DecodeClaims(token)
	if err != nil {
		// decodable a moment ago; treat as logged out
		return c.Logout(ctx)
	}

	c.log.Debug("session restored", zap.String("subject", claims.Subject))
	return c.set(State{Token: token, Subject: claims.Subject, Role: claims.Role})
}

// Login authenticates, verifies the issued token passes the admin gate,
// persists it and rebuilds the state. A non-admin token is rejected with
// errs.ErrNotAdmin and nothing is stored.
func (c *Controller) Login(ctx context.Context, login, secret string) (State, error) {
	c.mu.Lock()
	c.state.Loading = true
	c.mu.Unlock()

	token, err := c.auth.Login(ctx, login, secret)
	if err != nil {
		return c.finishLoading(), err
	}
	if !IsAdminToken(token) {
		return c.finishLoading(), errs.ErrNotAdmin
	}
	if err := c.store.Write(ctx, token); err != nil {
		return c.finishLoading(), err
	}

	claims, err := DecodeClaims(token)
	if err != nil {
		return c.finishLoading(), err
	}

	c.log.Info("logged in", zap.String("subject", claims.Subject))
	return c.set(State{Token: token, Subject: claims.Subject, Role: claims.Role}), nil
}

// Logout clears the persisted credential best-effort and resets the in-memory
// state. The reset happens even when the store clear fails, so the UI reflects
// the logged-out state immediately.
func (c *Controller) Logout(ctx context.Context) State {
	if err := c.store.Clear(ctx); err != nil {
		c.log.Warn("clear credential", zap.Error(err))
	}
	return c.set(State{})
}

// Invalidate is the gateway's onUnauthorized hook: the gateway has already
// cleared the store, so only the in-memory state is reset here.
func (c *Controller) Invalidate(ctx context.Context) error {
	c.log.Info("session invalidated")
	c.set(State{})
	return nil
}

func (c *Controller) set(s State) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	s.Loading = false
	c.state = s
	return s
}

func (c *Controller) finishLoading() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Loading = false
	return c.state
}
