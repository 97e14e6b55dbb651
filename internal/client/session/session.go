// Package session keeps the CLI's authenticated session: the bearer token and
// the identity it belongs to, persisted between runs.
package session

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/dmitrijs2005/petswap/internal/client/client"
	"github.com/dmitrijs2005/petswap/internal/client/models"
	"github.com/dmitrijs2005/petswap/internal/logging"
)

// GenericErrorMessage is shown for failures without a server message.
const GenericErrorMessage = "Something went wrong"

// TokenStore persists the bearer token. Load returns "" when none is stored.
type TokenStore interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// AuthAPI is the part of the API the session needs.
type AuthAPI interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, email, password string) (*models.AuthResponse, error)
	Me(ctx context.Context, token string) (*models.User, error)
}

// Session is the token together with the identity it resolves to.
type Session struct {
	Token string
	User  models.User
}

// Manager owns the current session. Token and identity are always published
// together, so readers never see one without the other.
type Manager struct {
	api    AuthAPI
	store  TokenStore
	logger logging.Logger

	group singleflight.Group

	// commitMu serializes changes to the persisted token and the published
	// session. gen counts committed changes; a bootstrap that started under
	// an older gen must not overwrite them.
	commitMu sync.Mutex
	gen      uint64

	mu      sync.RWMutex
	current *Session
}

func NewManager(api AuthAPI, store TokenStore, logger logging.Logger) *Manager {
	return &Manager{api: api, store: store, logger: logger.With("module", "session")}
}

// Bootstrap restores the session from the persisted token. Any failure,
// including an unreachable server, discards the token and leaves the manager
// logged out. Concurrent calls share one resolution and its ctx. A login,
// registration or logout that completes first takes precedence.
func (m *Manager) Bootstrap(ctx context.Context) (Session, bool) {
	v, _, _ := m.group.Do("bootstrap", func() (any, error) {
		return m.bootstrap(ctx), nil
	})

	s, _ := v.(*Session)
	if s == nil {
		return Session{}, false
	}
	return *s, true
}

func (m *Manager) bootstrap(ctx context.Context) *Session {
	m.commitMu.Lock()
	gen := m.gen
	m.commitMu.Unlock()

	token, err := m.store.Load(ctx)
	if err != nil {
		m.logger.Debug(ctx, "loading persisted token failed", "error", err)
		return m.commitBootstrap(ctx, gen, nil)
	}
	if token == "" {
		return m.commitBootstrap(ctx, gen, nil)
	}

	user, err := m.api.Me(ctx, token)
	if err != nil {
		m.logger.Debug(ctx, "persisted token rejected", "error", err)
		return m.commitBootstrap(ctx, gen, nil)
	}

	return m.commitBootstrap(ctx, gen, &Session{Token: token, User: *user})
}

// commitBootstrap publishes s, or discards the persisted token when s is nil.
// If a login, registration or logout committed since gen was read, their
// state wins and is returned instead.
func (m *Manager) commitBootstrap(ctx context.Context, gen uint64, s *Session) *Session {
	m.commitMu.Lock()
	defer m.commitMu.Unlock()

	if m.gen != gen {
		m.logger.Debug(ctx, "bootstrap result superseded")
		m.mu.RLock()
		defer m.mu.RUnlock()
		return m.current
	}

	if s == nil {
		if err := m.store.Clear(ctx); err != nil {
			m.logger.Debug(ctx, "clearing persisted token failed", "error", err)
		}
	}
	m.set(s)
	m.gen++
	return s
}

// Login authenticates and, on success, persists and publishes the session.
func (m *Manager) Login(ctx context.Context, email, password string) (Session, error) {
	res, err := m.api.Login(ctx, email, password)
	if err != nil {
		return Session{}, err
	}
	return m.establish(ctx, res)
}

// Register creates the account and signs in as it.
func (m *Manager) Register(ctx context.Context, req models.RegisterRequest) (Session, error) {
	res, err := m.api.Register(ctx, req)
	if err != nil {
		return Session{}, err
	}
	return m.establish(ctx, res)
}

// Logout forgets the session on disk, then in memory. If the token cannot
// be removed the session stays active and the error is returned.
func (m *Manager) Logout(ctx context.Context) error {
	m.commitMu.Lock()
	defer m.commitMu.Unlock()

	if err := m.store.Clear(ctx); err != nil {
		return err
	}
	m.set(nil)
	m.gen++
	return nil
}

// Current returns a snapshot of the active session.
func (m *Manager) Current() (Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.current == nil {
		return Session{}, false
	}
	return *m.current, true
}

func (m *Manager) establish(ctx context.Context, res *models.AuthResponse) (Session, error) {
	m.commitMu.Lock()
	defer m.commitMu.Unlock()

	if err := m.store.Save(ctx, res.Token); err != nil {
		return Session{}, err
	}

	s := &Session{Token: res.Token, User: res.User}
	m.set(s)
	m.gen++
	return *s, nil
}

func (m *Manager) set(s *Session) {
	m.mu.Lock()
	m.current = s
	m.mu.Unlock()
}

// UserMessage turns an error into text fit for the user. Messages the server
// sent for client errors are kept verbatim.
func UserMessage(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" && apiErr.Status < http.StatusInternalServerError {
		return apiErr.Message
	}
	return GenericErrorMessage
}
