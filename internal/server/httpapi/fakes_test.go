package httpapi

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/petswap/internal/common"
	"github.com/dmitrijs2005/petswap/internal/logging"
	"github.com/dmitrijs2005/petswap/internal/server/auth"
	"github.com/dmitrijs2005/petswap/internal/server/models"
	"github.com/dmitrijs2005/petswap/internal/server/services"
)

var errBoom = errors.New("boom")

// memUsers is an in-memory UserService issuing real tokens.
type memUsers struct {
	mu     sync.Mutex
	tokens *auth.TokenManager
	byID   map[int64]*models.User
	nextID int64
}

func newMemUsers(tokens *auth.TokenManager) *memUsers {
	return &memUsers{tokens: tokens, byID: map[int64]*models.User{}}
}

func (m *memUsers) Register(_ context.Context, in services.RegisterInput) (*services.AuthResult, error) {
	if len(in.Password) < services.MinPasswordLength {
		return nil, common.NewValidationError("Password must be at least 8 characters")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.byID {
		if u.Email == in.Email {
			return nil, common.ErrConflict
		}
	}

	digest, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	m.nextID++
	u := &models.User{
		ID:           m.nextID,
		Email:        in.Email,
		PasswordHash: digest,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Phone:        in.Phone,
	}
	m.byID[u.ID] = u

	token, err := m.tokens.Issue(u.ID)
	if err != nil {
		return nil, err
	}
	return &services.AuthResult{Token: token, User: u}, nil
}

func (m *memUsers) Login(_ context.Context, email, password string) (*services.AuthResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.byID {
		if u.Email == email && auth.VerifyPassword(password, u.PasswordHash) {
			token, err := m.tokens.Issue(u.ID)
			if err != nil {
				return nil, err
			}
			return &services.AuthResult{Token: token, User: u}, nil
		}
	}
	return nil, common.ErrInvalidCredentials
}

func (m *memUsers) Me(_ context.Context, userID int64) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.byID[userID]
	if !ok {
		return nil, common.ErrUnauthenticated
	}
	return u, nil
}

type fakeProperties struct {
	ListFn   func(ctx context.Context) ([]*models.Property, error)
	GetFn    func(ctx context.Context, id int64) (*models.Property, error)
	CreateFn func(ctx context.Context, userID int64, in services.PropertyInput) (*models.Property, error)
	UploadFn func(ctx context.Context, userID, propertyID int64) (*services.ImageUpload, error)
}

func (f *fakeProperties) List(ctx context.Context) ([]*models.Property, error) {
	return f.ListFn(ctx)
}

func (f *fakeProperties) Get(ctx context.Context, id int64) (*models.Property, error) {
	return f.GetFn(ctx, id)
}

func (f *fakeProperties) Create(ctx context.Context, userID int64, in services.PropertyInput) (*models.Property, error) {
	return f.CreateFn(ctx, userID, in)
}

func (f *fakeProperties) CreateImageUpload(ctx context.Context, userID, propertyID int64) (*services.ImageUpload, error) {
	return f.UploadFn(ctx, userID, propertyID)
}

type fakeBookings struct {
	ListFn   func(ctx context.Context, userID int64) ([]*models.Booking, error)
	CreateFn func(ctx context.Context, userID int64, in services.BookingInput) (*models.Booking, error)
}

func (f *fakeBookings) List(ctx context.Context, userID int64) ([]*models.Booking, error) {
	return f.ListFn(ctx, userID)
}

func (f *fakeBookings) Create(ctx context.Context, userID int64, in services.BookingInput) (*models.Booking, error) {
	return f.CreateFn(ctx, userID, in)
}

var testNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestTokens(t *testing.T, now func() time.Time) *auth.TokenManager {
	t.Helper()
	tm, err := auth.NewTokenManager([]byte("test-secret"), 7*24*time.Hour, auth.WithClock(now))
	require.NoError(t, err)
	return tm
}

type testAPI struct {
	handler    http.Handler
	tokens     *auth.TokenManager
	users      *memUsers
	properties *fakeProperties
	bookings   *fakeBookings
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	tokens := newTestTokens(t, func() time.Time { return testNow })
	api := &testAPI{
		tokens:     tokens,
		users:      newMemUsers(tokens),
		properties: &fakeProperties{},
		bookings:   &fakeBookings{},
	}
	api.handler = NewRouter(Deps{
		Logger:         logging.NewDiscardLogger(),
		Verifier:       tokens,
		Users:          api.users,
		Properties:     api.properties,
		Bookings:       api.bookings,
		AllowedOrigins: []string{"https://extra.example"},
		Now:            func() time.Time { return testNow },
	})
	return api
}
