package services

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/petswap/internal/common"
	"github.com/dmitrijs2005/petswap/internal/dbx"
	"github.com/dmitrijs2005/petswap/internal/server/models"
	"github.com/dmitrijs2005/petswap/internal/server/repositories/bookings"
	"github.com/dmitrijs2005/petswap/internal/server/repositories/properties"
	"github.com/dmitrijs2005/petswap/internal/server/repositories/users"
)

// --- helpers ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

type stubIssuer struct{ err error }

func (s stubIssuer) Issue(userID int64) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return fmt.Sprintf("token-%d", userID), nil
}

// --- users ---

type fakeUsersRepo struct {
	mu      sync.Mutex
	users   map[string]*models.User
	nextID  int64
	getErr  error
	makeErr error
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{users: map[string]*models.User{}}
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.makeErr != nil {
		return nil, f.makeErr
	}
	if _, ok := f.users[u.Email]; ok {
		return nil, common.ErrConflict
	}
	f.nextID++
	cp := *u
	cp.ID = f.nextID
	cp.CreatedAt = time.Now()
	f.users[u.Email] = &cp
	out := cp
	return &out, nil
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.users[email]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, u := range f.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrNotFound
}

// --- properties ---

type fakePropertiesRepo struct {
	items      map[int64]*models.Property
	reviews    map[int64][]*models.Review
	nextID     int64
	listErr    error
	getErr     error
	appendErr  error
	appended   []string
	createdArg *models.Property
}

func newFakePropertiesRepo() *fakePropertiesRepo {
	return &fakePropertiesRepo{items: map[int64]*models.Property{}, reviews: map[int64][]*models.Review{}}
}

func (f *fakePropertiesRepo) Create(ctx context.Context, p *models.Property) (*models.Property, error) {
	f.nextID++
	p.ID = f.nextID
	f.items[p.ID] = p
	f.createdArg = p
	return p, nil
}

func (f *fakePropertiesRepo) List(ctx context.Context) ([]*models.Property, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := []*models.Property{}
	for i := int64(1); i <= f.nextID; i++ {
		if p, ok := f.items[i]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePropertiesRepo) GetByID(ctx context.Context, id int64) (*models.Property, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	p, ok := f.items[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakePropertiesRepo) ListReviews(ctx context.Context, propertyID int64) ([]*models.Review, error) {
	return f.reviews[propertyID], nil
}

func (f *fakePropertiesRepo) AppendImage(ctx context.Context, id int64, key string) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.appended = append(f.appended, key)
	return nil
}

// --- bookings ---

type fakeBookingsRepo struct {
	items     []*models.Booking
	createErr error
	listErr   error
}

func (f *fakeBookingsRepo) Create(ctx context.Context, b *models.Booking) (*models.Booking, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	b.ID = int64(len(f.items) + 1)
	f.items = append(f.items, b)
	return b, nil
}

func (f *fakeBookingsRepo) ListByUser(ctx context.Context, userID int64) ([]*models.Booking, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := []*models.Booking{}
	for _, b := range f.items {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

// --- manager ---

type fakeRepoManager struct {
	u *fakeUsersRepo
	p *fakePropertiesRepo
	b *fakeBookingsRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{u: newFakeUsersRepo(), p: newFakePropertiesRepo(), b: &fakeBookingsRepo{}}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) users.Repository           { return m.u }
func (m *fakeRepoManager) Properties(db dbx.DBTX) properties.Repository { return m.p }
func (m *fakeRepoManager) Bookings(db dbx.DBTX) bookings.Repository     { return m.b }
