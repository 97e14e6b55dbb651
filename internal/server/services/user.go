// Package services contains server-side business logic. This file implements
// UserService, which handles registration, login and identity lookup.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/petswap/internal/common"
	"github.com/dmitrijs2005/petswap/internal/dbx"
	"github.com/dmitrijs2005/petswap/internal/server/auth"
	"github.com/dmitrijs2005/petswap/internal/server/models"
	"github.com/dmitrijs2005/petswap/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/petswap/internal/telemetry"
)

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 8

// TokenIssuer mints bearer tokens for a user id.
type TokenIssuer interface {
	Issue(userID int64) (string, error)
}

// RegisterInput carries the registration form. Password is plaintext and
// must never be logged.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     *string
}

// AuthResult is returned by Register and Login.
type AuthResult struct {
	Token string
	User  *models.User
}

// UserService provides authentication-related operations:
// - Register: create users and issue a token
// - Login: verify credentials and issue a token
// - Me: resolve the identity behind a verified token
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	tokens      TokenIssuer

	dummyOnce   sync.Once
	dummyDigest string
}

// NewUserService constructs a UserService.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, tokens TokenIssuer) *UserService {
	return &UserService{db: db, repomanager: m, tokens: tokens}
}

// Register validates in, creates the user and issues a token. A taken email
// yields common.ErrConflict and leaves the existing user untouched.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "UserService.Register")
	defer span.End()

	if err := validateRegistration(in); err != nil {
		return nil, err
	}

	digest, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        in.Email,
		PasswordHash: digest,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Phone:        in.Phone,
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		_, err := repo.GetByEmail(ctx, in.Email)
		switch {
		case err == nil:
			return common.ErrConflict
		case !errors.Is(err, common.ErrNotFound):
			return err
		}

		user, err = repo.Create(ctx, user)
		return err
	})
	if err != nil {
		if errors.Is(err, common.ErrConflict) {
			return nil, common.ErrConflict
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return s.issue(user)
}

// Login checks email and password. Unknown email and wrong password both
// yield common.ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "UserService.Login")
	defer span.End()

	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			// keep timing close to the found-user path
			auth.VerifyPassword(password, s.dummy())
			return nil, common.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}

	if !auth.VerifyPassword(password, user.PasswordHash) {
		return nil, common.ErrInvalidCredentials
	}

	return s.issue(user)
}

// Me returns the user behind an already verified token. A user that no
// longer exists is treated as unauthenticated.
func (s *UserService) Me(ctx context.Context, userID int64) (*models.User, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthenticated
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}

	return user, nil
}

func (s *UserService) issue(user *models.User) (*AuthResult, error) {
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("error issuing token: %w", err)
	}
	return &AuthResult{Token: token, User: user}, nil
}

func (s *UserService) dummy() string {
	s.dummyOnce.Do(func() {
		s.dummyDigest, _ = auth.HashPassword("petswap-dummy-password")
	})
	return s.dummyDigest
}

func validateRegistration(in RegisterInput) error {
	switch {
	case strings.TrimSpace(in.Email) == "":
		return common.NewValidationError("Email is required")
	case !strings.Contains(in.Email, "@"):
		return common.NewValidationError("Email is invalid")
	case in.Password == "":
		return common.NewValidationError("Password is required")
	case len(in.Password) < MinPasswordLength:
		return common.NewValidationError(fmt.Sprintf("Password must be at least %d characters", MinPasswordLength))
	}
	return nil
}
