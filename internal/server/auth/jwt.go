package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/petswap/internal/common"
)

// Verification failures. They differ only for logging; every one of them
// matches common.ErrUnauthenticated.
var (
	ErrTokenExpired   = fmt.Errorf("token expired: %w", common.ErrUnauthenticated)
	ErrTokenMalformed = fmt.Errorf("token malformed: %w", common.ErrUnauthenticated)
	ErrTokenSignature = fmt.Errorf("token signature invalid: %w", common.ErrUnauthenticated)
)

// ErrEmptySecret is returned by NewTokenManager when no signing secret is given.
var ErrEmptySecret = errors.New("empty signing secret")

// Claims is the token payload: the registered claims plus the numeric user id.
type Claims struct {
	jwt.RegisteredClaims
	UserID int64 `json:"userId"`
}

// TokenManager issues and verifies HS256 bearer tokens.
// It is immutable after construction and safe for concurrent use.
type TokenManager struct {
	secret   []byte
	validity time.Duration
	now      func() time.Time
}

type Option func(*TokenManager)

// WithClock replaces time.Now for both issuing and verifying.
func WithClock(now func() time.Time) Option {
	return func(m *TokenManager) { m.now = now }
}

// NewTokenManager copies secret so later changes to the caller's slice do
// not affect signing.
func NewTokenManager(secret []byte, validity time.Duration, opts ...Option) (*TokenManager, error) {
	if len(secret) == 0 {
		return nil, ErrEmptySecret
	}
	if validity <= 0 {
		return nil, fmt.Errorf("token validity must be positive, got %s", validity)
	}

	m := &TokenManager{
		secret:   append([]byte(nil), secret...),
		validity: validity,
		now:      time.Now,
	}
	for _, o := range opts {
		o(m)
	}
	return m, nil
}

// Issue signs a token for userID that expires after the configured validity.
func (m *TokenManager) Issue(userID int64) (string, error) {
	now := m.now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.validity)),
		},
		UserID: userID,
	})

	tokenString, err := token.SignedString(m.secret)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// Verify checks signature, algorithm and expiry and returns the embedded
// user id. Errors are ErrTokenExpired, ErrTokenSignature or ErrTokenMalformed.
func (m *TokenManager) Verify(tokenString string) (int64, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) {
			return m.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return 0, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
			return 0, ErrTokenSignature
		default:
			return 0, ErrTokenMalformed
		}
	}

	if !token.Valid || claims.UserID <= 0 {
		return 0, ErrTokenMalformed
	}

	return claims.UserID, nil
}
