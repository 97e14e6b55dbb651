// Package users is the credential store: registered identities and their
// password digests.
package users

import (
	"context"

	"github.com/dmitrijs2005/petswap/internal/server/models"
)

type Repository interface {
	// Create inserts user and fills its ID and CreatedAt.
	// It returns common.ErrConflict when the email is taken.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	// GetByEmail returns common.ErrNotFound when no user has email.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// GetByID returns common.ErrNotFound when no user has id.
	GetByID(ctx context.Context, id int64) (*models.User, error)
}
