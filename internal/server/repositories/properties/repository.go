// Package properties stores property listings and their reviews.
package properties

import (
	"context"

	"github.com/dmitrijs2005/petswap/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, p *models.Property) (*models.Property, error)
	// List returns every property with its owner's name, oldest first.
	List(ctx context.Context) ([]*models.Property, error)
	// GetByID returns the property with its owner's name or common.ErrNotFound.
	GetByID(ctx context.Context, id int64) (*models.Property, error)
	ListReviews(ctx context.Context, propertyID int64) ([]*models.Review, error)
	// AppendImage adds key to the property's images or returns common.ErrNotFound.
	AppendImage(ctx context.Context, id int64, key string) error
}
