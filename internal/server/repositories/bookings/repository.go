// Package bookings stores stay requests made by guests.
package bookings

import (
	"context"

	"github.com/dmitrijs2005/petswap/internal/server/models"
)

type Repository interface {
	// Create inserts b. It returns common.ErrNotFound when the property
	// does not exist.
	Create(ctx context.Context, b *models.Booking) (*models.Booking, error)
	// ListByUser returns the guest's bookings with their properties attached.
	ListByUser(ctx context.Context, userID int64) ([]*models.Booking, error)
}
