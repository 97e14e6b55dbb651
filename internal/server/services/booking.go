package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/petswap/internal/common"
	"github.com/dmitrijs2005/petswap/internal/dbx"
	"github.com/dmitrijs2005/petswap/internal/server/models"
	"github.com/dmitrijs2005/petswap/internal/server/repositories/repomanager"
)

type BookingInput struct {
	PropertyID int64
	StartDate  time.Time
	EndDate    time.Time
}

type BookingService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewBookingService(db *sql.DB, m repomanager.RepositoryManager) *BookingService {
	return &BookingService{db: db, repomanager: m}
}

// List returns the caller's bookings with their properties.
func (s *BookingService) List(ctx context.Context, userID int64) ([]*models.Booking, error) {
	items, err := s.repomanager.Bookings(s.db).ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing bookings: %w", err)
	}
	return items, nil
}

// Create books the property for userID. Dates are stored as given.
func (s *BookingService) Create(ctx context.Context, userID int64, in BookingInput) (*models.Booking, error) {
	switch {
	case in.PropertyID <= 0:
		return nil, common.NewValidationError("Property is required")
	case in.StartDate.IsZero() || in.EndDate.IsZero():
		return nil, common.NewValidationError("Start and end dates are required")
	}

	var booking *models.Booking

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		p, err := s.repomanager.Properties(tx).GetByID(ctx, in.PropertyID)
		if err != nil {
			return err
		}

		booking, err = s.repomanager.Bookings(tx).Create(ctx, &models.Booking{
			PropertyID: in.PropertyID,
			UserID:     userID,
			StartDate:  in.StartDate,
			EndDate:    in.EndDate,
		})
		if err != nil {
			return err
		}

		p.Owner = nil
		booking.Property = p
		return nil
	})
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("error creating booking: %w", err)
	}

	return booking, nil
}
