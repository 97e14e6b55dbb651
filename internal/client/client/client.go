package client

import (
	"context"

	"github.com/dmitrijs2005/petswap/internal/client/models"
)

// Client is the PetSwap API as seen by the CLI. Methods taking a token send
// it as a bearer credential.
type Client interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, email, password string) (*models.AuthResponse, error)
	Me(ctx context.Context, token string) (*models.User, error)

	ListProperties(ctx context.Context) ([]models.Property, error)
	GetProperty(ctx context.Context, id int64) (*models.Property, error)
	CreateProperty(ctx context.Context, token string, in models.PropertyInput) (*models.Property, error)
	RequestImageUpload(ctx context.Context, token string, propertyID int64) (*models.ImageUpload, error)
	UploadImage(ctx context.Context, upload *models.ImageUpload, data []byte, contentType string) error

	ListBookings(ctx context.Context, token string) ([]models.Booking, error)
	CreateBooking(ctx context.Context, token string, req models.BookingRequest) (*models.Booking, error)
}
