package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/petswap/internal/common"
	"github.com/dmitrijs2005/petswap/internal/server/models"
	"github.com/dmitrijs2005/petswap/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/petswap/internal/server/storage"
)

// ImagePresigner signs direct uploads to object storage.
type ImagePresigner interface {
	PresignPut(ctx context.Context, key string) (string, error)
}

// PropertyInput is the listing form submitted by an owner.
type PropertyInput struct {
	Title       string
	Description string
	Address     string
	City        string
	Country     string
	Bedrooms    int
	Bathrooms   int
	PetsAllowed string
	Amenities   []string
	Images      []string
}

// ImageUpload tells the owner where to PUT the image bytes.
type ImageUpload struct {
	Key string `json:"key"`
	URL string `json:"uploadUrl"`
}

type PropertyService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	presigner   ImagePresigner
}

// NewPropertyService constructs a PropertyService. presigner may be nil, in
// which case image uploads are rejected.
func NewPropertyService(db *sql.DB, m repomanager.RepositoryManager, presigner ImagePresigner) *PropertyService {
	return &PropertyService{db: db, repomanager: m, presigner: presigner}
}

func (s *PropertyService) List(ctx context.Context) ([]*models.Property, error) {
	items, err := s.repomanager.Properties(s.db).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing properties: %w", err)
	}
	return items, nil
}

// Get returns the property with its owner and reviews.
func (s *PropertyService) Get(ctx context.Context, id int64) (*models.Property, error) {
	repo := s.repomanager.Properties(s.db)

	p, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("error loading property: %w", err)
	}

	p.Reviews, err = repo.ListReviews(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error loading reviews: %w", err)
	}

	return p, nil
}

// Create stores a listing owned by userID.
func (s *PropertyService) Create(ctx context.Context, userID int64, in PropertyInput) (*models.Property, error) {
	switch {
	case strings.TrimSpace(in.Title) == "":
		return nil, common.NewValidationError("Title is required")
	case in.Bedrooms < 0 || in.Bathrooms < 0:
		return nil, common.NewValidationError("Bedrooms and bathrooms cannot be negative")
	}

	p := &models.Property{
		UserID:      userID,
		Title:       in.Title,
		Description: in.Description,
		Address:     in.Address,
		City:        in.City,
		Country:     in.Country,
		Bedrooms:    in.Bedrooms,
		Bathrooms:   in.Bathrooms,
		PetsAllowed: in.PetsAllowed,
		Amenities:   nonNil(in.Amenities),
		Images:      nonNil(in.Images),
	}

	p, err := s.repomanager.Properties(s.db).Create(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("error creating property: %w", err)
	}
	return p, nil
}

// CreateImageUpload presigns an upload for a new image of the property and
// records its key. Only the owner may add images.
func (s *PropertyService) CreateImageUpload(ctx context.Context, userID, propertyID int64) (*ImageUpload, error) {
	if s.presigner == nil {
		return nil, common.NewValidationError("Image uploads are not enabled")
	}

	repo := s.repomanager.Properties(s.db)

	p, err := repo.GetByID(ctx, propertyID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("error loading property: %w", err)
	}
	if p.UserID != userID {
		return nil, common.ErrForbidden
	}

	key := storage.PropertyImageKey(propertyID)

	url, err := s.presigner.PresignPut(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("error presigning upload: %w", err)
	}

	if err := repo.AppendImage(ctx, propertyID, key); err != nil {
		return nil, fmt.Errorf("error saving image key: %w", err)
	}

	return &ImageUpload{Key: key, URL: url}, nil
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
