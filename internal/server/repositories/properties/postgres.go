package properties

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/petswap/internal/common"
	"github.com/dmitrijs2005/petswap/internal/dbx"
	"github.com/dmitrijs2005/petswap/internal/server/models"
)

// PostgresRepository implements property storage over a dbx.DBTX.
// Amenities and images are stored as JSON arrays in text columns.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const selectWithOwner = `SELECT p.id, p.user_id, p.title, p.description, p.address, p.city, p.country,
		p.bedrooms, p.bathrooms, p.pets_allowed, p.amenities, p.images, p.created_at,
		u.first_name, u.last_name
	 FROM properties p
	 JOIN users u ON u.id = p.user_id`

func (r *PostgresRepository) Create(ctx context.Context, p *models.Property) (*models.Property, error) {
	amenities, err := encodeList(p.Amenities)
	if err != nil {
		return nil, err
	}
	images, err := encodeList(p.Images)
	if err != nil {
		return nil, err
	}

	query :=
		`INSERT INTO properties (user_id, title, description, address, city, country,
		     bedrooms, bathrooms, pets_allowed, amenities, images)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING id, created_at
		 `

	err = r.db.QueryRowContext(ctx, query,
		p.UserID, p.Title, p.Description, p.Address, p.City, p.Country,
		p.Bedrooms, p.Bathrooms, p.PetsAllowed, amenities, images).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return p, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Property, error) {
	rows, err := r.db.QueryContext(ctx, selectWithOwner+` ORDER BY p.id`)
	if err != nil {
		return nil, fmt.Errorf("failed to select properties: %w", err)
	}
	defer rows.Close()

	result := []*models.Property{}
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Property, error) {
	row := r.db.QueryRowContext(ctx, selectWithOwner+` WHERE p.id = $1`, id)

	p, err := scanProperty(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}

	return p, nil
}

func (r *PostgresRepository) ListReviews(ctx context.Context, propertyID int64) ([]*models.Review, error) {
	query :=
		`SELECT r.id, r.property_id, r.user_id, r.rating, r.comment, r.created_at, u.first_name
		 FROM reviews r
		 JOIN users u ON u.id = r.user_id
		 WHERE r.property_id = $1
		 ORDER BY r.created_at DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, propertyID)
	if err != nil {
		return nil, fmt.Errorf("failed to select reviews: %w", err)
	}
	defer rows.Close()

	result := []*models.Review{}
	for rows.Next() {
		rv := &models.Review{Reviewer: &models.PersonName{}}
		if err := rows.Scan(&rv.ID, &rv.PropertyID, &rv.UserID, &rv.Rating, &rv.Comment, &rv.CreatedAt,
			&rv.Reviewer.FirstName); err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		result = append(result, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) AppendImage(ctx context.Context, id int64, key string) error {
	query :=
		`UPDATE properties SET images = (images::jsonb || to_jsonb($2::text))::text
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, id, key)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProperty(s scanner) (*models.Property, error) {
	var (
		p                 models.Property
		owner             models.PersonName
		amenities, images string
	)

	err := s.Scan(&p.ID, &p.UserID, &p.Title, &p.Description, &p.Address, &p.City, &p.Country,
		&p.Bedrooms, &p.Bathrooms, &p.PetsAllowed, &amenities, &images, &p.CreatedAt,
		&owner.FirstName, &owner.LastName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan error: %w", err)
	}

	if p.Amenities, err = decodeList(amenities); err != nil {
		return nil, err
	}
	if p.Images, err = decodeList(images); err != nil {
		return nil, err
	}
	p.Owner = &owner

	return &p, nil
}

func encodeList(items []string) (string, error) {
	if items == nil {
		items = []string{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("encode list: %w", err)
	}
	return string(b), nil
}

func decodeList(s string) ([]string, error) {
	items := []string{}
	if s == "" {
		return items, nil
	}
	if err := json.Unmarshal([]byte(s), &items); err != nil {
		return nil, fmt.Errorf("decode list: %w", err)
	}
	return items, nil
}
