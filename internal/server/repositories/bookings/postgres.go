package bookings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrijs2005/petswap/internal/common"
	"github.com/dmitrijs2005/petswap/internal/dbx"
	"github.com/dmitrijs2005/petswap/internal/server/models"
)

// foreignKeyViolation is the PostgreSQL SQLSTATE for a missing referenced row.
const foreignKeyViolation = "23503"

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, b *models.Booking) (*models.Booking, error) {
	query :=
		`INSERT INTO bookings (property_id, user_id, start_date, end_date)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query, b.PropertyID, b.UserID, b.StartDate, b.EndDate).Scan(&b.ID, &b.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return b, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID int64) ([]*models.Booking, error) {
	query :=
		`SELECT b.id, b.property_id, b.user_id, b.start_date, b.end_date, b.created_at,
		        p.id, p.user_id, p.title, p.description, p.address, p.city, p.country,
		        p.bedrooms, p.bathrooms, p.pets_allowed, p.amenities, p.images, p.created_at
		 FROM bookings b
		 JOIN properties p ON p.id = b.property_id
		 WHERE b.user_id = $1
		 ORDER BY b.start_date
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select bookings: %w", err)
	}
	defer rows.Close()

	result := []*models.Booking{}
	for rows.Next() {
		var (
			b                 models.Booking
			p                 models.Property
			amenities, images string
		)
		if err := rows.Scan(
			&b.ID, &b.PropertyID, &b.UserID, &b.StartDate, &b.EndDate, &b.CreatedAt,
			&p.ID, &p.UserID, &p.Title, &p.Description, &p.Address, &p.City, &p.Country,
			&p.Bedrooms, &p.Bathrooms, &p.PetsAllowed, &amenities, &images, &p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		if err := json.Unmarshal([]byte(amenities), &p.Amenities); err != nil {
			return nil, fmt.Errorf("decode amenities: %w", err)
		}
		if err := json.Unmarshal([]byte(images), &p.Images); err != nil {
			return nil, fmt.Errorf("decode images: %w", err)
		}
		b.Property = &p
		result = append(result, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return result, nil
}
