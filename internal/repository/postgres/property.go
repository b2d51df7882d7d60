package postgres

import (
	"context"
	"database/sql"
	"errors"

	"homestay-backend/internal/domain"
	"homestay-backend/internal/repository"
)

type propertyRepository struct {
	db *sql.DB
}

func NewPropertyRepository(db *sql.DB) repository.PropertyRepository {
	return &propertyRepository{db: db}
}

func (r *propertyRepository) GetByID(ctx context.Context, id int64) (*domain.Property, error) {
	p := &domain.Property{}
	query := `SELECT id, owner_id, daily_rate_cents, status FROM properties WHERE id = $1`
	q := querier(r.db)
	if tx := txFrom(ctx); tx != nil {
		q = tx
	}
	err := q.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.OwnerID, &p.DailyRateCents, &p.Status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}
