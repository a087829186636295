package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
)

// HealthRepository runs database liveness probes.
type HealthRepository struct {
	db *sqlx.DB
}

func NewHealthRepository(db *sqlx.DB) *HealthRepository {
	return &HealthRepository{db: db}
}

// Now returns the database server time.
func (r *HealthRepository) Now(ctx context.Context) (time.Time, error) {
	var now time.Time
	if err := r.db.GetContext(ctx, &now, `SELECT NOW()`); err != nil {
		return time.Time{}, err
	}
	return now, nil
}
