package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/GTDGit/todopro_api/internal/models"
)

// ClientRepository provides data access methods for clients table.
type ClientRepository struct {
	db *sqlx.DB
}

// NewClientRepository creates a new ClientRepository.
func NewClientRepository(db *sqlx.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

// ListByUser returns the clients owned by a user, newest first.
func (r *ClientRepository) ListByUser(ctx context.Context, userID int) ([]models.Client, error) {
	const q = `
		SELECT id, user_id, name, address, phone, email, die_nie, created_at
		FROM clients
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC`

	clients := []models.Client{}
	if err := r.db.SelectContext(ctx, &clients, q, userID); err != nil {
		return nil, err
	}
	return clients, nil
}

// Create creates a new client.
func (r *ClientRepository) Create(ctx context.Context, client *models.Client) error {
	const q = `
		INSERT INTO clients (name, address, phone, email, die_nie, user_id)
		VALUES (:name, :address, :phone, :email, :die_nie, :user_id)
		RETURNING id, created_at`

	rows, err := r.db.NamedQueryContext(ctx, q, client)
	if err != nil {
		return err
	}
	defer rows.Close()
	if rows.Next() {
		if err := rows.Scan(&client.ID, &client.CreatedAt); err != nil {
			return err
		}
	}
	return rows.Err()
}
