package models

import "time"

// Client is a customer record owned by a user of the backend.
type Client struct {
	ID        int       `db:"id" json:"id"`
	UserID    int       `db:"user_id" json:"userId"`
	Name      string    `db:"name" json:"name"`
	Address   string    `db:"address" json:"address"`
	Phone     string    `db:"phone" json:"phone"`
	Email     string    `db:"email" json:"email"`
	DieNie    string    `db:"die_nie" json:"dieNie"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// ClientInfo is the client block embedded in quotes and saved client details.
type ClientInfo struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	DieNie  string `json:"dieNie"`
}

// IsEmpty reports whether every field is blank.
func (c ClientInfo) IsEmpty() bool {
	return c.Name == "" && c.Address == "" && c.Phone == "" && c.Email == "" && c.DieNie == ""
}
