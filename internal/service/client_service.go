package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/GTDGit/todopro_api/internal/models"
	"github.com/GTDGit/todopro_api/internal/utils"
)

// ClientStore is the client persistence used by ClientService.
type ClientStore interface {
	ListByUser(ctx context.Context, userID int) ([]models.Client, error)
	Create(ctx context.Context, client *models.Client) error
}

// ClientService handles client business logic.
type ClientService struct {
	clients ClientStore
}

// NewClientService constructs a ClientService.
func NewClientService(clients ClientStore) *ClientService {
	return &ClientService{clients: clients}
}

// CreateClientRequest represents the request to create a new client.
type CreateClientRequest struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	DieNie  string `json:"dieNie"`
}

// List returns the caller's clients.
func (s *ClientService) List(ctx context.Context, userID int) ([]models.Client, error) {
	clients, err := s.clients.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	return clients, nil
}

// Create stores a client owned by userID.
func (s *ClientService) Create(ctx context.Context, userID int, req *CreateClientRequest) (*models.Client, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", utils.ErrInvalidInput)
	}
	client := &models.Client{
		UserID:  userID,
		Name:    name,
		Address: strings.TrimSpace(req.Address),
		Phone:   strings.TrimSpace(req.Phone),
		Email:   strings.TrimSpace(req.Email),
		DieNie:  strings.TrimSpace(req.DieNie),
	}
	if err := s.clients.Create(ctx, client); err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	return client, nil
}
