package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GTDGit/todopro_api/internal/middleware"
	"github.com/GTDGit/todopro_api/internal/service"
	"github.com/GTDGit/todopro_api/internal/utils"
)

// ClientHandler serves the caller's client records.
type ClientHandler struct {
	clientService *service.ClientService
}

func NewClientHandler(clientService *service.ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

// List handles GET /clients
func (h *ClientHandler) List(c *gin.Context) {
	userID, err := middleware.UserID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, utils.ErrMissingToken.Error(), "Authentication required")
		return
	}

	clients, err := h.clientService.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessList(c, "Clients retrieved", clients, len(clients))
}

// Create handles POST /clients
func (h *ClientHandler) Create(c *gin.Context) {
	userID, err := middleware.UserID(c)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, utils.ErrMissingToken.Error(), "Authentication required")
		return
	}

	var req service.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Client name is required")
		return
	}

	client, err := h.clientService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Created(c, "Client created", client)
}
