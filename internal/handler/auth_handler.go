package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GTDGit/todopro_api/internal/service"
	"github.com/GTDGit/todopro_api/internal/utils"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Signup handles POST /auth/signup. The body must carry the invite code.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req service.Credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Email and password are required")
		return
	}

	token, err := h.authService.Signup(c.Request.Context(), req.Email, req.Password, req.InviteCode)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Created(c, "Signup successful", gin.H{"token": token})
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req service.Credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Email and password are required")
		return
	}

	token, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, http.StatusOK, "Login successful", gin.H{"token": token})
}
