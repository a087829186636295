package service

import (
	"context"
	"crypto/subtle"
	"database/sql"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/GTDGit/todopro_api/internal/models"
	"github.com/GTDGit/todopro_api/internal/utils"
)

// UserStore is the user persistence used by AuthService.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
}

// AuthService handles signup, login and token validation.
type AuthService struct {
	users      UserStore
	secret     string
	ttl        time.Duration
	cost       int
	signupCode string
}

// NewAuthService builds the service. Signup requires signupCode; an empty
// code closes signup entirely.
func NewAuthService(users UserStore, secret string, ttl time.Duration, signupCode string) *AuthService {
	return &AuthService{users: users, secret: secret, ttl: ttl, cost: bcrypt.DefaultCost, signupCode: signupCode}
}

// Credentials is the signup and login request body.
type Credentials struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`

	// InviteCode is only read on signup.
	InviteCode string `json:"inviteCode"`
}

// Signup creates a user and returns a signed token.
func (s *AuthService) Signup(ctx context.Context, email, password, inviteCode string) (string, error) {
	if !s.signupAllowed(inviteCode) {
		log.Warn().Msg("Signup rejected: missing or wrong invite code")
		return "", utils.ErrSignupClosed
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return "", fmt.Errorf("%w: invalid email", utils.ErrInvalidInput)
	}
	if len(password) < 6 {
		return "", fmt.Errorf("%w: password must be at least 6 characters", utils.ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{Email: email, PasswordHash: string(hash)}
	if err := s.users.Create(ctx, user); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return "", utils.ErrEmailTaken
		}
		return "", fmt.Errorf("failed to create user: %w", err)
	}

	log.Info().Int("user_id", user.ID).Msg("User signed up")
	return utils.GenerateJWT(user.ID, user.Email, s.secret, s.ttl)
}

func (s *AuthService) signupAllowed(code string) bool {
	if s.signupCode == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(code), []byte(s.signupCode)) == 1
}

// Login verifies credentials and returns a signed token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Warn().Str("email", email).Msg("Login for unknown email")
			return "", utils.ErrInvalidCredentials
		}
		return "", fmt.Errorf("failed to get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		log.Warn().Int("user_id", user.ID).Msg("Password verification failed")
		return "", utils.ErrInvalidCredentials
	}

	log.Info().Int("user_id", user.ID).Msg("Login successful")
	return utils.GenerateJWT(user.ID, user.Email, s.secret, s.ttl)
}

// ValidateToken returns the claims of a valid token.
func (s *AuthService) ValidateToken(token string) (*utils.Claims, error) {
	return utils.ValidateJWT(token, s.secret)
}
