package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/GTDGit/todopro_api/internal/utils"
)

// TokenValidator checks a bearer token and returns its claims.
type TokenValidator interface {
	ValidateToken(token string) (*utils.Claims, error)
}

// JWTMiddleware authenticates requests carrying a user token. A missing
// token is 401, an invalid one 403. Repeated failures from one IP are
// throttled with 429.
type JWTMiddleware struct {
	tokens  TokenValidator
	limiter *InvalidAuthRateLimiter
}

func NewJWTMiddleware(tokens TokenValidator, limiter *InvalidAuthRateLimiter) *JWTMiddleware {
	return &JWTMiddleware{tokens: tokens, limiter: limiter}
}

// Handle reads the token from the Authorization header.
func (m *JWTMiddleware) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		m.authenticate(c, bearerToken(c.GetHeader("Authorization")))
	}
}

// HandleStream also accepts ?token= because EventSource cannot send headers.
func (m *JWTMiddleware) HandleStream() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			token = strings.TrimSpace(c.Query("token"))
		}
		m.authenticate(c, token)
	}
}

func (m *JWTMiddleware) authenticate(c *gin.Context, token string) {
	if token == "" {
		m.reject(c, http.StatusUnauthorized, utils.ErrMissingToken, "Missing authorization token")
		return
	}
	claims, err := m.tokens.ValidateToken(token)
	if err != nil {
		m.reject(c, http.StatusForbidden, utils.ErrInvalidToken, "Invalid or expired token")
		return
	}
	c.Set(ContextUserID, claims.UserID)
	c.Set(ContextEmail, claims.Email)
	c.Next()
}

func (m *JWTMiddleware) reject(c *gin.Context, status int, code error, message string) {
	if m.limiter != nil && !m.limiter.Allow(c.ClientIP()) {
		utils.Error(c, http.StatusTooManyRequests, "TOO_MANY_REQUESTS", "Too many invalid authentication attempts")
		c.Abort()
		return
	}
	utils.Error(c, status, code.Error(), message)
	c.Abort()
}

// bearerToken extracts the token from "Bearer <token>". Anything else is
// treated as no token.
func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// Context keys set by JWTMiddleware.
const (
	ContextUserID = "user_id"
	ContextEmail  = "email"
)

// ErrNoUser is returned by UserID when the request was not authenticated.
var ErrNoUser = errors.New("UNAUTHORIZED")

// UserID returns the authenticated user id.
func UserID(c *gin.Context) (int, error) {
	id := c.GetInt(ContextUserID)
	if id == 0 {
		return 0, ErrNoUser
	}
	return id, nil
}
