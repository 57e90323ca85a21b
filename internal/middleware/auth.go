package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/yourusername/personalens-api/internal/model"
	"github.com/yourusername/personalens-api/internal/service"
)

// ContextKeyUserID is the key for the authenticated user's UUID in the Gin context
const ContextKeyUserID = "user_id"

// UserFinder resolves a token subject to an account
type UserFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
}

// AuthMiddleware validates bearer tokens and injects the user id into context
type AuthMiddleware struct {
	tokens *service.TokenService
	users  UserFinder
}

func NewAuthMiddleware(tokens *service.TokenService, users UserFinder) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, users: users}
}

// Authenticate is the Gin middleware handler
func (am *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Missing Authorization header",
			})
			return
		}

		// Expect "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid Authorization header format",
			})
			return
		}

		userID, err := am.tokens.Parse(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			return
		}

		user, err := am.users.FindByID(c.Request.Context(), userID)
		if err != nil {
			log.Error().Err(err).Msg("Failed to resolve user from token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Could not validate credentials",
			})
			return
		}
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Could not validate credentials",
			})
			return
		}
		if !user.IsActive {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "Inactive user account",
			})
			return
		}

		c.Set(ContextKeyUserID, user.ID.String())
		c.Set("email", user.Email)

		c.Next()
	}
}

// GetUserID extracts the authenticated user's UUID from the Gin context
func GetUserID(c *gin.Context) string {
	uid, _ := c.Get(ContextKeyUserID)
	if s, ok := uid.(string); ok {
		return s
	}
	return ""
}
