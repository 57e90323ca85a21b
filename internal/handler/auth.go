package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/yourusername/personalens-api/internal/middleware"
	"github.com/yourusername/personalens-api/internal/model"
	"github.com/yourusername/personalens-api/internal/service"
)

// UserStore is the account persistence the auth handlers depend on
type UserStore interface {
	Create(ctx context.Context, username, email, passwordHash string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
}

type AuthHandler struct {
	users  UserStore
	tokens *service.TokenService
}

func NewAuthHandler(users UserStore, tokens *service.TokenService) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens}
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required,min=3,max=50"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid registration data"})
		return
	}

	existing, err := h.users.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		log.Error().Err(err).Msg("Failed to look up email")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Registration failed"})
		return
	}
	if existing != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email already registered"})
		return
	}

	existing, err = h.users.FindByUsername(c.Request.Context(), req.Username)
	if err != nil {
		log.Error().Err(err).Msg("Failed to look up username")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Registration failed"})
		return
	}
	if existing != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username already taken"})
		return
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("Failed to hash password")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Registration failed"})
		return
	}

	user, err := h.users.Create(c.Request.Context(), req.Username, req.Email, hash)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Registration failed"})
		return
	}

	log.Info().Str("username", user.Username).Msg("New user registered")

	c.JSON(http.StatusCreated, user)
}

// Login handles POST /auth/login
// Authenticates by email and password and returns an access token
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid login data"})
		return
	}

	user, err := h.users.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		log.Error().Err(err).Msg("Failed to look up user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		return
	}
	// Unknown email and wrong password produce the same response
	if user == nil || !verifyPassword(req.Password, user.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Incorrect email or password"})
		return
	}

	if !user.IsActive {
		c.JSON(http.StatusForbidden, gin.H{"error": "Inactive user account"})
		return
	}

	token, err := h.tokens.Issue(user)
	if err != nil {
		log.Error().Err(err).Msg("Failed to issue token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		return
	}

	log.Info().Str("email", user.Email).Msg("User logged in")

	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "bearer",
	})
}

// Me handles GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	user, err := h.users.FindByID(c.Request.Context(), userID)
	if err != nil || user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// ── Helpers ──────────────────────────────────────────

// hashPassword bcrypt-hashes a password, truncating to bcrypt's 72-byte
// input limit first
func hashPassword(password string) (string, error) {
	b := []byte(password)
	if len(b) > 72 {
		b = b[:72]
	}
	hash, err := bcrypt.GenerateFromPassword(b, bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func verifyPassword(password, hash string) bool {
	b := []byte(password)
	if len(b) > 72 {
		b = b[:72]
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), b) == nil
}

// getUserID extracts and parses the user UUID from context
func getUserID(c *gin.Context) (uuid.UUID, error) {
	idStr := middleware.GetUserID(c)
	return uuid.Parse(idStr)
}
