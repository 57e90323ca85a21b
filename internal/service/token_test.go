package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/personalens-api/internal/model"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)
	user := &model.User{ID: uuid.New(), Email: "jane@example.com"}

	token, err := svc.Issue(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := svc.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
}

func TestTokenWrongSecret(t *testing.T) {
	issuer := NewTokenService("secret-a", time.Hour)
	verifier := NewTokenService("secret-b", time.Hour)

	token, err := issuer.Issue(&model.User{ID: uuid.New()})
	require.NoError(t, err)

	_, err = verifier.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenExpired(t *testing.T) {
	svc := NewTokenService("test-secret", time.Nanosecond)

	token, err := svc.Issue(&model.User{ID: uuid.New()})
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	_, err = svc.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenGarbage(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		_, err := svc.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}

func TestTokenDefaultTTL(t *testing.T) {
	svc := NewTokenService("test-secret", 0)
	assert.Equal(t, 24*time.Hour, svc.ttl)
}
