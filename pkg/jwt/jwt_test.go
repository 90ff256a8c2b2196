package jwt

import (
	"testing"
	"time"

	"vr-therapy-platform/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{Secret: "s3cret", AccessExpiry: time.Hour})

	token, tokenID, err := svc.GenerateAccessToken("P001", "guardian", "session-1")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "P001", claims.Subject)
	assert.Equal(t, "guardian", claims.Role)
	assert.Equal(t, "session-1", claims.SessionID)
	assert.Equal(t, tokenID, claims.ID)
}

func TestJWTService_RejectsForeignSignature(t *testing.T) {
	issuer := NewJWTService(config.JWTConfig{Secret: "one", AccessExpiry: time.Hour})
	verifier := NewJWTService(config.JWTConfig{Secret: "two", AccessExpiry: time.Hour})

	token, _, err := issuer.GenerateAccessToken("T001", "therapist", "s")
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_RejectsExpired(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{Secret: "s3cret", AccessExpiry: time.Minute})
	issued := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return issued }

	token, _, err := svc.GenerateAccessToken("T001", "therapist", "s")
	require.NoError(t, err)

	svc.now = func() time.Time { return issued.Add(2 * time.Minute) }
	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}
