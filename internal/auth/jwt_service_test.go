package auth

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestJWTService_AccessTokenRoundTrip(t *testing.T) {
	service := NewJWTService("test-secret")
	userID := uuid.New()

	token, err := service.GenerateAccessToken(userID, "staff@example.com")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := service.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "staff@example.com", claims.Email)
	// The JTI is what logout blacklists.
	assert.NotEmpty(t, claims.ID)

	other, err := service.GenerateAccessToken(userID, "staff@example.com")
	assert.NoError(t, err)
	otherClaims, err := service.ValidateToken(other)
	assert.NoError(t, err)
	assert.NotEqual(t, claims.ID, otherClaims.ID)
}

func TestJWTService_RefreshTokenCarriesID(t *testing.T) {
	service := NewJWTService("test-secret")

	tokenID, token, err := service.GenerateRefreshToken(uuid.New(), "staff@example.com")
	assert.NoError(t, err)
	assert.NotEmpty(t, tokenID)

	extracted, err := service.ExtractTokenID(token)
	assert.NoError(t, err)
	assert.Equal(t, tokenID, extracted)
}

func TestJWTService_RejectsForeignSignature(t *testing.T) {
	service := NewJWTService("test-secret")
	other := NewJWTService("other-secret")

	token, err := other.GenerateAccessToken(uuid.New(), "staff@example.com")
	assert.NoError(t, err)

	_, err = service.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_RejectsGarbage(t *testing.T) {
	service := NewJWTService("test-secret")
	_, err := service.ValidateToken("not-a-jwt")
	assert.Error(t, err)

	_, err = service.ExtractTokenID("not-a-jwt")
	assert.Error(t, err)
}
