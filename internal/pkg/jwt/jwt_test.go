package jwt

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-jwt"

func TestGenerateAccessToken(t *testing.T) {
	t.Parallel()
	svc := NewJWTService(testSecret, "1h")

	tokenString, expiresAt, err := svc.GenerateAccessToken("emp-1", true)
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)
	assert.Greater(t, expiresAt, time.Now().Unix())

	token, err := svc.JWTAuth().Decode(tokenString)
	require.NoError(t, err)

	claims, err := token.AsMap(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "emp-1", claims["employee_id"])
	assert.Equal(t, true, claims["is_admin"])
	assert.Equal(t, "access", claims["type"])
}

func TestGenerateAccessTokenRejectsBadExpiration(t *testing.T) {
	t.Parallel()
	svc := NewJWTService(testSecret, "soon")

	_, _, err := svc.GenerateAccessToken("emp-1", false)
	require.Error(t, err)
}

func TestStreamTokenRoundTrip(t *testing.T) {
	t.Parallel()
	svc := NewJWTService(testSecret, "1h")

	tokenString, expiresIn, err := svc.GenerateStreamToken("emp-1")
	require.NoError(t, err)
	assert.Equal(t, 300, expiresIn)

	employeeID, err := svc.ValidateStreamToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, "emp-1", employeeID)
}

func TestValidateStreamTokenRejectsAccessToken(t *testing.T) {
	t.Parallel()
	svc := NewJWTService(testSecret, "1h")

	// An access token must not open a stream.
	accessToken, _, err := svc.GenerateAccessToken("emp-1", false)
	require.NoError(t, err)

	_, err = svc.ValidateStreamToken(accessToken)
	require.Error(t, err)
}

func TestValidateStreamTokenRejectsForeignSecret(t *testing.T) {
	t.Parallel()

	other := NewJWTService("some-other-secret", "1h")
	tokenString, _, err := other.GenerateStreamToken("emp-1")
	require.NoError(t, err)

	svc := NewJWTService(testSecret, "1h")
	_, err = svc.ValidateStreamToken(tokenString)
	require.Error(t, err)
}
