package util

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "util-test-secret"

func TestGenerateTokenPair_RoundTrip(t *testing.T) {
	pair, err := GenerateTokenPair(42, "buyer@example.com", "customer", testSecret, 15*time.Minute, 24*time.Hour)
	require.NoError(t, err)
	require.NotNil(t, pair)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)

	access, err := ValidateToken(pair.AccessToken, testSecret)
	require.NoError(t, err)
	assert.Equal(t, uint(42), access.UserID)
	assert.Equal(t, "buyer@example.com", access.Email)
	assert.Equal(t, "customer", access.Role)
	assert.Equal(t, "access", access.Subject)
	assert.NotEmpty(t, access.ID)

	refresh, err := ValidateToken(pair.RefreshToken, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "refresh", refresh.Subject)
	assert.True(t, refresh.ExpiresAt.After(access.ExpiresAt.Time))
}

func TestValidateToken_Rejections(t *testing.T) {
	pair, err := GenerateTokenPair(1, "a@example.com", "admin", testSecret, time.Minute, time.Hour)
	require.NoError(t, err)

	expired, err := GenerateTokenPair(1, "a@example.com", "admin", testSecret, -time.Minute, time.Hour)
	require.NoError(t, err)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: 1, Role: "admin"})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	parts := strings.Split(pair.AccessToken, ".")
	tampered := parts[0] + "." + parts[1] + "x." + parts[2]

	tests := []struct {
		name    string
		token   string
		secret  string
		wantErr error
	}{
		{"empty", "", testSecret, ErrInvalidToken},
		{"malformed", "abc.def", testSecret, ErrInvalidToken},
		{"wrong secret", pair.AccessToken, "other-secret", ErrInvalidToken},
		{"tampered payload", tampered, testSecret, ErrInvalidToken},
		{"alg none", unsigned, testSecret, ErrInvalidToken},
		{"expired", expired.AccessToken, testSecret, ErrExpiredToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := ValidateToken(tt.token, tt.secret)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, claims)
		})
	}
}

func TestGenerateTokenPair_DistinctIDs(t *testing.T) {
	a, err := GenerateTokenPair(5, "x@example.com", "customer", testSecret, time.Minute, time.Hour)
	require.NoError(t, err)
	b, err := GenerateTokenPair(5, "x@example.com", "customer", testSecret, time.Minute, time.Hour)
	require.NoError(t, err)

	ca, err := ValidateToken(a.AccessToken, testSecret)
	require.NoError(t, err)
	cb, err := ValidateToken(b.AccessToken, testSecret)
	require.NoError(t, err)
	assert.NotEqual(t, ca.ID, cb.ID)
}
