package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var secret = strings.Repeat("k", 32)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("secret1")
	require.NoError(t, err)

	assert.NotEqual(t, "secret1", hash)
	assert.True(t, CheckPassword("secret1", hash))
	assert.False(t, CheckPassword("secret2", hash))

	other, err := HashPassword("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, hash, other, "hashes must be salted")
}

func TestCheckPasswordUnknownUser(t *testing.T) {
	assert.False(t, CheckPasswordUnknownUser("secret1"))
	assert.False(t, CheckPasswordUnknownUser("expensy-unknown-user"))

	cost, err := bcrypt.Cost(dummyHash())
	require.NoError(t, err)
	assert.Equal(t, PasswordCost, cost, "unknown-user compare must cost as much as a real one")
}

func TestTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer(secret, 7*24*time.Hour)

	token, err := issuer.Issue("user-1", "ana@x.com")
	require.NoError(t, err)

	claims, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "ana@x.com", claims.Email)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestVerify_Rejects(t *testing.T) {
	issuer := NewTokenIssuer(secret, time.Hour)
	valid, err := issuer.Issue("user-1", "ana@x.com")
	require.NoError(t, err)

	expired := NewTokenIssuer(secret, time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expiredToken, err := expired.Issue("user-1", "ana@x.com")
	require.NoError(t, err)

	otherSecret, err := NewTokenIssuer(strings.Repeat("x", 32), time.Hour).Issue("user-1", "ana@x.com")
	require.NoError(t, err)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: "user-1"})
	noneToken, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"malformed", "not-a-token"},
		{"tampered", valid[:len(valid)-2] + "xx"},
		{"expired", expiredToken},
		{"wrong secret", otherSecret},
		{"alg none", noneToken},
		{"empty", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := issuer.Verify(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
