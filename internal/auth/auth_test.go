package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-12345"

func TestHashPassword(t *testing.T) {
	t.Run("Successfully hash password", func(t *testing.T) {
		password := "mySecurePassword123"
		hashed, err := HashPassword(password)

		assert.NoError(t, err)
		assert.NotEmpty(t, hashed)
		assert.NotEqual(t, password, hashed)
	})

	t.Run("Different hashes for same password", func(t *testing.T) {
		hash1, _ := HashPassword("samePassword")
		hash2, _ := HashPassword("samePassword")

		assert.NotEqual(t, hash1, hash2)
	})
}

func TestCheckPassword(t *testing.T) {
	hashed, _ := HashPassword("correctPassword")

	assert.True(t, CheckPassword(hashed, "correctPassword"))
	assert.False(t, CheckPassword(hashed, "wrongPassword"))
	assert.False(t, CheckPassword(hashed, ""))
}

func TestGenerateTokens(t *testing.T) {
	access, refresh, err := GenerateTokens(1, "recepcao", RoleReceptionist, testSecret)
	require.NoError(t, err)
	assert.NotEqual(t, access, refresh)

	claims, err := ValidateToken(access, testSecret)
	require.NoError(t, err)
	assert.Equal(t, 1, claims.UserID)
	assert.Equal(t, "recepcao", claims.Username)
	assert.Equal(t, RoleReceptionist, claims.Role)
	assert.Equal(t, tokenAccess, claims.TokenType)

	_, _, err = GenerateTokens(1, "recepcao", RoleReceptionist, "")
	assert.ErrorIs(t, err, ErrEmptyJWTSecret)
}

func TestValidateToken(t *testing.T) {
	t.Run("Wrong secret", func(t *testing.T) {
		token, _ := GenerateAccessToken(1, "admin", RoleAdmin, testSecret)
		_, err := ValidateToken(token, "another-secret")
		assert.Error(t, err)
	})

	t.Run("Expired token", func(t *testing.T) {
		token, err := generateToken(1, "admin", RoleAdmin, tokenAccess, testSecret, -time.Minute)
		require.NoError(t, err)

		_, err = ValidateToken(token, testSecret)
		assert.ErrorIs(t, err, ErrTokenExpired)
	})

	t.Run("Foreign issuer", func(t *testing.T) {
		claims := &JWTClaims{
			UserID: 1,
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    "someone-else",
				Audience:  []string{jwtAudience},
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
		require.NoError(t, err)

		_, err = ValidateToken(token, testSecret)
		assert.Error(t, err)
	})

	t.Run("Garbage", func(t *testing.T) {
		_, err := ValidateToken("not.a.token", testSecret)
		assert.Error(t, err)
	})
}

func TestParseRefreshToken(t *testing.T) {
	access, refresh, err := GenerateTokens(2, "admin", RoleAdmin, testSecret)
	require.NoError(t, err)

	claims, err := ParseRefreshToken(refresh, testSecret)
	require.NoError(t, err)
	assert.Equal(t, 2, claims.UserID)

	_, err = ParseRefreshToken(access, testSecret)
	assert.ErrorIs(t, err, ErrInvalidTokenType)
}

func TestValidRole(t *testing.T) {
	assert.True(t, ValidRole(RoleAdmin))
	assert.True(t, ValidRole(RoleReceptionist))
	assert.False(t, ValidRole("member"))
}
