package jwt_test

import (
	"testing"
	"time"

	libjwt "listing_editor/internal/lib/jwt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signed(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)
	return token
}

func TestBearerToken(t *testing.T) {
	token, err := libjwt.BearerToken("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	token, err = libjwt.BearerToken("bearer   xyz")
	require.NoError(t, err)
	assert.Equal(t, "xyz", token)

	for _, header := range []string{"", "Bearer", "Basic abc", "Bearer   "} {
		_, err := libjwt.BearerToken(header)
		assert.ErrorIs(t, err, libjwt.ErrTokenMissing, header)
	}
}

func TestCheckExpiry(t *testing.T) {
	now := time.Now()

	t.Run("valid token", func(t *testing.T) {
		token := signed(t, jwt.MapClaims{"sub": "agent-1", "exp": now.Add(time.Hour).Unix()})
		assert.NoError(t, libjwt.CheckExpiry(token, now))
		assert.Equal(t, "agent-1", libjwt.Subject(token))
	})

	t.Run("expired token", func(t *testing.T) {
		token := signed(t, jwt.MapClaims{"exp": now.Add(-time.Minute).Unix()})
		assert.ErrorIs(t, libjwt.CheckExpiry(token, now), libjwt.ErrTokenExpired)
	})

	t.Run("no exp claim", func(t *testing.T) {
		token := signed(t, jwt.MapClaims{"sub": "agent-1"})
		assert.NoError(t, libjwt.CheckExpiry(token, now))
	})

	t.Run("garbage", func(t *testing.T) {
		assert.Error(t, libjwt.CheckExpiry("not-a-token", now))
		assert.Empty(t, libjwt.Subject("not-a-token"))
	})
}
