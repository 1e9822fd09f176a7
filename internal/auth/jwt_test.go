package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBearerToken(t *testing.T) {
	token, err := BearerToken("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	_, err = BearerToken("")
	assert.ErrorIs(t, err, ErrMissingHeader)

	for _, header := range []string{"abc.def.ghi", "Basic dXNlcg==", "Bearer "} {
		_, err := BearerToken(header)
		assert.Error(t, err, "header %q", header)
	}
}

func TestJWTVerifierRoundTrip(t *testing.T) {
	v := NewJWTVerifier([]byte("test-secret"))
	token, err := v.Sign("user-1", "cook@example.com", time.Hour)
	require.NoError(t, err)

	claims, err := v.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "cook@example.com", claims.Email)
}

func TestJWTVerifierRejectsExpiredToken(t *testing.T) {
	v := NewJWTVerifier([]byte("test-secret"))
	token, err := v.Sign("user-1", "cook@example.com", -time.Minute)
	require.NoError(t, err)

	_, err = v.Verify(context.Background(), token)
	assert.Error(t, err)
}

func TestJWTVerifierRejectsWrongSecret(t *testing.T) {
	issuer := NewJWTVerifier([]byte("other-secret"))
	token, err := issuer.Sign("user-1", "cook@example.com", time.Hour)
	require.NoError(t, err)

	v := NewJWTVerifier([]byte("test-secret"))
	_, err = v.Verify(context.Background(), token)
	assert.Error(t, err)
}

func TestJWTVerifierRejectsGarbage(t *testing.T) {
	v := NewJWTVerifier([]byte("test-secret"))
	_, err := v.Verify(context.Background(), "not-a-jwt")
	assert.Error(t, err)
}
