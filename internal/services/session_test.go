package services

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenService(t *testing.T, now *time.Time, rdb *redis.Client) *TokenService {
	t.Helper()
	s := NewTokenService("test-secret", time.Hour, rdb)
	s.now = func() time.Time { return *now }
	return s
}

func TestTokenService_IssueVerify(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s := newTestTokenService(t, &now, nil)

	tokenA, err := s.Issue("user-a")
	require.NoError(t, err)
	tokenB, err := s.Issue("user-b")
	require.NoError(t, err)

	claimsA, err := s.Verify(context.Background(), tokenA)
	require.NoError(t, err)
	assert.Equal(t, "user-a", claimsA.UserID)
	assert.Equal(t, "user-a", claimsA.Subject)
	assert.NotEmpty(t, claimsA.ID)

	claimsB, err := s.Verify(context.Background(), tokenB)
	require.NoError(t, err)
	assert.Equal(t, "user-b", claimsB.UserID)
	assert.NotEqual(t, claimsA.ID, claimsB.ID)
}

func TestTokenService_ExpiryBoundary(t *testing.T) {
	issued := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	now := issued
	s := newTestTokenService(t, &now, nil)

	token, err := s.Issue("user-a")
	require.NoError(t, err)
	exp := issued.Add(time.Hour)

	now = exp.Add(-time.Second)
	_, err = s.Verify(context.Background(), token)
	assert.NoError(t, err)

	now = exp
	_, err = s.Verify(context.Background(), token)
	assert.ErrorIs(t, err, ErrTokenExpired)

	now = exp.Add(time.Minute)
	_, err = s.Verify(context.Background(), token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenService_DefaultTTLIsThirtyDays(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s := NewTokenService("test-secret", 0, nil)
	s.now = func() time.Time { return now }

	token, err := s.Issue("user-a")
	require.NoError(t, err)
	claims, err := s.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, now.Add(30*24*time.Hour), claims.ExpiresAt.Time.UTC())
}

func TestTokenService_TamperedByteRejected(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s := newTestTokenService(t, &now, nil)

	token, err := s.Issue("user-a")
	require.NoError(t, err)

	for i := 0; i < len(token); i++ {
		if token[i] == '.' {
			continue
		}
		b := []byte(token)
		if b[i] == 'A' {
			b[i] = 'B'
		} else {
			b[i] = 'A'
		}
		_, err := s.Verify(context.Background(), string(b))
		assert.ErrorIs(t, err, ErrTokenInvalid, "byte %d", i)
	}
}

func TestTokenService_RejectsOtherSecretAndAlgorithm(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s := newTestTokenService(t, &now, nil)

	other := NewTokenService("rotated-secret", time.Hour, nil)
	other.now = s.now
	token, err := other.Issue("user-a")
	require.NoError(t, err)
	_, err = s.Verify(context.Background(), token)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
		UserID:           "user-a",
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour))},
	})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = s.Verify(context.Background(), unsigned)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	hs512 := jwt.NewWithClaims(jwt.SigningMethodHS512, &Claims{
		UserID:           "user-a",
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour))},
	})
	signed, err := hs512.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	_, err = s.Verify(context.Background(), signed)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = s.Verify(context.Background(), "not.a.token")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokenService_RejectsMissingExpiry(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s := newTestTokenService(t, &now, nil)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{UserID: "user-a"})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = s.Verify(context.Background(), signed)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokenService_Revoke(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s := newTestTokenService(t, &now, rdb)
	require.True(t, s.RevocationEnabled())

	token, err := s.Issue("user-a")
	require.NoError(t, err)
	claims, err := s.Verify(context.Background(), token)
	require.NoError(t, err)

	require.NoError(t, s.Revoke(context.Background(), claims))
	_, err = s.Verify(context.Background(), token)
	assert.ErrorIs(t, err, ErrTokenRevoked)

	key := RevokedTokenKeyPrefix + claims.ID
	assert.True(t, mr.Exists(key))
	assert.Equal(t, time.Hour, mr.TTL(key))

	other, err := s.Issue("user-a")
	require.NoError(t, err)
	_, err = s.Verify(context.Background(), other)
	assert.NoError(t, err)
}

func TestTokenService_DenylistOutageFailsOpen(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer rdb.Close()

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s := newTestTokenService(t, &now, rdb)
	token, err := s.Issue("user-a")
	require.NoError(t, err)

	mr.Close()
	claims, err := s.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "user-a", claims.UserID)
}

func TestTokenService_RevokeWithoutRedisIsNoop(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s := newTestTokenService(t, &now, nil)
	assert.False(t, s.RevocationEnabled())

	token, err := s.Issue("user-a")
	require.NoError(t, err)
	claims, err := s.Verify(context.Background(), token)
	require.NoError(t, err)

	require.NoError(t, s.Revoke(context.Background(), claims))
	_, err = s.Verify(context.Background(), token)
	assert.NoError(t, err)
}
