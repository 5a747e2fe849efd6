package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rchoud/task-manager-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-thats-at-least-32-chars"

func newTestConfig(lifetimeMinutes int) config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:            testSecret,
		TokenLifetimeMinutes: lifetimeMinutes,
	}
}

func TestNewJWTService_RejectsShortSecret(t *testing.T) {
	t.Parallel()

	_, err := NewJWTService(config.AuthConfig{JWTSecret: "too-short"})
	assert.Error(t, err)
}

func TestGenerateAndValidateToken(t *testing.T) {
	t.Parallel()

	svc, err := NewJWTService(newTestConfig(60))
	require.NoError(t, err)

	userID := uuid.New()
	token, err := svc.GenerateToken(context.Background(), userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, userID.String(), claims.Subject)
	assert.NotEmpty(t, claims.ID)
	assert.False(t, claims.IssuedAt.IsZero())
}

func TestConcurrentLoginsProduceDistinctTokens(t *testing.T) {
	t.Parallel()

	svc, err := NewJWTService(newTestConfig(60))
	require.NoError(t, err)

	userID := uuid.New()
	first, err := svc.GenerateToken(context.Background(), userID)
	require.NoError(t, err)
	second, err := svc.GenerateToken(context.Background(), userID)
	require.NoError(t, err)

	// Each token carries a unique jti, so two logins in the same second
	// still produce different strings and revoke independently.
	assert.NotEqual(t, first, second)
}

func TestValidateToken_Expired(t *testing.T) {
	t.Parallel()

	svc := &hmacJWTService{
		signingKey:    []byte(testSecret),
		tokenLifetime: 10 * time.Minute,
		timeFunc:      time.Now,
		clockSkew:     time.Minute,
	}

	token, err := svc.GenerateToken(context.Background(), uuid.New())
	require.NoError(t, err)

	// Move the validation clock past lifetime plus skew
	svc.timeFunc = func() time.Time { return time.Now().Add(20 * time.Minute) }

	_, err = svc.ValidateToken(context.Background(), token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateToken_NoExpiryWhenLifetimeZero(t *testing.T) {
	t.Parallel()

	svc := &hmacJWTService{
		signingKey: []byte(testSecret),
		timeFunc:   time.Now,
		clockSkew:  time.Minute,
	}

	token, err := svc.GenerateToken(context.Background(), uuid.New())
	require.NoError(t, err)

	// Even far in the future the token still validates; only session
	// revocation ends it.
	svc.timeFunc = func() time.Time { return time.Now().Add(24 * 365 * time.Hour) }

	_, err = svc.ValidateToken(context.Background(), token)
	assert.NoError(t, err)
}

func TestValidateToken_Tampered(t *testing.T) {
	t.Parallel()

	svc, err := NewJWTService(newTestConfig(60))
	require.NoError(t, err)

	token, err := svc.GenerateToken(context.Background(), uuid.New())
	require.NoError(t, err)

	tampered := token[:len(token)-4] + "XXXX"
	_, err = svc.ValidateToken(context.Background(), tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_WrongKey(t *testing.T) {
	t.Parallel()

	svc1, err := NewJWTService(newTestConfig(60))
	require.NoError(t, err)
	svc2, err := NewJWTService(config.AuthConfig{
		JWTSecret: "another-secret-key-also-32-chars-long!!",
	})
	require.NoError(t, err)

	token, err := svc1.GenerateToken(context.Background(), uuid.New())
	require.NoError(t, err)

	_, err = svc2.ValidateToken(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_RejectsUnsignedToken(t *testing.T) {
	t.Parallel()

	svc, err := NewJWTService(newTestConfig(60))
	require.NoError(t, err)

	// alg=none tokens must never validate
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject: uuid.New().String(),
	})
	tokenString, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.ValidateToken(context.Background(), tokenString)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_Malformed(t *testing.T) {
	t.Parallel()

	svc, err := NewJWTService(newTestConfig(60))
	require.NoError(t, err)

	for _, token := range []string{"", "not-a-jwt", "a.b", "a.b.c.d"} {
		_, err := svc.ValidateToken(context.Background(), token)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", token)
	}
}
