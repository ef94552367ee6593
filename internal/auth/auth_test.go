package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"letly-be-svc/internal/models"
)

func TestJWTManager_RoundTrip(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)
	user := &models.User{ID: 42, Email: "ll@example.com", Role: models.RoleLandlord}

	token, err := m.Generate(user)
	require.NoError(t, err)

	claims, err := m.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "ll@example.com", claims.Email)
	assert.Equal(t, Actor{ID: 42, Role: models.RoleLandlord}, claims.Actor())
}

func TestJWTManager_RejectsForeignAndExpiredTokens(t *testing.T) {
	user := &models.User{ID: 1, Email: "t@example.com", Role: models.RoleTenant}

	other := NewJWTManager("other-secret", time.Hour)
	token, err := other.Generate(user)
	require.NoError(t, err)

	m := NewJWTManager("test-secret", time.Hour)
	_, err = m.Validate(token)
	assert.True(t, errors.Is(err, ErrInvalidToken))

	expired := NewJWTManager("test-secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, err = expired.Generate(user)
	require.NoError(t, err)
	_, err = m.Validate(token)
	assert.True(t, errors.Is(err, ErrInvalidToken))

	_, err = m.Validate("not-a-token")
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestPassword(t *testing.T) {
	_, err := HashPassword("12345")
	assert.ErrorIs(t, err, ErrWeakPassword)

	hash, err := HashPassword("s3cret!")
	require.NoError(t, err)
	assert.NoError(t, CheckPassword(hash, "s3cret!"))
	assert.ErrorIs(t, CheckPassword(hash, "wrong"), ErrInvalidCredentials)
}

func TestActor_Require(t *testing.T) {
	landlord := Actor{ID: 1, Role: models.RoleLandlord}
	tenant := Actor{ID: 2, Role: models.RoleTenant}

	assert.NoError(t, landlord.Require(models.RoleLandlord))
	assert.ErrorIs(t, landlord.Require(models.RoleTenant), ErrForbidden)
	assert.NoError(t, tenant.Require(models.RoleLandlord, models.RoleTenant))
	assert.ErrorIs(t, Actor{}.Require(models.RoleTenant), ErrForbidden)
}
