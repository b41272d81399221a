package service

import (
	"alcyxob/ai-trainer/internal/domain"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newTestAuthService() (AuthService, *memStore) {
	store := newMemStore()
	return NewAuthService(memUsers{store}, memProfiles{store}, testSecret, time.Hour), store
}

func TestRegisterCreatesUserAndProfile(t *testing.T) {
	svc, store := newTestAuthService()

	user, err := svc.Register(ctx, "Ada Lovelace", "  Ada@Example.com ", "s3cret!", "")
	require.NoError(t, err)

	assert.Equal(t, "ada@example.com", user.Email)
	assert.Equal(t, domain.RoleUser, user.Role)
	assert.Empty(t, user.PasswordHash)
	assert.NotEqual(t, "s3cret!", store.users[user.ID].PasswordHash)

	profile, err := memProfiles{store}.GetByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", profile.FirstName)
	assert.Equal(t, "Lovelace", profile.LastName)
	assert.Equal(t, domain.DefaultWorkoutDays(), profile.WorkoutDays)
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newTestAuthService()
	_, err := svc.Register(ctx, "Ada", "ada@example.com", "pw", domain.RoleAdmin)
	require.NoError(t, err)

	tests := []struct {
		name                  string
		fullName, email, pass string
		want                  error
	}{
		{"missing name", "", "x@example.com", "pw", ErrValidationFailed},
		{"missing email", "X", " ", "pw", ErrValidationFailed},
		{"missing password", "X", "x@example.com", "", ErrValidationFailed},
		{"duplicate email", "Other", "ADA@example.com", "pw", ErrUserAlreadyExists},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.fullName, tt.email, tt.pass, "")
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLogin(t *testing.T) {
	svc, _ := newTestAuthService()
	registered, err := svc.Register(ctx, "Ada", "ada@example.com", "pw", domain.RoleAdmin)
	require.NoError(t, err)

	token, user, err := svc.Login(ctx, "ADA@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.Empty(t, user.PasswordHash)

	claims := &jwtClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, registered.ID.Hex(), claims.UserID)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
	assert.Equal(t, "ai-trainer", claims.Issuer)

	_, _, err = svc.Login(ctx, "ada@example.com", "wrong")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
	_, _, err = svc.Login(ctx, "nobody@example.com", "pw")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
	_, _, err = svc.Login(ctx, "", "pw")
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestNewAuthServicePanicsWithoutSecret(t *testing.T) {
	store := newMemStore()
	assert.Panics(t, func() { NewAuthService(memUsers{store}, memProfiles{store}, "", time.Hour) })
}
