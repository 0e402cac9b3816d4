package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)

	user := User{
		ID:    uuid.New(),
		Email: "prof@example.edu",
		Roles: []Role{RoleProfessor, RoleSecretary},
	}

	token, err := issuer.Generate(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := issuer.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, []Role{RoleProfessor, RoleSecretary}, claims.Roles)
	assert.True(t, claims.HasAnyRole(RoleSecretary, RoleDirector))
	assert.False(t, claims.HasAnyRole(RoleAdmin))
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	token, err := NewTokenIssuer("secret-a", time.Hour).Generate(User{ID: uuid.New()})
	require.NoError(t, err)

	_, err = NewTokenIssuer("secret-b", time.Hour).Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsExpired(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", -time.Minute)

	token, err := issuer.Generate(User{ID: uuid.New()})
	require.NoError(t, err)

	_, err = issuer.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsGarbage(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)

	_, err := issuer.Validate("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
