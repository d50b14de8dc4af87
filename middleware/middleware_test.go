package middleware

import (
	"messadmin/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	token, err := GenerateJWT(42, "asha", domain.RoleTeacher)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := VerifyJWT(token)
	require.NoError(t, err)
	assert.Equal(t, 42, claims.UserID)
	assert.Equal(t, "asha", claims.Username)
	assert.Equal(t, domain.RoleTeacher, claims.Role)
}

func TestVerifyJWTRejectsGarbage(t *testing.T) {
	_, err := VerifyJWT("not-a-token")
	assert.Error(t, err)
}

func TestVerifyJWTRejectsTampering(t *testing.T) {
	token, err := GenerateJWT(1, "admin", domain.RoleAdmin)
	require.NoError(t, err)

	_, err = VerifyJWT(token + "x")
	assert.Error(t, err)
}
