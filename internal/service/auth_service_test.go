package service

import (
	"testing"

	"autotrack-pos/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUsers(t *testing.T) []model.User {
	t.Helper()
	admin := model.User{ID: "u1", Name: "Alice Admin", Email: "admin@autotrack.com", Role: model.RoleAdmin}
	require.NoError(t, admin.SetPassword("1234"))
	manager := model.User{ID: "u2", Name: "Bob Manager", Email: "manager@autotrack.com", Role: model.RoleManager}
	require.NoError(t, manager.SetPassword("1234"))
	return []model.User{admin, manager}
}

func TestLogin(t *testing.T) {
	auth := NewAuthService(testUsers(t))

	resp, err := auth.Login("ADMIN@autotrack.com", "1234")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "u1", resp.User.ID)
	assert.Equal(t, model.RoleAdmin, resp.User.Role)

	_, err = auth.Login("admin@autotrack.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = auth.Login("nobody@autotrack.com", "1234")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestValidateToken(t *testing.T) {
	auth := NewAuthService(testUsers(t))

	resp, err := auth.Login("manager@autotrack.com", "1234")
	require.NoError(t, err)

	validated, err := auth.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "u2", validated.User.ID)

	_, err = auth.ValidateToken("not-a-token")
	assert.Error(t, err)
}
