package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUser(t *testing.T) {
	user, err := CreateUser("movie_fan_99", "hunter2")
	require.NoError(t, err)

	assert.Equal(t, "movie_fan_99", user.Username)
	assert.Equal(t, "movie_fan_99@placeholder.com", user.Email)
	assert.NotEqual(t, "hunter2", user.Password, "the password is stored hashed")
	assert.True(t, user.CheckPassword("hunter2"))
	assert.False(t, user.CheckPassword("hunter3"))
}

func TestCreateUserRejectsInvalidInput(t *testing.T) {
	cases := []struct {
		name     string
		username string
		password string
	}{
		{"empty username", "", "pw"},
		{"empty password", "alice", ""},
		{"too short", "ab", "pw"},
		{"too long", strings.Repeat("a", 21), "pw"},
		{"spaces", "movie fan", "pw"},
		{"special characters", "alice!", "pw"},
		{"unicode", "ålice", "pw"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := CreateUser(tc.username, tc.password)
			assert.Error(t, err)
		})
	}
}

func TestCheckPasswordRefusesEmptyHash(t *testing.T) {
	// OAuth-created accounts have no password hash at all.
	u := &User{Username: "carol", Password: ""}

	assert.False(t, u.CheckPassword(""))
	assert.False(t, u.CheckPassword("anything"))
	assert.False(t, u.CanLoginWithPassword())
}

func TestSetPassword(t *testing.T) {
	u := &User{Username: "carol"}
	require.NoError(t, u.SetPassword("secret"))

	assert.True(t, u.CanLoginWithPassword())
	assert.True(t, u.CheckPassword("secret"))
}
