package util

import (
	"testing"

	"dcim/dao/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndCheckToken(t *testing.T) {
	tm := newTokenManager("test-secret", 1, 168)
	msg := &JWTMessage{
		UserID:   7,
		Username: "alice",
		Email:    "alice@example.com",
		Role:     model.RoleAdmin,
	}

	access, refresh, err := tm.CreateTokens(msg)
	require.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)
	assert.NotEqual(t, access, refresh)

	got, err := tm.CheckToken(access)
	require.NoError(t, err)
	assert.Equal(t, *msg, got)
}

func TestCheckTokenRejectsWrongSecret(t *testing.T) {
	tm := newTokenManager("test-secret", 1, 168)
	access, _, err := tm.CreateTokens(&JWTMessage{UserID: 1, Username: "bob"})
	require.NoError(t, err)

	other := newTokenManager("other-secret", 1, 168)
	_, err = other.CheckToken(access)
	assert.Error(t, err)
}
