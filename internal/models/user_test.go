package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_SetPasswordAndCheckPassword(t *testing.T) {
	user := &User{}
	require.NoError(t, user.SetPassword("hunter22"))

	assert.NotEqual(t, "hunter22", user.Password)
	assert.True(t, user.CheckPassword("hunter22"))
	assert.False(t, user.CheckPassword("wrong-password"))
}
