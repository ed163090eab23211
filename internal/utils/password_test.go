package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword_Verify(t *testing.T) {
	hash, err := HashPassword("P1!", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "P1!", hash)

	assert.True(t, VerifyPassword(hash, "P1!"))
	assert.False(t, VerifyPassword(hash, "P2!"))
}

func TestHashIfChanged_KeepsOldHashWhenEmpty(t *testing.T) {
	old, err := HashPassword("P1!", bcrypt.MinCost)
	require.NoError(t, err)

	got, err := HashIfChanged(old, "", bcrypt.MinCost)
	require.NoError(t, err)
	assert.Equal(t, old, got)
	assert.True(t, VerifyPassword(got, "P1!"))
}

func TestHashIfChanged_RehashInvalidatesOldPlaintext(t *testing.T) {
	old, err := HashPassword("P1!", bcrypt.MinCost)
	require.NoError(t, err)

	got, err := HashIfChanged(old, "P2!", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, old, got)

	assert.False(t, VerifyPassword(got, "P1!"))
	assert.True(t, VerifyPassword(got, "P2!"))
}
