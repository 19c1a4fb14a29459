package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHasher_HashAndVerify(t *testing.T) {
	hasher := NewPasswordHasher()

	hash, err := hasher.Hash("correct horse battery")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery", hash)
	assert.True(t, strings.HasPrefix(hash, "$2"))

	assert.True(t, hasher.Verify(hash, "correct horse battery"))
	assert.False(t, hasher.Verify(hash, "wrong password"))
}

func TestPasswordHasher_HashesDiffer(t *testing.T) {
	hasher := NewPasswordHasher()

	h1, err := hasher.Hash("same-password")
	require.NoError(t, err)
	h2, err := hasher.Hash("same-password")
	require.NoError(t, err)

	// bcrypt salts every hash
	assert.NotEqual(t, h1, h2)
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  error
	}{
		{name: "valid", password: "long-enough", wantErr: nil},
		{name: "minimum length", password: "12345678", wantErr: nil},
		{name: "too short", password: "1234567", wantErr: ErrPasswordTooShort},
		{name: "empty", password: "", wantErr: ErrPasswordTooShort},
		{name: "too long", password: strings.Repeat("x", 73), wantErr: ErrPasswordTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPasswordHasher_RejectsInvalidPassword(t *testing.T) {
	hasher := NewPasswordHasher()

	_, err := hasher.Hash("short")
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}
