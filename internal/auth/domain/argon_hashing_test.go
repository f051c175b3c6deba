package domain

import (
	"testing"

	"github.com/alexedwards/argon2id"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fastParams = &argon2id.Params{
	Memory:      1024,
	Iterations:  1,
	Parallelism: 1,
	SaltLength:  16,
	KeyLength:   32,
}

func TestArgonHasher(t *testing.T) {
	t.Parallel()

	type testCase struct {
		name     string
		password string
		attempt  string
		expected bool
	}

	testCases := []testCase{
		{name: "matching password", password: "password123", attempt: "password123", expected: true},
		{name: "matching complex password", password: "P@ssw0rd!#2024", attempt: "P@ssw0rd!#2024", expected: true},
		{name: "wrong password", password: "password123", attempt: "password124", expected: false},
		{name: "case matters", password: "Secret", attempt: "secret", expected: false},
	}

	for _, tc := range testCases {
		tt := tc
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			hasher := NewArgonPasswordHasher(fastParams)

			hashedPassword, err := hasher.HashPassword(tt.password)
			require.NoError(t, err)
			assert.NotEqual(t, tt.password, hashedPassword)

			isValid, err := hasher.VerifyPassword(tt.attempt, hashedPassword)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, isValid)
		})
	}
}

func TestArgonHasher_DefaultParams(t *testing.T) {
	t.Parallel()

	hasher := NewArgonPasswordHasher(nil)

	hashedPassword, err := hasher.HashPassword("password123")
	require.NoError(t, err)

	params, _, _, err := argon2id.DecodeHash(hashedPassword)
	require.NoError(t, err)
	assert.Equal(t, DefaultArgonParams.Memory, params.Memory)

	_, err = hasher.VerifyPassword("password123", "not-a-hash")
	assert.Error(t, err)
}
