package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// small parameters keep the suite fast
var testParams = Params{Memory: 1024, Iterations: 1, Threads: 1}

func TestHashAndVerify(t *testing.T) {
	hasher := NewArgon2(testParams)

	hash, err := hasher.Hash("chess456")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$m=1024,t=1,p=1$"))

	assert.True(t, hasher.Verify("chess456", hash))
	assert.False(t, hasher.Verify("chess457", hash))
}

func TestHashIsSalted(t *testing.T) {
	hasher := NewArgon2(testParams)

	first, err := hasher.Hash("art123")
	require.NoError(t, err)
	second, err := hasher.Hash("art123")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestVerifyBcrypt(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("admin789"), bcrypt.MinCost)
	require.NoError(t, err)

	hasher := NewArgon2(testParams)
	assert.True(t, hasher.Verify("admin789", string(hash)))
	assert.False(t, hasher.Verify("admin780", string(hash)))
}

func TestVerifyRejectsMalformedHashes(t *testing.T) {
	hasher := NewArgon2(testParams)

	for _, hash := range []string{
		"",
		"plaintext",
		"$argon2id$v=19$m=1024,t=1,p=1$onlysalt",
		"$argon2id$v=18$m=1024,t=1,p=1$c2FsdA$a2V5",
		"$argon2id$v=19$m=x,t=1,p=1$c2FsdA$a2V5",
		"$argon2id$v=19$m=1024,t=1,p=1$!!!$a2V5",
	} {
		assert.False(t, hasher.Verify("anything", hash), hash)
	}
}
