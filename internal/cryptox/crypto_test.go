package cryptox

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cheapArgon2() *Argon2Hasher {
	return NewArgon2Hasher(Argon2Params{Time: 1, Memory: 1024, Threads: 1, SaltLen: 16, KeyLen: 32})
}

func TestSHA256Hex_KnownVectors(t *testing.T) {
	assert.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", SHA256Hex([]byte("abc")))
	assert.Equal(t, "5e884898da28047151d0e56f8dc6292773603d0d6aabbdd62a11ef721d1542d8", SHA256Hex([]byte("password")))
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", SHA256Hex(nil))
}

func TestSHA256Hasher_DeterministicAndDistinct(t *testing.T) {
	h := SHA256Hasher{}

	a1, err := h.Hash([]byte("Secret123!"))
	require.NoError(t, err)
	a2, err := h.Hash([]byte("Secret123!"))
	require.NoError(t, err)
	b, err := h.Hash([]byte("Other1!"))
	require.NoError(t, err)

	assert.Equal(t, a1, a2)
	assert.NotEqual(t, a1, b)
	assert.Len(t, a1, 64)
	assert.Equal(t, strings.ToLower(a1), a1)
}

func TestVerify_SHA256(t *testing.T) {
	stored := SHA256Hex([]byte("Secret123!"))

	ok, err := Verify([]byte("Secret123!"), stored)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Verify([]byte("wrong"), stored)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerify_Argon2(t *testing.T) {
	h := cheapArgon2()

	stored, err := h.Hash([]byte("Secret123!"))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(stored, "$argon2id$v=19$m=1024,t=1,p=1$"), stored)

	ok, err := Verify([]byte("Secret123!"), stored)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Verify([]byte("wrong"), stored)
	require.NoError(t, err)
	assert.False(t, ok)

	again, err := h.Hash([]byte("Secret123!"))
	require.NoError(t, err)
	assert.NotEqual(t, stored, again, "salts must differ between hashes")
}

func TestVerify_Malformed(t *testing.T) {
	for _, stored := range []string{
		"Secret123!",
		"",
		strings.Repeat("A", 64),
		"$argon2id$v=19$m=1024,t=1,p=1$onlysalt",
		"$argon2id$v=18$m=1024,t=1,p=1$c2FsdA$a2V5",
		"$argon2id$v=19$garbage$c2FsdA$a2V5",
	} {
		_, err := Verify([]byte("x"), stored)
		assert.Truef(t, errors.Is(err, ErrMalformedHash), "stored=%q err=%v", stored, err)
	}
}

func TestIsEncodedHash(t *testing.T) {
	argon, err := cheapArgon2().Hash([]byte("pw"))
	require.NoError(t, err)

	assert.True(t, IsEncodedHash(SHA256Hex([]byte("pw"))))
	assert.True(t, IsEncodedHash(argon))
	assert.False(t, IsEncodedHash("pw"))
	assert.False(t, IsEncodedHash("$argon2id$broken"))
}

func TestNewHasher(t *testing.T) {
	h, err := NewHasher("")
	require.NoError(t, err)
	assert.IsType(t, SHA256Hasher{}, h)

	h, err = NewHasher("ARGON2ID")
	require.NoError(t, err)
	assert.IsType(t, &Argon2Hasher{}, h)

	_, err = NewHasher("md5")
	assert.ErrorIs(t, err, ErrUnknownScheme)
}
