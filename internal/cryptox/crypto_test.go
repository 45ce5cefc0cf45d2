package cryptox

import (
	"bytes"
	"errors"
	"testing"

	"github.com/dmitrijs2005/cryptopix/internal/common"
	"github.com/dmitrijs2005/cryptopix/internal/envelope"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveKey_Deterministic(t *testing.T) {
	password := []byte("secret-password")
	salt := []byte("fixed-salt-16byt")

	key1 := DeriveKey(password, salt)
	key2 := DeriveKey(password, salt)

	if !bytes.Equal(key1, key2) {
		t.Errorf("expected same result for same inputs, got different")
	}
	if len(key1) != 32 {
		t.Errorf("expected 32-byte key, got %d", len(key1))
	}
}

func TestDeriveKey_DifferentSalts(t *testing.T) {
	password := []byte("secret-password")

	key1 := DeriveKey(password, []byte("salt-1"))
	key2 := DeriveKey(password, []byte("salt-2"))

	if bytes.Equal(key1, key2) {
		t.Errorf("expected different results for different salts, got same")
	}
}

func TestEncryptDecrypt_Roundtrip(t *testing.T) {
	c := NewPasswordCipher()

	plaintext := []byte("a very small photo")
	data, err := c.Encrypt(plaintext, "vault123")
	require.NoError(t, err)
	require.Greater(t, len(data), envelope.HeaderSize)

	got, err := c.Decrypt(data, "vault123")
	require.NoError(t, err)
	assert.Equal(t, plaintext, got)
}

func TestEncrypt_FreshSaltAndNonce(t *testing.T) {
	c := NewPasswordCipher()

	plaintext := []byte("same plaintext")
	data1, err := c.Encrypt(plaintext, "pw")
	require.NoError(t, err)
	data2, err := c.Encrypt(plaintext, "pw")
	require.NoError(t, err)

	assert.NotEqual(t, data1, data2, "two encryptions produced identical ciphertext")

	env1, err := envelope.Decode(data1)
	require.NoError(t, err)
	env2, err := envelope.Decode(data2)
	require.NoError(t, err)
	assert.NotEqual(t, env1.Salt, env2.Salt)
	assert.NotEqual(t, env1.Nonce, env2.Nonce)
}

func TestEncrypt_EmptyPassword(t *testing.T) {
	c := NewPasswordCipher()

	_, err := c.Encrypt([]byte("data"), "")
	assert.True(t, errors.Is(err, common.ErrInvalidPassword))
}

func TestDecrypt_WrongPassword(t *testing.T) {
	c := NewPasswordCipher()

	data, err := c.Encrypt([]byte("hello"), "vault123")
	require.NoError(t, err)

	got, err := c.Decrypt(data, "wrong")
	assert.Nil(t, got)
	assert.True(t, errors.Is(err, common.ErrAuthenticationFailed))
	// No detail beyond the sentinel; the error must not hint at the cause.
	assert.Equal(t, common.ErrAuthenticationFailed.Error(), err.Error())
}

func TestDecrypt_TamperedByteAnywhere(t *testing.T) {
	c := NewPasswordCipher()

	data, err := c.Encrypt([]byte("tamper target"), "pw")
	require.NoError(t, err)

	for i := 1; i < len(data); i++ {
		mutated := bytes.Clone(data)
		mutated[i] ^= 0x01

		got, err := c.Decrypt(mutated, "pw")
		assert.Nil(t, got, "byte %d: plaintext leaked", i)
		assert.True(t, errors.Is(err, common.ErrAuthenticationFailed), "byte %d: got %v", i, err)
	}
}

func TestDecrypt_FlippedVersionIsMalformed(t *testing.T) {
	c := NewPasswordCipher()

	data, err := c.Encrypt([]byte("x"), "pw")
	require.NoError(t, err)
	data[0] ^= 0x01

	_, err = c.Decrypt(data, "pw")
	assert.True(t, errors.Is(err, common.ErrMalformedEnvelope))
}

func TestDecrypt_Malformed(t *testing.T) {
	c := NewPasswordCipher()

	_, err := c.Decrypt([]byte{0x01, 0x02}, "pw")
	assert.True(t, errors.Is(err, common.ErrMalformedEnvelope))
}
