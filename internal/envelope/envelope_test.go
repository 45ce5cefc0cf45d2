package envelope

import (
	"errors"
	"testing"

	"github.com/dmitrijs2005/cryptopix/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecode_Roundtrip(t *testing.T) {
	salt := make([]byte, SaltSize)
	nonce := make([]byte, NonceSize)
	for i := range salt {
		salt[i] = byte(i)
	}
	for i := range nonce {
		nonce[i] = byte(0xf0 + i)
	}
	ciphertext := []byte("opaque-bytes-including-tag")

	data := Encode(salt, nonce, ciphertext)
	require.Len(t, data, HeaderSize+len(ciphertext))
	assert.Equal(t, Version1, data[0])

	env, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, Version1, env.Version)
	assert.Equal(t, salt, env.Salt)
	assert.Equal(t, nonce, env.Nonce)
	assert.Equal(t, ciphertext, env.Ciphertext)
}

func TestDecode_TooShort(t *testing.T) {
	for _, size := range []int{0, 1, HeaderSize - 1} {
		data := make([]byte, size)
		if size > 0 {
			data[0] = Version1
		}
		_, err := Decode(data)
		assert.True(t, errors.Is(err, common.ErrMalformedEnvelope), "size %d: got %v", size, err)
	}
}

func TestDecode_UnknownVersion(t *testing.T) {
	data := make([]byte, HeaderSize+8)
	data[0] = 0x7f

	_, err := Decode(data)
	assert.True(t, errors.Is(err, common.ErrMalformedEnvelope))
}

func TestDecode_EmptyCiphertextSection(t *testing.T) {
	// A header with no ciphertext still decodes; rejecting an undecryptable
	// payload is the cipher engine's job, not the codec's.
	data := make([]byte, HeaderSize)
	data[0] = Version1

	env, err := Decode(data)
	require.NoError(t, err)
	assert.Empty(t, env.Ciphertext)
}
