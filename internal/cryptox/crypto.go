// Package cryptox turns a password and plaintext into a self-contained
// encrypted envelope, and an envelope plus password back into plaintext.
//
// Keys are derived per call with argon2id from a fresh random salt, and the
// payload is sealed with AES-256-GCM under a fresh random nonce, so two
// encryptions of the same input never produce the same bytes. Derived keys
// are wiped as soon as the call completes and are never logged or embedded
// in errors.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"

	"github.com/dmitrijs2005/cryptopix/internal/common"
	"github.com/dmitrijs2005/cryptopix/internal/envelope"
	"golang.org/x/crypto/argon2"
)

// Cipher is the password-based authenticated encryption contract. Any
// vetted AEAD implementation can be substituted without touching callers.
type Cipher interface {
	// Encrypt produces an envelope from plaintext and password.
	Encrypt(plaintext []byte, password string) ([]byte, error)

	// Decrypt recovers the plaintext from an envelope produced by Encrypt
	// with the same password.
	Decrypt(data []byte, password string) ([]byte, error)
}

// PasswordCipher implements Cipher with argon2id key derivation and
// AES-256-GCM.
type PasswordCipher struct{}

// NewPasswordCipher returns the production Cipher implementation.
func NewPasswordCipher() *PasswordCipher {
	return &PasswordCipher{}
}

// DeriveKey stretches password with argon2id into a 32-byte AES key.
// The same password and salt always yield the same key.
func DeriveKey(password, salt []byte) []byte {
	return argon2.IDKey(password, salt, 1, 64*1024, 4, 32)
}

// Encrypt derives a fresh key from password and a random salt, seals
// plaintext under a random nonce, and frames the result as an envelope.
// An empty password fails with common.ErrInvalidPassword.
func (c *PasswordCipher) Encrypt(plaintext []byte, password string) ([]byte, error) {
	if password == "" {
		return nil, common.ErrInvalidPassword
	}

	salt := common.GenerateRandByteArray(envelope.SaltSize)

	key := DeriveKey([]byte(password), salt)
	defer common.WipeBytes(key)

	aesgcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce := common.GenerateRandByteArray(aesgcm.NonceSize())
	ciphertext := aesgcm.Seal(nil, nonce, plaintext, nil)

	return envelope.Encode(salt, nonce, ciphertext), nil
}

// Decrypt unframes the envelope, re-derives the key from the embedded salt,
// and opens the ciphertext. A framing problem fails with
// common.ErrMalformedEnvelope before any key derivation. A wrong password
// and a tampered ciphertext are indistinguishable and both fail with
// common.ErrAuthenticationFailed.
func (c *PasswordCipher) Decrypt(data []byte, password string) ([]byte, error) {
	env, err := envelope.Decode(data)
	if err != nil {
		return nil, err
	}

	key := DeriveKey([]byte(password), env.Salt)
	defer common.WipeBytes(key)

	aesgcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	plaintext, err := aesgcm.Open(nil, env.Nonce, env.Ciphertext, nil)
	if err != nil {
		// The underlying error is dropped deliberately so the caller
		// cannot tell a bad password from corrupted data.
		return nil, common.ErrAuthenticationFailed
	}

	return plaintext, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("aes cipher: %w", err)
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("gcm mode: %w", err)
	}
	return aesgcm, nil
}
