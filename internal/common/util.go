package common

import "crypto/rand"

// AuthHeaderName is the HTTP header used to carry the access token on
// authenticated requests, in the form "Bearer <token>".
const AuthHeaderName = "Authorization"

// GenerateRandByteArray returns size cryptographically random bytes.
// It panics if the system entropy source fails, which is not recoverable
// for any caller in this codebase.
func GenerateRandByteArray(size int) []byte {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return b
}

// WipeBytes overwrites b with zeros. Used to drop key material from memory
// as soon as a cryptographic operation completes.
func WipeBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
