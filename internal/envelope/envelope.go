// Package envelope defines the wire framing for encrypted payloads.
//
// An envelope is a single opaque byte sequence carrying everything a client
// needs to decrypt it except the password:
//
//	+---------+------------+-------------+----------------------+
//	| version |    salt    |    nonce    |  ciphertext + tag    |
//	| 1 byte  |  16 bytes  |  12 bytes   |  variable            |
//	+---------+------------+-------------+----------------------+
//
// The codec only frames and unframes bytes. It never derives keys and never
// decrypts; that is the job of the cryptox package.
package envelope

import (
	"fmt"

	"github.com/dmitrijs2005/cryptopix/internal/common"
)

const (
	// Version1 is the only envelope format version currently produced.
	Version1 byte = 0x01

	// SaltSize is the length of the key-derivation salt.
	SaltSize = 16

	// NonceSize is the length of the AEAD nonce.
	NonceSize = 12

	// HeaderSize is the length of the fixed header preceding the ciphertext.
	HeaderSize = 1 + SaltSize + NonceSize
)

// Envelope is the decoded representation of an encrypted payload.
// Salt, Nonce and Ciphertext alias the buffer passed to Decode.
type Envelope struct {
	Version    byte
	Salt       []byte
	Nonce      []byte
	Ciphertext []byte
}

// Encode frames salt, nonce and ciphertext into a version-tagged byte
// sequence. salt must be SaltSize bytes and nonce NonceSize bytes; the
// cipher engine is the only producer and guarantees both.
func Encode(salt, nonce, ciphertext []byte) []byte {
	buf := make([]byte, 0, HeaderSize+len(ciphertext))
	buf = append(buf, Version1)
	buf = append(buf, salt...)
	buf = append(buf, nonce...)
	buf = append(buf, ciphertext...)
	return buf
}

// Decode unframes an envelope produced by Encode. It fails with
// common.ErrMalformedEnvelope when the buffer is shorter than the fixed
// header or the version tag is unknown.
func Decode(data []byte) (*Envelope, error) {
	if len(data) < HeaderSize {
		return nil, fmt.Errorf("%w: %d bytes is shorter than header", common.ErrMalformedEnvelope, len(data))
	}
	if data[0] != Version1 {
		return nil, fmt.Errorf("%w: unknown version tag 0x%02x", common.ErrMalformedEnvelope, data[0])
	}
	return &Envelope{
		Version:    data[0],
		Salt:       data[1 : 1+SaltSize],
		Nonce:      data[1+SaltSize : HeaderSize],
		Ciphertext: data[HeaderSize:],
	}, nil
}
