// Package models defines server-side data models persisted in the database.
package models

import "time"

// EncryptedObject describes server-side metadata for one encrypted payload.
// The ciphertext itself lives in the blob store; the server never interprets
// it. Every object has exactly one owner and exactly one blob locator, and a
// locator is never shared between objects.
type EncryptedObject struct {
	// ID is assigned at creation and never changes.
	ID string
	// OwnerID is the authenticated user who created the object. Immutable,
	// never empty.
	OwnerID string
	// DisplayName is the client-supplied original filename. Untrusted,
	// stored as-is, never used to build paths.
	DisplayName string
	// ContentType is the client-declared MIME type. Advisory only; it is
	// passed back to clients and never drives server behavior.
	ContentType string
	// SizeBytes is the size of the stored envelope, not the plaintext.
	SizeBytes int64
	// BlobLocator is the opaque blob-store reference owned exclusively by
	// this record. Released when the record is deleted.
	BlobLocator string
	// CreatedAt is the creation timestamp. Immutable.
	CreatedAt time.Time
}
