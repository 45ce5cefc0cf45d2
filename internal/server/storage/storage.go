// Package storage provides blob-store adapters for envelope bytes.
//
// A blob store holds uninterpreted byte sequences addressed by opaque
// locators. Each write yields a fresh locator; locators are stable,
// independently addressable, and never reused. Per-locator write, read and
// delete are atomic; any cross-locator coordination happens above this
// package.
package storage

import "context"

// BlobStore is the byte-storage contract consumed by the object service.
type BlobStore interface {
	// Write stores data and returns a fresh opaque locator for it.
	Write(ctx context.Context, data []byte) (string, error)

	// Read returns the bytes stored under locator.
	Read(ctx context.Context, locator string) ([]byte, error)

	// Delete removes the bytes stored under locator.
	Delete(ctx context.Context, locator string) error
}
