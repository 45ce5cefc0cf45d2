// Package objects provides the metadata store for encrypted objects.
//
// The repository is a plain record store keyed by object id; ownership
// checks and blob handling live one layer up in the object service.
package objects

import (
	"context"

	"github.com/dmitrijs2005/cryptopix/internal/server/models"
)

// Repository is the metadata-store contract for EncryptedObject records.
type Repository interface {
	// Create inserts a new record. The record must not exist.
	Create(ctx context.Context, obj *models.EncryptedObject) error

	// Get returns the record with the given id, or common.ErrorNotFound.
	Get(ctx context.Context, id string) (*models.EncryptedObject, error)

	// ListByOwner returns all records for ownerID, newest-created first.
	ListByOwner(ctx context.Context, ownerID string) ([]*models.EncryptedObject, error)

	// Delete removes the record with the given id, or common.ErrorNotFound
	// when no such record exists.
	Delete(ctx context.Context, id string) error
}
