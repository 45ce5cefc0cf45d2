// Package services holds the business rules sitting between the HTTP
// boundary and the backing stores.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/cryptopix/internal/common"
	"github.com/dmitrijs2005/cryptopix/internal/logging"
	"github.com/dmitrijs2005/cryptopix/internal/server/models"
	"github.com/dmitrijs2005/cryptopix/internal/server/repositories/objects"
	"github.com/dmitrijs2005/cryptopix/internal/server/storage"
	"github.com/google/uuid"
)

// ObjectService is the only component that creates, reads, lists or deletes
// EncryptedObject records. Every operation requires the authenticated
// owner id and enforces ownership before touching any blob.
//
// A missing object and an object owned by someone else are deliberately
// indistinguishable: both fail with common.ErrorNotFound so callers cannot
// probe for other users' object ids.
type ObjectService struct {
	objects objects.Repository
	blobs   storage.BlobStore
	logger  logging.Logger
}

// NewObjectService wires the metadata repository and blob store together.
func NewObjectService(repo objects.Repository, blobs storage.BlobStore, logger logging.Logger) *ObjectService {
	return &ObjectService{
		objects: repo,
		blobs:   blobs,
		logger:  logger.With("module", "objects"),
	}
}

// Create stores envelopeBytes in the blob store and then creates the
// metadata record referencing it. The record only becomes visible after
// both writes succeed; if the metadata write fails, the orphaned blob is
// removed before the error is surfaced.
func (s *ObjectService) Create(ctx context.Context, ownerID, displayName, contentType string, envelopeBytes []byte) (*models.EncryptedObject, error) {
	locator, err := s.blobs.Write(ctx, envelopeBytes)
	if err != nil {
		s.logger.Error(ctx, "blob write failed", "error", err.Error())
		return nil, common.ErrStorageUnavailable
	}

	obj := &models.EncryptedObject{
		ID:          uuid.New().String(),
		OwnerID:     ownerID,
		DisplayName: displayName,
		ContentType: contentType,
		SizeBytes:   int64(len(envelopeBytes)),
		BlobLocator: locator,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.objects.Create(ctx, obj); err != nil {
		// Compensating delete: no metadata record may exist without its
		// blob and no blob may outlive a failed create.
		if derr := s.blobs.Delete(ctx, locator); derr != nil {
			s.logger.Error(ctx, "orphan blob cleanup failed", "locator", locator, "error", derr.Error())
		}
		return nil, fmt.Errorf("create object: %w", err)
	}

	return obj, nil
}

// Get returns the object with the given id if it is owned by ownerID.
func (s *ObjectService) Get(ctx context.Context, id, ownerID string) (*models.EncryptedObject, error) {
	obj, err := s.objects.Get(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("get object: %w", err)
	}
	if obj.OwnerID != ownerID {
		return nil, common.ErrorNotFound
	}
	return obj, nil
}

// List returns all objects of ownerID, newest-created first. An owner with
// no objects gets an empty slice, not an error.
func (s *ObjectService) List(ctx context.Context, ownerID string) ([]*models.EncryptedObject, error) {
	list, err := s.objects.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list objects: %w", err)
	}
	return list, nil
}

// ReadEnvelope performs the same ownership check as Get and then reads the
// envelope bytes from the blob store. A blob failure while metadata exists
// is a data-integrity anomaly: it is logged and surfaced as
// common.ErrStorageUnavailable.
func (s *ObjectService) ReadEnvelope(ctx context.Context, id, ownerID string) ([]byte, *models.EncryptedObject, error) {
	obj, err := s.Get(ctx, id, ownerID)
	if err != nil {
		return nil, nil, err
	}

	data, err := s.blobs.Read(ctx, obj.BlobLocator)
	if err != nil {
		s.logger.Error(ctx, "blob unreadable for existing object",
			"object_id", obj.ID, "locator", obj.BlobLocator, "error", err.Error())
		return nil, nil, common.ErrStorageUnavailable
	}

	return data, obj, nil
}

// Delete removes the blob and then the metadata record. A blob-delete
// failure is logged and the metadata record is removed anyway: an
// authorized delete must not leave a ghost record behind for the sake of a
// small storage leak.
func (s *ObjectService) Delete(ctx context.Context, id, ownerID string) error {
	obj, err := s.Get(ctx, id, ownerID)
	if err != nil {
		return err
	}

	if err := s.blobs.Delete(ctx, obj.BlobLocator); err != nil {
		s.logger.Warn(ctx, "blob delete failed, removing metadata anyway",
			"object_id", obj.ID, "locator", obj.BlobLocator, "error", err.Error())
	}

	if err := s.objects.Delete(ctx, obj.ID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// Lost a race with a concurrent delete of the same object.
			return common.ErrorNotFound
		}
		return fmt.Errorf("delete object: %w", err)
	}

	return nil
}
