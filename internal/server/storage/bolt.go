package storage

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/cryptopix/internal/common"
	"github.com/dmitrijs2005/cryptopix/internal/filex"
	"github.com/google/uuid"
	"go.etcd.io/bbolt"
)

var bucketBlobs = []byte("blobs")

// BoltStore stores blobs in a single-file bbolt database. Suitable for
// single-node deployments without an S3 endpoint.
type BoltStore struct {
	db *bbolt.DB
}

// OpenBoltStore opens or creates the bbolt database at path. The parent
// directory is created if it does not exist.
func OpenBoltStore(path string) (*BoltStore, error) {
	if err := filex.EnsureParentDir(path); err != nil {
		return nil, fmt.Errorf("bolt store: %w", err)
	}

	db, err := bbolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("bolt store: open %s: %w", path, err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketBlobs)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("bolt store: create bucket: %w", err)
	}

	return &BoltStore{db: db}, nil
}

// Close closes the underlying database.
func (s *BoltStore) Close() error { return s.db.Close() }

// Write stores data under a fresh uuid locator.
func (s *BoltStore) Write(ctx context.Context, data []byte) (string, error) {
	locator := uuid.New().String()

	err := s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketBlobs).Put([]byte(locator), data)
	})
	if err != nil {
		return "", fmt.Errorf("bolt put %s: %w", locator, err)
	}

	return locator, nil
}

// Read returns the bytes stored under locator, or common.ErrorNotFound.
func (s *BoltStore) Read(ctx context.Context, locator string) ([]byte, error) {
	var data []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(bucketBlobs).Get([]byte(locator))
		if v == nil {
			return common.ErrorNotFound
		}
		// v is only valid inside the transaction.
		data = append([]byte(nil), v...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Delete removes the bytes stored under locator. Deleting an absent locator
// is a no-op.
func (s *BoltStore) Delete(ctx context.Context, locator string) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketBlobs).Delete([]byte(locator))
	})
	if err != nil {
		return fmt.Errorf("bolt delete %s: %w", locator, err)
	}
	return nil
}
