package objects

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/cryptopix/internal/common"
	"github.com/dmitrijs2005/cryptopix/internal/dbx"
	"github.com/dmitrijs2005/cryptopix/internal/server/models"
)

// PostgresRepository implements object metadata storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new object record. Exactly one row must be affected.
func (r *PostgresRepository) Create(ctx context.Context, obj *models.EncryptedObject) error {
	query := `
		INSERT INTO objects (id, owner_id, display_name, content_type, size_bytes, blob_locator, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	res, err := r.db.ExecContext(ctx, query,
		obj.ID, obj.OwnerID, obj.DisplayName, obj.ContentType, obj.SizeBytes, obj.BlobLocator, obj.CreatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n != 1 {
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
	return nil
}

// Get returns the record with the given id. Missing rows map to
// common.ErrorNotFound.
func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.EncryptedObject, error) {
	query := ` SELECT id, owner_id, display_name, content_type, size_bytes, blob_locator, created_at from objects
		WHERE id=$1
		`

	result := &models.EncryptedObject{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&result.ID, &result.OwnerID, &result.DisplayName, &result.ContentType,
		&result.SizeBytes, &result.BlobLocator, &result.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("failed to select object: %w", err)
	}
	return result, nil
}

// ListByOwner returns all records for ownerID ordered newest-created first.
func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.EncryptedObject, error) {
	query := ` SELECT id, owner_id, display_name, content_type, size_bytes, blob_locator, created_at from objects
		WHERE owner_id=$1 ORDER BY created_at DESC
		`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to select objects: %w", err)
	}
	defer rows.Close()

	var result []*models.EncryptedObject
	for rows.Next() {
		var item models.EncryptedObject
		if err := rows.Scan(
			&item.ID, &item.OwnerID, &item.DisplayName, &item.ContentType,
			&item.SizeBytes, &item.BlobLocator, &item.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Delete removes the record with the given id. Zero rows affected maps to
// common.ErrorNotFound.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE from objects WHERE id=$1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 1:
		return nil
	case 0:
		return common.ErrorNotFound
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}
