// Package users provides the account record store backing login and
// registration.
package users

import (
	"context"

	"github.com/dmitrijs2005/cryptopix/internal/server/models"
)

// Repository is the account-store contract.
type Repository interface {
	// Create inserts a new account. A duplicate login fails with
	// common.ErrorAlreadyExists.
	Create(ctx context.Context, user *models.User) error

	// GetByLogin returns the account with the given login, or
	// common.ErrorNotFound.
	GetByLogin(ctx context.Context, login string) (*models.User, error)
}
