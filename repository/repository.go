// Package repository stores crops and users. Postgres backs the server, the
// in-memory stores back tests, the offline CLI and database-less runs.
package repository

import (
	"context"
	"errors"

	"agrimarket/models"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

// CropStore reads and writes crop listings. Listing methods return crops in
// creation order.
type CropStore interface {
	All(ctx context.Context) ([]models.Crop, error)
	ByID(ctx context.Context, id string) (models.Crop, error)
	ByFarmer(ctx context.Context, farmerID string) ([]models.Crop, error)
	ByState(ctx context.Context, state string) ([]models.Crop, error)
	// Save inserts or replaces a crop. An empty ID gets a new one.
	Save(ctx context.Context, crop models.Crop) (models.Crop, error)
	Delete(ctx context.Context, id string) error
}

// UserStore reads and writes marketplace users.
type UserStore interface {
	Create(ctx context.Context, user models.User, passwordHash string) (models.User, error)
	// ByEmail also returns the password hash for login checks.
	ByEmail(ctx context.Context, email string) (models.User, string, error)
	ByID(ctx context.Context, id string) (models.User, error)
	All(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, user models.User) (models.User, error)
}
