// Package repository defines the persistence interfaces used by the use case
// layer. Concrete implementations live under internal/infra/adapter/persistence.
package repository

import (
	"context"

	"newsdesk/internal/domain/entity"
)

type PublisherRepository interface {
	// Get retrieves a publisher by ID. Returns (nil, nil) if not found.
	Get(ctx context.Context, id int64) (*entity.Publisher, error)
	// GetByName retrieves a publisher by exact, case-sensitive name.
	// Returns (nil, nil) if not found.
	GetByName(ctx context.Context, name string) (*entity.Publisher, error)
	// List retrieves all publishers ordered by name.
	List(ctx context.Context) ([]*entity.Publisher, error)
	// Create inserts a publisher and sets its ID.
	Create(ctx context.Context, publisher *entity.Publisher) error
	// Delete removes a publisher. Employees keep their account with the
	// publisher reference cleared (ON DELETE SET NULL).
	Delete(ctx context.Context, id int64) error
}
