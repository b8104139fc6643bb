package trade

import (
	"context"

	"github.com/atelie/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// OrderRepository defines the interface for order persistence.
// Every method is scoped to the owning producer; looking up a foreign
// order yields shared.ErrNotFound.
type OrderRepository interface {
	// FindByIDForOwner finds an order (with items) by ID for an owner
	FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*Order, error)

	// FindAllForOwner finds all orders for an owner with filtering
	FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]Order, error)

	// Save persists the order header and its full item set atomically.
	// The stored item set is replaced, not patched: items missing from
	// the aggregate are deleted in the same transaction.
	Save(ctx context.Context, order *Order) error

	// DeleteForOwner deletes an order and cascades to its items atomically
	DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error

	// CountForOwner counts orders for an owner with optional filters
	CountForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) (int64, error)
}
