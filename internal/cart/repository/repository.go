package repository

import (
	"context"
	"errors"

	"github.com/MoolaPravalesh19/PrintDukan/internal/domain"
)

var (
	ErrCartNotFound = errors.New("cart not found")
	// ErrCartCorrupt means the stored snapshot exists but does not decode.
	ErrCartCorrupt = errors.New("cart snapshot corrupt")
	// ErrVersionConflict means a concurrent save won the read-modify-write race.
	ErrVersionConflict = errors.New("cart version conflict")
)

// CartRepository defines the durable snapshot operations.
// Consumers define this interface, not the MongoDB implementation.
type CartRepository interface {
	GetCart(ctx context.Context, cartID string) (*domain.Cart, error)
	// SaveCart persists the snapshot if cart.Version still matches the
	// stored version, then bumps it. A lost race returns ErrVersionConflict.
	SaveCart(ctx context.Context, cart *domain.Cart) error
	DeleteCart(ctx context.Context, cartID string) error
}
