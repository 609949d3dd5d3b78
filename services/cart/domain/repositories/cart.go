package repositories

import (
	"context"

	"github.com/ghuser/cartservice/services/cart/domain/models"
)

// CartStore is the persistence interface for the Cart aggregate, keyed by
// owner ID. The domain layer owns this interface; infrastructure implements it.
//
// Records expire after a store-defined idle period. An expired record is
// indistinguishable from one that was never saved.
type CartStore interface {
	// Get returns domain.ErrCartNotFound when no live record exists and
	// domain.ErrStoreCorruption when the record cannot be decoded.
	Get(ctx context.Context, ownerID string) (*models.Cart, error)

	// Save replaces the whole record and resets its expiry.
	Save(ctx context.Context, cart *models.Cart) error

	// Delete removes the record. Deleting a missing record is not an error.
	Delete(ctx context.Context, ownerID string) error
}
