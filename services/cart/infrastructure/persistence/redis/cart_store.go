package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/ghuser/cartservice/pkg/cache"
	cartdomain "github.com/ghuser/cartservice/services/cart/domain"
	"github.com/ghuser/cartservice/services/cart/domain/models"
	"github.com/ghuser/cartservice/services/cart/domain/repositories"
)

const (
	// DefaultTTL is how long an untouched cart survives.
	DefaultTTL = 30 * time.Minute

	cartKeyPrefix = "cart"

	// go-redis reports a missing key from TTL as this raw duration.
	ttlKeyMissing = time.Duration(-2)
)

var _ repositories.CartStore = (*CartStore)(nil)

// CartStore implements repositories.CartStore as one JSON string per owner.
// Every Save rewrites the value and its expiry with a single SET ... EX.
// Key format: "cart:{ownerID}"
type CartStore struct {
	client *cache.RedisClient
	ttl    time.Duration
}

// NewCartStore returns a CartStore whose records expire ttl after the last
// save. A non-positive ttl falls back to DefaultTTL.
func NewCartStore(client *cache.RedisClient, ttl time.Duration) *CartStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &CartStore{client: client, ttl: ttl}
}

// Get loads the cart of ownerID. Returns ErrCartNotFound when the key is
// absent or expired, ErrStoreCorruption when the value cannot be rebuilt.
func (s *CartStore) Get(ctx context.Context, ownerID string) (*models.Cart, error) {
	data, err := s.client.Client().Get(ctx, s.key(ownerID)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, cartdomain.ErrCartNotFound
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}

	var snap models.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("%w: decode cart %s: %w", cartdomain.ErrStoreCorruption, ownerID, err)
	}
	if snap.OwnerID != ownerID {
		return nil, fmt.Errorf("%w: key %s holds cart of %q", cartdomain.ErrStoreCorruption, s.key(ownerID), snap.OwnerID)
	}
	cart, err := models.CartFromSnapshot(snap)
	if err != nil {
		return nil, fmt.Errorf("%w: rebuild cart %s: %w", cartdomain.ErrStoreCorruption, ownerID, err)
	}
	return cart, nil
}

// Save replaces the stored cart and resets its expiry.
func (s *CartStore) Save(ctx context.Context, cart *models.Cart) error {
	snap, err := cart.Snapshot()
	if err != nil {
		return fmt.Errorf("snapshot cart: %w", err)
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := s.client.Client().Set(ctx, s.key(cart.OwnerID()), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

// Delete removes the cart of ownerID. Missing keys are not an error.
func (s *CartStore) Delete(ctx context.Context, ownerID string) error {
	if err := s.client.Client().Del(ctx, s.key(ownerID)).Err(); err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}
	return nil
}

// TTL returns the remaining lifetime of the cart of ownerID.
func (s *CartStore) TTL(ctx context.Context, ownerID string) (time.Duration, error) {
	ttl, err := s.client.Client().TTL(ctx, s.key(ownerID)).Result()
	if err != nil {
		return 0, fmt.Errorf("cart ttl: %w", err)
	}
	if ttl == ttlKeyMissing {
		return 0, cartdomain.ErrCartNotFound
	}
	return ttl, nil
}

// key builds the Redis key: "cart:{ownerID}"
func (s *CartStore) key(ownerID string) string {
	return fmt.Sprintf("%s:%s", cartKeyPrefix, ownerID)
}
