package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/ghuser/cartservice/pkg/logger"
	cartdomain "github.com/ghuser/cartservice/services/cart/domain"
	"github.com/ghuser/cartservice/services/cart/domain/models"
	"github.com/ghuser/cartservice/services/cart/domain/repositories"
	domainsvcs "github.com/ghuser/cartservice/services/cart/domain/services"
)

const instrumentationName = "github.com/ghuser/cartservice/services/cart"

// OrderEmitter publishes cart state to downstream consumers. Each call
// publishes exactly one message and returns its event ID.
type OrderEmitter interface {
	EmitOrderRequested(ctx context.Context, cart *models.Cart) (uuid.UUID, error)
	EmitCartUpdated(ctx context.Context, cart *models.Cart) (uuid.UUID, error)
}

// OrderReceipt acknowledges an accepted order request.
type OrderReceipt struct {
	EventID    uuid.UUID
	OwnerID    string
	TotalPrice int64
	Accepted   bool
}

// CartService is the synchronous business surface over one owner's cart.
// Every call re-reads the cart from the store, mutates a private copy and
// writes it back. Concurrent calls for the same owner are last-write-wins.
type CartService struct {
	store   repositories.CartStore
	emitter OrderEmitter
	log     logger.Logger
	tracer  trace.Tracer
	ops     metric.Int64Counter
}

// NewCartService returns a CartService wired with the given store and emitter.
// Tracing and metrics use the global OTel providers.
func NewCartService(store repositories.CartStore, emitter OrderEmitter, log logger.Logger) *CartService {
	meter := otel.Meter(instrumentationName)
	ops, err := meter.Int64Counter("cart.operations",
		metric.WithDescription("Cart operations by name and outcome"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		log.Warn("cart: operations counter unavailable", "error", err)
	}
	return &CartService{
		store:   store,
		emitter: emitter,
		log:     log,
		tracer:  otel.Tracer(instrumentationName),
		ops:     ops,
	}
}

// GetOrCreate returns the stored cart of ownerID, or creates, saves and
// returns an empty one. Only store failures are returned for a valid owner.
func (s *CartService) GetOrCreate(ctx context.Context, ownerID string) (cart *models.Cart, err error) {
	ctx, end := s.start(ctx, "GetOrCreate", ownerID)
	defer func() { end(err) }()

	return s.getOrCreate(ctx, ownerID)
}

// AddOneToCart adds one unit of dish. An invalid dish is rejected before
// the store is touched.
func (s *CartService) AddOneToCart(ctx context.Context, ownerID string, dish models.Dish) (*models.Cart, error) {
	if err := dish.Validate(); err != nil {
		return nil, s.reject(ctx, "AddOneToCart", err)
	}
	return s.mutate(ctx, "AddOneToCart", ownerID, func(c *models.Cart) error {
		_, err := c.AddOne(dish)
		return err
	})
}

// RemoveOneFromCart removes one unit of dishID, deleting the line at zero.
func (s *CartService) RemoveOneFromCart(ctx context.Context, ownerID string, dishID uuid.UUID) (*models.Cart, error) {
	return s.mutate(ctx, "RemoveOneFromCart", ownerID, func(c *models.Cart) error {
		_, err := c.RemoveOne(dishID)
		return err
	})
}

// RemoveAllFromCart deletes the line for dishID.
func (s *CartService) RemoveAllFromCart(ctx context.Context, ownerID string, dishID uuid.UUID) (*models.Cart, error) {
	return s.mutate(ctx, "RemoveAllFromCart", ownerID, func(c *models.Cart) error {
		_, err := c.RemoveAll(dishID)
		return err
	})
}

// UpdateQuantity sets the quantity of an existing line.
func (s *CartService) UpdateQuantity(ctx context.Context, ownerID string, dishID uuid.UUID, quantity int) (*models.Cart, error) {
	if quantity <= 0 {
		return nil, s.reject(ctx, "UpdateQuantity", fmt.Errorf("%w: got %d", cartdomain.ErrInvalidQuantity, quantity))
	}
	return s.mutate(ctx, "UpdateQuantity", ownerID, func(c *models.Cart) error {
		_, err := c.SetQuantity(dishID, quantity)
		return err
	})
}

// AddDishesToCart applies AddOne once per entry in dishes and saves once.
// Every dish is validated up front and any failure leaves the stored cart
// as it was. Customer and restaurant IDs are stamped when the cart has none.
func (s *CartService) AddDishesToCart(ctx context.Context, ownerID string, cc models.CartContext, dishes []models.Dish) (*models.Cart, error) {
	if err := domainsvcs.ValidateDishes(dishes); err != nil {
		return nil, s.reject(ctx, "AddDishesToCart", err)
	}
	return s.mutate(ctx, "AddDishesToCart", ownerID, func(c *models.Cart) error {
		c.AssignContext(cc)
		for i, d := range dishes {
			if _, err := c.AddOne(d); err != nil {
				return fmt.Errorf("dish %d: %w", i, err)
			}
		}
		return nil
	})
}

// DeleteCart removes the cart of ownerID. Deleting a missing cart succeeds.
func (s *CartService) DeleteCart(ctx context.Context, ownerID string) (err error) {
	ctx, end := s.start(ctx, "DeleteCart", ownerID)
	defer func() { end(err) }()

	if err := domainsvcs.ValidateOwnerID(ownerID); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, ownerID); err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}
	return nil
}

// PlaceOrder publishes one order event for the current cart of ownerID.
// An empty cart yields ErrEmptyCartOrder and nothing is published. The cart
// itself is left as it is.
func (s *CartService) PlaceOrder(ctx context.Context, ownerID string) (receipt OrderReceipt, err error) {
	ctx, end := s.start(ctx, "PlaceOrder", ownerID)
	defer func() { end(err) }()

	cart, err := s.getOrCreate(ctx, ownerID)
	if err != nil {
		return OrderReceipt{}, err
	}
	if err := domainsvcs.ValidateCartForOrder(cart); err != nil {
		return OrderReceipt{}, err
	}
	total, err := cart.TotalPrice()
	if err != nil {
		return OrderReceipt{}, err
	}

	eventID, err := s.emitter.EmitOrderRequested(ctx, cart)
	if err != nil {
		if !errors.Is(err, cartdomain.ErrPublishFailure) {
			err = fmt.Errorf("%w: %w", cartdomain.ErrPublishFailure, err)
		}
		return OrderReceipt{}, err
	}

	s.log.InfoContext(ctx, "order requested",
		"owner_id", ownerID,
		"event_id", eventID,
		"lines", cart.Len(),
		"total_price", total,
	)
	return OrderReceipt{EventID: eventID, OwnerID: ownerID, TotalPrice: total, Accepted: true}, nil
}

func (s *CartService) getOrCreate(ctx context.Context, ownerID string) (*models.Cart, error) {
	if err := domainsvcs.ValidateOwnerID(ownerID); err != nil {
		return nil, err
	}

	cart, err := s.store.Get(ctx, ownerID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, cartdomain.ErrCartNotFound) {
		return nil, fmt.Errorf("load cart: %w", err)
	}

	cart, err = models.NewCart(ownerID, models.CartContext{})
	if err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("create cart: %w", err)
	}
	s.log.DebugContext(ctx, "cart created", "owner_id", ownerID)
	return cart, nil
}

// mutate runs fn against a private copy of the owner's cart and saves the
// copy only when fn succeeds.
//
// TODO: guard the read-modify-write with WATCH/MULTI on the cart key so
// concurrent writers for one owner retry instead of overwriting each other.
func (s *CartService) mutate(ctx context.Context, op, ownerID string, fn func(*models.Cart) error) (next *models.Cart, err error) {
	ctx, end := s.start(ctx, op, ownerID)
	defer func() { end(err) }()

	cart, err := s.getOrCreate(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	next = cart.Clone()
	if err := fn(next); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, next); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}
	return next, nil
}

// start opens a span for op and returns a func that records the outcome
// on both the span and the operations counter.
func (s *CartService) start(ctx context.Context, op, ownerID string) (context.Context, func(error)) {
	ctx, span := s.tracer.Start(ctx, "CartService."+op,
		trace.WithAttributes(attribute.String("cart.owner_id", ownerID)),
	)
	return ctx, func(err error) {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		s.count(ctx, op, err)
		span.End()
	}
}

// reject records a validation failure that happened before any store access.
func (s *CartService) reject(ctx context.Context, op string, err error) error {
	s.count(ctx, op, err)
	return err
}

func (s *CartService) count(ctx context.Context, op string, err error) {
	if s.ops == nil {
		return
	}
	s.ops.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", op),
		attribute.String("outcome", outcome(err)),
	))
}

// outcome buckets err into a low-cardinality label.
func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, cartdomain.ErrInvalidInput), errors.Is(err, cartdomain.ErrInvalidQuantity):
		return "invalid_input"
	case errors.Is(err, cartdomain.ErrItemNotFound):
		return "item_not_found"
	case errors.Is(err, cartdomain.ErrArithmeticOverflow):
		return "overflow"
	case errors.Is(err, cartdomain.ErrEmptyCartOrder):
		return "empty_cart"
	case errors.Is(err, cartdomain.ErrStoreCorruption):
		return "store_corruption"
	case errors.Is(err, cartdomain.ErrPublishFailure):
		return "publish_failure"
	default:
		return "error"
	}
}
