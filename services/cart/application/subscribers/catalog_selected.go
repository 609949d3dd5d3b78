package subscribers

import (
	"context"
	"errors"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/ghuser/cartservice/pkg/logger"
	"github.com/ghuser/cartservice/pkg/telemetry"
	pkgvalidator "github.com/ghuser/cartservice/pkg/validator"
	cartdomain "github.com/ghuser/cartservice/services/cart/domain"
	domainevents "github.com/ghuser/cartservice/services/cart/domain/events"
	"github.com/ghuser/cartservice/services/cart/domain/models"
)

const instrumentationName = "github.com/ghuser/cartservice/services/cart/subscribers"

// CartUpdater applies a batch of selected dishes to one owner's cart.
type CartUpdater interface {
	AddDishesToCart(ctx context.Context, ownerID string, cc models.CartContext, dishes []models.Dish) (*models.Cart, error)
}

// CartForwarder publishes the cart state produced by an ingested selection.
type CartForwarder interface {
	EmitCartUpdated(ctx context.Context, cart *models.Cart) (uuid.UUID, error)
}

// CatalogSelectedHandler turns catalog selections into cart mutations.
// Events are not deduplicated: a redelivered event adds its dishes again.
type CatalogSelectedHandler struct {
	carts     CartUpdater
	forwarder CartForwarder
	log       logger.Logger
	tracer    trace.Tracer
	processed metric.Int64Counter
}

// NewCatalogSelectedHandler returns a handler applying selections through
// carts and forwarding results through forwarder.
func NewCatalogSelectedHandler(carts CartUpdater, forwarder CartForwarder, log logger.Logger) *CatalogSelectedHandler {
	processed, err := otel.Meter(instrumentationName).Int64Counter("cart.ingested_events",
		metric.WithDescription("Catalog selection events by result"),
		metric.WithUnit("{event}"),
	)
	if err != nil {
		log.Warn("subscribers: ingested events counter unavailable", "error", err)
	}
	return &CatalogSelectedHandler{
		carts:     carts,
		forwarder: forwarder,
		log:       log,
		tracer:    otel.Tracer(instrumentationName),
		processed: processed,
	}
}

// HandleMessage is registered with the EventBus. A nil return acks the
// message. Malformed or invalid selections are logged and acked since a
// retry cannot fix them. A corrupt stored cart is acked as well and
// reported to Sentry. Any other failure is returned so the bus retries
// and eventually reports it.
func (h *CatalogSelectedHandler) HandleMessage(ctx context.Context, msg *message.Message) error {
	ctx, span := h.tracer.Start(ctx, "CatalogSelectedHandler.HandleMessage",
		trace.WithSpanKind(trace.SpanKindConsumer),
		trace.WithAttributes(attribute.String("messaging.message.id", msg.UUID)),
	)
	defer span.End()

	err := h.handle(ctx, msg)
	switch {
	case err == nil:
		h.count(ctx, "applied")
		return nil
	case errors.Is(err, cartdomain.ErrStoreCorruption):
		// The stored cart cannot be read back, so redelivery would fail the
		// same way until the record expires.
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		h.count(ctx, "corrupt")
		h.log.ErrorContext(ctx, "catalog selection dropped, stored cart is corrupt",
			"message_id", msg.UUID,
			"error", err,
		)
		telemetry.CaptureError(ctx, err, map[string]string{
			"handler":    "catalog_selected",
			"message_id": msg.UUID,
		})
		return nil
	case isPoison(err):
		span.SetStatus(codes.Error, err.Error())
		h.count(ctx, "rejected")
		h.log.WarnContext(ctx, "catalog selection rejected",
			"message_id", msg.UUID,
			"error", err,
		)
		return nil
	default:
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		h.count(ctx, "failed")
		return err
	}
}

func (h *CatalogSelectedHandler) handle(ctx context.Context, msg *message.Message) error {
	evt, err := pkgvalidator.DecodePayload[domainevents.CatalogSelectedEvent](msg.Payload)
	if err != nil {
		return fmt.Errorf("%w: %w", cartdomain.ErrInvalidInput, err)
	}
	trace.SpanFromContext(ctx).SetAttributes(
		attribute.String("cart.owner_id", evt.CustomerUsername),
		attribute.Int("cart.dishes", len(evt.Dishes)),
	)

	dishes := make([]models.Dish, 0, len(evt.Dishes))
	for i, d := range evt.Dishes {
		dish, err := d.Dish()
		if err != nil {
			return fmt.Errorf("dish %d: %w", i, err)
		}
		dishes = append(dishes, dish)
	}

	cc := models.CartContext{CustomerID: evt.CustomerID, RestaurantID: evt.RestaurantID}
	cart, err := h.carts.AddDishesToCart(ctx, evt.CustomerUsername, cc, dishes)
	if err != nil {
		return fmt.Errorf("apply selection %s: %w", evt.EventID, err)
	}

	h.log.InfoContext(ctx, "catalog selection applied",
		"event_id", evt.EventID,
		"owner_id", evt.CustomerUsername,
		"dishes", len(dishes),
		"lines", cart.Len(),
	)

	if eventID, err := h.forwarder.EmitCartUpdated(ctx, cart); err != nil {
		h.log.WarnContext(ctx, "cart update forward failed",
			"owner_id", evt.CustomerUsername,
			"error", err,
		)
	} else {
		h.log.DebugContext(ctx, "cart update forwarded",
			"owner_id", evt.CustomerUsername,
			"event_id", eventID,
		)
	}
	return nil
}

func (h *CatalogSelectedHandler) count(ctx context.Context, result string) {
	if h.processed == nil {
		return
	}
	h.processed.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result)))
}

// isPoison reports whether err comes from the event itself rather than
// from infrastructure.
func isPoison(err error) bool {
	return errors.Is(err, cartdomain.ErrInvalidInput) ||
		errors.Is(err, cartdomain.ErrInvalidQuantity) ||
		errors.Is(err, cartdomain.ErrArithmeticOverflow)
}
