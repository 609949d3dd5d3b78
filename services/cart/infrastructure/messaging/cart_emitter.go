package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	cartdomain "github.com/ghuser/cartservice/services/cart/domain"
	domainevents "github.com/ghuser/cartservice/services/cart/domain/events"
	"github.com/ghuser/cartservice/services/cart/domain/models"
)

// Metadata keys set on every outbound cart message.
const (
	MetadataPartitionKey = "partition_key"
	MetadataOwnerID      = "owner_id"
	MetadataEventID      = "event_id"
	MetadataEventVersion = "event_version"
)

// Publisher is the subset of the event bus the emitter needs.
type Publisher interface {
	Publish(ctx context.Context, topic string, msgs ...*message.Message) error
}

// CartEmitter serializes carts into outbound events. Messages are keyed by
// owner ID so consumers that partition on it see one owner's events in order.
type CartEmitter struct {
	bus          Publisher
	orderTopic   string
	updatedTopic string
	now          func() time.Time
}

// NewCartEmitter returns a CartEmitter publishing order requests to
// orderTopic and cart snapshots to updatedTopic.
func NewCartEmitter(bus Publisher, orderTopic, updatedTopic string) *CartEmitter {
	return &CartEmitter{
		bus:          bus,
		orderTopic:   orderTopic,
		updatedTopic: updatedTopic,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// EmitOrderRequested publishes exactly one OrderRequestedEvent for cart.
// Failures are wrapped with ErrPublishFailure and never retried here.
func (e *CartEmitter) EmitOrderRequested(ctx context.Context, cart *models.Cart) (uuid.UUID, error) {
	state, err := domainevents.NewCartState(cart)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %w", cartdomain.ErrPublishFailure, err)
	}
	event := domainevents.OrderRequestedEvent{
		EventID:    uuid.New(),
		Version:    domainevents.SchemaVersion,
		CartState:  state,
		OccurredAt: e.now(),
	}
	if err := e.publish(ctx, e.orderTopic, event.EventID, cart.OwnerID(), event); err != nil {
		return uuid.Nil, err
	}
	return event.EventID, nil
}

// EmitCartUpdated publishes the current state of cart.
func (e *CartEmitter) EmitCartUpdated(ctx context.Context, cart *models.Cart) (uuid.UUID, error) {
	state, err := domainevents.NewCartState(cart)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %w", cartdomain.ErrPublishFailure, err)
	}
	event := domainevents.CartUpdatedEvent{
		EventID:    uuid.New(),
		Version:    domainevents.SchemaVersion,
		CartState:  state,
		OccurredAt: e.now(),
	}
	if err := e.publish(ctx, e.updatedTopic, event.EventID, cart.OwnerID(), event); err != nil {
		return uuid.Nil, err
	}
	return event.EventID, nil
}

func (e *CartEmitter) publish(ctx context.Context, topic string, eventID uuid.UUID, ownerID string, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: marshal event: %w", cartdomain.ErrPublishFailure, err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set(MetadataPartitionKey, ownerID)
	msg.Metadata.Set(MetadataOwnerID, ownerID)
	msg.Metadata.Set(MetadataEventID, eventID.String())
	msg.Metadata.Set(MetadataEventVersion, strconv.Itoa(domainevents.SchemaVersion))

	if err := e.bus.Publish(ctx, topic, msg); err != nil {
		return fmt.Errorf("%w: %w", cartdomain.ErrPublishFailure, err)
	}
	return nil
}
