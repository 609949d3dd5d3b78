package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/cartservice/services/cart/domain/models"
)

// Default topic names. Deployments may override them through configuration.
const (
	// TopicCatalogSelected carries dishes a customer picked in the catalog.
	TopicCatalogSelected = "catalog.selected"
	// TopicOrderRequested receives one event per accepted PlaceOrder call.
	TopicOrderRequested = "order.requested"
	// TopicCartUpdated receives the cart state after each ingested selection.
	TopicCartUpdated = "cart.updated"
)

// SchemaVersion is stamped on every outbound event.
const SchemaVersion = 1

// CatalogDish is a dish as described by the catalog on the wire.
type CatalogDish struct {
	ID    uuid.UUID `json:"id"    validate:"required"`
	Name  string    `json:"name"  validate:"required,max=255"`
	Price int64     `json:"price" validate:"gte=0"`
}

// CatalogSelectedEvent is consumed from TopicCatalogSelected. Each entry in
// Dishes adds one unit, so a dish listed twice ends up with quantity 2.
type CatalogSelectedEvent struct {
	EventID          uuid.UUID     `json:"event_id"`
	Version          int           `json:"version"`
	CustomerID       uuid.UUID     `json:"customer_id"`
	RestaurantID     uuid.UUID     `json:"restaurant_id"`
	CustomerUsername string        `json:"customer_username" validate:"required,max=255"`
	Dishes           []CatalogDish `json:"dishes"            validate:"dive"`
}

// Dish converts the wire form into a validated domain Dish.
func (d CatalogDish) Dish() (models.Dish, error) {
	return models.NewDish(d.ID, d.Name, d.Price)
}

// LinePayload is one serialized cart line.
type LinePayload struct {
	Dish      CatalogDish `json:"dish"`
	Quantity  int         `json:"quantity"`
	LineTotal int64       `json:"line_total"`
}

// CartState is the full serialized cart shared by outbound events.
type CartState struct {
	OwnerID      string        `json:"owner_id"`
	CustomerID   uuid.UUID     `json:"customer_id"`
	RestaurantID uuid.UUID     `json:"restaurant_id"`
	Lines        []LinePayload `json:"lines"`
	TotalPrice   int64         `json:"total_price"`
}

// OrderRequestedEvent is published once per accepted order request.
// The owner ID is also set as the message partition key.
type OrderRequestedEvent struct {
	EventID uuid.UUID `json:"event_id"`
	Version int       `json:"version"`
	CartState
	OccurredAt time.Time `json:"occurred_at"`
}

// CartUpdatedEvent is published after an ingested selection changed a cart.
type CartUpdatedEvent struct {
	EventID uuid.UUID `json:"event_id"`
	Version int       `json:"version"`
	CartState
	OccurredAt time.Time `json:"occurred_at"`
}

// NewCartState serializes cart. It fails only when the total cannot be
// computed.
func NewCartState(cart *models.Cart) (CartState, error) {
	total, err := cart.TotalPrice()
	if err != nil {
		return CartState{}, err
	}

	src := cart.Lines()
	lines := make([]LinePayload, 0, len(src))
	for _, l := range src {
		lt, err := l.LineTotal()
		if err != nil {
			return CartState{}, err
		}
		lines = append(lines, LinePayload{
			Dish:      CatalogDish{ID: l.Dish.ID, Name: l.Dish.Name, Price: l.Dish.Price},
			Quantity:  l.Quantity,
			LineTotal: lt,
		})
	}

	cc := cart.Context()
	return CartState{
		OwnerID:      cart.OwnerID(),
		CustomerID:   cc.CustomerID,
		RestaurantID: cc.RestaurantID,
		Lines:        lines,
		TotalPrice:   total,
	}, nil
}
