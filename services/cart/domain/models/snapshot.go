package models

import (
	"fmt"

	"github.com/google/uuid"

	cartdomain "github.com/ghuser/cartservice/services/cart/domain"
)

// DishSnapshot is the serialized form of a Dish.
type DishSnapshot struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Price int64     `json:"price"`
}

// LineSnapshot is the serialized form of a CartLine.
type LineSnapshot struct {
	Dish     DishSnapshot `json:"dish"`
	Quantity int          `json:"quantity"`
}

// Snapshot is the full serialized state of a Cart. TotalPrice is written for
// readers of the record and ignored when a cart is rebuilt from it.
type Snapshot struct {
	OwnerID      string         `json:"owner_id"`
	CustomerID   uuid.UUID      `json:"customer_id"`
	RestaurantID uuid.UUID      `json:"restaurant_id"`
	Lines        []LineSnapshot `json:"lines"`
	TotalPrice   int64          `json:"total_price"`
}

// Snapshot captures the cart's full field set.
func (c *Cart) Snapshot() (Snapshot, error) {
	total, err := c.TotalPrice()
	if err != nil {
		return Snapshot{}, err
	}

	lines := make([]LineSnapshot, 0, len(c.lines))
	for _, l := range c.lines {
		lines = append(lines, LineSnapshot{
			Dish:     DishSnapshot{ID: l.Dish.ID, Name: l.Dish.Name, Price: l.Dish.Price},
			Quantity: l.Quantity,
		})
	}

	return Snapshot{
		OwnerID:      c.ownerID,
		CustomerID:   c.context.CustomerID,
		RestaurantID: c.context.RestaurantID,
		Lines:        lines,
		TotalPrice:   total,
	}, nil
}

// CartFromSnapshot rebuilds a Cart and re-checks every aggregate invariant.
func CartFromSnapshot(s Snapshot) (*Cart, error) {
	cart, err := NewCart(s.OwnerID, CartContext{CustomerID: s.CustomerID, RestaurantID: s.RestaurantID})
	if err != nil {
		return nil, err
	}

	cart.lines = make([]CartLine, 0, len(s.Lines))
	for _, ls := range s.Lines {
		dish := Dish{ID: ls.Dish.ID, Name: ls.Dish.Name, Price: ls.Dish.Price}
		if err := dish.Validate(); err != nil {
			return nil, err
		}
		if ls.Quantity <= 0 {
			return nil, fmt.Errorf("%w: dish %s has quantity %d", cartdomain.ErrInvalidQuantity, dish.ID, ls.Quantity)
		}
		if cart.indexOf(dish.ID) >= 0 {
			return nil, fmt.Errorf("%w: duplicate line for dish %s", cartdomain.ErrInvalidInput, dish.ID)
		}
		cart.lines = append(cart.lines, CartLine{Dish: dish, Quantity: ls.Quantity})
	}

	if _, err := cart.TotalPrice(); err != nil {
		return nil, err
	}
	return cart, nil
}
