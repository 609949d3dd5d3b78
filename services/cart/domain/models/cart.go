package models

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/google/uuid"

	cartdomain "github.com/ghuser/cartservice/services/cart/domain"
)

// CartContext carries the opaque customer and restaurant identifiers a cart
// was opened under. They are attributes of the cart, not its identity.
type CartContext struct {
	CustomerID   uuid.UUID
	RestaurantID uuid.UUID
}

// Cart is the aggregate root for one owner's shopping cart.
//
// Invariants:
//   - ownerID is non-blank and never changes after construction
//   - at most one line per dish ID, every line with Quantity > 0
//   - the total price is always recomputed from lines and never overflows
//
// Cart is not safe for concurrent use. Callers load a private copy from the
// store, mutate it and write it back.
type Cart struct {
	ownerID string
	context CartContext
	lines   []CartLine
}

// NewCart returns an empty cart for ownerID.
func NewCart(ownerID string, cc CartContext) (*Cart, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, fmt.Errorf("%w: owner id is required", cartdomain.ErrInvalidInput)
	}
	return &Cart{ownerID: ownerID, context: cc}, nil
}

// OwnerID returns the identity that partitions the cart.
func (c *Cart) OwnerID() string { return c.ownerID }

// Context returns the customer and restaurant identifiers of the cart.
func (c *Cart) Context() CartContext { return c.context }

// AssignContext fills in customer and restaurant identifiers the cart does
// not have yet. Identifiers already set are kept.
func (c *Cart) AssignContext(cc CartContext) {
	if c.context.CustomerID == uuid.Nil {
		c.context.CustomerID = cc.CustomerID
	}
	if c.context.RestaurantID == uuid.Nil {
		c.context.RestaurantID = cc.RestaurantID
	}
}

// Lines returns a copy of the cart lines in insertion order.
func (c *Cart) Lines() []CartLine {
	return slices.Clone(c.lines)
}

// Line returns the line for dishID, if any.
func (c *Cart) Line(dishID uuid.UUID) (CartLine, bool) {
	if i := c.indexOf(dishID); i >= 0 {
		return c.lines[i], true
	}
	return CartLine{}, false
}

// Len returns the number of distinct dishes in the cart.
func (c *Cart) Len() int { return len(c.lines) }

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool { return len(c.lines) == 0 }

// Clone returns an independent copy of the cart.
func (c *Cart) Clone() *Cart {
	return &Cart{ownerID: c.ownerID, context: c.context, lines: slices.Clone(c.lines)}
}

// AddOne adds one unit of dish. An existing line keeps its dish value and has
// its quantity incremented; otherwise a new line with quantity 1 is appended.
// The cart is left unchanged on error.
func (c *Cart) AddOne(dish Dish) (CartLine, error) {
	if err := dish.Validate(); err != nil {
		return CartLine{}, err
	}

	i := c.indexOf(dish.ID)
	next := CartLine{Dish: dish, Quantity: 1}
	if i >= 0 {
		cur := c.lines[i]
		if cur.Quantity == math.MaxInt {
			return CartLine{}, fmt.Errorf("%w: quantity of dish %s", cartdomain.ErrArithmeticOverflow, dish.ID)
		}
		next = CartLine{Dish: cur.Dish, Quantity: cur.Quantity + 1}
	}

	if err := c.commit(i, next); err != nil {
		return CartLine{}, err
	}
	return next, nil
}

// RemoveOne removes one unit of dishID. A line reaching zero is deleted and
// returned with Quantity 0.
func (c *Cart) RemoveOne(dishID uuid.UUID) (CartLine, error) {
	i := c.indexOf(dishID)
	if i < 0 {
		return CartLine{}, fmt.Errorf("%w: dish %s", cartdomain.ErrItemNotFound, dishID)
	}

	next := CartLine{Dish: c.lines[i].Dish, Quantity: c.lines[i].Quantity - 1}
	if next.Quantity == 0 {
		c.lines = slices.Delete(c.lines, i, i+1)
	} else {
		c.lines[i] = next
	}
	return next, nil
}

// RemoveAll deletes the line for dishID regardless of its quantity. The
// removed dish is returned with Quantity 0.
func (c *Cart) RemoveAll(dishID uuid.UUID) (CartLine, error) {
	i := c.indexOf(dishID)
	if i < 0 {
		return CartLine{}, fmt.Errorf("%w: dish %s", cartdomain.ErrItemNotFound, dishID)
	}

	removed := CartLine{Dish: c.lines[i].Dish}
	c.lines = slices.Delete(c.lines, i, i+1)
	return removed, nil
}

// SetQuantity replaces the quantity of an existing line.
func (c *Cart) SetQuantity(dishID uuid.UUID, quantity int) (CartLine, error) {
	if quantity <= 0 {
		return CartLine{}, fmt.Errorf("%w: got %d", cartdomain.ErrInvalidQuantity, quantity)
	}
	i := c.indexOf(dishID)
	if i < 0 {
		return CartLine{}, fmt.Errorf("%w: dish %s", cartdomain.ErrItemNotFound, dishID)
	}

	next := CartLine{Dish: c.lines[i].Dish, Quantity: quantity}
	if err := c.commit(i, next); err != nil {
		return CartLine{}, err
	}
	return next, nil
}

// TotalPrice returns the sum of all line totals.
func (c *Cart) TotalPrice() (int64, error) {
	return sumLines(c.lines)
}

// commit writes next at index i (appending when i < 0) only if the resulting
// cart total stays representable.
func (c *Cart) commit(i int, next CartLine) error {
	candidate := slices.Clone(c.lines)
	if i >= 0 {
		candidate[i] = next
	} else {
		candidate = append(candidate, next)
	}
	if _, err := sumLines(candidate); err != nil {
		return err
	}
	c.lines = candidate
	return nil
}

func (c *Cart) indexOf(dishID uuid.UUID) int {
	return slices.IndexFunc(c.lines, func(l CartLine) bool { return l.Dish.ID == dishID })
}

func sumLines(lines []CartLine) (int64, error) {
	var total int64
	for _, l := range lines {
		lt, err := l.LineTotal()
		if err != nil {
			return 0, err
		}
		if total, err = addPrice(total, lt); err != nil {
			return 0, err
		}
	}
	return total, nil
}
