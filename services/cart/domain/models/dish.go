package models

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	cartdomain "github.com/ghuser/cartservice/services/cart/domain"
)

const maxDishNameLength = 255

// Dish is a value object for a purchasable catalog item. Price is expressed
// in the smallest currency unit and is never negative.
type Dish struct {
	ID    uuid.UUID
	Name  string
	Price int64
}

// NewDish constructs a valid Dish or returns ErrInvalidInput.
func NewDish(id uuid.UUID, name string, price int64) (Dish, error) {
	d := Dish{ID: id, Name: name, Price: price}
	if err := d.Validate(); err != nil {
		return Dish{}, err
	}
	return d, nil
}

// Validate reports whether d satisfies the Dish invariants. The zero Dish is
// the "absent dish" and is rejected.
func (d Dish) Validate() error {
	if d.ID == uuid.Nil {
		return fmt.Errorf("%w: dish id is required", cartdomain.ErrInvalidInput)
	}
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("%w: dish name is required", cartdomain.ErrInvalidInput)
	}
	if len(d.Name) > maxDishNameLength {
		return fmt.Errorf("%w: dish name must not exceed %d characters", cartdomain.ErrInvalidInput, maxDishNameLength)
	}
	if d.Price < 0 {
		return fmt.Errorf("%w: dish price must not be negative", cartdomain.ErrInvalidInput)
	}
	return nil
}
