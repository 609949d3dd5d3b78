package models

import (
	"fmt"
	"math"

	cartdomain "github.com/ghuser/cartservice/services/cart/domain"
)

// CartLine pairs a Dish with its quantity. Lines held by a Cart always have
// Quantity > 0; a line returned from a removal carries Quantity 0.
type CartLine struct {
	Dish     Dish
	Quantity int
}

// LineTotal returns Dish.Price * Quantity, or ErrArithmeticOverflow when the
// product does not fit in an int64.
func (l CartLine) LineTotal() (int64, error) {
	return mulPrice(l.Dish.Price, l.Quantity)
}

func mulPrice(price int64, quantity int) (int64, error) {
	if price == 0 || quantity == 0 {
		return 0, nil
	}
	q := int64(quantity)
	if price > math.MaxInt64/q {
		return 0, fmt.Errorf("%w: %d x %d", cartdomain.ErrArithmeticOverflow, price, quantity)
	}
	return price * q, nil
}

func addPrice(a, b int64) (int64, error) {
	if b > math.MaxInt64-a {
		return 0, fmt.Errorf("%w: %d + %d", cartdomain.ErrArithmeticOverflow, a, b)
	}
	return a + b, nil
}
