// Package services contains stateless domain services for the cart bounded context.
// Domain services enforce business rules that operate purely on domain types
// and have zero external dependencies beyond stdlib and the domain layer.
package services

import (
	"fmt"
	"strings"
	"unicode"

	cartdomain "github.com/ghuser/cartservice/services/cart/domain"
	"github.com/ghuser/cartservice/services/cart/domain/models"
)

// ValidateOwnerID enforces business rules for owner identities beyond the
// non-blank check done by models.NewCart.
//
// Business rules:
//   - No leading or trailing whitespace
//   - No control characters (Unicode category Cc)
//   - At most 255 bytes, matching the storage key budget
func ValidateOwnerID(ownerID string) error {
	if strings.TrimSpace(ownerID) == "" {
		return fmt.Errorf("%w: owner id is required", cartdomain.ErrInvalidInput)
	}
	if ownerID != strings.TrimSpace(ownerID) {
		return fmt.Errorf("%w: owner id must not have leading or trailing whitespace", cartdomain.ErrInvalidInput)
	}
	if len(ownerID) > 255 {
		return fmt.Errorf("%w: owner id must not exceed 255 characters", cartdomain.ErrInvalidInput)
	}
	for _, r := range ownerID {
		if unicode.IsControl(r) {
			return fmt.Errorf("%w: owner id must not contain control characters", cartdomain.ErrInvalidInput)
		}
	}
	return nil
}

// ValidateCartForOrder reports whether cart may be turned into an order.
// An empty cart yields ErrEmptyCartOrder; a total that cannot be computed
// yields ErrArithmeticOverflow.
func ValidateCartForOrder(cart *models.Cart) error {
	if cart == nil {
		return fmt.Errorf("%w: cart cannot be nil", cartdomain.ErrInvalidInput)
	}
	if cart.IsEmpty() {
		return fmt.Errorf("%w: owner %s", cartdomain.ErrEmptyCartOrder, cart.OwnerID())
	}
	if _, err := cart.TotalPrice(); err != nil {
		return err
	}
	return nil
}

// ValidateDishes checks every dish before any of them is applied, so a
// batch with one bad entry is rejected as a whole. The error names the
// offending position.
func ValidateDishes(dishes []models.Dish) error {
	for i, d := range dishes {
		if err := d.Validate(); err != nil {
			return fmt.Errorf("dish %d: %w", i, err)
		}
	}
	return nil
}
