package handlers

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ghuser/cartservice/pkg/errhttp"
	"github.com/ghuser/cartservice/pkg/httpx"
	cartdomain "github.com/ghuser/cartservice/services/cart/domain"
	"github.com/ghuser/cartservice/services/cart/domain/models"
)

// DishResponse is a dish as stored on a cart line.
type DishResponse struct {
	ID    uuid.UUID `json:"id"    example:"123e4567-e89b-12d3-a456-426614174000"`
	Name  string    `json:"name"  example:"Pad Thai"`
	Price int64     `json:"price" example:"1250"`
} // @name DishResponse

// LineResponse is one cart line with its computed total.
type LineResponse struct {
	Dish      DishResponse `json:"dish"`
	Quantity  int          `json:"quantity"   example:"2"`
	LineTotal int64        `json:"line_total" example:"2500"`
} // @name LineResponse

// CartResponse is the cart representation returned by every cart endpoint.
type CartResponse struct {
	OwnerID      string         `json:"owner_id"      example:"jdoe"`
	CustomerID   uuid.UUID      `json:"customer_id"   example:"550e8400-e29b-41d4-a716-446655440000"`
	RestaurantID uuid.UUID      `json:"restaurant_id" example:"550e8400-e29b-41d4-a716-446655440001"`
	Lines        []LineResponse `json:"lines"`
	TotalPrice   int64          `json:"total_price"   example:"2500"`
} // @name CartResponse

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"item not found in cart"`
} // @name ErrorResponse

func newCartResponse(cart *models.Cart) (CartResponse, error) {
	total, err := cart.TotalPrice()
	if err != nil {
		return CartResponse{}, err
	}
	src := cart.Lines()
	lines := make([]LineResponse, 0, len(src))
	for _, l := range src {
		lt, err := l.LineTotal()
		if err != nil {
			return CartResponse{}, err
		}
		lines = append(lines, LineResponse{
			Dish:      DishResponse{ID: l.Dish.ID, Name: l.Dish.Name, Price: l.Dish.Price},
			Quantity:  l.Quantity,
			LineTotal: lt,
		})
	}
	cc := cart.Context()
	return CartResponse{
		OwnerID:      cart.OwnerID(),
		CustomerID:   cc.CustomerID,
		RestaurantID: cc.RestaurantID,
		Lines:        lines,
		TotalPrice:   total,
	}, nil
}

// writeCart renders cart with status, or the error if it cannot be rendered.
func writeCart(w http.ResponseWriter, status int, cart *models.Cart) {
	resp, err := newCartResponse(cart)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, status, resp)
}

func ownerParam(r *http.Request) string {
	return chi.URLParam(r, "ownerID")
}

func dishParam(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "dishID")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: dish id %q is not a UUID", cartdomain.ErrInvalidInput, raw)
	}
	return id, nil
}
