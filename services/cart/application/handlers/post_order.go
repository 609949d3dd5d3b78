package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/ghuser/cartservice/pkg/errhttp"
	"github.com/ghuser/cartservice/pkg/httpx"
	appsvcs "github.com/ghuser/cartservice/services/cart/application/services"
)

// OrderResponse acknowledges an accepted order request.
type OrderResponse struct {
	EventID    uuid.UUID `json:"event_id"    example:"8d3f2c1a-0b4e-4f5a-9c6d-7e8f9a0b1c2d"`
	OwnerID    string    `json:"owner_id"    example:"jdoe"`
	TotalPrice int64     `json:"total_price" example:"2500"`
	Accepted   bool      `json:"accepted"    example:"true"`
} // @name OrderResponse

// PostOrderHandler handles POST /cart/{ownerID}/order requests.
type PostOrderHandler struct {
	svc *appsvcs.Services
}

// NewPostOrderHandler returns a PostOrderHandler backed by the given services.
func NewPostOrderHandler(svc *appsvcs.Services) *PostOrderHandler {
	return &PostOrderHandler{svc: svc}
}

// Execute publishes an order request for the current cart.
//
//	@Summary		Place order
//	@Description	Publishes one order event for the cart; the cart itself is kept
//	@Tags			cart
//	@Produce		json
//	@Param			ownerID	path		string	true	"Cart owner"
//	@Success		202		{object}	OrderResponse
//	@Failure		409		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Failure		502		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Router			/cart/{ownerID}/order [post]
func (h *PostOrderHandler) Execute(w http.ResponseWriter, r *http.Request) {
	receipt, err := h.svc.Cart.PlaceOrder(r.Context(), ownerParam(r))
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusAccepted, OrderResponse{
		EventID:    receipt.EventID,
		OwnerID:    receipt.OwnerID,
		TotalPrice: receipt.TotalPrice,
		Accepted:   receipt.Accepted,
	})
}
