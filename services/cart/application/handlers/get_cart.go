package handlers

import (
	"net/http"

	"github.com/ghuser/cartservice/pkg/errhttp"
	appsvcs "github.com/ghuser/cartservice/services/cart/application/services"
)

// GetCartHandler handles GET /cart/{ownerID} requests.
type GetCartHandler struct {
	svc *appsvcs.Services
}

// NewGetCartHandler returns a GetCartHandler backed by the given services.
func NewGetCartHandler(svc *appsvcs.Services) *GetCartHandler {
	return &GetCartHandler{svc: svc}
}

// Execute returns the owner's cart, creating an empty one if none exists.
//
//	@Summary		Get cart
//	@Description	Returns the cart of the owner, creating an empty one on first access
//	@Tags			cart
//	@Produce		json
//	@Param			ownerID	path		string	true	"Cart owner"
//	@Success		200		{object}	CartResponse
//	@Failure		422		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Router			/cart/{ownerID} [get]
func (h *GetCartHandler) Execute(w http.ResponseWriter, r *http.Request) {
	cart, err := h.svc.Cart.GetOrCreate(r.Context(), ownerParam(r))
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	writeCart(w, http.StatusOK, cart)
}
