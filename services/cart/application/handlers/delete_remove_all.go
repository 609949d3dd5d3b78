package handlers

import (
	"net/http"

	"github.com/ghuser/cartservice/pkg/errhttp"
	appsvcs "github.com/ghuser/cartservice/services/cart/application/services"
)

// DeleteRemoveAllHandler handles DELETE /cart/{ownerID}/remove-all/{dishID} requests.
type DeleteRemoveAllHandler struct {
	svc *appsvcs.Services
}

// NewDeleteRemoveAllHandler returns a DeleteRemoveAllHandler backed by the given services.
func NewDeleteRemoveAllHandler(svc *appsvcs.Services) *DeleteRemoveAllHandler {
	return &DeleteRemoveAllHandler{svc: svc}
}

// Execute removes a dish line regardless of its quantity.
//
//	@Summary		Remove dish line
//	@Description	Removes every unit of the dish from the cart
//	@Tags			cart
//	@Produce		json
//	@Param			ownerID	path		string	true	"Cart owner"
//	@Param			dishID	path		string	true	"Dish ID"	format(uuid)
//	@Success		200		{object}	CartResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Router			/cart/{ownerID}/remove-all/{dishID} [delete]
func (h *DeleteRemoveAllHandler) Execute(w http.ResponseWriter, r *http.Request) {
	dishID, err := dishParam(r)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	cart, err := h.svc.Cart.RemoveAllFromCart(r.Context(), ownerParam(r), dishID)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	writeCart(w, http.StatusOK, cart)
}
