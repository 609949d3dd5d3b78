package handlers

import (
	"net/http"

	"github.com/ghuser/cartservice/pkg/errhttp"
	appsvcs "github.com/ghuser/cartservice/services/cart/application/services"
)

// DeleteRemoveOneHandler handles DELETE /cart/{ownerID}/remove-one/{dishID} requests.
type DeleteRemoveOneHandler struct {
	svc *appsvcs.Services
}

// NewDeleteRemoveOneHandler returns a DeleteRemoveOneHandler backed by the given services.
func NewDeleteRemoveOneHandler(svc *appsvcs.Services) *DeleteRemoveOneHandler {
	return &DeleteRemoveOneHandler{svc: svc}
}

// Execute removes one unit of a dish.
//
//	@Summary		Remove one dish
//	@Description	Decrements the dish quantity and drops the line when it reaches zero
//	@Tags			cart
//	@Produce		json
//	@Param			ownerID	path		string	true	"Cart owner"
//	@Param			dishID	path		string	true	"Dish ID"	format(uuid)
//	@Success		200		{object}	CartResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Router			/cart/{ownerID}/remove-one/{dishID} [delete]
func (h *DeleteRemoveOneHandler) Execute(w http.ResponseWriter, r *http.Request) {
	dishID, err := dishParam(r)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	cart, err := h.svc.Cart.RemoveOneFromCart(r.Context(), ownerParam(r), dishID)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	writeCart(w, http.StatusOK, cart)
}
