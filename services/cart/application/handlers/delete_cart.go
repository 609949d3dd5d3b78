package handlers

import (
	"net/http"

	"github.com/ghuser/cartservice/pkg/errhttp"
	"github.com/ghuser/cartservice/pkg/httpx"
	appsvcs "github.com/ghuser/cartservice/services/cart/application/services"
)

// DeleteCartHandler handles DELETE /cart/{ownerID} requests.
type DeleteCartHandler struct {
	svc *appsvcs.Services
}

// NewDeleteCartHandler returns a DeleteCartHandler backed by the given services.
func NewDeleteCartHandler(svc *appsvcs.Services) *DeleteCartHandler {
	return &DeleteCartHandler{svc: svc}
}

// Execute discards the owner's cart. Deleting a missing cart succeeds.
//
//	@Summary		Delete cart
//	@Tags			cart
//	@Param			ownerID	path	string	true	"Cart owner"
//	@Success		204
//	@Failure		422	{object}	ErrorResponse
//	@Failure		500	{object}	ErrorResponse
//	@Router			/cart/{ownerID} [delete]
func (h *DeleteCartHandler) Execute(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Cart.DeleteCart(r.Context(), ownerParam(r)); err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.NoContent(w)
}
