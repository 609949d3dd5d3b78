package handlers

import (
	"net/http"

	"github.com/ghuser/cartservice/pkg/errhttp"
	pkgvalidator "github.com/ghuser/cartservice/pkg/validator"
	appsvcs "github.com/ghuser/cartservice/services/cart/application/services"
)

// UpdateQuantityRequest is the request body for PUT /cart/{ownerID}/items/{dishID}.
// Quantity is checked by the cart so zero and negative values map to the
// same error as every other caller sees.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" example:"3"`
} // @name UpdateQuantityRequest

// PutItemQuantityHandler handles PUT /cart/{ownerID}/items/{dishID} requests.
type PutItemQuantityHandler struct {
	svc *appsvcs.Services
}

// NewPutItemQuantityHandler returns a PutItemQuantityHandler backed by the given services.
func NewPutItemQuantityHandler(svc *appsvcs.Services) *PutItemQuantityHandler {
	return &PutItemQuantityHandler{svc: svc}
}

// Execute sets the quantity of a dish already in the cart.
//
//	@Summary		Set dish quantity
//	@Description	Replaces the quantity of an existing line; quantity must be positive
//	@Tags			cart
//	@Accept			json
//	@Produce		json
//	@Param			ownerID	path		string					true	"Cart owner"
//	@Param			dishID	path		string					true	"Dish ID"	format(uuid)
//	@Param			request	body		UpdateQuantityRequest	true	"New quantity"
//	@Success		200		{object}	CartResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Router			/cart/{ownerID}/items/{dishID} [put]
func (h *PutItemQuantityHandler) Execute(w http.ResponseWriter, r *http.Request) {
	dishID, err := dishParam(r)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	req, ok := pkgvalidator.ValidateRequest[UpdateQuantityRequest](w, r)
	if !ok {
		return
	}

	cart, err := h.svc.Cart.UpdateQuantity(r.Context(), ownerParam(r), dishID, req.Quantity)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	writeCart(w, http.StatusOK, cart)
}
