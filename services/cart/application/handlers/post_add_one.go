package handlers

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/ghuser/cartservice/pkg/errhttp"
	pkgvalidator "github.com/ghuser/cartservice/pkg/validator"
	appsvcs "github.com/ghuser/cartservice/services/cart/application/services"
	cartdomain "github.com/ghuser/cartservice/services/cart/domain"
	"github.com/ghuser/cartservice/services/cart/domain/models"
)

// AddOneRequest is the request body for POST /cart/{ownerID}/add-one.
type AddOneRequest struct {
	ID    string `json:"id"    validate:"required,uuid" example:"123e4567-e89b-12d3-a456-426614174000"`
	Name  string `json:"name"  validate:"required,max=255" example:"Pad Thai"`
	Price int64  `json:"price" validate:"gte=0" example:"1250"`
} // @name AddOneRequest

// PostAddOneHandler handles POST /cart/{ownerID}/add-one requests.
type PostAddOneHandler struct {
	svc *appsvcs.Services
}

// NewPostAddOneHandler returns a PostAddOneHandler backed by the given services.
func NewPostAddOneHandler(svc *appsvcs.Services) *PostAddOneHandler {
	return &PostAddOneHandler{svc: svc}
}

// Execute adds one unit of a dish to the cart.
//
//	@Summary		Add one dish
//	@Description	Adds one unit of the dish, creating its line if needed
//	@Tags			cart
//	@Accept			json
//	@Produce		json
//	@Param			ownerID	path		string			true	"Cart owner"
//	@Param			request	body		AddOneRequest	true	"Dish to add"
//	@Success		200		{object}	CartResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Router			/cart/{ownerID}/add-one [post]
func (h *PostAddOneHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[AddOneRequest](w, r)
	if !ok {
		return
	}

	id, err := uuid.Parse(req.ID)
	if err != nil {
		errhttp.WriteError(w, fmt.Errorf("%w: dish id: %w", cartdomain.ErrInvalidInput, err))
		return
	}

	dish, err := models.NewDish(id, req.Name, req.Price)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	cart, err := h.svc.Cart.AddOneToCart(r.Context(), ownerParam(r), dish)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	writeCart(w, http.StatusOK, cart)
}
