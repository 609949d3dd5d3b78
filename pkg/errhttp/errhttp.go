// Package errhttp maps domain sentinel errors to HTTP status codes.
// Add a case to mapErrorToStatus for each new domain sentinel error.
package errhttp

import (
	"errors"
	"net/http"

	"github.com/ghuser/cartservice/pkg/httpx"
	cartdomain "github.com/ghuser/cartservice/services/cart/domain"
)

// WriteError maps err to an HTTP status code and writes a JSON error response.
// Uses errors.Is() so wrapped sentinel errors are matched correctly.
// Defaults to 500 Internal Server Error for unrecognized errors, whose
// message is not echoed to the client.
func WriteError(w http.ResponseWriter, err error) {
	status := mapErrorToStatus(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = http.StatusText(status)
	}
	httpx.JSONError(w, status, msg)
}

// StatusOf reports the status WriteError would use for err.
func StatusOf(err error) int {
	return mapErrorToStatus(err)
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, cartdomain.ErrItemNotFound),
		errors.Is(err, cartdomain.ErrCartNotFound):
		return http.StatusNotFound // 404
	case errors.Is(err, cartdomain.ErrEmptyCartOrder):
		return http.StatusConflict // 409
	case errors.Is(err, cartdomain.ErrInvalidInput),
		errors.Is(err, cartdomain.ErrInvalidQuantity),
		errors.Is(err, cartdomain.ErrArithmeticOverflow):
		return http.StatusUnprocessableEntity // 422
	case errors.Is(err, cartdomain.ErrPublishFailure):
		return http.StatusBadGateway // 502
	default:
		return http.StatusInternalServerError // 500
	}
}
