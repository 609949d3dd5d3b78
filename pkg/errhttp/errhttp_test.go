package errhttp

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	cartdomain "github.com/ghuser/cartservice/services/cart/domain"
)

func TestWriteError_StatusCodes(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"ErrItemNotFound", cartdomain.ErrItemNotFound, http.StatusNotFound},
		{"ErrCartNotFound", cartdomain.ErrCartNotFound, http.StatusNotFound},
		{"ErrEmptyCartOrder", cartdomain.ErrEmptyCartOrder, http.StatusConflict},
		{"ErrInvalidInput", cartdomain.ErrInvalidInput, http.StatusUnprocessableEntity},
		{"ErrInvalidQuantity", cartdomain.ErrInvalidQuantity, http.StatusUnprocessableEntity},
		{"ErrArithmeticOverflow", cartdomain.ErrArithmeticOverflow, http.StatusUnprocessableEntity},
		{"ErrPublishFailure", cartdomain.ErrPublishFailure, http.StatusBadGateway},
		{"ErrStoreCorruption", cartdomain.ErrStoreCorruption, http.StatusInternalServerError},
		{"wrapped ErrItemNotFound", fmt.Errorf("remove one: %w", cartdomain.ErrItemNotFound), http.StatusNotFound},
		{"wrapped ErrInvalidInput", fmt.Errorf("%w: dish id is required", cartdomain.ErrInvalidInput), http.StatusUnprocessableEntity},
		{"unknown error", errors.New("something unexpected"), http.StatusInternalServerError},
		{"generic wrapped error", fmt.Errorf("context: %w", errors.New("redis down")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			WriteError(w, tt.err)

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			if got := StatusOf(tt.err); got != tt.wantStatus {
				t.Fatalf("StatusOf: expected %d, got %d", tt.wantStatus, got)
			}
		})
	}
}

func TestWriteError_JSONBody(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, fmt.Errorf("%w: dish 42", cartdomain.ErrItemNotFound))

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response body is not valid JSON: %v", err)
	}
	if body["error"] != "item not found in cart: dish 42" {
		t.Fatalf("unexpected error message %q", body["error"])
	}
}

func TestWriteError_HidesInternalDetails(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, errors.New("dial tcp 10.0.0.5:6379: connection refused"))

	var body map[string]string
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if body["error"] != http.StatusText(http.StatusInternalServerError) {
		t.Fatalf("expected generic message, got %q", body["error"])
	}
}

func TestWriteError_ContentType(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, cartdomain.ErrItemNotFound)

	ct := w.Header().Get("Content-Type")
	if ct == "" {
		t.Fatal("Content-Type header not set")
	}
}
