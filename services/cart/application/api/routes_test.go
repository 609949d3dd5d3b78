package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/ghuser/cartservice/pkg/cache"
	"github.com/ghuser/cartservice/pkg/logger"
	"github.com/ghuser/cartservice/services/cart/application/handlers"
	appsvcs "github.com/ghuser/cartservice/services/cart/application/services"
	"github.com/ghuser/cartservice/services/cart/domain/models"
	cartredis "github.com/ghuser/cartservice/services/cart/infrastructure/persistence/redis"
)

type stubEmitter struct {
	orders int
	err    error
}

func (e *stubEmitter) EmitOrderRequested(context.Context, *models.Cart) (uuid.UUID, error) {
	if e.err != nil {
		return uuid.Nil, e.err
	}
	e.orders++
	return uuid.New(), nil
}

func (e *stubEmitter) EmitCartUpdated(context.Context, *models.Cart) (uuid.UUID, error) {
	return uuid.New(), e.err
}

func newTestRouter(t *testing.T) (http.Handler, *stubEmitter) {
	t.Helper()
	mr := miniredis.RunT(t)
	rc := cache.Wrap(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { _ = rc.Close() })

	emitter := &stubEmitter{}
	svcs := &appsvcs.Services{
		Cart: appsvcs.NewCartService(cartredis.NewCartStore(rc, time.Minute), emitter, logger.Discard()),
	}
	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) { Mount(r, svcs) })
	return r, emitter
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeCart(t *testing.T, rec *httptest.ResponseRecorder) handlers.CartResponse {
	t.Helper()
	var resp handlers.CartResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode cart: %v (body %q)", err, rec.Body.String())
	}
	return resp
}

func addOneBody(id uuid.UUID, name string, price int64) string {
	b, _ := json.Marshal(handlers.AddOneRequest{ID: id.String(), Name: name, Price: price})
	return string(b)
}

func TestCartRoutes_Lifecycle(t *testing.T) {
	h, emitter := newTestRouter(t)
	dishID := uuid.New()

	rec := do(t, h, http.MethodGet, "/api/cart/u1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET cart: expected 200, got %d", rec.Code)
	}
	if cart := decodeCart(t, rec); cart.OwnerID != "u1" || len(cart.Lines) != 0 {
		t.Fatalf("expected empty cart for u1, got %+v", cart)
	}

	for range 2 {
		rec = do(t, h, http.MethodPost, "/api/cart/u1/add-one", addOneBody(dishID, "Dish1", 100))
		if rec.Code != http.StatusOK {
			t.Fatalf("add-one: expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
	}
	if cart := decodeCart(t, rec); cart.TotalPrice != 200 || cart.Lines[0].Quantity != 2 || cart.Lines[0].LineTotal != 200 {
		t.Fatalf("expected quantity 2 total 200, got %+v", cart)
	}

	rec = do(t, h, http.MethodPut, "/api/cart/u1/items/"+dishID.String(), `{"quantity":5}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("put quantity: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if cart := decodeCart(t, rec); cart.TotalPrice != 500 {
		t.Fatalf("expected total 500, got %d", cart.TotalPrice)
	}

	rec = do(t, h, http.MethodDelete, "/api/cart/u1/remove-one/"+dishID.String(), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("remove-one: expected 200, got %d", rec.Code)
	}
	if cart := decodeCart(t, rec); cart.TotalPrice != 400 {
		t.Fatalf("expected total 400, got %d", cart.TotalPrice)
	}

	rec = do(t, h, http.MethodPost, "/api/cart/u1/order", "")
	if rec.Code != http.StatusAccepted {
		t.Fatalf("order: expected 202, got %d: %s", rec.Code, rec.Body.String())
	}
	var order handlers.OrderResponse
	if err := json.NewDecoder(rec.Body).Decode(&order); err != nil {
		t.Fatalf("decode order: %v", err)
	}
	if !order.Accepted || order.TotalPrice != 400 || emitter.orders != 1 {
		t.Fatalf("unexpected order response %+v with %d events", order, emitter.orders)
	}

	rec = do(t, h, http.MethodDelete, "/api/cart/u1/remove-all/"+dishID.String(), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("remove-all: expected 200, got %d", rec.Code)
	}
	if cart := decodeCart(t, rec); len(cart.Lines) != 0 || cart.TotalPrice != 0 {
		t.Fatalf("expected empty cart, got %+v", cart)
	}

	if rec = do(t, h, http.MethodDelete, "/api/cart/u1", ""); rec.Code != http.StatusNoContent {
		t.Fatalf("delete: expected 204, got %d", rec.Code)
	}
}

func TestCartRoutes_Errors(t *testing.T) {
	missing := uuid.New().String()
	tests := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{"remove missing dish", http.MethodDelete, "/api/cart/u1/remove-one/" + missing, "", http.StatusNotFound},
		{"remove all missing dish", http.MethodDelete, "/api/cart/u1/remove-all/" + missing, "", http.StatusNotFound},
		{"bad dish id", http.MethodDelete, "/api/cart/u1/remove-one/not-a-uuid", "", http.StatusUnprocessableEntity},
		{"zero quantity", http.MethodPut, "/api/cart/u1/items/" + missing, `{"quantity":0}`, http.StatusUnprocessableEntity},
		{"quantity on missing dish", http.MethodPut, "/api/cart/u1/items/" + missing, `{"quantity":2}`, http.StatusNotFound},
		{"invalid json", http.MethodPost, "/api/cart/u1/add-one", `{`, http.StatusBadRequest},
		{"missing name", http.MethodPost, "/api/cart/u1/add-one", `{"id":"` + missing + `","price":1}`, http.StatusUnprocessableEntity},
		{"negative price", http.MethodPost, "/api/cart/u1/add-one", addOneBody(uuid.New(), "Dish1", -1), http.StatusUnprocessableEntity},
		{"blank owner", http.MethodGet, "/api/cart/%20", "", http.StatusUnprocessableEntity},
		{"order empty cart", http.MethodPost, "/api/cart/u1/order", "", http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newTestRouter(t)
			rec := do(t, h, tt.method, tt.path, tt.body)
			if rec.Code != tt.want {
				t.Fatalf("expected %d, got %d: %s", tt.want, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestCartRoutes_PublishFailure(t *testing.T) {
	h, emitter := newTestRouter(t)
	if rec := do(t, h, http.MethodPost, "/api/cart/u1/add-one", addOneBody(uuid.New(), "Dish1", 10)); rec.Code != http.StatusOK {
		t.Fatalf("add-one: expected 200, got %d", rec.Code)
	}
	emitter.err = errors.New("broker down")

	rec := do(t, h, http.MethodPost, "/api/cart/u1/order", "")
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d: %s", rec.Code, rec.Body.String())
	}
}
