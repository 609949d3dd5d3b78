package models

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/google/uuid"

	cartdomain "github.com/ghuser/cartservice/services/cart/domain"
)

func TestNewDish(t *testing.T) {
	id := uuid.New()
	tests := []struct {
		name    string
		id      uuid.UUID
		dish    string
		price   int64
		wantErr bool
	}{
		{"valid", id, "Green Curry", 120, false},
		{"free dish", id, "Water", 0, false},
		{"nil id", uuid.Nil, "Green Curry", 120, true},
		{"blank name", id, "  ", 120, true},
		{"name too long", id, strings.Repeat("x", 256), 120, true},
		{"negative price", id, "Green Curry", -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDish(tt.id, tt.dish, tt.price)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewDish error = %v, wantErr = %v", err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, cartdomain.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestCartLine_LineTotal(t *testing.T) {
	tests := []struct {
		price    int64
		quantity int
		want     int64
	}{
		{1, 1, 1},
		{2, 2, 4},
		{10, 5, 50},
		{0, 1000, 0},
	}
	for _, tt := range tests {
		got, err := CartLine{Dish: Dish{Price: tt.price}, Quantity: tt.quantity}.LineTotal()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != tt.want {
			t.Fatalf("%d x %d: expected %d, got %d", tt.price, tt.quantity, tt.want, got)
		}
	}
}

func TestCartLine_LineTotalOverflow(t *testing.T) {
	tests := []struct {
		price    int64
		quantity int
	}{
		{math.MaxInt64, 2},
		{2, math.MaxInt},
	}
	for _, tt := range tests {
		_, err := CartLine{Dish: Dish{Price: tt.price}, Quantity: tt.quantity}.LineTotal()
		if !errors.Is(err, cartdomain.ErrArithmeticOverflow) {
			t.Fatalf("%d x %d: expected ErrArithmeticOverflow, got %v", tt.price, tt.quantity, err)
		}
	}
}
