package models

import (
	"errors"
	"math"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	cartdomain "github.com/ghuser/cartservice/services/cart/domain"
)

func mustDish(t *testing.T, name string, price int64) Dish {
	t.Helper()
	d, err := NewDish(uuid.New(), name, price)
	if err != nil {
		t.Fatalf("NewDish: %v", err)
	}
	return d
}

func mustCart(t *testing.T, owner string) *Cart {
	t.Helper()
	c, err := NewCart(owner, CartContext{})
	if err != nil {
		t.Fatalf("NewCart: %v", err)
	}
	return c
}

func mustTotal(t *testing.T, c *Cart) int64 {
	t.Helper()
	total, err := c.TotalPrice()
	if err != nil {
		t.Fatalf("TotalPrice: %v", err)
	}
	return total
}

func TestNewCart(t *testing.T) {
	t.Run("blank owner rejected", func(t *testing.T) {
		for _, owner := range []string{"", "   "} {
			if _, err := NewCart(owner, CartContext{}); !errors.Is(err, cartdomain.ErrInvalidInput) {
				t.Fatalf("owner %q: expected ErrInvalidInput, got %v", owner, err)
			}
		}
	})

	t.Run("new cart is empty with zero total", func(t *testing.T) {
		c := mustCart(t, "u1")
		if !c.IsEmpty() || c.Len() != 0 {
			t.Fatalf("expected empty cart, got %d lines", c.Len())
		}
		if got := mustTotal(t, c); got != 0 {
			t.Fatalf("expected total 0, got %d", got)
		}
		if c.OwnerID() != "u1" {
			t.Fatalf("expected owner u1, got %q", c.OwnerID())
		}
	})
}

// Walks the add/remove sequence for owner u1 end to end.
func TestCart_AddRemoveScenario(t *testing.T) {
	c := mustCart(t, "u1")
	d1 := mustDish(t, "Pad Thai", 100)

	for range 2 {
		if _, err := c.AddOne(d1); err != nil {
			t.Fatalf("AddOne: %v", err)
		}
	}
	if c.Len() != 1 {
		t.Fatalf("expected 1 line, got %d", c.Len())
	}
	line, _ := c.Line(d1.ID)
	if line.Quantity != 2 || mustTotal(t, c) != 200 {
		t.Fatalf("expected quantity 2 total 200, got %d / %d", line.Quantity, mustTotal(t, c))
	}

	line, err := c.RemoveOne(d1.ID)
	if err != nil {
		t.Fatalf("RemoveOne: %v", err)
	}
	if line.Quantity != 1 || mustTotal(t, c) != 100 {
		t.Fatalf("expected quantity 1 total 100, got %d / %d", line.Quantity, mustTotal(t, c))
	}

	line, err = c.RemoveOne(d1.ID)
	if err != nil {
		t.Fatalf("RemoveOne: %v", err)
	}
	if line.Quantity != 0 || !c.IsEmpty() || mustTotal(t, c) != 0 {
		t.Fatalf("expected line removed and empty cart, got quantity %d, %d lines", line.Quantity, c.Len())
	}

	if _, err := c.RemoveOne(d1.ID); !errors.Is(err, cartdomain.ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}

func TestCart_AddOne(t *testing.T) {
	t.Run("absent dish rejected without mutation", func(t *testing.T) {
		c := mustCart(t, "u1")
		if _, err := c.AddOne(Dish{}); !errors.Is(err, cartdomain.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
		if !c.IsEmpty() {
			t.Fatal("cart must stay empty")
		}
	})

	t.Run("existing line keeps its dish value", func(t *testing.T) {
		c := mustCart(t, "u1")
		d := mustDish(t, "Ramen", 90)
		_, _ = c.AddOne(d)
		repriced := Dish{ID: d.ID, Name: "Ramen", Price: 120}
		line, err := c.AddOne(repriced)
		if err != nil {
			t.Fatalf("AddOne: %v", err)
		}
		if line.Dish.Price != 90 || line.Quantity != 2 {
			t.Fatalf("expected price 90 quantity 2, got %d / %d", line.Dish.Price, line.Quantity)
		}
	})

	t.Run("returned line is a copy", func(t *testing.T) {
		c := mustCart(t, "u1")
		d := mustDish(t, "Ramen", 90)
		line, _ := c.AddOne(d)
		line.Quantity = 42
		got, _ := c.Line(d.ID)
		if got.Quantity != 1 {
			t.Fatalf("mutating returned line changed the cart: quantity %d", got.Quantity)
		}
	})

	t.Run("total overflow rejected without mutation", func(t *testing.T) {
		c := mustCart(t, "u1")
		big := mustDish(t, "Caviar", math.MaxInt64/2+1)
		if _, err := c.AddOne(big); err != nil {
			t.Fatalf("first AddOne: %v", err)
		}
		if _, err := c.AddOne(big); !errors.Is(err, cartdomain.ErrArithmeticOverflow) {
			t.Fatalf("expected ErrArithmeticOverflow, got %v", err)
		}
		line, _ := c.Line(big.ID)
		if line.Quantity != 1 {
			t.Fatalf("expected quantity to stay 1, got %d", line.Quantity)
		}
		other := mustDish(t, "Truffle", math.MaxInt64/2+1)
		if _, err := c.AddOne(other); !errors.Is(err, cartdomain.ErrArithmeticOverflow) {
			t.Fatalf("expected ErrArithmeticOverflow for sum, got %v", err)
		}
		if c.Len() != 1 {
			t.Fatalf("expected 1 line after rejected add, got %d", c.Len())
		}
	})
}

func TestCart_RemoveAll(t *testing.T) {
	for _, quantity := range []int{1, 2, 10} {
		c := mustCart(t, "u1")
		d := mustDish(t, "Dish1", 1)
		keep := mustDish(t, "Dish2", 1)
		_, _ = c.AddOne(keep)
		for range quantity {
			_, _ = c.AddOne(d)
		}

		removed, err := c.RemoveAll(d.ID)
		if err != nil {
			t.Fatalf("RemoveAll: %v", err)
		}
		if removed.Dish.ID != d.ID || removed.Quantity != 0 {
			t.Fatalf("unexpected removed line: %+v", removed)
		}
		if c.Len() != 1 {
			t.Fatalf("expected only the other dish to remain, got %d lines", c.Len())
		}
		if _, ok := c.Line(keep.ID); !ok {
			t.Fatal("expected Dish2 to remain")
		}
	}
}

func TestCart_RemoveMissing_LeavesCartUnchanged(t *testing.T) {
	c := mustCart(t, "u1")
	_, _ = c.AddOne(mustDish(t, "Dish1", 10))
	before := c.Lines()

	if _, err := c.RemoveOne(uuid.New()); !errors.Is(err, cartdomain.ErrItemNotFound) {
		t.Fatalf("RemoveOne: expected ErrItemNotFound, got %v", err)
	}
	if _, err := c.RemoveAll(uuid.New()); !errors.Is(err, cartdomain.ErrItemNotFound) {
		t.Fatalf("RemoveAll: expected ErrItemNotFound, got %v", err)
	}
	if diff := cmp.Diff(before, c.Lines()); diff != "" {
		t.Fatalf("lines changed after failed removal (-before +after):\n%s", diff)
	}
}

func TestCart_SetQuantity(t *testing.T) {
	tests := []struct {
		name     string
		quantity int
		missing  bool
		wantErr  error
		wantQty  int
	}{
		{"increase", 4, false, nil, 4},
		{"decrease", 1, false, nil, 1},
		{"zero", 0, false, cartdomain.ErrInvalidQuantity, 2},
		{"negative", -10, false, cartdomain.ErrInvalidQuantity, 2},
		{"missing dish", 3, true, cartdomain.ErrItemNotFound, 2},
		{"overflow", math.MaxInt, false, cartdomain.ErrArithmeticOverflow, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := mustCart(t, "u1")
			d := mustDish(t, "Dish1", 3)
			_, _ = c.AddOne(d)
			_, _ = c.AddOne(d)

			target := d.ID
			if tt.missing {
				target = uuid.New()
			}
			_, err := c.SetQuantity(target, tt.quantity)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			line, _ := c.Line(d.ID)
			if line.Quantity != tt.wantQty {
				t.Fatalf("expected quantity %d, got %d", tt.wantQty, line.Quantity)
			}
		})
	}
}

func TestCart_AssignContext(t *testing.T) {
	first := CartContext{CustomerID: uuid.New(), RestaurantID: uuid.New()}
	c := mustCart(t, "u1")
	c.AssignContext(first)
	c.AssignContext(CartContext{CustomerID: uuid.New(), RestaurantID: uuid.New()})
	if c.Context() != first {
		t.Fatalf("expected first context to stick, got %+v", c.Context())
	}
}

func TestCart_Clone_IsIndependent(t *testing.T) {
	c := mustCart(t, "u1")
	d := mustDish(t, "Dish1", 5)
	_, _ = c.AddOne(d)

	clone := c.Clone()
	_, _ = clone.AddOne(d)

	line, _ := c.Line(d.ID)
	if line.Quantity != 1 {
		t.Fatalf("original mutated through clone: quantity %d", line.Quantity)
	}
}

// Line count equals distinct dishes and each quantity equals its add count;
// the total always equals the recomputed sum of price*quantity.
func TestCart_AddOneProperties(t *testing.T) {
	for range 50 {
		c := mustCart(t, gofakeit.Username())
		menu := make([]Dish, gofakeit.Number(1, 8))
		for i := range menu {
			menu[i] = mustDish(t, gofakeit.Dinner(), int64(gofakeit.Number(0, 10_000)))
		}

		counts := map[uuid.UUID]int{}
		for range gofakeit.Number(1, 40) {
			d := menu[gofakeit.Number(0, len(menu)-1)]
			if _, err := c.AddOne(d); err != nil {
				t.Fatalf("AddOne: %v", err)
			}
			counts[d.ID]++
		}

		if c.Len() != len(counts) {
			t.Fatalf("expected %d lines, got %d", len(counts), c.Len())
		}
		var want int64
		for _, l := range c.Lines() {
			if l.Quantity != counts[l.Dish.ID] {
				t.Fatalf("dish %s: expected quantity %d, got %d", l.Dish.ID, counts[l.Dish.ID], l.Quantity)
			}
			want += l.Dish.Price * int64(l.Quantity)
		}
		if got := mustTotal(t, c); got != want {
			t.Fatalf("expected total %d, got %d", want, got)
		}
	}
}
