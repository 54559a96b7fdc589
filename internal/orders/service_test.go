package orders

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/brewkit/brewkit/internal/catalog"
	"github.com/brewkit/brewkit/internal/storage"
)

func testService(t *testing.T) *Service {
	t.Helper()
	store, err := storage.Open(":memory:")
	if err != nil {
		t.Fatalf("Open(:memory:): %v", err)
	}
	t.Cleanup(func() { store.Close() })

	menu := []catalog.Item{
		{ID: "latte", Name: "Latte", Category: "Coffee", Price: 4.5},
		{ID: "iced-tea", Name: "Iced Tea", Category: "Tea", Price: 3.0},
	}
	return NewService(store, menu)
}

func TestPlaceOrder(t *testing.T) {
	svc := testService(t)

	order, err := svc.PlaceOrder(context.Background(), "latte", 2)
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}
	if order.ID == "" {
		t.Error("order has no ID")
	}
	if order.Item != "Latte" {
		t.Errorf("order item = %q, want canonical name Latte", order.Item)
	}
	if order.Total != 9.0 {
		t.Errorf("order total = %f, want 9.0", order.Total)
	}
	if order.Status != "confirmed" {
		t.Errorf("order status = %q, want confirmed", order.Status)
	}

	// The order must be retrievable afterwards.
	got, err := svc.GetOrder(context.Background(), order.ID)
	if err != nil {
		t.Fatalf("GetOrder: %v", err)
	}
	if got.ID != order.ID || got.Quantity != 2 {
		t.Errorf("GetOrder = %+v, want %+v", got, order)
	}
}

func TestPlaceOrderUnknownItem(t *testing.T) {
	svc := testService(t)

	_, err := svc.PlaceOrder(context.Background(), "Flat White", 1)
	if err == nil || !strings.Contains(err.Error(), "Flat White") {
		t.Errorf("PlaceOrder(unknown) error = %v, want error naming the item", err)
	}
}

func TestPlaceOrderInvalidQuantity(t *testing.T) {
	svc := testService(t)

	for _, q := range []int{0, -3} {
		if _, err := svc.PlaceOrder(context.Background(), "Latte", q); err == nil {
			t.Errorf("PlaceOrder(quantity=%d) did not fail", q)
		}
	}
}

func TestRecentAndCountOrders(t *testing.T) {
	svc := testService(t)

	for i := 0; i < 3; i++ {
		if _, err := svc.PlaceOrder(context.Background(), "latte", 1); err != nil {
			t.Fatalf("PlaceOrder: %v", err)
		}
	}

	recent, err := svc.RecentOrders(2)
	if err != nil {
		t.Fatalf("RecentOrders: %v", err)
	}
	if len(recent) != 2 {
		t.Errorf("RecentOrders(2) = %d orders, want 2", len(recent))
	}

	count, err := svc.CountOrders()
	if err != nil {
		t.Fatalf("CountOrders: %v", err)
	}
	if count != 3 {
		t.Errorf("CountOrders = %d, want 3", count)
	}
}

func TestGetOrderNotFound(t *testing.T) {
	svc := testService(t)

	_, err := svc.GetOrder(context.Background(), "no-such-order")
	if !errors.Is(err, ErrOrderNotFound) {
		t.Errorf("GetOrder error = %v, want ErrOrderNotFound", err)
	}
}
