package orders

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/brewkit/brewkit/internal/catalog"
	"github.com/brewkit/brewkit/internal/storage"
)

// ErrOrderNotFound is returned by GetOrder for unknown order IDs.
var ErrOrderNotFound = errors.New("order not found")

// Service is the order backend the assistant drives through tools. It
// validates items against the menu snapshot and persists orders in SQLite.
type Service struct {
	store  *storage.Store
	menu   []catalog.Item
	logger *slog.Logger
}

// NewService creates a Service over the given store and menu snapshot.
func NewService(store *storage.Store, menu []catalog.Item) *Service {
	return &Service{
		store:  store,
		menu:   menu,
		logger: slog.Default(),
	}
}

// PlaceOrder validates the item and quantity, persists the order, and
// returns the confirmation.
func (s *Service) PlaceOrder(ctx context.Context, itemName string, quantity int) (storage.Order, error) {
	if quantity < 1 {
		return storage.Order{}, fmt.Errorf("quantity must be at least 1, got %d", quantity)
	}

	item, ok := catalog.Find(s.menu, itemName)
	if !ok {
		return storage.Order{}, fmt.Errorf("no menu item named %q", itemName)
	}

	order := storage.Order{
		ID:        uuid.New().String(),
		Item:      item.Name,
		Quantity:  quantity,
		Total:     item.Price * float64(quantity),
		Status:    "confirmed",
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.SaveOrder(order); err != nil {
		return storage.Order{}, fmt.Errorf("saving order: %w", err)
	}

	s.logger.Info("order placed", "order_id", order.ID, "item", order.Item, "quantity", order.Quantity)
	return order, nil
}

// GetOrder returns a previously placed order.
func (s *Service) GetOrder(ctx context.Context, id string) (storage.Order, error) {
	order, err := s.store.GetOrder(id)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.Order{}, fmt.Errorf("%s: %w", id, ErrOrderNotFound)
	}
	if err != nil {
		return storage.Order{}, fmt.Errorf("loading order %s: %w", id, err)
	}
	return order, nil
}

// RecentOrders returns up to limit orders, newest first.
func (s *Service) RecentOrders(limit int) ([]storage.Order, error) {
	return s.store.RecentOrders(limit)
}

// CountOrders returns the total number of stored orders.
func (s *Service) CountOrders() (int, error) {
	return s.store.CountOrders()
}
