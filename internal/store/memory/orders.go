package memory

import (
	"context"
	"sort"

	"github.com/ariefcatur/go-drink-enterprise/internal/faults"
	"github.com/ariefcatur/go-drink-enterprise/internal/orders"
	"github.com/ariefcatur/go-drink-enterprise/internal/store"
)

func (s *Store) InsertHeader(ctx context.Context, tx store.Tx, o orders.Order) error {
	t, err := asTx(tx)
	if err != nil {
		return err
	}
	t.pendingHeaders = append(t.pendingHeaders, o)
	return nil
}

func (s *Store) InsertItems(ctx context.Context, tx store.Tx, items []orders.OrderItem) error {
	t, err := asTx(tx)
	if err != nil {
		return err
	}
	for _, it := range items {
		t.pendingItems[it.OrderID] = append(t.pendingItems[it.OrderID], it)
	}
	return nil
}

func (s *Store) FindByID(ctx context.Context, id string) (orders.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return orders.Order{}, faults.NotFoundf("order %s not found", id)
	}
	return cloneOrder(o), nil
}

func (s *Store) OrdersByBranch(ctx context.Context, branchID string) ([]orders.Order, error) {
	return s.filter(func(o orders.Order) bool { return o.BranchID == branchID })
}

func (s *Store) OrdersByCustomer(ctx context.Context, customerID string) ([]orders.Order, error) {
	return s.filter(func(o orders.Order) bool { return o.CustomerID == customerID })
}

// OrderCount: helper test buat assert atomicity (tidak ada row nyangkut).
func (s *Store) OrderCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.orders)
}

func (s *Store) filter(keep func(orders.Order) bool) ([]orders.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []orders.Order
	for _, o := range s.orders {
		if keep(o) {
			out = append(out, cloneOrder(o))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PlacedAt.After(out[j].PlacedAt) })
	return out, nil
}

func cloneOrder(o orders.Order) orders.Order {
	o.Items = append([]orders.OrderItem(nil), o.Items...)
	return o
}

var _ orders.Store = (*Store)(nil)
