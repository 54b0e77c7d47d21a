package memory

import (
	"context"
	"sort"

	"github.com/ariefcatur/go-drink-enterprise/internal/inventory"
	"github.com/ariefcatur/go-drink-enterprise/internal/store"
)

func (s *Store) Get(ctx context.Context, branchID, drinkID string) (inventory.StockItem, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	it, ok := s.stock[rowKey{branchID, drinkID}]
	return it, ok, nil
}

func (s *Store) GetForUpdate(ctx context.Context, tx store.Tx, branchID, drinkID string) (inventory.StockItem, bool, error) {
	t, err := asTx(tx)
	if err != nil {
		return inventory.StockItem{}, false, err
	}
	k := rowKey{branchID, drinkID}
	t.lockRow(k)
	// pending write dalam tx yang sama menang atas state committed
	if it, ok := t.pendingStock[k]; ok {
		return it, true, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	it, ok := s.stock[k]
	return it, ok, nil
}

func (s *Store) Put(ctx context.Context, tx store.Tx, item inventory.StockItem) error {
	t, err := asTx(tx)
	if err != nil {
		return err
	}
	k := rowKey{item.BranchID, item.DrinkID}
	t.lockRow(k)
	t.pendingStock[k] = item
	return nil
}

func (s *Store) SetLevel(ctx context.Context, branchID, drinkID string, qty int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := rowKey{branchID, drinkID}
	it := s.stock[k] // zero value kalau belum ada: threshold 0
	it.BranchID, it.DrinkID = branchID, drinkID
	it.Quantity = qty
	s.stock[k] = it
	return nil
}

func (s *Store) SetThreshold(ctx context.Context, branchID, drinkID string, threshold int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := rowKey{branchID, drinkID}
	it := s.stock[k]
	it.BranchID, it.DrinkID = branchID, drinkID
	it.MinimumThreshold = threshold
	s.stock[k] = it
	return nil
}

func (s *Store) ByBranch(ctx context.Context, branchID string) ([]inventory.StockItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []inventory.StockItem
	for k, it := range s.stock {
		if k.branch == branchID {
			out = append(out, it)
		}
	}
	sortStock(out)
	return out, nil
}

func (s *Store) LowStock(ctx context.Context) ([]inventory.StockItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []inventory.StockItem
	for _, it := range s.stock {
		if it.MinimumThreshold > 0 && it.Quantity < it.MinimumThreshold {
			out = append(out, it)
		}
	}
	sortStock(out)
	return out, nil
}

func sortStock(items []inventory.StockItem) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].BranchID != items[j].BranchID {
			return items[i].BranchID < items[j].BranchID
		}
		return items[i].DrinkID < items[j].DrinkID
	})
}

var _ inventory.Store = (*Store)(nil)
