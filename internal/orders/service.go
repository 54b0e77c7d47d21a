package orders

import (
	"context"
	"time"

	"github.com/ariefcatur/go-drink-enterprise/internal/catalog"
	"github.com/ariefcatur/go-drink-enterprise/internal/faults"
	"github.com/ariefcatur/go-drink-enterprise/internal/inventory"
	"github.com/ariefcatur/go-drink-enterprise/internal/store"
	"go.uber.org/zap"
)

// Service meng-orchestrate order placement: pricing (read-only, di luar
// tx) -> satu tx utk settlement + persist -> commit/rollback sebagai unit.
type Service struct {
	db     store.Beginner
	store  Store
	ledger *inventory.Ledger
	cat    catalog.Lookup
	log    *zap.Logger
	now    func() time.Time
}

func NewService(db store.Beginner, st Store, ledger *inventory.Ledger, cat catalog.Lookup, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{db: db, store: st, ledger: ledger, cat: cat, log: log, now: time.Now}
}

// PlaceOrder: gagal di step mana pun setelah Begin -> rollback semua,
// error asli diterusin apa adanya (kind tidak di-mask) supaya caller
// tahu kenapa order gagal.
func (s *Service) PlaceOrder(ctx context.Context, customerID, branchID string, lines []inventory.LineItem) (Order, error) {
	if customerID == "" {
		return Order{}, faults.InvalidArgumentf("customer id is required")
	}
	if len(lines) == 0 {
		return Order{}, faults.InvalidArgumentf("order must have items")
	}
	if _, err := s.cat.FindBranch(ctx, branchID); err != nil {
		return Order{}, err
	}

	// pricing pass: murni read, tx belum dibuka biar row stok nggak
	// kelamaan ke-lock
	orderID := NewOrderID()
	items := make([]OrderItem, 0, len(lines))
	seen := make(map[string]bool, len(lines))
	total := 0
	for _, line := range lines {
		if seen[line.DrinkID] {
			return Order{}, faults.InvalidArgumentf("duplicate drink %s in order", line.DrinkID)
		}
		seen[line.DrinkID] = true
		drink, err := s.cat.FindDrink(ctx, line.DrinkID)
		if err != nil {
			return Order{}, err
		}
		item, err := NewOrderItem(drink.ID, drink.Name, line.Qty, drink.PriceCents)
		if err != nil {
			return Order{}, err
		}
		item.OrderID = orderID
		items = append(items, item)
		total += item.LineTotalCents()
	}

	order := Order{
		ID:         orderID,
		CustomerID: customerID,
		BranchID:   branchID,
		PlacedAt:   s.now().UTC(),
		Items:      items,
		TotalCents: total,
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return Order{}, faults.Storage("begin order tx", err)
	}
	defer func() { _ = tx.Rollback(ctx) }() // no-op kalau sudah commit

	if err := s.ledger.SettleSale(ctx, tx, branchID, lines); err != nil {
		return Order{}, err
	}
	if err := s.store.InsertHeader(ctx, tx, order); err != nil {
		return Order{}, err
	}
	if err := s.store.InsertItems(ctx, tx, items); err != nil {
		return Order{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return Order{}, faults.Storage("commit order", err)
	}

	s.log.Info("order placed",
		zap.String("order_id", orderID),
		zap.String("customer_id", customerID),
		zap.String("branch_id", branchID),
		zap.Int("total_cents", total))
	return order, nil
}

func (s *Service) GetOrder(ctx context.Context, orderID string) (Order, error) {
	return s.store.FindByID(ctx, orderID)
}

func (s *Service) OrdersByBranch(ctx context.Context, branchID string) ([]Order, error) {
	if _, err := s.cat.FindBranch(ctx, branchID); err != nil {
		return nil, err
	}
	return s.store.OrdersByBranch(ctx, branchID)
}

func (s *Service) OrdersByCustomer(ctx context.Context, customerID string) ([]Order, error) {
	if customerID == "" {
		return nil, faults.InvalidArgumentf("customer id is required")
	}
	return s.store.OrdersByCustomer(ctx, customerID)
}
