package orders_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/ariefcatur/go-drink-enterprise/internal/catalog"
	"github.com/ariefcatur/go-drink-enterprise/internal/faults"
	"github.com/ariefcatur/go-drink-enterprise/internal/inventory"
	"github.com/ariefcatur/go-drink-enterprise/internal/orders"
	"github.com/ariefcatur/go-drink-enterprise/internal/store/memory"
)

const stoneyPriceCents = 250

func newTestService(t *testing.T) (*orders.Service, *inventory.Ledger, *memory.Store) {
	t.Helper()
	st := memory.New()
	cat := &catalog.Static{
		Branches: map[string]catalog.Branch{
			"HQ":    {ID: "HQ", Name: "Nairobi HQ"},
			"NKR01": {ID: "NKR01", Name: "Nakuru 01"},
		},
		Drinks: map[string]catalog.Drink{
			"DK001": {ID: "DK001", Name: "Stoney Tangawizi", PriceCents: stoneyPriceCents},
			"DK002": {ID: "DK002", Name: "Krest Bitter Lemon", PriceCents: 180},
		},
	}
	ledger := inventory.NewLedger(st, st, cat, nil)
	return orders.NewService(st, st, ledger, cat, nil), ledger, st
}

func TestPlaceOrderScenario(t *testing.T) {
	svc, ledger, _ := newTestService(t)
	ctx := context.Background()

	if err := ledger.SetLevel(ctx, "NKR01", "DK001", 100); err != nil {
		t.Fatal(err)
	}
	if err := ledger.SetThreshold(ctx, "NKR01", "DK001", 20); err != nil {
		t.Fatal(err)
	}

	order, err := svc.PlaceOrder(ctx, "CUST-1", "NKR01", []inventory.LineItem{{DrinkID: "DK001", Qty: 30}})
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}

	if !strings.HasPrefix(order.ID, "ORD-") || len(order.ID) != len("ORD-")+12 {
		t.Errorf("order id shape: %q", order.ID)
	}
	if order.TotalCents != 30*stoneyPriceCents {
		t.Errorf("total: got %d, want %d", order.TotalCents, 30*stoneyPriceCents)
	}
	if len(order.Items) != 1 || order.Items[0].Qty != 30 || order.Items[0].PriceCents != stoneyPriceCents {
		t.Errorf("items: %+v", order.Items)
	}

	qty, _ := ledger.GetLevel(ctx, "NKR01", "DK001")
	if qty != 70 {
		t.Errorf("stock after order: got %d, want 70", qty)
	}

	// order kebaca balik lengkap dengan items (eager)
	got, err := svc.GetOrder(ctx, order.ID)
	if err != nil {
		t.Fatalf("GetOrder: %v", err)
	}
	if len(got.Items) != 1 || got.Items[0].DrinkName != "Stoney Tangawizi" {
		t.Errorf("eager load: %+v", got.Items)
	}
}

func TestPlaceOrderInsufficientLeavesStockUntouched(t *testing.T) {
	svc, ledger, st := newTestService(t)
	ctx := context.Background()

	if err := ledger.SetLevel(ctx, "NKR01", "DK001", 70); err != nil {
		t.Fatal(err)
	}

	_, err := svc.PlaceOrder(ctx, "CUST-2", "NKR01", []inventory.LineItem{{DrinkID: "DK001", Qty: 100}})
	var is *faults.InsufficientStock
	if !errors.As(err, &is) {
		t.Fatalf("got %v, want InsufficientStock", err)
	}
	if is.Available != 70 || is.Requested != 100 {
		t.Errorf("got available=%d requested=%d, want 70/100", is.Available, is.Requested)
	}

	qty, _ := ledger.GetLevel(ctx, "NKR01", "DK001")
	if qty != 70 {
		t.Errorf("stock mutated by failed order: got %d, want 70", qty)
	}
	if st.OrderCount() != 0 {
		t.Errorf("order persisted despite failure: %d rows", st.OrderCount())
	}
}

// Multi-item: item kedua gagal -> decrement item pertama ikut dibuang,
// tidak ada order/order-item yang ke-persist.
func TestPlaceOrderAtomicity(t *testing.T) {
	svc, ledger, st := newTestService(t)
	ctx := context.Background()

	if err := ledger.SetLevel(ctx, "NKR01", "DK001", 100); err != nil {
		t.Fatal(err)
	}
	if err := ledger.SetLevel(ctx, "NKR01", "DK002", 3); err != nil {
		t.Fatal(err)
	}

	_, err := svc.PlaceOrder(ctx, "CUST-3", "NKR01", []inventory.LineItem{
		{DrinkID: "DK001", Qty: 10},
		{DrinkID: "DK002", Qty: 5},
	})
	if !faults.IsKind(err, faults.KindInsufficientStock) {
		t.Fatalf("got %v, want InsufficientStock", err)
	}

	a, _ := ledger.GetLevel(ctx, "NKR01", "DK001")
	b, _ := ledger.GetLevel(ctx, "NKR01", "DK002")
	if a != 100 || b != 3 {
		t.Errorf("partial decrement: DK001=%d DK002=%d, want 100/3", a, b)
	}
	if st.OrderCount() != 0 {
		t.Errorf("order rows persisted: %d", st.OrderCount())
	}
}

func TestPlaceOrderValidation(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	cases := []struct {
		name     string
		customer string
		branch   string
		lines    []inventory.LineItem
		wantKind faults.Kind
	}{
		{"empty customer", "", "NKR01", []inventory.LineItem{{DrinkID: "DK001", Qty: 1}}, faults.KindInvalidArgument},
		{"no items", "CUST-1", "NKR01", nil, faults.KindInvalidArgument},
		{"unknown branch", "CUST-1", "NOPE", []inventory.LineItem{{DrinkID: "DK001", Qty: 1}}, faults.KindNotFound},
		{"unknown drink", "CUST-1", "NKR01", []inventory.LineItem{{DrinkID: "NOPE", Qty: 1}}, faults.KindNotFound},
		{"zero qty", "CUST-1", "NKR01", []inventory.LineItem{{DrinkID: "DK001", Qty: 0}}, faults.KindInvalidArgument},
		{"duplicate drink", "CUST-1", "NKR01", []inventory.LineItem{{DrinkID: "DK001", Qty: 1}, {DrinkID: "DK001", Qty: 2}}, faults.KindInvalidArgument},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.PlaceOrder(ctx, tc.customer, tc.branch, tc.lines)
			if !faults.IsKind(err, tc.wantKind) {
				t.Errorf("got %v, want kind %v", err, tc.wantKind)
			}
		})
	}
}

// Dua order konkuren, masing-masing minta seluruh stok: tepat satu
// sukses, satunya InsufficientStock. Tidak pernah dua-duanya lolos.
func TestPlaceOrderConcurrentRace(t *testing.T) {
	svc, ledger, _ := newTestService(t)
	ctx := context.Background()

	const stock = 10
	if err := ledger.SetLevel(ctx, "NKR01", "DK001", stock); err != nil {
		t.Fatal(err)
	}

	results := make([]error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = svc.PlaceOrder(ctx, "CUST-RACE", "NKR01",
				[]inventory.LineItem{{DrinkID: "DK001", Qty: stock}})
		}(i)
	}
	wg.Wait()

	okCount, insufficientCount := 0, 0
	for _, err := range results {
		switch {
		case err == nil:
			okCount++
		case faults.IsKind(err, faults.KindInsufficientStock):
			insufficientCount++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if okCount != 1 || insufficientCount != 1 {
		t.Fatalf("got %d ok / %d insufficient, want exactly 1/1", okCount, insufficientCount)
	}

	qty, _ := ledger.GetLevel(ctx, "NKR01", "DK001")
	if qty != 0 {
		t.Errorf("final stock: got %d, want 0", qty)
	}
}

func TestOrdersByBranchAndCustomerEagerLoad(t *testing.T) {
	svc, ledger, _ := newTestService(t)
	ctx := context.Background()

	if err := ledger.SetLevel(ctx, "NKR01", "DK001", 100); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.PlaceOrder(ctx, "CUST-A", "NKR01", []inventory.LineItem{{DrinkID: "DK001", Qty: 1}}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.PlaceOrder(ctx, "CUST-B", "NKR01", []inventory.LineItem{{DrinkID: "DK001", Qty: 2}}); err != nil {
		t.Fatal(err)
	}

	byBranch, err := svc.OrdersByBranch(ctx, "NKR01")
	if err != nil {
		t.Fatalf("OrdersByBranch: %v", err)
	}
	if len(byBranch) != 2 {
		t.Fatalf("got %d orders, want 2", len(byBranch))
	}
	for _, o := range byBranch {
		if len(o.Items) == 0 {
			t.Errorf("order %s missing items (eager load contract)", o.ID)
		}
	}

	byCust, err := svc.OrdersByCustomer(ctx, "CUST-A")
	if err != nil {
		t.Fatalf("OrdersByCustomer: %v", err)
	}
	if len(byCust) != 1 || byCust[0].CustomerID != "CUST-A" {
		t.Errorf("got %+v", byCust)
	}
}

func TestGetOrderUnknown(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.GetOrder(context.Background(), "ORD-DOESNOTEXIST")
	if !faults.IsKind(err, faults.KindNotFound) {
		t.Errorf("got %v, want NotFound", err)
	}
}
