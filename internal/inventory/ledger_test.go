package inventory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ariefcatur/go-drink-enterprise/internal/catalog"
	"github.com/ariefcatur/go-drink-enterprise/internal/faults"
	"github.com/ariefcatur/go-drink-enterprise/internal/inventory"
	"github.com/ariefcatur/go-drink-enterprise/internal/store/memory"
)

func testCatalog() *catalog.Static {
	return &catalog.Static{
		Branches: map[string]catalog.Branch{
			"HQ":    {ID: "HQ", Name: "Nairobi HQ", Location: "Nairobi"},
			"NKR01": {ID: "NKR01", Name: "Nakuru 01", Location: "Nakuru"},
			"MSA01": {ID: "MSA01", Name: "Mombasa 01", Location: "Mombasa"},
		},
		Drinks: map[string]catalog.Drink{
			"DK001": {ID: "DK001", Name: "Stoney Tangawizi", Brand: "Coca-Cola", PriceCents: 250},
			"DK002": {ID: "DK002", Name: "Krest Bitter Lemon", Brand: "Coca-Cola", PriceCents: 180},
		},
	}
}

func newTestLedger(t *testing.T) (*inventory.Ledger, *memory.Store) {
	t.Helper()
	st := memory.New()
	return inventory.NewLedger(st, st, testCatalog(), nil), st
}

func TestGetLevelAbsentRowIsZero(t *testing.T) {
	ledger, _ := newTestLedger(t)
	ctx := context.Background()

	qty, err := ledger.GetLevel(ctx, "NKR01", "DK001")
	if err != nil {
		t.Fatalf("GetLevel: %v", err)
	}
	if qty != 0 {
		t.Errorf("absent row: got %d, want 0", qty)
	}
}

func TestGetLevelUnknownBranch(t *testing.T) {
	ledger, _ := newTestLedger(t)

	_, err := ledger.GetLevel(context.Background(), "NOPE", "DK001")
	if !faults.IsKind(err, faults.KindNotFound) {
		t.Errorf("got %v, want NotFound", err)
	}
}

func TestSetLevelRejectsNegative(t *testing.T) {
	ledger, _ := newTestLedger(t)

	err := ledger.SetLevel(context.Background(), "NKR01", "DK001", -1)
	if !faults.IsKind(err, faults.KindInvalidArgument) {
		t.Errorf("got %v, want InvalidArgument", err)
	}
}

func TestSetThresholdRejectsNegative(t *testing.T) {
	ledger, _ := newTestLedger(t)

	err := ledger.SetThreshold(context.Background(), "NKR01", "DK001", -5)
	if !faults.IsKind(err, faults.KindInvalidArgument) {
		t.Errorf("got %v, want InvalidArgument", err)
	}
}

// SetLevel dan SetThreshold tidak boleh saling timpa field satunya.
func TestAdministrativeSetsPreserveSiblingField(t *testing.T) {
	ledger, _ := newTestLedger(t)
	ctx := context.Background()

	if err := ledger.SetThreshold(ctx, "NKR01", "DK001", 20); err != nil {
		t.Fatalf("SetThreshold: %v", err)
	}
	if err := ledger.SetLevel(ctx, "NKR01", "DK001", 100); err != nil {
		t.Fatalf("SetLevel: %v", err)
	}

	qty, err := ledger.GetLevel(ctx, "NKR01", "DK001")
	if err != nil || qty != 100 {
		t.Fatalf("level after set: got %d, %v", qty, err)
	}

	// threshold 20 harus masih kebaca oleh scan setelah qty turun
	if err := ledger.SetLevel(ctx, "NKR01", "DK001", 5); err != nil {
		t.Fatalf("SetLevel: %v", err)
	}
	rows, err := ledger.ScanBelowThreshold(ctx)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(rows) != 1 || rows[0].MinimumThreshold != 20 {
		t.Errorf("scan after sets: got %+v, want one row with threshold 20", rows)
	}
}

func TestAdjustInsufficientStockCarriesNumbers(t *testing.T) {
	ledger, st := newTestLedger(t)
	ctx := context.Background()

	if err := ledger.SetLevel(ctx, "NKR01", "DK001", 7); err != nil {
		t.Fatalf("SetLevel: %v", err)
	}

	tx, err := st.Begin(ctx)
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = ledger.Adjust(ctx, tx, "NKR01", "DK001", -10)
	var is *faults.InsufficientStock
	if !errors.As(err, &is) {
		t.Fatalf("got %v, want InsufficientStock", err)
	}
	if is.Available != 7 || is.Requested != 10 {
		t.Errorf("got available=%d requested=%d, want 7/10", is.Available, is.Requested)
	}
}

func TestAdjustCreatesRowOnPositiveDelta(t *testing.T) {
	ledger, st := newTestLedger(t)
	ctx := context.Background()

	tx, err := st.Begin(ctx)
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	got, err := ledger.Adjust(ctx, tx, "MSA01", "DK002", 15)
	if err != nil {
		t.Fatalf("Adjust: %v", err)
	}
	if got != 15 {
		t.Errorf("new quantity: got %d, want 15", got)
	}
	if err := tx.Commit(ctx); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	qty, err := ledger.GetLevel(ctx, "MSA01", "DK002")
	if err != nil || qty != 15 {
		t.Errorf("after commit: got %d, %v", qty, err)
	}
}

func TestAdjustPendingUntilCommit(t *testing.T) {
	ledger, st := newTestLedger(t)
	ctx := context.Background()

	if err := ledger.SetLevel(ctx, "NKR01", "DK001", 50); err != nil {
		t.Fatalf("SetLevel: %v", err)
	}

	tx, _ := st.Begin(ctx)
	if _, err := ledger.Adjust(ctx, tx, "NKR01", "DK001", -30); err != nil {
		t.Fatalf("Adjust: %v", err)
	}
	if err := tx.Rollback(ctx); err != nil {
		t.Fatalf("Rollback: %v", err)
	}

	qty, _ := ledger.GetLevel(ctx, "NKR01", "DK001")
	if qty != 50 {
		t.Errorf("after rollback: got %d, want 50", qty)
	}
}

func TestIdempotentRead(t *testing.T) {
	ledger, _ := newTestLedger(t)
	ctx := context.Background()

	if err := ledger.SetLevel(ctx, "NKR01", "DK001", 42); err != nil {
		t.Fatalf("SetLevel: %v", err)
	}
	a, _ := ledger.GetLevel(ctx, "NKR01", "DK001")
	b, _ := ledger.GetLevel(ctx, "NKR01", "DK001")
	if a != b {
		t.Errorf("two reads with no mutation differ: %d vs %d", a, b)
	}
}

func TestScanBelowThreshold(t *testing.T) {
	ledger, _ := newTestLedger(t)
	ctx := context.Background()

	// qty 70 < threshold 200 -> muncul
	if err := ledger.SetLevel(ctx, "NKR01", "DK001", 70); err != nil {
		t.Fatal(err)
	}
	if err := ledger.SetThreshold(ctx, "NKR01", "DK001", 200); err != nil {
		t.Fatal(err)
	}
	// threshold 0 tidak pernah muncul walau qty 0
	if err := ledger.SetLevel(ctx, "NKR01", "DK002", 0); err != nil {
		t.Fatal(err)
	}

	rows, err := ledger.ScanBelowThreshold(ctx)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(rows) != 1 || rows[0].DrinkID != "DK001" {
		t.Fatalf("scan: got %+v, want only NKR01/DK001", rows)
	}

	// naikkan qty di atas threshold -> hilang dari scan
	if err := ledger.SetLevel(ctx, "NKR01", "DK001", 250); err != nil {
		t.Fatal(err)
	}
	rows, err = ledger.ScanBelowThreshold(ctx)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("after restock: got %+v, want empty", rows)
	}
}

func TestCheckLowStockEnrichment(t *testing.T) {
	ledger, _ := newTestLedger(t)
	ctx := context.Background()

	if err := ledger.SetLevel(ctx, "NKR01", "DK001", 10); err != nil {
		t.Fatal(err)
	}
	if err := ledger.SetThreshold(ctx, "NKR01", "DK001", 25); err != nil {
		t.Fatal(err)
	}

	entries, err := ledger.CheckLowStock(ctx)
	if err != nil {
		t.Fatalf("CheckLowStock: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	e := entries[0]
	if e.BranchName != "Nakuru 01" || e.DrinkName != "Stoney Tangawizi" {
		t.Errorf("enrichment: got %q/%q", e.BranchName, e.DrinkName)
	}
	if e.Quantity != 10 || e.Threshold != 25 {
		t.Errorf("numbers: got %d/%d, want 10/25", e.Quantity, e.Threshold)
	}
}

// Katalog gagal resolve -> label Unknown, scan tetap jalan.
func TestCheckLowStockDegradesOnUnknownCatalogRow(t *testing.T) {
	st := memory.New()
	cat := &catalog.Static{Branches: map[string]catalog.Branch{}, Drinks: map[string]catalog.Drink{}}
	ledger := inventory.NewLedger(st, st, cat, nil)
	ctx := context.Background()

	if err := st.SetLevel(ctx, "GONE", "DKX", 1); err != nil {
		t.Fatal(err)
	}
	if err := st.SetThreshold(ctx, "GONE", "DKX", 5); err != nil {
		t.Fatal(err)
	}

	entries, err := ledger.CheckLowStock(ctx)
	if err != nil {
		t.Fatalf("CheckLowStock: %v", err)
	}
	if len(entries) != 1 || entries[0].BranchName != "Unknown" || entries[0].DrinkName != "Unknown" {
		t.Errorf("got %+v, want Unknown placeholders", entries)
	}
}

func TestStockForBranch(t *testing.T) {
	ledger, _ := newTestLedger(t)
	ctx := context.Background()

	if err := ledger.SetLevel(ctx, "NKR01", "DK001", 12); err != nil {
		t.Fatal(err)
	}
	if err := ledger.SetLevel(ctx, "NKR01", "DK002", 0); err != nil {
		t.Fatal(err)
	}
	if err := ledger.SetLevel(ctx, "MSA01", "DK001", 99); err != nil {
		t.Fatal(err)
	}

	got, err := ledger.StockForBranch(ctx, "NKR01")
	if err != nil {
		t.Fatalf("StockForBranch: %v", err)
	}
	if len(got) != 2 || got["DK001"] != 12 || got["DK002"] != 0 {
		t.Errorf("got %+v", got)
	}
}
