// Package inventory adalah core engine: stock ledger + settlement sale
// & transfer. Semua mutasi stok lewat sini; konsistensi dijaga oleh
// read-check-write di bawah satu transaksi dengan row lock.
package inventory

import (
	"context"

	"github.com/ariefcatur/go-drink-enterprise/internal/catalog"
	"github.com/ariefcatur/go-drink-enterprise/internal/faults"
	"github.com/ariefcatur/go-drink-enterprise/internal/store"
	"go.uber.org/zap"
)

// Store: row primitives yang dibutuhkan ledger. Implementasi pgx di
// store/postgres (FOR UPDATE), in-memory di store/memory (per-key mutex).
type Store interface {
	// Get tanpa lock, buat read biasa.
	Get(ctx context.Context, branchID, drinkID string) (StockItem, bool, error)
	// GetForUpdate: baca + row lock di bawah tx. Lock dipegang sampai
	// tx commit/rollback supaya dua decrement konkuren terserialisasi.
	GetForUpdate(ctx context.Context, tx store.Tx, branchID, drinkID string) (StockItem, bool, error)
	// Put: upsert full row di bawah tx (dipanggil setelah GetForUpdate).
	Put(ctx context.Context, tx store.Tx, item StockItem) error
	// SetLevel / SetThreshold: upsert administratif, field satunya dipertahankan.
	SetLevel(ctx context.Context, branchID, drinkID string, qty int) error
	SetThreshold(ctx context.Context, branchID, drinkID string, threshold int) error
	ByBranch(ctx context.Context, branchID string) ([]StockItem, error)
	// LowStock: quantity < minimum_threshold AND minimum_threshold > 0.
	LowStock(ctx context.Context) ([]StockItem, error)
}

type Ledger struct {
	db    store.Beginner
	store Store
	cat   catalog.Lookup
	log   *zap.Logger
}

func NewLedger(db store.Beginner, st Store, cat catalog.Lookup, log *zap.Logger) *Ledger {
	if log == nil {
		log = zap.NewNop()
	}
	return &Ledger{db: db, store: st, cat: cat, log: log}
}

func (l *Ledger) validateBranchAndDrink(ctx context.Context, branchID, drinkID string) error {
	if _, err := l.cat.FindBranch(ctx, branchID); err != nil {
		return err
	}
	if _, err := l.cat.FindDrink(ctx, drinkID); err != nil {
		return err
	}
	return nil
}

// GetLevel: 0 kalau row belum pernah ada.
func (l *Ledger) GetLevel(ctx context.Context, branchID, drinkID string) (int, error) {
	if err := l.validateBranchAndDrink(ctx, branchID, drinkID); err != nil {
		return 0, err
	}
	item, ok, err := l.store.Get(ctx, branchID, drinkID)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, nil
	}
	return item.Quantity, nil
}

// SetLevel: set absolut (administratif). Threshold yang sudah ada tidak disentuh.
func (l *Ledger) SetLevel(ctx context.Context, branchID, drinkID string, qty int) error {
	if qty < 0 {
		return faults.InvalidArgumentf("quantity cannot be negative")
	}
	if err := l.validateBranchAndDrink(ctx, branchID, drinkID); err != nil {
		return err
	}
	if err := l.store.SetLevel(ctx, branchID, drinkID, qty); err != nil {
		return err
	}
	l.log.Info("stock level set",
		zap.String("branch_id", branchID), zap.String("drink_id", drinkID), zap.Int("quantity", qty))
	return nil
}

func (l *Ledger) SetThreshold(ctx context.Context, branchID, drinkID string, threshold int) error {
	if threshold < 0 {
		return faults.InvalidArgumentf("threshold cannot be negative")
	}
	if err := l.validateBranchAndDrink(ctx, branchID, drinkID); err != nil {
		return err
	}
	if err := l.store.SetThreshold(ctx, branchID, drinkID, threshold); err != nil {
		return err
	}
	l.log.Info("stock threshold set",
		zap.String("branch_id", branchID), zap.String("drink_id", drinkID), zap.Int("threshold", threshold))
	return nil
}

// Adjust: primitive atomik yang dipakai settlement. Harus jalan di bawah
// tx milik caller; read + conditional write satu transaksi, bukan read
// lepas lalu write lepas (lost update). Balikin quantity baru.
func (l *Ledger) Adjust(ctx context.Context, tx store.Tx, branchID, drinkID string, delta int) (int, error) {
	item, ok, err := l.store.GetForUpdate(ctx, tx, branchID, drinkID)
	if err != nil {
		return 0, err
	}
	if !ok {
		// absen = quantity 0, threshold 0
		item = StockItem{BranchID: branchID, DrinkID: drinkID}
	}
	next := item.Quantity + delta
	if next < 0 {
		return 0, &faults.InsufficientStock{
			BranchID:  branchID,
			DrinkID:   drinkID,
			Available: item.Quantity,
			Requested: -delta,
		}
	}
	item.Quantity = next
	if err := l.store.Put(ctx, tx, item); err != nil {
		return 0, err
	}
	return next, nil
}

// StockForBranch: map drink -> qty utk satu branch.
func (l *Ledger) StockForBranch(ctx context.Context, branchID string) (map[string]int, error) {
	if _, err := l.cat.FindBranch(ctx, branchID); err != nil {
		return nil, err
	}
	items, err := l.store.ByBranch(ctx, branchID)
	if err != nil {
		return nil, err
	}
	out := make(map[string]int, len(items))
	for _, it := range items {
		out[it.DrinkID] = it.Quantity
	}
	return out, nil
}

// ScanBelowThreshold: snapshot read-only, tidak nge-blok writer.
func (l *Ledger) ScanBelowThreshold(ctx context.Context) ([]StockItem, error) {
	return l.store.LowStock(ctx)
}
