package inventory

import (
	"context"

	"github.com/ariefcatur/go-drink-enterprise/internal/faults"
	"github.com/ariefcatur/go-drink-enterprise/internal/store"
	"go.uber.org/zap"
)

// SettleSale: decrement stok utk semua line di bawah tx milik caller.
// Komponen ini TIDAK commit/rollback — boundary transaksi punya caller
// (order placement). Fail fast di error pertama; efek line sebelumnya
// tetap pending di tx yang sama dan dibuang caller via rollback, jadi
// tidak pernah ada partial sale yang kebaca dari luar.
func (l *Ledger) SettleSale(ctx context.Context, tx store.Tx, branchID string, lines []LineItem) error {
	if tx == nil {
		return faults.InvalidArgumentf("settle sale requires a transaction")
	}
	if _, err := l.cat.FindBranch(ctx, branchID); err != nil {
		return err
	}
	for _, line := range lines {
		if line.Qty <= 0 {
			return faults.InvalidArgumentf("quantity for %s must be positive", line.DrinkID)
		}
		if _, err := l.cat.FindDrink(ctx, line.DrinkID); err != nil {
			return err
		}
		if _, err := l.Adjust(ctx, tx, branchID, line.DrinkID, -line.Qty); err != nil {
			return err
		}
	}
	l.log.Debug("sale settled", zap.String("branch_id", branchID), zap.Int("lines", len(lines)))
	return nil
}
