package inventory

import (
	"context"

	"github.com/ariefcatur/go-drink-enterprise/internal/faults"
	"go.uber.org/zap"
)

// Transfer: pindahkan qty dari source ke destination dalam satu tx milik
// sendiri (tidak ada caller yang compose transfer dengan write lain).
// Row destination dibuat kalau belum ada; threshold-nya ikut source —
// kenyamanan operasional, boleh di-override lewat SetThreshold.
func (l *Ledger) Transfer(ctx context.Context, sourceBranchID, destBranchID, drinkID string, qty int) error {
	if qty <= 0 {
		return faults.InvalidArgumentf("transfer quantity must be positive")
	}
	if sourceBranchID == destBranchID {
		return faults.InvalidArgumentf("source and destination branches are the same")
	}
	// prekondisi katalog dicek sebelum mutasi apa pun
	if err := l.validateBranchAndDrink(ctx, sourceBranchID, drinkID); err != nil {
		return err
	}
	if _, err := l.cat.FindBranch(ctx, destBranchID); err != nil {
		return err
	}

	tx, err := l.db.Begin(ctx)
	if err != nil {
		return faults.Storage("begin transfer tx", err)
	}
	// rollback no-op setelah commit; kalau rollback-nya sendiri gagal,
	// error transfer yang asli tetap yang sampai ke caller.
	defer func() { _ = tx.Rollback(ctx) }()

	source, ok, err := l.store.GetForUpdate(ctx, tx, sourceBranchID, drinkID)
	if err != nil {
		return err
	}
	if !ok || source.Quantity < qty {
		available := 0
		if ok {
			available = source.Quantity
		}
		return &faults.InsufficientStock{
			BranchID:  sourceBranchID,
			DrinkID:   drinkID,
			Available: available,
			Requested: qty,
		}
	}
	source.Quantity -= qty
	if err := l.store.Put(ctx, tx, source); err != nil {
		return err
	}

	dest, ok, err := l.store.GetForUpdate(ctx, tx, destBranchID, drinkID)
	if err != nil {
		return err
	}
	if !ok {
		dest = StockItem{BranchID: destBranchID, DrinkID: drinkID, MinimumThreshold: source.MinimumThreshold}
	}
	dest.Quantity += qty
	if err := l.store.Put(ctx, tx, dest); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return faults.Storage("commit transfer", err)
	}
	l.log.Info("stock transferred",
		zap.String("source_branch_id", sourceBranchID),
		zap.String("dest_branch_id", destBranchID),
		zap.String("drink_id", drinkID),
		zap.Int("qty", qty))
	return nil
}
