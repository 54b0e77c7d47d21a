package inventory

import (
	"context"

	"go.uber.org/zap"
)

// CheckLowStock: scan seluruh network, enrich nama branch/drink buat
// display. Lookup katalog yang gagal cuma bikin label "Unknown", scan
// tetap jalan.
func (l *Ledger) CheckLowStock(ctx context.Context) ([]LowStockEntry, error) {
	items, err := l.ScanBelowThreshold(ctx)
	if err != nil {
		return nil, err
	}
	entries := make([]LowStockEntry, 0, len(items))
	for _, it := range items {
		entry := LowStockEntry{
			BranchID:   it.BranchID,
			BranchName: "Unknown",
			DrinkID:    it.DrinkID,
			DrinkName:  "Unknown",
			Quantity:   it.Quantity,
			Threshold:  it.MinimumThreshold,
		}
		if b, err := l.cat.FindBranch(ctx, it.BranchID); err == nil {
			entry.BranchName = b.Name
		}
		if d, err := l.cat.FindDrink(ctx, it.DrinkID); err == nil {
			entry.DrinkName = d.Name
		}
		entries = append(entries, entry)
	}
	if len(entries) > 0 {
		l.log.Warn("low stock detected", zap.Int("rows", len(entries)))
	}
	return entries, nil
}
