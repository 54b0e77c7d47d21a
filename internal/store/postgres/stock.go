package postgres

import (
	"context"
	"errors"

	"github.com/ariefcatur/go-drink-enterprise/internal/faults"
	"github.com/ariefcatur/go-drink-enterprise/internal/inventory"
	"github.com/ariefcatur/go-drink-enterprise/internal/store"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type StockRepo struct{ DB *pgxpool.Pool }

func (r *StockRepo) Get(ctx context.Context, branchID, drinkID string) (inventory.StockItem, bool, error) {
	var it inventory.StockItem
	err := r.DB.QueryRow(ctx, `
		SELECT branch_id, drink_id, quantity, minimum_threshold
		FROM stock_items WHERE branch_id=$1 AND drink_id=$2`, branchID, drinkID).
		Scan(&it.BranchID, &it.DrinkID, &it.Quantity, &it.MinimumThreshold)
	if errors.Is(err, pgx.ErrNoRows) {
		return inventory.StockItem{}, false, nil
	}
	if err != nil {
		return inventory.StockItem{}, false, faults.Storage("get stock", err)
	}
	return it, true, nil
}

func (r *StockRepo) GetForUpdate(ctx context.Context, tx store.Tx, branchID, drinkID string) (inventory.StockItem, bool, error) {
	t, err := pgxTx(tx)
	if err != nil {
		return inventory.StockItem{}, false, err
	}
	var it inventory.StockItem
	err = t.QueryRow(ctx, `
		SELECT branch_id, drink_id, quantity, minimum_threshold
		FROM stock_items WHERE branch_id=$1 AND drink_id=$2
		FOR UPDATE`, branchID, drinkID).
		Scan(&it.BranchID, &it.DrinkID, &it.Quantity, &it.MinimumThreshold)
	if errors.Is(err, pgx.ErrNoRows) {
		return inventory.StockItem{}, false, nil
	}
	if err != nil {
		return inventory.StockItem{}, false, faults.Storage("lock stock row", err)
	}
	return it, true, nil
}

func (r *StockRepo) Put(ctx context.Context, tx store.Tx, item inventory.StockItem) error {
	t, err := pgxTx(tx)
	if err != nil {
		return err
	}
	_, err = t.Exec(ctx, `
		INSERT INTO stock_items(branch_id, drink_id, quantity, minimum_threshold)
		VALUES ($1,$2,$3,$4)
		ON CONFLICT (branch_id, drink_id)
		DO UPDATE SET quantity=EXCLUDED.quantity, minimum_threshold=EXCLUDED.minimum_threshold`,
		item.BranchID, item.DrinkID, item.Quantity, item.MinimumThreshold)
	return faults.Storage("put stock", err)
}

// SetLevel: upsert quantity, threshold existing dipertahankan (default 0).
func (r *StockRepo) SetLevel(ctx context.Context, branchID, drinkID string, qty int) error {
	_, err := r.DB.Exec(ctx, `
		INSERT INTO stock_items(branch_id, drink_id, quantity, minimum_threshold)
		VALUES ($1,$2,$3,0)
		ON CONFLICT (branch_id, drink_id)
		DO UPDATE SET quantity=EXCLUDED.quantity`, branchID, drinkID, qty)
	return faults.Storage("set stock level", err)
}

func (r *StockRepo) SetThreshold(ctx context.Context, branchID, drinkID string, threshold int) error {
	_, err := r.DB.Exec(ctx, `
		INSERT INTO stock_items(branch_id, drink_id, quantity, minimum_threshold)
		VALUES ($1,$2,0,$3)
		ON CONFLICT (branch_id, drink_id)
		DO UPDATE SET minimum_threshold=EXCLUDED.minimum_threshold`, branchID, drinkID, threshold)
	return faults.Storage("set stock threshold", err)
}

func (r *StockRepo) ByBranch(ctx context.Context, branchID string) ([]inventory.StockItem, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT branch_id, drink_id, quantity, minimum_threshold
		FROM stock_items WHERE branch_id=$1 ORDER BY drink_id`, branchID)
	if err != nil {
		return nil, faults.Storage("stock by branch", err)
	}
	defer rows.Close()
	return scanStockRows(rows)
}

func (r *StockRepo) LowStock(ctx context.Context) ([]inventory.StockItem, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT branch_id, drink_id, quantity, minimum_threshold
		FROM stock_items
		WHERE quantity < minimum_threshold AND minimum_threshold > 0
		ORDER BY branch_id, drink_id`)
	if err != nil {
		return nil, faults.Storage("low stock scan", err)
	}
	defer rows.Close()
	return scanStockRows(rows)
}

func scanStockRows(rows pgx.Rows) ([]inventory.StockItem, error) {
	var out []inventory.StockItem
	for rows.Next() {
		var it inventory.StockItem
		if err := rows.Scan(&it.BranchID, &it.DrinkID, &it.Quantity, &it.MinimumThreshold); err != nil {
			return nil, faults.Storage("scan stock row", err)
		}
		out = append(out, it)
	}
	return out, faults.Storage("stock rows", rows.Err())
}

var _ inventory.Store = (*StockRepo)(nil)
