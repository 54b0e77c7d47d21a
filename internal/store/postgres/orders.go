package postgres

import (
	"context"
	"errors"

	"github.com/ariefcatur/go-drink-enterprise/internal/faults"
	"github.com/ariefcatur/go-drink-enterprise/internal/orders"
	"github.com/ariefcatur/go-drink-enterprise/internal/store"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type OrderRepo struct{ DB *pgxpool.Pool }

func (r *OrderRepo) InsertHeader(ctx context.Context, tx store.Tx, o orders.Order) error {
	t, err := pgxTx(tx)
	if err != nil {
		return err
	}
	_, err = t.Exec(ctx, `
		INSERT INTO orders(id, customer_id, branch_id, placed_at, total_cents)
		VALUES ($1,$2,$3,$4,$5)`,
		o.ID, o.CustomerID, o.BranchID, o.PlacedAt, o.TotalCents)
	return faults.Storage("insert order header", err)
}

func (r *OrderRepo) InsertItems(ctx context.Context, tx store.Tx, items []orders.OrderItem) error {
	t, err := pgxTx(tx)
	if err != nil {
		return err
	}
	for _, it := range items {
		_, err := t.Exec(ctx, `
			INSERT INTO order_items(order_id, drink_id, drink_name, qty, price_cents)
			VALUES ($1,$2,$3,$4,$5)`,
			it.OrderID, it.DrinkID, it.DrinkName, it.Qty, it.PriceCents)
		if err != nil {
			return faults.Storage("insert order item", err)
		}
	}
	return nil
}

func (r *OrderRepo) FindByID(ctx context.Context, id string) (orders.Order, error) {
	var o orders.Order
	err := r.DB.QueryRow(ctx, `
		SELECT id, customer_id, branch_id, placed_at, total_cents
		FROM orders WHERE id=$1`, id).
		Scan(&o.ID, &o.CustomerID, &o.BranchID, &o.PlacedAt, &o.TotalCents)
	if errors.Is(err, pgx.ErrNoRows) {
		return orders.Order{}, faults.NotFoundf("order %s not found", id)
	}
	if err != nil {
		return orders.Order{}, faults.Storage("find order", err)
	}
	if o.Items, err = r.itemsFor(ctx, o.ID); err != nil {
		return orders.Order{}, err
	}
	return o, nil
}

func (r *OrderRepo) OrdersByBranch(ctx context.Context, branchID string) ([]orders.Order, error) {
	return r.list(ctx, `
		SELECT id, customer_id, branch_id, placed_at, total_cents
		FROM orders WHERE branch_id=$1 ORDER BY placed_at DESC`, branchID)
}

func (r *OrderRepo) OrdersByCustomer(ctx context.Context, customerID string) ([]orders.Order, error) {
	return r.list(ctx, `
		SELECT id, customer_id, branch_id, placed_at, total_cents
		FROM orders WHERE customer_id=$1 ORDER BY placed_at DESC`, customerID)
}

func (r *OrderRepo) list(ctx context.Context, sql string, arg any) ([]orders.Order, error) {
	rows, err := r.DB.Query(ctx, sql, arg)
	if err != nil {
		return nil, faults.Storage("list orders", err)
	}
	defer rows.Close()

	var out []orders.Order
	for rows.Next() {
		var o orders.Order
		if err := rows.Scan(&o.ID, &o.CustomerID, &o.BranchID, &o.PlacedAt, &o.TotalCents); err != nil {
			return nil, faults.Storage("scan order", err)
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, faults.Storage("order rows", err)
	}
	// selalu eager-load items
	for i := range out {
		if out[i].Items, err = r.itemsFor(ctx, out[i].ID); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *OrderRepo) itemsFor(ctx context.Context, orderID string) ([]orders.OrderItem, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT order_id, drink_id, drink_name, qty, price_cents
		FROM order_items WHERE order_id=$1 ORDER BY id`, orderID)
	if err != nil {
		return nil, faults.Storage("order items", err)
	}
	defer rows.Close()

	var items []orders.OrderItem
	for rows.Next() {
		var it orders.OrderItem
		if err := rows.Scan(&it.OrderID, &it.DrinkID, &it.DrinkName, &it.Qty, &it.PriceCents); err != nil {
			return nil, faults.Storage("scan order item", err)
		}
		items = append(items, it)
	}
	return items, faults.Storage("order item rows", rows.Err())
}

var _ orders.Store = (*OrderRepo)(nil)
