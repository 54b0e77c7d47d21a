package orders

import (
	"context"

	"github.com/ariefcatur/go-drink-enterprise/internal/store"
)

// Store: row primitives utk order header + items. Semua query baca
// selalu eager-load items — kontrak satu arah, tidak ada varian "header
// doang".
type Store interface {
	InsertHeader(ctx context.Context, tx store.Tx, o Order) error
	InsertItems(ctx context.Context, tx store.Tx, items []OrderItem) error
	FindByID(ctx context.Context, id string) (Order, error)
	OrdersByBranch(ctx context.Context, branchID string) ([]Order, error)
	OrdersByCustomer(ctx context.Context, customerID string) ([]Order, error)
}
