package orders

import (
	"strings"
	"time"

	"github.com/ariefcatur/go-drink-enterprise/internal/faults"
	"github.com/google/uuid"
)

// Order immutable setelah commit; tidak ada update/delete.
type Order struct {
	ID         string      `json:"id"`
	CustomerID string      `json:"customer_id"`
	BranchID   string      `json:"branch_id"`
	PlacedAt   time.Time   `json:"placed_at"`
	Items      []OrderItem `json:"items"`
	TotalCents int         `json:"total_cents"`
}

type OrderItem struct {
	OrderID    string `json:"order_id"`
	DrinkID    string `json:"drink_id"`
	DrinkName  string `json:"drink_name"`
	Qty        int    `json:"qty"`
	PriceCents int    `json:"price_cents"` // snapshot harga saat order; perubahan katalog belakangan tidak berpengaruh
}

// NewOrderItem: validasi di konstruksi, bukan pas persist.
func NewOrderItem(drinkID, drinkName string, qty, priceCents int) (OrderItem, error) {
	if qty <= 0 {
		return OrderItem{}, faults.InvalidArgumentf("quantity for %s must be positive", drinkID)
	}
	if priceCents < 0 {
		return OrderItem{}, faults.InvalidArgumentf("price for %s cannot be negative", drinkID)
	}
	return OrderItem{DrinkID: drinkID, DrinkName: drinkName, Qty: qty, PriceCents: priceCents}, nil
}

func (it OrderItem) LineTotalCents() int { return it.Qty * it.PriceCents }

// NewOrderID: "ORD-" + 12 karakter hex uppercase dari uuid.
func NewOrderID() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "ORD-" + strings.ToUpper(raw[:12])
}
