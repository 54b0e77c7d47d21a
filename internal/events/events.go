// Package events: envelope + payload yang dipublish engine ke Kafka.
// Event bersifat notifikasi after-commit; kebenaran tetap di database.
package events

import (
	"encoding/json"
	"time"
)

const (
	EventOrderPlaced      = "OrderPlaced"
	EventStockTransferred = "StockTransferred"
	EventLowStock         = "LowStock"
)

type Envelope struct {
	EventID       string          `json:"event_id"`      // uuid
	EventType     string          `json:"event_type"`    // salah satu const di atas
	EventVersion  int             `json:"event_version"` // 1
	OccurredAt    time.Time       `json:"occurred_at"`   // RFC3339
	Producer      string          `json:"producer"`      // e.g., "drink-api"
	TraceID       string          `json:"trace_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"` // order_id / branch:drink
	Payload       json.RawMessage `json:"payload"`
}

// ---- Payload per event ----

type OrderItemPayload struct {
	DrinkID    string `json:"drink_id"`
	Qty        int    `json:"qty"`
	PriceCents int    `json:"price_cents"`
}

type OrderPlacedPayload struct {
	OrderID    string             `json:"order_id"`
	CustomerID string             `json:"customer_id"`
	BranchID   string             `json:"branch_id"`
	Items      []OrderItemPayload `json:"items"`
	TotalCents int                `json:"total_cents"`
}

type StockTransferredPayload struct {
	SourceBranchID string `json:"source_branch_id"`
	DestBranchID   string `json:"dest_branch_id"`
	DrinkID        string `json:"drink_id"`
	Qty            int    `json:"qty"`
}

type LowStockPayload struct {
	BranchID   string `json:"branch_id"`
	BranchName string `json:"branch_name"`
	DrinkID    string `json:"drink_id"`
	DrinkName  string `json:"drink_name"`
	Quantity   int    `json:"quantity"`
	Threshold  int    `json:"threshold"`
}
