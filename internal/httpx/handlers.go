package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ariefcatur/go-drink-enterprise/internal/events"
	"github.com/ariefcatur/go-drink-enterprise/internal/faults"
	"github.com/ariefcatur/go-drink-enterprise/internal/inventory"
	kafkax "github.com/ariefcatur/go-drink-enterprise/internal/kafka"
	"github.com/ariefcatur/go-drink-enterprise/internal/metricsx"
	"github.com/ariefcatur/go-drink-enterprise/internal/orders"
	"github.com/ariefcatur/go-drink-enterprise/internal/redisx"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
)

// Handler: surface HTTP di atas engine. Redis/producer/metrics boleh nil
// (di test dan tooling lokal jalan tanpa infra).
type Handler struct {
	Orders           *orders.Service
	Ledger           *inventory.Ledger
	Redis            *redis.Client
	OrderProducer    *kafkax.Producer
	TransferProducer *kafkax.Producer
	Metrics          *metricsx.Metrics
	Service          string
	HQBranchID       string
}

type PlaceOrderReq struct {
	CustomerID string               `json:"customer_id"`
	BranchID   string               `json:"branch_id"`
	Items      []inventory.LineItem `json:"items"`
}

type TransferReq struct {
	SourceBranchID string `json:"source_branch_id"`
	DestBranchID   string `json:"dest_branch_id"`
	DrinkID        string `json:"drink_id"`
	Qty            int    `json:"qty"`
}

type RestockReq struct {
	BranchID string `json:"branch_id"`
	DrinkID  string `json:"drink_id"`
	Qty      int    `json:"qty"`
}

type SetStockReq struct {
	BranchID string `json:"branch_id"`
	DrinkID  string `json:"drink_id"`
	Quantity int    `json:"quantity"`
}

type SetThresholdReq struct {
	BranchID  string `json:"branch_id"`
	DrinkID   string `json:"drink_id"`
	Threshold int    `json:"threshold"`
}

func (h *Handler) Register(r *chi.Mux) {
	r.Post("/orders", h.placeOrder)
	r.Get("/orders/{id}", h.getOrder)
	r.Get("/branches/{id}/orders", h.ordersByBranch)
	r.Get("/customers/{id}/orders", h.ordersByCustomer)
	r.Post("/stock/transfer", h.transfer)
	r.Post("/stock/restock", h.restock)
	r.Put("/stock/level", h.setLevel)
	r.Put("/stock/threshold", h.setThreshold)
	r.Get("/stock/level", h.getLevel)
	r.Get("/branches/{id}/stock", h.stockByBranch)
	r.Get("/stock/low", h.lowStock)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeErr: map kind error domain -> status HTTP, tanpa nge-mask kind.
func writeErr(w http.ResponseWriter, err error) {
	kind := faults.KindOf(err)
	body := map[string]any{"error": err.Error(), "kind": kind.String()}

	var is *faults.InsufficientStock
	if errors.As(err, &is) {
		body["branch_id"] = is.BranchID
		body["drink_id"] = is.DrinkID
		body["available"] = is.Available
		body["requested"] = is.Requested
	}

	status := http.StatusInternalServerError
	switch kind {
	case faults.KindInvalidArgument:
		status = http.StatusBadRequest
	case faults.KindNotFound:
		status = http.StatusNotFound
	case faults.KindInsufficientStock, faults.KindConflict:
		status = http.StatusConflict
	case faults.KindStorageFailure:
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, body)
}

func statusLabel(err error) string {
	if err == nil {
		return "ok"
	}
	switch faults.KindOf(err) {
	case faults.KindInsufficientStock:
		return "insufficient_stock"
	case faults.KindNotFound:
		return "not_found"
	case faults.KindInvalidArgument:
		return "invalid_argument"
	case faults.KindStorageFailure:
		return "storage_failure"
	default:
		return "error"
	}
}

func (h *Handler) placeOrder(w http.ResponseWriter, r *http.Request) {
	var req PlaceOrderReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	start := time.Now()
	order, err := h.Orders.PlaceOrder(ctx, req.CustomerID, req.BranchID, req.Items)
	if h.Metrics != nil {
		h.Metrics.OrdersPlaced.WithLabelValues(statusLabel(err)).Inc()
		h.Metrics.SettleLatency.WithLabelValues("place_order").Observe(float64(time.Since(start).Milliseconds()))
	}
	if err != nil {
		writeErr(w, err)
		return
	}

	h.cacheOrder(ctx, order)
	h.publishOrderPlaced(order, r.Header.Get("X-Request-Id"))
	writeJSON(w, http.StatusCreated, order)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	// 1) coba cache; order immutable jadi cache hit selalu valid
	if h.Redis != nil {
		key := fmt.Sprintf(redisx.KeyOrder, orderID)
		if s, err := h.Redis.Get(ctx, key).Result(); err == nil && s != "" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(s))
			return
		}
	}

	// 2) fallback DB
	order, err := h.Orders.GetOrder(ctx, orderID)
	if err != nil {
		writeErr(w, err)
		return
	}
	h.cacheOrder(ctx, order)
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) cacheOrder(ctx context.Context, o orders.Order) {
	if h.Redis == nil {
		return
	}
	if b, err := json.Marshal(o); err == nil {
		_ = h.Redis.Set(ctx, fmt.Sprintf(redisx.KeyOrder, o.ID), b, redisx.TTLOrderCache).Err()
	}
}

func (h *Handler) ordersByBranch(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	out, err := h.Orders.OrdersByBranch(ctx, chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) ordersByCustomer(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	out, err := h.Orders.OrdersByCustomer(ctx, chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) transfer(w http.ResponseWriter, r *http.Request) {
	var req TransferReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	h.doTransfer(w, r, req)
}

// restock: transfer dari HQ ke branch tujuan, HQ-nya dari config.
func (h *Handler) restock(w http.ResponseWriter, r *http.Request) {
	var req RestockReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	h.doTransfer(w, r, TransferReq{
		SourceBranchID: h.HQBranchID,
		DestBranchID:   req.BranchID,
		DrinkID:        req.DrinkID,
		Qty:            req.Qty,
	})
}

func (h *Handler) doTransfer(w http.ResponseWriter, r *http.Request, req TransferReq) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	err := h.Ledger.Transfer(ctx, req.SourceBranchID, req.DestBranchID, req.DrinkID, req.Qty)
	if h.Metrics != nil {
		h.Metrics.Transfers.WithLabelValues(statusLabel(err)).Inc()
	}
	if err != nil {
		writeErr(w, err)
		return
	}
	h.publishTransferred(req, r.Header.Get("X-Request-Id"))
	writeJSON(w, http.StatusOK, map[string]string{"status": "transferred"})
}

func (h *Handler) setLevel(w http.ResponseWriter, r *http.Request) {
	var req SetStockReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if err := h.Ledger.SetLevel(ctx, req.BranchID, req.DrinkID, req.Quantity); err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) setThreshold(w http.ResponseWriter, r *http.Request) {
	var req SetThresholdReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if err := h.Ledger.SetThreshold(ctx, req.BranchID, req.DrinkID, req.Threshold); err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) getLevel(w http.ResponseWriter, r *http.Request) {
	branchID := r.URL.Query().Get("branch_id")
	drinkID := r.URL.Query().Get("drink_id")

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	qty, err := h.Ledger.GetLevel(ctx, branchID, drinkID)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"branch_id": branchID, "drink_id": drinkID, "quantity": qty,
	})
}

func (h *Handler) stockByBranch(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	out, err := h.Ledger.StockForBranch(ctx, chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) lowStock(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	out, err := h.Ledger.CheckLowStock(ctx)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) publishOrderPlaced(o orders.Order, trace string) {
	if h.OrderProducer == nil {
		return
	}
	items := make([]events.OrderItemPayload, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, events.OrderItemPayload{DrinkID: it.DrinkID, Qty: it.Qty, PriceCents: it.PriceCents})
	}
	ev := events.Envelope{
		EventID:       uuid.NewString(),
		EventType:     events.EventOrderPlaced,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      h.Service,
		TraceID:       trace,
		CorrelationID: o.ID,
		Payload: kafkax.MustMarshal(events.OrderPlacedPayload{
			OrderID:    o.ID,
			CustomerID: o.CustomerID,
			BranchID:   o.BranchID,
			Items:      items,
			TotalCents: o.TotalCents,
		}),
	}
	h.OrderProducer.Publish(events.PartitionKey(o.ID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(events.EventOrderPlaced)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}

func (h *Handler) publishTransferred(req TransferReq, trace string) {
	if h.TransferProducer == nil {
		return
	}
	corr := req.SourceBranchID + ":" + req.DrinkID
	ev := events.Envelope{
		EventID:       uuid.NewString(),
		EventType:     events.EventStockTransferred,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      h.Service,
		TraceID:       trace,
		CorrelationID: corr,
		Payload: kafkax.MustMarshal(events.StockTransferredPayload{
			SourceBranchID: req.SourceBranchID,
			DestBranchID:   req.DestBranchID,
			DrinkID:        req.DrinkID,
			Qty:            req.Qty,
		}),
	}
	h.TransferProducer.Publish(events.PartitionKey(corr), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(events.EventStockTransferred)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}
