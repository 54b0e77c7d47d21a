// Package memory: implementasi persistence boundary di memory. Dipakai
// test (CI tanpa Postgres) dan tooling lokal. Tanpa row lock bawaan
// database, disiplin konkurensinya ditiru pakai mutex per row yang
// dipegang sepanjang read-check-write sampai tx commit/rollback.
package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/ariefcatur/go-drink-enterprise/internal/inventory"
	"github.com/ariefcatur/go-drink-enterprise/internal/orders"
	"github.com/ariefcatur/go-drink-enterprise/internal/store"
)

type rowKey struct{ branch, drink string }

type Store struct {
	mu     sync.Mutex
	stock  map[rowKey]inventory.StockItem
	locks  map[rowKey]*sync.Mutex
	orders map[string]orders.Order
}

func New() *Store {
	return &Store{
		stock:  make(map[rowKey]inventory.StockItem),
		locks:  make(map[rowKey]*sync.Mutex),
		orders: make(map[string]orders.Order),
	}
}

func (s *Store) Begin(ctx context.Context) (store.Tx, error) {
	return &Tx{
		s:            s,
		pendingStock: make(map[rowKey]inventory.StockItem),
		pendingItems: make(map[string][]orders.OrderItem),
		held:         make(map[rowKey]*sync.Mutex),
	}, nil
}

// Tx menampung pending writes; tidak ada yang kebaca dari luar sebelum
// Commit. Row lock dilepas di Commit/Rollback.
type Tx struct {
	s              *Store
	mu             sync.Mutex
	pendingStock   map[rowKey]inventory.StockItem
	pendingHeaders []orders.Order
	pendingItems   map[string][]orders.OrderItem
	held           map[rowKey]*sync.Mutex
	done           bool
}

var errTxDone = errors.New("transaction already closed")

func (t *Tx) Commit(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done {
		return errTxDone
	}
	t.s.mu.Lock()
	for k, it := range t.pendingStock {
		t.s.stock[k] = it
	}
	for _, h := range t.pendingHeaders {
		h.Items = append([]orders.OrderItem(nil), t.pendingItems[h.ID]...)
		t.s.orders[h.ID] = h
	}
	t.s.mu.Unlock()
	t.finish()
	return nil
}

func (t *Tx) Rollback(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done {
		return nil // rollback setelah commit itu no-op (pola defer rollback)
	}
	t.finish()
	return nil
}

func (t *Tx) finish() {
	for _, m := range t.held {
		m.Unlock()
	}
	t.held = make(map[rowKey]*sync.Mutex)
	t.done = true
}

// lockRow: ambil mutex per row; reentrant dalam satu tx.
func (t *Tx) lockRow(k rowKey) {
	if _, ok := t.held[k]; ok {
		return
	}
	t.s.mu.Lock()
	m, ok := t.s.locks[k]
	if !ok {
		m = &sync.Mutex{}
		t.s.locks[k] = m
	}
	t.s.mu.Unlock()
	m.Lock() // blok sampai tx lain yang pegang row ini selesai
	t.held[k] = m
}

func asTx(tx store.Tx) (*Tx, error) {
	t, ok := tx.(*Tx)
	if !ok {
		return nil, errors.New("not a memory transaction")
	}
	return t, nil
}
