package memory

import (
	"context"
	"testing"

	"github.com/ariefcatur/go-drink-enterprise/internal/inventory"
)

func TestPendingWritesInvisibleUntilCommit(t *testing.T) {
	s := New()
	ctx := context.Background()

	tx, err := s.Begin(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Put(ctx, tx, inventory.StockItem{BranchID: "B", DrinkID: "D", Quantity: 9}); err != nil {
		t.Fatal(err)
	}

	if _, ok, _ := s.Get(ctx, "B", "D"); ok {
		t.Fatal("pending write visible before commit")
	}
	if err := tx.Commit(ctx); err != nil {
		t.Fatal(err)
	}
	it, ok, _ := s.Get(ctx, "B", "D")
	if !ok || it.Quantity != 9 {
		t.Fatalf("after commit: %+v ok=%v", it, ok)
	}
}

func TestRollbackDiscardsPending(t *testing.T) {
	s := New()
	ctx := context.Background()

	tx, _ := s.Begin(ctx)
	_ = s.Put(ctx, tx, inventory.StockItem{BranchID: "B", DrinkID: "D", Quantity: 9})
	if err := tx.Rollback(ctx); err != nil {
		t.Fatal(err)
	}

	if _, ok, _ := s.Get(ctx, "B", "D"); ok {
		t.Fatal("rolled back write visible")
	}
}

// Pola defer rollback: rollback setelah commit harus no-op tanpa error.
func TestRollbackAfterCommitIsNoop(t *testing.T) {
	s := New()
	ctx := context.Background()

	tx, _ := s.Begin(ctx)
	_ = s.Put(ctx, tx, inventory.StockItem{BranchID: "B", DrinkID: "D", Quantity: 1})
	if err := tx.Commit(ctx); err != nil {
		t.Fatal(err)
	}
	if err := tx.Rollback(ctx); err != nil {
		t.Fatalf("rollback after commit: %v", err)
	}

	if it, ok, _ := s.Get(ctx, "B", "D"); !ok || it.Quantity != 1 {
		t.Fatalf("commit undone by late rollback: %+v ok=%v", it, ok)
	}
}

func TestDoubleCommitFails(t *testing.T) {
	s := New()
	ctx := context.Background()

	tx, _ := s.Begin(ctx)
	if err := tx.Commit(ctx); err != nil {
		t.Fatal(err)
	}
	if err := tx.Commit(ctx); err == nil {
		t.Fatal("second commit must fail")
	}
}

// GetForUpdate dalam tx yang sama harus baca pending write sendiri.
func TestGetForUpdateSeesOwnPending(t *testing.T) {
	s := New()
	ctx := context.Background()

	tx, _ := s.Begin(ctx)
	_ = s.Put(ctx, tx, inventory.StockItem{BranchID: "B", DrinkID: "D", Quantity: 5})
	it, ok, err := s.GetForUpdate(ctx, tx, "B", "D")
	if err != nil || !ok || it.Quantity != 5 {
		t.Fatalf("own pending read: %+v ok=%v err=%v", it, ok, err)
	}
	_ = tx.Rollback(ctx)
}

// Row lock dipegang sampai tx selesai: tx kedua baru dapat row setelah
// tx pertama commit, dan membaca nilai yang sudah di-commit.
func TestRowLockSerializesTransactions(t *testing.T) {
	s := New()
	ctx := context.Background()

	tx1, _ := s.Begin(ctx)
	it, _, _ := s.GetForUpdate(ctx, tx1, "B", "D")
	it.BranchID, it.DrinkID = "B", "D"
	it.Quantity = 10
	_ = s.Put(ctx, tx1, it)

	read := make(chan int)
	go func() {
		tx2, _ := s.Begin(ctx)
		got, _, _ := s.GetForUpdate(ctx, tx2, "B", "D") // blok sampai tx1 selesai
		_ = tx2.Rollback(ctx)
		read <- got.Quantity
	}()

	if err := tx1.Commit(ctx); err != nil {
		t.Fatal(err)
	}
	if got := <-read; got != 10 {
		t.Fatalf("second tx read %d, want committed 10", got)
	}
}
