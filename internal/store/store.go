// Package store mendefinisikan boundary transaksi. Pemilik unit of work
// (order placement, transfer) yang Begin + Commit/Rollback; komponen yang
// cuma terima Tx sebagai parameter dilarang commit/rollback sendiri.
package store

import "context"

type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

type Beginner interface {
	Begin(ctx context.Context) (Tx, error)
}
