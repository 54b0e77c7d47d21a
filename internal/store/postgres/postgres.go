// Package postgres: implementasi persistence boundary di atas pgx.
// Row lock-nya FOR UPDATE, jadi dua sale konkuren pada row yang sama
// terserialisasi oleh database.
package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/ariefcatur/go-drink-enterprise/internal/faults"
	"github.com/ariefcatur/go-drink-enterprise/internal/store"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	cfg.MaxConns = 8
	cfg.MinConns = 1
	cfg.HealthCheckPeriod = 30 * time.Second
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

type DB struct{ Pool *pgxpool.Pool }

func (d *DB) Begin(ctx context.Context) (store.Tx, error) {
	tx, err := d.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	return &Tx{tx: tx}, nil
}

type Tx struct{ tx pgx.Tx }

func (t *Tx) Commit(ctx context.Context) error   { return t.tx.Commit(ctx) }
func (t *Tx) Rollback(ctx context.Context) error { return t.tx.Rollback(ctx) }

// pgxTx mengambil pgx.Tx dari handle generic; salah pasangan store/tx
// itu bug wiring, bukan kondisi runtime.
func pgxTx(tx store.Tx) (pgx.Tx, error) {
	t, ok := tx.(*Tx)
	if !ok {
		return nil, faults.Storage("tx handle", errNotPgxTx)
	}
	return t.tx, nil
}

var errNotPgxTx = errors.New("not a postgres transaction")

var _ store.Beginner = (*DB)(nil)
