package postgres

import (
	"context"
	"errors"

	"github.com/ariefcatur/go-drink-enterprise/internal/catalog"
	"github.com/ariefcatur/go-drink-enterprise/internal/faults"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CatalogRepo struct{ DB *pgxpool.Pool }

func (r *CatalogRepo) FindBranch(ctx context.Context, id string) (catalog.Branch, error) {
	var b catalog.Branch
	err := r.DB.QueryRow(ctx, `
		SELECT id, name, location FROM branches WHERE id=$1`, id).
		Scan(&b.ID, &b.Name, &b.Location)
	if errors.Is(err, pgx.ErrNoRows) {
		return catalog.Branch{}, faults.NotFoundf("branch %s not found", id)
	}
	if err != nil {
		return catalog.Branch{}, faults.Storage("find branch", err)
	}
	return b, nil
}

func (r *CatalogRepo) FindDrink(ctx context.Context, id string) (catalog.Drink, error) {
	var d catalog.Drink
	err := r.DB.QueryRow(ctx, `
		SELECT id, name, brand, price_cents FROM drinks WHERE id=$1`, id).
		Scan(&d.ID, &d.Name, &d.Brand, &d.PriceCents)
	if errors.Is(err, pgx.ErrNoRows) {
		return catalog.Drink{}, faults.NotFoundf("drink %s not found", id)
	}
	if err != nil {
		return catalog.Drink{}, faults.Storage("find drink", err)
	}
	return d, nil
}

var _ catalog.Lookup = (*CatalogRepo)(nil)
