// Package catalog: lookup branch & drink. Read-only dari sisi engine;
// CRUD katalog diurus layer lain.
package catalog

import "context"

type Branch struct {
	ID       string
	Name     string
	Location string
}

type Drink struct {
	ID         string
	Name       string
	Brand      string
	PriceCents int
}

type Lookup interface {
	// FindBranch / FindDrink balikin faults.NotFound kalau id tidak dikenal.
	FindBranch(ctx context.Context, id string) (Branch, error)
	FindDrink(ctx context.Context, id string) (Drink, error)
}
