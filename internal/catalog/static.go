package catalog

import (
	"context"

	"github.com/ariefcatur/go-drink-enterprise/internal/faults"
)

// Static: lookup dari map di memory. Dipakai di test dan tooling lokal.
type Static struct {
	Branches map[string]Branch
	Drinks   map[string]Drink
}

func (s *Static) FindBranch(ctx context.Context, id string) (Branch, error) {
	if b, ok := s.Branches[id]; ok {
		return b, nil
	}
	return Branch{}, faults.NotFoundf("branch %s not found", id)
}

func (s *Static) FindDrink(ctx context.Context, id string) (Drink, error) {
	if d, ok := s.Drinks[id]; ok {
		return d, nil
	}
	return Drink{}, faults.NotFoundf("drink %s not found", id)
}
