package catalog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ariefcatur/go-drink-enterprise/internal/redisx"
	"github.com/redis/go-redis/v9"
)

// Cached: read-through cache di depan lookup lain. Katalog jarang berubah,
// TTL pendek sudah cukup; NotFound tidak di-cache (negatif cache bikin
// drink baru telat kebaca).
type Cached struct {
	Next  Lookup
	Redis *redis.Client
}

func (c *Cached) FindBranch(ctx context.Context, id string) (Branch, error) {
	key := fmt.Sprintf(redisx.KeyCatalogBranch, id)
	if s, err := c.Redis.Get(ctx, key).Result(); err == nil && s != "" {
		var b Branch
		if json.Unmarshal([]byte(s), &b) == nil {
			return b, nil
		}
	}
	b, err := c.Next.FindBranch(ctx, id)
	if err != nil {
		return Branch{}, err
	}
	if raw, err := json.Marshal(b); err == nil {
		_ = c.Redis.Set(ctx, key, raw, redisx.TTLCatalogCache).Err()
	}
	return b, nil
}

func (c *Cached) FindDrink(ctx context.Context, id string) (Drink, error) {
	key := fmt.Sprintf(redisx.KeyCatalogDrink, id)
	if s, err := c.Redis.Get(ctx, key).Result(); err == nil && s != "" {
		var d Drink
		if json.Unmarshal([]byte(s), &d) == nil {
			return d, nil
		}
	}
	d, err := c.Next.FindDrink(ctx, id)
	if err != nil {
		return Drink{}, err
	}
	if raw, err := json.Marshal(d); err == nil {
		_ = c.Redis.Set(ctx, key, raw, redisx.TTLCatalogCache).Err()
	}
	return d, nil
}

var _ Lookup = (*Cached)(nil)
