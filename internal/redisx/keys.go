package redisx

import "time"

const (
	// Cache order lengkap: order:%s -> JSON order (header+items)
	KeyOrder = "order:%s"

	// Cache lookup katalog: catalog:branch:%s / catalog:drink:%s
	KeyCatalogBranch = "catalog:branch:%s"
	KeyCatalogDrink  = "catalog:drink:%s"

	// Dedup alert low-stock: dedup:%s:%s (service, branch_id:drink_id)
	KeyDedup = "dedup:%s:%s"
)

var (
	TTLOrderCache   = 5 * time.Minute
	TTLCatalogCache = 10 * time.Minute
	TTLDedup        = 6 * time.Hour
)
