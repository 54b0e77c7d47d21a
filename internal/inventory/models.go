package inventory

// StockItem: satu row stok per (branch, drink). Row yang tidak ada
// dibaca sebagai quantity 0, threshold 0; row tidak pernah dihapus,
// quantity 0 itu state valid.
type StockItem struct {
	BranchID         string
	DrinkID          string
	Quantity         int
	MinimumThreshold int
}

// LineItem: satu baris permintaan sale (drink + qty). Urutan slice =
// urutan settlement, jadi error pertama deterministik.
type LineItem struct {
	DrinkID string `json:"drink_id"`
	Qty     int    `json:"qty"`
}

// LowStockEntry: hasil scan, sudah di-enrich nama branch/drink buat display.
type LowStockEntry struct {
	BranchID   string `json:"branch_id"`
	BranchName string `json:"branch_name"`
	DrinkID    string `json:"drink_id"`
	DrinkName  string `json:"drink_name"`
	Quantity   int    `json:"quantity"`
	Threshold  int    `json:"threshold"`
}
