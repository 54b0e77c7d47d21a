package events

const (
	TopicOrderPlaced      = "drinks.order.placed"
	TopicStockTransferred = "drinks.stock.transferred"
	TopicLowStock         = "drinks.stock.low"
)

// Partition key = correlation id (order_id atau branch:drink), supaya
// event utk entitas yang sama maintain urutan.
func PartitionKey(id string) []byte { return []byte(id) }
