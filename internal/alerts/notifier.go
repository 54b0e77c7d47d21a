// Package alerts: consumer low-stock alert. Kerjanya cuma notifikasi
// (log terstruktur); keputusan restock tetap di manusia/tooling lain.
package alerts

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ariefcatur/go-drink-enterprise/internal/events"
	kafkax "github.com/ariefcatur/go-drink-enterprise/internal/kafka"
	"github.com/ariefcatur/go-drink-enterprise/internal/redisx"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type Notifier struct {
	Redis       *redis.Client
	Log         *zap.Logger
	ServiceName string
}

// HandleLowStock: dipasang sebagai handler consumer.
func (n *Notifier) HandleLowStock(ctx context.Context, m kafkago.Message) error {
	// 1) decode envelope
	var env events.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		return err
	}
	if env.EventType != events.EventLowStock {
		return nil
	} // ignore

	// 2) decode payload
	p, err := kafkax.UnwrapPayload[events.LowStockPayload](env.Payload)
	if err != nil {
		return err
	}

	// 3) dedup per (branch, drink) via Redis — satu row low stock bakal
	// muncul di tiap scan sampai di-restock, jangan spam alert
	if n.Redis != nil {
		dkey := fmt.Sprintf(redisx.KeyDedup, "alerts", p.BranchID+":"+p.DrinkID)
		exists, _ := redisx.Exists(ctx, n.Redis, dkey)
		if exists {
			return nil
		}
		_ = n.Redis.Set(ctx, dkey, "1", redisx.TTLDedup).Err()
	}

	n.Log.Warn("low stock alert",
		zap.String("branch_id", p.BranchID),
		zap.String("branch_name", p.BranchName),
		zap.String("drink_id", p.DrinkID),
		zap.String("drink_name", p.DrinkName),
		zap.Int("quantity", p.Quantity),
		zap.Int("threshold", p.Threshold),
	)
	return nil
}
