// watcher: scan low-stock berkala, publish alert ke Kafka.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ariefcatur/go-drink-enterprise/internal/config"
	"github.com/ariefcatur/go-drink-enterprise/internal/events"
	"github.com/ariefcatur/go-drink-enterprise/internal/inventory"
	kafkax "github.com/ariefcatur/go-drink-enterprise/internal/kafka"
	"github.com/ariefcatur/go-drink-enterprise/internal/logx"
	"github.com/ariefcatur/go-drink-enterprise/internal/store/postgres"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logx.New(cfg.ServiceName + "-watcher")
	defer func() { _ = log.Sync() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	prod := kafkax.NewProducer(cfg.KafkaBrokers, events.TopicLowStock, 1024, log)
	prod.Start(ctx)

	db := &postgres.DB{Pool: pool}
	cat := &postgres.CatalogRepo{DB: pool}
	ledger := inventory.NewLedger(db, &postgres.StockRepo{DB: pool}, cat, log)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		ticker := time.NewTicker(cfg.LowStockInterval)
		defer ticker.Stop()
		for {
			scan(gctx, ledger, prod, cfg.ServiceName, log)
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
			}
		}
	})
	g.Go(func() error {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-sig:
			cancel()
		case <-gctx.Done():
		}
		return nil
	})

	_ = g.Wait()
	log.Info("shutting down watcher")
	prod.Close()
	prod.WaitClosed()
}

func scan(ctx context.Context, ledger *inventory.Ledger, prod *kafkax.Producer, producerName string, log *zap.Logger) {
	sctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	entries, err := ledger.CheckLowStock(sctx)
	if err != nil {
		log.Error("low stock scan failed", zap.Error(err))
		return
	}
	for _, e := range entries {
		corr := e.BranchID + ":" + e.DrinkID
		ev := events.Envelope{
			EventID:       uuid.NewString(),
			EventType:     events.EventLowStock,
			EventVersion:  1,
			OccurredAt:    time.Now().UTC(),
			Producer:      producerName + "-watcher",
			CorrelationID: corr,
			Payload: kafkax.MustMarshal(events.LowStockPayload{
				BranchID:   e.BranchID,
				BranchName: e.BranchName,
				DrinkID:    e.DrinkID,
				DrinkName:  e.DrinkName,
				Quantity:   e.Quantity,
				Threshold:  e.Threshold,
			}),
		}
		prod.Publish(events.PartitionKey(corr), kafkax.MustMarshal(ev),
			kafkago.Header{Key: "x-event-type", Value: []byte(events.EventLowStock)},
			kafkago.Header{Key: "x-event-version", Value: []byte("1")},
		)
	}
}
