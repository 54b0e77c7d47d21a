// notifier: consume alert low-stock, dedup via Redis, log warning.
package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/ariefcatur/go-drink-enterprise/internal/alerts"
	"github.com/ariefcatur/go-drink-enterprise/internal/config"
	"github.com/ariefcatur/go-drink-enterprise/internal/events"
	kafkax "github.com/ariefcatur/go-drink-enterprise/internal/kafka"
	"github.com/ariefcatur/go-drink-enterprise/internal/logx"
	"github.com/ariefcatur/go-drink-enterprise/internal/redisx"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func mustAtoi(s, def string) int {
	if s == "" {
		s = def
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return 1
	}
	return i
}

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logx.New(cfg.ServiceName + "-notifier")
	defer func() { _ = log.Sync() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	n := &alerts.Notifier{
		Redis:       rdb,
		Log:         log,
		ServiceName: cfg.ServiceName + "-notifier",
	}

	group := getenv("NOTIFIER_GROUP", "lowstock-notifier")
	workers := mustAtoi(os.Getenv("NOTIFIER_WORKERS"), "4")
	cons := kafkax.NewConsumer(cfg.KafkaBrokers, group, events.TopicLowStock, workers, log)

	go func() {
		log.Info("notifier consumer started",
			zap.String("group", group),
			zap.String("topic", events.TopicLowStock),
			zap.Int("workers", workers))
		if err := cons.Start(ctx, n.HandleLowStock); err != nil {
			log.Error("consumer exit", zap.Error(err))
			cancel()
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sig:
	case <-ctx.Done():
	}
	log.Info("shutting down notifier")
	cancel()
	time.Sleep(500 * time.Millisecond)
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
