package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ariefcatur/go-drink-enterprise/internal/catalog"
	"github.com/ariefcatur/go-drink-enterprise/internal/config"
	"github.com/ariefcatur/go-drink-enterprise/internal/events"
	"github.com/ariefcatur/go-drink-enterprise/internal/httpx"
	"github.com/ariefcatur/go-drink-enterprise/internal/inventory"
	kafkax "github.com/ariefcatur/go-drink-enterprise/internal/kafka"
	"github.com/ariefcatur/go-drink-enterprise/internal/logx"
	"github.com/ariefcatur/go-drink-enterprise/internal/metricsx"
	"github.com/ariefcatur/go-drink-enterprise/internal/orders"
	"github.com/ariefcatur/go-drink-enterprise/internal/redisx"
	"github.com/ariefcatur/go-drink-enterprise/internal/store/postgres"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logx.New(cfg.ServiceName)
	defer func() { _ = log.Sync() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// DB
	pool, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Kafka producers
	orderProd := kafkax.NewProducer(cfg.KafkaBrokers, events.TopicOrderPlaced, 1024, log)
	orderProd.Start(ctx)
	transferProd := kafkax.NewProducer(cfg.KafkaBrokers, events.TopicStockTransferred, 1024, log)
	transferProd.Start(ctx)

	// Wiring: katalog di-cache redis, ledger + order service share pool
	db := &postgres.DB{Pool: pool}
	cat := &catalog.Cached{Next: &postgres.CatalogRepo{DB: pool}, Redis: rdb}
	ledger := inventory.NewLedger(db, &postgres.StockRepo{DB: pool}, cat, log)
	orderSvc := orders.NewService(db, &postgres.OrderRepo{DB: pool}, ledger, cat, log)

	router := httpx.NewRouter()
	h := &httpx.Handler{
		Orders:           orderSvc,
		Ledger:           ledger,
		Redis:            rdb,
		OrderProducer:    orderProd,
		TransferProducer: transferProd,
		Metrics:          metricsx.New("api"),
		Service:          cfg.ServiceName,
		HQBranchID:       cfg.HQBranchID,
	}
	h.Register(router)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("http listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-sig:
		case <-gctx.Done():
		}
		log.Info("shutting down")

		sctx, scancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer scancel()
		return srv.Shutdown(sctx)
	})

	if err := g.Wait(); err != nil {
		log.Error("exit", zap.Error(err))
	}

	orderProd.Close() // tutup inbox -> flush & close writer
	transferProd.Close()
	orderProd.WaitClosed()
	transferProd.WaitClosed()
}
