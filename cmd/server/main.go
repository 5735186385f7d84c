package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/loczu/storefront/internal/authclient"
	"github.com/loczu/storefront/internal/cart"
	"github.com/loczu/storefront/internal/catalog"
	"github.com/loczu/storefront/internal/config"
	"github.com/loczu/storefront/internal/events"
	"github.com/loczu/storefront/internal/httpserver"
	"github.com/loczu/storefront/internal/logging"
	"github.com/loczu/storefront/internal/pricing"
	"github.com/loczu/storefront/internal/session"
	"github.com/loczu/storefront/internal/store"
	"github.com/loczu/storefront/internal/wishlist"
)

func openStore(ctx context.Context, cfg *config.Config) (store.KV, func() error, error) {
	switch cfg.STORE_DRIVER {
	case "memory":
		return store.NewMemoryKV(), func() error { return nil }, nil
	case "postgres":
		kv, err := store.OpenPostgres(ctx, cfg.STORE_DSN)
		if err != nil {
			return nil, nil, err
		}
		return kv, kv.Close, nil
	case "redis":
		kv, err := store.OpenRedis(ctx, cfg.REDIS_ADDR)
		if err != nil {
			return nil, nil, err
		}
		return kv, kv.Close, nil
	default:
		kv, err := store.OpenSQLite(cfg.STORE_DSN)
		if err != nil {
			return nil, nil, err
		}
		return kv, kv.Close, nil
	}
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(cfg.LOG_LEVEL)

	ctx := context.Background()
	kv, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatalf("store init error: %v", err)
	}

	var producer *events.Producer
	if cfg.KAFKA_ADDRESS != "" {
		producer = events.NewProducer([]string{cfg.KAFKA_ADDRESS})
	}

	var searcher *catalog.Searcher
	if cfg.ES_URL != "" {
		esClient, err := catalog.NewESClient(cfg)
		if err != nil {
			logger.Warn("elasticsearch unavailable, search falls back to in-memory filter", "error", err)
		} else {
			searcher = &catalog.Searcher{ES: esClient, Index: cfg.ES_INDEX}
		}
	}

	directory, err := catalog.New()
	if err != nil {
		log.Fatalf("catalog init error: %v", err)
	}

	api := authclient.NewClient(cfg.ACCOUNT_API_URL)

	var pub events.Publisher
	if producer != nil {
		pub = producer
	}
	sess := session.NewManager(api, kv, pub)
	cartMgr := cart.NewManager(kv, sess)
	wishMgr := wishlist.NewManager(kv, sess)
	sess.DependOn(cartMgr, wishMgr)

	sess.Restore(ctx)
	cartMgr.Restore(ctx)
	wishMgr.Restore(ctx)

	e := httpserver.NewServer(logger, &httpserver.Deps{
		Session:  sess,
		Cart:     cartMgr,
		Wishlist: wishMgr,
		Catalog:  directory,
		Pricing:  pricing.DefaultConfig(),
		Searcher: searcher,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTP_PORT,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if err := closeStore(); err != nil {
		log.Printf("store close error: %v", err)
	}

	if producer != nil {
		if err := producer.Close(); err != nil {
			log.Printf("kafka close error: %v", err)
		}
	}

	log.Println("shutdown complete")
}
