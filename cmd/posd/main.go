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

	"github.com/10-mohamedmagdy/sameh-pos/internal/catalog"
	"github.com/10-mohamedmagdy/sameh-pos/internal/httpapi"
	"github.com/10-mohamedmagdy/sameh-pos/internal/repository"
	"github.com/10-mohamedmagdy/sameh-pos/internal/sale"
	"github.com/10-mohamedmagdy/sameh-pos/internal/stock"
	"github.com/redis/go-redis/v9"
)

type Config struct {
	HTTPPort        string
	DBPath          string
	MigrationsDir   string
	RedisAddr       string
	CacheTTL        time.Duration
	CacheJitter     time.Duration
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

func loadConfig() *Config {
	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		DBPath:          getEnv("POS_DB_PATH", "pos.db"),
		MigrationsDir:   getEnv("POS_MIGRATIONS_DIR", "./migrations"),
		RedisAddr:       getEnv("REDIS_ADDR", ""),
		CacheTTL:        getDurationEnv("POS_CACHE_TTL", 15*time.Minute),
		CacheJitter:     getDurationEnv("POS_CACHE_JITTER", 5*time.Minute),
		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		log.Printf("Invalid duration for %s, using %s", key, defaultValue)
	}
	return defaultValue
}

func main() {
	cfg := loadConfig()

	store, err := repository.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer store.Close()

	if err := store.RunMigrations(cfg.MigrationsDir); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Printf("Store ready at %s", cfg.DBPath)

	products := repository.NewProductRepository(store)
	invoices := repository.NewInvoiceRepository(store)
	ledger := stock.NewLedger(store)

	// Stations share the catalog cache through redis when configured;
	// otherwise each process keeps a local one.
	var cache catalog.Cache
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		cache = catalog.NewBreakerCache(catalog.NewRedisCache(client, cfg.CacheTTL, cfg.CacheJitter))
		log.Printf("Catalog cache on redis at %s", cfg.RedisAddr)
	} else {
		cache = catalog.NewMemoryCache()
	}

	cat := catalog.New(products, cache)
	coordinator := sale.NewCoordinator(store, ledger, invoices, sale.UUIDGenerator{})
	sessions := httpapi.NewSessionStore()

	router := httpapi.NewRouter(
		httpapi.NewProductHandler(cat, products),
		httpapi.NewCartHandler(sessions, cat, ledger),
		httpapi.NewSaleHandler(sessions, coordinator, invoices),
		httpapi.NewStockHandler(ledger),
		cfg.RequestTimeout,
	)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("POS server starting on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server exited")
}
