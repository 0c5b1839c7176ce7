package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/MoolaPravalesh19/PrintDukan/internal/cart/cache"
	cartrepo "github.com/MoolaPravalesh19/PrintDukan/internal/cart/repository"
	cartservice "github.com/MoolaPravalesh19/PrintDukan/internal/cart/service"
	catalogrepo "github.com/MoolaPravalesh19/PrintDukan/internal/catalog/repository"
	h "github.com/MoolaPravalesh19/PrintDukan/internal/http"
	"github.com/MoolaPravalesh19/PrintDukan/internal/orders/publisher"
	ordersrepo "github.com/MoolaPravalesh19/PrintDukan/internal/orders/repository"
	ordersservice "github.com/MoolaPravalesh19/PrintDukan/internal/orders/service"
)

type Config struct {
	HTTPPort string

	MongoURI    string
	MongoDBName string

	RedisAddr     string
	RedisPassword string

	CatalogDBPath         string
	CatalogMigrationsPath string

	DBHost               string
	DBPort               int
	DBUser               string
	DBPassword           string
	DBName               string
	OrdersMigrationsPath string

	KafkaBrokers []string

	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

func loadConfig() *Config {
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		log.Fatalf("Invalid DB_PORT: %v", err)
	}

	return &Config{
		HTTPPort:              getEnv("HTTP_PORT", "8080"),
		MongoURI:              getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDBName:           getEnv("MONGO_DB_NAME", "cartdb"),
		RedisAddr:             getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:         getEnv("REDIS_PASSWORD", ""),
		CatalogDBPath:         getEnv("CATALOG_DB_PATH", "./catalog.db"),
		CatalogMigrationsPath: getEnv("CATALOG_MIGRATIONS_PATH", "./internal/catalog/repository/migrations"),
		DBHost:                getEnv("DB_HOST", "localhost"),
		DBPort:                dbPort,
		DBUser:                getEnv("DB_USER", "postgres"),
		DBPassword:            getEnv("DB_PASSWORD", "postgres"),
		DBName:                getEnv("DB_NAME", "printdukan"),
		OrdersMigrationsPath:  getEnv("ORDERS_MIGRATIONS_PATH", "./internal/orders/repository/migrations"),
		KafkaBrokers:          strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
		RequestTimeout:        30 * time.Second,
		ShutdownTimeout:       10 * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	cfg := loadConfig()
	ctx := context.Background()

	// Cart store: MongoDB behind a Redis cache
	mongoDB, err := cartrepo.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDBName)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	cartRepo := cartrepo.NewMongoRepository(mongoDB)
	if err := cartRepo.CreateIndexes(ctx); err != nil {
		log.Fatalf("Failed to create cart indexes: %v", err)
	}
	log.Printf("Connected to MongoDB at %s", cfg.MongoURI)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatal("Redis connection failed:", err)
	}
	log.Printf("Redis ping succeeded")

	cartCache := cache.NewRedisCache(redisClient)
	cartSvc := cartservice.NewCartService(cartRepo, cartCache)

	// Product catalog: embedded SQLite, seeded via migrations
	catalogRepo, err := catalogrepo.NewRepository(cfg.CatalogDBPath)
	if err != nil {
		log.Fatalf("Failed to open catalog database: %v", err)
	}
	defer catalogRepo.Close()
	if err := catalogRepo.RunMigrations(cfg.CatalogMigrationsPath); err != nil {
		log.Fatalf("Failed to run catalog migrations: %v", err)
	}
	log.Println("Catalog migrations completed")

	// Order log: Postgres
	creds := &ordersrepo.Credentials{
		Host:              cfg.DBHost,
		Port:              cfg.DBPort,
		User:              cfg.DBUser,
		Password:          cfg.DBPassword,
		DBName:            cfg.DBName,
		MigrationsDirPath: cfg.OrdersMigrationsPath,
	}
	orderRepo, err := ordersrepo.NewRepository(creds)
	if err != nil {
		log.Fatalf("Failed to connect to orders database: %v", err)
	}
	defer orderRepo.Close()
	if err := orderRepo.RunMigrations(creds); err != nil {
		log.Fatalf("Failed to run orders migrations: %v", err)
	}
	log.Println("Orders migrations completed")

	events := publisher.NewKafkaPublisher(cfg.KafkaBrokers...)
	defer events.Close()

	orderSvc := ordersservice.NewOrderService(cartSvc, catalogRepo, orderRepo, events)

	cartHandler := h.NewCartHandler(cartSvc, cfg.RequestTimeout)
	productHandler := h.NewProductHandler(catalogRepo, cfg.RequestTimeout)
	ordersHandler := h.NewOrdersHandler(orderSvc, cfg.RequestTimeout)

	// Setup router
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(h.RequestIDMiddleware)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(h.CartSessionMiddleware)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.GetCart)
			r.Delete("/", cartHandler.ClearCart)
			r.Post("/items", cartHandler.AddItem)
			r.Put("/items/{item_id}", cartHandler.UpdateQuantity)
			r.Delete("/items/{item_id}", cartHandler.RemoveItem)
		})
		r.Route("/products", func(r chi.Router) {
			r.Get("/", productHandler.ListProducts)
			r.Get("/{id}", productHandler.GetProduct)
			r.Get("/{id}/reviews", productHandler.ListProductReviews)
		})
		r.Get("/categories", productHandler.ListCategories)
		r.Route("/orders", func(r chi.Router) {
			r.Post("/", ordersHandler.CreateOrder)
			r.Get("/", ordersHandler.ListOrders)
			r.Get("/{id}", ordersHandler.GetOrder)
		})
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      otelhttp.NewHandler(r, "printdukan"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Storefront starting on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server exited")
}
