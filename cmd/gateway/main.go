package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/example/bookstore-gateway/internal/api"
	"github.com/example/bookstore-gateway/internal/api/middleware"
	"github.com/example/bookstore-gateway/internal/auth"
	"github.com/example/bookstore-gateway/internal/config"
	"github.com/example/bookstore-gateway/internal/domain/books"
	"github.com/example/bookstore-gateway/internal/domain/category"
	"github.com/example/bookstore-gateway/internal/domain/stock"
	"github.com/example/bookstore-gateway/internal/domain/users"
	"github.com/example/bookstore-gateway/internal/gateway"
	"github.com/example/bookstore-gateway/internal/infrastructure/kafka"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("loading config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// One bus connection for the whole process, shared by every request.
	bus := kafka.NewBus(kafka.Config{
		Brokers:        cfg.Kafka.Brokers,
		Channels:       []string{gateway.UsersService, gateway.BooksService},
		ReplyTopic:     cfg.Kafka.ReplyTopic,
		GroupID:        cfg.Kafka.GroupID,
		RequestTimeout: cfg.Kafka.RequestTimeout,
	}, logger)
	defer bus.Close()

	go func() {
		if err := bus.Start(ctx); err != nil && ctx.Err() == nil {
			logger.Error("reply consumer stopped", "error", err)
		}
	}()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	jwtService := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenExpiry)

	// Explicit construction, leaves first: clients, services, handlers.
	usersSvc := users.NewService(gateway.NewClient(bus, gateway.UsersService))
	booksClient := gateway.NewClient(bus, gateway.BooksService)
	categorySvc := category.NewService(booksClient)
	booksSvc := books.NewService(booksClient)
	stockSvc := stock.NewService(booksClient)
	stockPager := stock.NewPaginationCache(stockSvc, redisClient, cfg.Redis.PaginationCache, logger)

	limiter := middleware.NewRateLimiter(redisClient, cfg.Redis.RateLimit, cfg.Redis.RateWindow, logger)

	router := api.NewRouter(api.RouterConfig{
		Users:      api.NewUsersHandlers(usersSvc, logger),
		Category:   api.NewCategoryHandlers(categorySvc, logger),
		Books:      api.NewBooksHandlers(booksSvc, logger),
		Stock:      api.NewStockHandlers(stockSvc, stockPager, logger),
		JWTService: jwtService,
		RateLimit:  limiter.Handle,
		Logger:     logger,
	})

	server := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
	}

	go func() {
		logger.Info("gateway listening", "addr", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "error", err)
	}
}
