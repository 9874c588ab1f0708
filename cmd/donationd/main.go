package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/IBM/sarama"
	"github.com/joho/godotenv"

	"github.com/streamkit/donation-notifier/internal/broadcast"
	"github.com/streamkit/donation-notifier/internal/chat"
	"github.com/streamkit/donation-notifier/internal/config"
	"github.com/streamkit/donation-notifier/internal/handler"
	"github.com/streamkit/donation-notifier/internal/kafka"
	"github.com/streamkit/donation-notifier/internal/logger"
	"github.com/streamkit/donation-notifier/internal/metrics"
	"github.com/streamkit/donation-notifier/internal/router"
	"github.com/streamkit/donation-notifier/internal/service"
	"github.com/streamkit/donation-notifier/internal/storage"
)

func main() {
	// .env is optional outside local development.
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	l := logger.NewLogger()
	slog.SetDefault(l)

	metrics.Init()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Single shared connection pool, injected into everything that needs it.
	dbPool, err := storage.NewPostgresPool(ctx, cfg.DB)
	if err != nil {
		l.Error("Failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbPool.Close()

	store := storage.NewPostgresStorage(dbPool)

	// Shared HTTP client for chat broadcasts; the timeout here is the only
	// bound on the outbound call.
	httpClient := &http.Client{Timeout: cfg.Chat.Timeout}
	chatClient := chat.NewClient(cfg.Chat.BaseURL, httpClient, l)

	dispatcher := broadcast.NewPoolDispatcher(
		chatClient,
		cfg.Broadcast.Workers,
		cfg.Broadcast.QueueSize,
		l,
	)
	dispatcher.Start(ctx)

	donationSvc := service.NewDonationService(store, dispatcher, l)
	healthSvc := service.NewHealthService(store, l)

	saramaCfg := sarama.NewConfig()
	saramaCfg.Version = sarama.V2_1_0_0
	saramaCfg.ClientID = "donationd"
	saramaCfg.Consumer.Return.Errors = true
	saramaCfg.Consumer.Offsets.Initial = sarama.OffsetOldest

	consumerGroup, err := sarama.NewConsumerGroup(
		cfg.Kafka.Brokers,
		cfg.Kafka.ConsumerGroup,
		saramaCfg,
	)
	if err != nil {
		l.Error("Failed to create Kafka consumer group", slog.Any("error", err))
		os.Exit(1)
	}

	consumer := kafka.NewConsumer(cfg.Kafka.Topic, consumerGroup, donationSvc, l)

	notifHandler := handler.NewNotificationHandler(donationSvc, l)
	healthHandler := handler.NewHealthHandler(healthSvc, l)

	server := &http.Server{
		Addr:    ":" + cfg.App.Port,
		Handler: router.NewRouter(notifHandler, healthHandler),
	}

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			l.Error("Kafka consumer stopped with error", slog.Any("error", err))
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		l.Info("Starting HTTP server", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Error("HTTP server failed", slog.Any("error", err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	l.Info("Shutdown signal received")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		l.Error("HTTP server shutdown failed", slog.Any("error", err))
	}

	cancel()
	wg.Wait()
	dispatcher.Wait()
	l.Info("Service shut down gracefully")
}
