package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/lazharichir/blackjack/config"
	"github.com/lazharichir/blackjack/domain"
	"github.com/lazharichir/blackjack/domain/events"
	"github.com/lazharichir/blackjack/logger"
	"github.com/lazharichir/blackjack/metrics"
	"github.com/lazharichir/blackjack/notify"
	"github.com/lazharichir/blackjack/server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	rules, err := cfg.Rules()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	lobby := domain.NewLobby(domain.WithRules(rules))

	store := events.NewInMemoryEventStore(cfg.EventsPerSession)
	lobby.AddEventHandler(store.HandleEvent)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	lobby.AddEventHandler(metrics.New(registry).HandleEvent)

	if cfg.RedisAddr != "" {
		client := notify.NewRedisClient(cfg.RedisAddr)
		defer client.Close()

		publisher := notify.NewRedisPublisher(client, cfg.RedisChannel, log)
		lobby.AddEventHandler(publisher.HandleEvent)
		go publisher.Run(ctx)
		log.Info("publishing balances to redis", zap.String("addr", cfg.RedisAddr), zap.String("channel", cfg.RedisChannel))
	}

	s := server.NewServer(lobby, store, registry, rules.Prices, log)
	return s.Start(ctx, cfg.Port)
}
