package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/lazharichir/blackjack/domain"
	"github.com/lazharichir/blackjack/ledger"
	"github.com/shopspring/decimal"
)

// Config is the server configuration read from the environment.
type Config struct {
	Port             string            `env:"PORT" envDefault:"7777"`
	LogLevel         string            `env:"LOG_LEVEL" envDefault:"info"`
	RedisAddr        string            `env:"REDIS_ADDR"`
	RedisChannel     string            `env:"REDIS_CHANNEL" envDefault:"blackjack:balance"`
	ShoeDecks        int               `env:"SHOE_DECKS" envDefault:"6"`
	WagerMultiplier  int64             `env:"WAGER_MULTIPLIER" envDefault:"50"`
	MinBet           string            `env:"MIN_BET" envDefault:"0.001"`
	HistorySize      int               `env:"HISTORY_SIZE" envDefault:"20"`
	EventsPerSession int               `env:"EVENTS_PER_SESSION" envDefault:"500"`
	Prices           map[string]string `env:"PRICES" envKeyValSeparator:":" envDefault:"BTC:97000,LTC:88,ETH:3600,SOL:210"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load reads and validates the configuration.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if _, err := cfg.Rules(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Rules converts the configuration into game rules.
func (c Config) Rules() (domain.Rules, error) {
	if c.ShoeDecks <= 0 {
		return domain.Rules{}, fmt.Errorf("SHOE_DECKS must be positive, got %d", c.ShoeDecks)
	}
	if c.WagerMultiplier <= 0 {
		return domain.Rules{}, fmt.Errorf("WAGER_MULTIPLIER must be positive, got %d", c.WagerMultiplier)
	}

	minBet, err := decimal.NewFromString(c.MinBet)
	if err != nil || !minBet.IsPositive() {
		return domain.Rules{}, fmt.Errorf("MIN_BET must be a positive number, got %q", c.MinBet)
	}

	prices, err := ledger.PricesFromMap(c.Prices)
	if err != nil {
		return domain.Rules{}, fmt.Errorf("PRICES: %w", err)
	}

	return domain.Rules{
		Decks:           c.ShoeDecks,
		WagerMultiplier: c.WagerMultiplier,
		MinBet:          minBet,
		Prices:          prices,
		HistorySize:     c.HistorySize,
	}, nil
}
