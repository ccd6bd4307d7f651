package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type BotConfig struct {
	DatabaseURL       string
	DiscordToken      string
	OpsAddr           string
	OpsToken          string
	CatalogPath       string
	IncomeTickEvery   time.Duration
	EventTickEvery    time.Duration
	StockTickEvery    time.Duration
	LoanSweepSpec     string
	TaxSweepSpec      string
	StartupSeedStocks bool
}

type CLIConfig struct {
	OpsBaseURL string
	OpsToken   string
}

func LoadBotFromEnv() (BotConfig, error) {
	cfg, err := LoadWorkerFromEnv()
	if err != nil {
		return cfg, err
	}
	cfg.DiscordToken = strings.TrimSpace(os.Getenv("DISCORD_BOT_TOKEN"))
	if cfg.DiscordToken == "" {
		return cfg, fmt.Errorf("DISCORD_BOT_TOKEN is required")
	}
	return cfg, nil
}

// LoadWorkerFromEnv loads everything except the Discord token; the worker
// runs the tick engine headless against a noop notifier.
func LoadWorkerFromEnv() (BotConfig, error) {
	addr := os.Getenv("PORT")
	if addr != "" {
		if !strings.HasPrefix(addr, ":") {
			addr = ":" + addr
		}
	} else {
		addr = envDefault("TYCOON_OPS_ADDR", ":8090")
	}

	cfg := BotConfig{
		DatabaseURL:       strings.TrimSpace(os.Getenv("DATABASE_URL")),
		OpsAddr:           addr,
		OpsToken:          strings.TrimSpace(os.Getenv("TYCOON_OPS_TOKEN")),
		CatalogPath:       strings.TrimSpace(os.Getenv("TYCOON_CATALOG_PATH")),
		IncomeTickEvery:   envDurationDefault("TYCOON_INCOME_TICK_EVERY", 30*time.Second),
		EventTickEvery:    envDurationDefault("TYCOON_EVENT_TICK_EVERY", 30*time.Second),
		StockTickEvery:    envDurationDefault("TYCOON_STOCK_TICK_EVERY", 3*time.Minute),
		LoanSweepSpec:     envDefault("TYCOON_LOAN_SWEEP_SPEC", "@every 1h"),
		TaxSweepSpec:      envDefault("TYCOON_TAX_SWEEP_SPEC", "@every 6h"),
		StartupSeedStocks: envBoolDefault("TYCOON_STARTUP_SEED_STOCKS", true),
	}
	if cfg.DatabaseURL == "" {
		return cfg, fmt.Errorf("DATABASE_URL is required")
	}
	return cfg, nil
}

func LoadCLIFromEnv() CLIConfig {
	return CLIConfig{
		OpsBaseURL: strings.TrimRight(envDefault("TYCOON_OPS_BASE_URL", "http://localhost:8090"), "/"),
		OpsToken:   strings.TrimSpace(os.Getenv("TYCOON_OPS_TOKEN")),
	}
}

func envDefault(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func envDurationDefault(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func envBoolDefault(key string, fallback bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
