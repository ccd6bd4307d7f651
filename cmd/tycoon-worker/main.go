package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/vicky-or-victoria/Risky-Monopoly-Electric-Boogaloo-sub000/internal/config"
	"github.com/vicky-or-victoria/Risky-Monopoly-Electric-Boogaloo-sub000/internal/db"
	"github.com/vicky-or-victoria/Risky-Monopoly-Electric-Boogaloo-sub000/internal/engine"
	"github.com/vicky-or-victoria/Risky-Monopoly-Electric-Boogaloo-sub000/internal/game"
	"github.com/vicky-or-victoria/Risky-Monopoly-Electric-Boogaloo-sub000/internal/notify"
	"github.com/vicky-or-victoria/Risky-Monopoly-Electric-Boogaloo-sub000/internal/store"
)

// The worker runs the tick engine without a Discord session: every
// notification goes to the noop sink. Used for staging runs and for
// one-shot smoke passes after migrations.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadWorkerFromEnv()
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	catalog, err := game.LoadCatalog(cfg.CatalogPath)
	if err != nil {
		logger.Error("load catalog failed", "err", err)
		os.Exit(1)
	}

	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	st := store.New(pool, logger)
	if err := st.EnsureSchema(ctx); err != nil {
		logger.Error("schema init failed", "err", err)
		os.Exit(1)
	}
	if cfg.StartupSeedStocks {
		if err := st.SeedStockPrices(ctx, catalog); err != nil {
			logger.Error("seed stocks failed", "err", err)
			os.Exit(1)
		}
	}

	eng := engine.New(st, notify.Noop{}, catalog, logger)

	runOnce := strings.EqualFold(strings.TrimSpace(os.Getenv("TYCOON_WORKER_RUN_ONCE")), "true")
	if runOnce {
		for _, tick := range []string{"income", "events", "stocks", "loan_sweep", "tax_sweep"} {
			if err := eng.RunByName(ctx, tick); err != nil {
				logger.Error("tick failed", "tick", tick, "err", err)
				os.Exit(1)
			}
		}
		logger.Info("worker run-once completed")
		return
	}

	stopTicks, err := eng.Start(ctx, engine.Schedule{
		IncomeEvery: cfg.IncomeTickEvery,
		EventEvery:  cfg.EventTickEvery,
		StockEvery:  cfg.StockTickEvery,
		LoanSpec:    cfg.LoanSweepSpec,
		TaxSpec:     cfg.TaxSweepSpec,
	})
	if err != nil {
		logger.Error("tick engine start failed", "err", err)
		os.Exit(1)
	}

	<-ctx.Done()
	stopTicks()
	logger.Info("worker shutdown")
}
