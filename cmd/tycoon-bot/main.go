package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/vicky-or-victoria/Risky-Monopoly-Electric-Boogaloo-sub000/internal/api"
	"github.com/vicky-or-victoria/Risky-Monopoly-Electric-Boogaloo-sub000/internal/config"
	"github.com/vicky-or-victoria/Risky-Monopoly-Electric-Boogaloo-sub000/internal/db"
	"github.com/vicky-or-victoria/Risky-Monopoly-Electric-Boogaloo-sub000/internal/engine"
	"github.com/vicky-or-victoria/Risky-Monopoly-Electric-Boogaloo-sub000/internal/game"
	"github.com/vicky-or-victoria/Risky-Monopoly-Electric-Boogaloo-sub000/internal/notify"
	"github.com/vicky-or-victoria/Risky-Monopoly-Electric-Boogaloo-sub000/internal/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadBotFromEnv()
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

	session, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		logger.Error("discord session init failed", "err", err)
		os.Exit(1)
	}
	session.Identify.Intents = discordgo.IntentsGuilds
	if err := session.Open(); err != nil {
		logger.Error("discord gateway open failed", "err", err)
		os.Exit(1)
	}
	defer session.Close()

	eng := engine.New(st, notify.NewDiscord(session), catalog, logger)
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
	defer stopTicks()

	server := api.New(logger, st, eng, cfg.OpsToken)
	httpServer := &http.Server{
		Addr:              cfg.OpsAddr,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	logger.Info("tycoon bot running", "ops_addr", cfg.OpsAddr)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("ops server failed", "err", err)
		os.Exit(1)
	}
}
