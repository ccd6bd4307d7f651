package engine

import (
	"context"
	"fmt"

	"github.com/vicky-or-victoria/Risky-Monopoly-Electric-Boogaloo-sub000/internal/game"
)

// RunTaxSweep levies each taxing guild's configured rate against every
// player holding a strictly positive balance. One guild failing never
// blocks the others.
func (e *Engine) RunTaxSweep(ctx context.Context) error {
	settings, err := e.store.ListGuildSettings(ctx)
	if err != nil {
		return fmt.Errorf("list guild settings: %w", err)
	}
	for _, gs := range settings {
		if err := e.collectGuildTax(ctx, gs); err != nil {
			e.log.Error("guild tax sweep failed", "guild_id", gs.GuildID, "err", err)
		}
	}
	return nil
}

func (e *Engine) collectGuildTax(ctx context.Context, gs game.GuildSettings) error {
	rate, err := e.store.GetTaxRate(ctx, gs.GuildID)
	if err != nil {
		return fmt.Errorf("tax rate: %w", err)
	}
	if rate <= 0 {
		return nil
	}

	players, err := e.store.ListPlayersWithPositiveBalance(ctx)
	if err != nil {
		return fmt.Errorf("list players: %w", err)
	}

	var total int64
	taxed := 0
	for _, p := range players {
		amount := p.Balance * int64(rate) / 100
		if amount <= 0 {
			continue
		}
		if err := e.store.CreditPlayerBalance(ctx, p.ID, -amount); err != nil {
			e.log.Error("tax deduction failed", "guild_id", gs.GuildID, "player_id", p.ID, "err", err)
			continue
		}
		if err := e.store.LogTaxCollection(ctx, p.ID, amount, gs.GuildID); err != nil {
			e.log.Error("tax log failed", "guild_id", gs.GuildID, "player_id", p.ID, "err", err)
		}
		total += amount
		taxed++
	}

	if total > 0 {
		gs.TaxRate = rate
		if err := e.sink.AnnounceTax(ctx, gs, total, taxed); err != nil {
			e.log.Warn("tax announcement failed", "guild_id", gs.GuildID, "err", err)
		}
	}
	e.log.Debug("guild tax sweep complete", "guild_id", gs.GuildID, "collected", total, "players", taxed)
	return nil
}
