package engine

import (
	"context"
	"fmt"
	"math"

	"github.com/vicky-or-victoria/Risky-Monopoly-Electric-Boogaloo-sub000/internal/game"
)

// RunStocks walks every configured symbol by a uniform draw inside its
// volatility bound, floors the result, records history, and then refreshes
// every guild's market board. Prices are computed once, globally, before
// any display work.
func (e *Engine) RunStocks(ctx context.Context) error {
	prices, err := e.store.ListStockPrices(ctx)
	if err != nil {
		return fmt.Errorf("list stock prices: %w", err)
	}

	quotes := make([]game.StockQuote, 0, len(prices))
	for _, spec := range e.catalog.Stocks {
		old, ok := prices[spec.Symbol]
		if !ok {
			continue
		}
		pct := (e.nextFloat()*2 - 1) * spec.Volatility
		next := int64(math.Round(float64(old) * (1 + pct)))
		if next < game.MinStockPrice {
			next = game.MinStockPrice
		}
		if err := e.store.SetStockPrice(ctx, spec.Symbol, next); err != nil {
			e.log.Error("stock price update failed", "symbol", spec.Symbol, "err", err)
			continue
		}
		if err := e.store.AppendStockPriceHistory(ctx, spec.Symbol, old, next, pct); err != nil {
			e.log.Error("stock history append failed", "symbol", spec.Symbol, "err", err)
		}
		quotes = append(quotes, game.StockQuote{Symbol: spec.Symbol, Price: next, Previous: old})
	}

	settings, err := e.store.ListGuildSettings(ctx)
	if err != nil {
		return fmt.Errorf("list guild settings: %w", err)
	}
	for _, gs := range settings {
		if gs.StockBoardMessageID == "" {
			continue
		}
		if err := e.sink.EditStockBoard(ctx, gs, quotes); err != nil {
			e.log.Warn("stock board refresh failed", "guild_id", gs.GuildID, "err", err)
		}
	}
	e.log.Debug("stock tick complete", "symbols", len(quotes))
	return nil
}
