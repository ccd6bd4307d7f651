// Package notify is the chat-platform sink the tick engine reports into.
// Every call is best-effort from the engine's perspective: a returned
// error is logged by the caller and never rolls back a store mutation.
package notify

import (
	"context"

	"github.com/vicky-or-victoria/Risky-Monopoly-Electric-Boogaloo-sub000/internal/game"
)

type Notifier interface {
	// EditCompanyStatus refreshes the pinned status embed of a company.
	EditCompanyStatus(ctx context.Context, company game.Company, event game.EventSpec, delta int64) error
	// PostEventToThread posts an event summary into the company's thread.
	PostEventToThread(ctx context.Context, company game.Company, event game.EventSpec, delta int64) error
	// EditStockBoard rewrites a guild's persistent market display.
	EditStockBoard(ctx context.Context, settings game.GuildSettings, quotes []game.StockQuote) error
	// DMBorrower tells a player an unsecured loan was forcibly settled.
	DMBorrower(ctx context.Context, borrowerID string, loan game.Loan, seized int64) error
	// NotifyCompanySeized posts into a collateral company's thread before
	// the company record disappears.
	NotifyCompanySeized(ctx context.Context, company game.Company, loan game.Loan) error
	// AnnounceTax posts the aggregate collection summary for one guild.
	AnnounceTax(ctx context.Context, settings game.GuildSettings, total int64, playersTaxed int) error
}

// Noop is used by the headless worker and by tests.
type Noop struct{}

func (Noop) EditCompanyStatus(context.Context, game.Company, game.EventSpec, int64) error {
	return nil
}

func (Noop) PostEventToThread(context.Context, game.Company, game.EventSpec, int64) error {
	return nil
}

func (Noop) EditStockBoard(context.Context, game.GuildSettings, []game.StockQuote) error {
	return nil
}

func (Noop) DMBorrower(context.Context, string, game.Loan, int64) error {
	return nil
}

func (Noop) NotifyCompanySeized(context.Context, game.Company, game.Loan) error {
	return nil
}

func (Noop) AnnounceTax(context.Context, game.GuildSettings, int64, int) error {
	return nil
}
