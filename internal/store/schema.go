package store

import (
	"context"
	"fmt"

	"github.com/vicky-or-victoria/Risky-Monopoly-Electric-Boogaloo-sub000/internal/game"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS players (
		id         text PRIMARY KEY,
		username   text NOT NULL,
		balance    bigint NOT NULL DEFAULT 0,
		created_at timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS companies (
		id                bigserial PRIMARY KEY,
		owner_id          text NOT NULL REFERENCES players (id),
		guild_id          text NOT NULL,
		name              text NOT NULL,
		tier              text NOT NULL,
		base_income       bigint NOT NULL,
		current_income    bigint NOT NULL,
		reputation        integer NOT NULL DEFAULT 0,
		created_at        timestamptz NOT NULL DEFAULT now(),
		last_event_at     timestamptz NOT NULL DEFAULT now(),
		thread_id         text,
		status_message_id text
	)`,
	`CREATE TABLE IF NOT EXISTS company_events (
		id          uuid PRIMARY KEY,
		company_id  bigint NOT NULL,
		category    text NOT NULL,
		description text NOT NULL,
		delta       bigint NOT NULL,
		created_at  timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS loans (
		id                    bigserial PRIMARY KEY,
		borrower_id           text NOT NULL REFERENCES players (id),
		collateral_company_id bigint,
		principal             bigint NOT NULL,
		interest_rate         double precision NOT NULL,
		total_owed            bigint NOT NULL,
		tier                  text NOT NULL,
		due_at                timestamptz NOT NULL,
		paid                  boolean NOT NULL DEFAULT false
	)`,
	`CREATE INDEX IF NOT EXISTS loans_overdue_idx ON loans (due_at) WHERE paid = false`,
	`CREATE TABLE IF NOT EXISTS stock_prices (
		symbol text PRIMARY KEY,
		price  bigint NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS stock_price_history (
		id         bigserial PRIMARY KEY,
		symbol     text NOT NULL,
		old_price  bigint NOT NULL,
		new_price  bigint NOT NULL,
		pct_change double precision NOT NULL,
		created_at timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS guild_settings (
		guild_id               text PRIMARY KEY,
		event_frequency_hours  integer NOT NULL DEFAULT 6,
		tax_rate               integer NOT NULL DEFAULT 0,
		tax_channel_id         text,
		stock_board_channel_id text,
		stock_board_message_id text
	)`,
	`CREATE TABLE IF NOT EXISTS tax_log (
		id         bigserial PRIMARY KEY,
		player_id  text NOT NULL,
		guild_id   text NOT NULL,
		amount     bigint NOT NULL,
		created_at timestamptz NOT NULL DEFAULT now()
	)`,
}

// EnsureSchema creates any missing tables. Safe to run on every startup.
func (s *Store) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := s.db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// SeedStockPrices inserts a price row for every catalog symbol that does
// not have one yet. Existing prices are left alone.
func (s *Store) SeedStockPrices(ctx context.Context, catalog *game.Catalog) error {
	for _, spec := range catalog.Stocks {
		_, err := s.db.Exec(ctx, `
			INSERT INTO stock_prices (symbol, price)
			VALUES ($1, $2)
			ON CONFLICT (symbol) DO NOTHING
		`, spec.Symbol, spec.InitialPrice)
		if err != nil {
			return fmt.Errorf("seed %s: %w", spec.Symbol, err)
		}
	}
	return nil
}
