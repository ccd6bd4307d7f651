// Package store is the Postgres persistence layer for the game state. The
// tick engine only ever issues relative-delta writes here; each statement
// is atomic on its own and no cross-tick transaction exists.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vicky-or-victoria/Risky-Monopoly-Electric-Boogaloo-sub000/internal/game"
)

type Store struct {
	db  *pgxpool.Pool
	log *slog.Logger
}

func New(db *pgxpool.Pool, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{db: db, log: logger}
}

const companyColumns = `
	id, owner_id, guild_id, name, tier, base_income, current_income,
	reputation, created_at, last_event_at,
	COALESCE(thread_id, ''), COALESCE(status_message_id, '')
`

func scanCompany(row pgx.Row) (game.Company, error) {
	var c game.Company
	var tier string
	err := row.Scan(&c.ID, &c.OwnerID, &c.GuildID, &c.Name, &tier, &c.BaseIncome,
		&c.CurrentIncome, &c.Reputation, &c.CreatedAt, &c.LastEventAt,
		&c.ThreadID, &c.StatusMessageID)
	if err != nil {
		return c, err
	}
	c.Tier, err = game.ParseTier(tier)
	if err != nil {
		return c, fmt.Errorf("company %d: %w", c.ID, err)
	}
	return c, nil
}

func (s *Store) ListAllCompanies(ctx context.Context) ([]game.Company, error) {
	rows, err := s.db.Query(ctx, `SELECT `+companyColumns+` FROM companies ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []game.Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) GetCompany(ctx context.Context, companyID int64) (game.Company, error) {
	c, err := scanCompany(s.db.QueryRow(ctx, `SELECT `+companyColumns+` FROM companies WHERE id = $1`, companyID))
	if errors.Is(err, pgx.ErrNoRows) {
		return c, game.ErrCompanyNotFound
	}
	return c, err
}

func (s *Store) DeleteCompany(ctx context.Context, companyID int64) error {
	cmd, err := s.db.Exec(ctx, `DELETE FROM companies WHERE id = $1`, companyID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return game.ErrCompanyNotFound
	}
	return nil
}

func (s *Store) ApplyCompanyIncomeDelta(ctx context.Context, companyID int64, delta int64, eventAt time.Time) (game.Company, error) {
	c, err := scanCompany(s.db.QueryRow(ctx, `
		UPDATE companies
		SET current_income = current_income + $1,
		    last_event_at = $2
		WHERE id = $3
		RETURNING `+companyColumns,
		delta, eventAt, companyID))
	if errors.Is(err, pgx.ErrNoRows) {
		return c, game.ErrCompanyNotFound
	}
	return c, err
}

func (s *Store) AppendCompanyEventLog(ctx context.Context, companyID int64, category game.EventCategory, description string, delta int64) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO company_events (id, company_id, category, description, delta)
		VALUES ($1, $2, $3, $4, $5)
	`, uuid.NewString(), companyID, string(category), description, delta)
	return err
}

func (s *Store) GetPlayer(ctx context.Context, playerID string) (game.Player, error) {
	var p game.Player
	err := s.db.QueryRow(ctx, `
		SELECT id, username, balance, created_at
		FROM players
		WHERE id = $1
	`, playerID).Scan(&p.ID, &p.Username, &p.Balance, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return p, game.ErrPlayerNotFound
	}
	return p, err
}

func (s *Store) CreditPlayerBalance(ctx context.Context, playerID string, delta int64) error {
	cmd, err := s.db.Exec(ctx, `
		UPDATE players
		SET balance = balance + $1
		WHERE id = $2
	`, delta, playerID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return game.ErrPlayerNotFound
	}
	return nil
}

func (s *Store) ListPlayersWithPositiveBalance(ctx context.Context) ([]game.Player, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, username, balance, created_at
		FROM players
		WHERE balance > 0
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []game.Player
	for rows.Next() {
		var p game.Player
		if err := rows.Scan(&p.ID, &p.Username, &p.Balance, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) ListOverdueUnpaidLoans(ctx context.Context, now time.Time) ([]game.Loan, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, borrower_id, COALESCE(collateral_company_id, 0),
		       principal, interest_rate, total_owed, tier, due_at, paid
		FROM loans
		WHERE paid = false AND due_at < $1
		ORDER BY due_at
	`, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []game.Loan
	for rows.Next() {
		var l game.Loan
		var tier string
		if err := rows.Scan(&l.ID, &l.BorrowerID, &l.CollateralCompanyID,
			&l.Principal, &l.InterestRate, &l.TotalOwed, &tier, &l.DueAt, &l.Paid); err != nil {
			return nil, err
		}
		l.Tier, err = game.ParseTier(tier)
		if err != nil {
			return nil, fmt.Errorf("loan %d: %w", l.ID, err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (s *Store) MarkLoanPaid(ctx context.Context, loanID int64) error {
	cmd, err := s.db.Exec(ctx, `UPDATE loans SET paid = true WHERE id = $1`, loanID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return game.ErrLoanNotFound
	}
	return nil
}

func (s *Store) ListStockPrices(ctx context.Context) (map[string]int64, error) {
	rows, err := s.db.Query(ctx, `SELECT symbol, price FROM stock_prices`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]int64)
	for rows.Next() {
		var symbol string
		var price int64
		if err := rows.Scan(&symbol, &price); err != nil {
			return nil, err
		}
		out[symbol] = price
	}
	return out, rows.Err()
}

func (s *Store) SetStockPrice(ctx context.Context, symbol string, price int64) error {
	cmd, err := s.db.Exec(ctx, `UPDATE stock_prices SET price = $1 WHERE symbol = $2`, price, symbol)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return game.ErrStockNotFound
	}
	return nil
}

func (s *Store) AppendStockPriceHistory(ctx context.Context, symbol string, oldPrice, newPrice int64, pctChange float64) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO stock_price_history (symbol, old_price, new_price, pct_change)
		VALUES ($1, $2, $3, $4)
	`, symbol, oldPrice, newPrice, pctChange)
	return err
}

func (s *Store) ListGuildSettings(ctx context.Context) ([]game.GuildSettings, error) {
	rows, err := s.db.Query(ctx, `
		SELECT guild_id, event_frequency_hours, tax_rate,
		       COALESCE(tax_channel_id, ''),
		       COALESCE(stock_board_channel_id, ''),
		       COALESCE(stock_board_message_id, '')
		FROM guild_settings
		ORDER BY guild_id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []game.GuildSettings
	for rows.Next() {
		var gs game.GuildSettings
		if err := rows.Scan(&gs.GuildID, &gs.EventFrequencyHours, &gs.TaxRate,
			&gs.TaxChannelID, &gs.StockBoardChannelID, &gs.StockBoardMessageID); err != nil {
			return nil, err
		}
		out = append(out, gs)
	}
	return out, rows.Err()
}

func (s *Store) GetEventFrequencyHours(ctx context.Context, guildID string) (int, error) {
	var hours int
	err := s.db.QueryRow(ctx, `
		SELECT event_frequency_hours FROM guild_settings WHERE guild_id = $1
	`, guildID).Scan(&hours)
	if errors.Is(err, pgx.ErrNoRows) {
		return game.DefaultEventFrequencyHours, nil
	}
	return hours, err
}

func (s *Store) GetTaxRate(ctx context.Context, guildID string) (int, error) {
	var rate int
	err := s.db.QueryRow(ctx, `
		SELECT tax_rate FROM guild_settings WHERE guild_id = $1
	`, guildID).Scan(&rate)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	return rate, err
}

func (s *Store) LogTaxCollection(ctx context.Context, playerID string, amount int64, guildID string) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO tax_log (player_id, guild_id, amount)
		VALUES ($1, $2, $3)
	`, playerID, guildID, amount)
	return err
}

// Leaderboard ranks players by raw balance. The ops API serves this; the
// ticks never read it.
func (s *Store) Leaderboard(ctx context.Context, limit int) ([]game.LeaderboardRow, error) {
	rows, err := s.db.Query(ctx, `
		SELECT username, balance
		FROM players
		ORDER BY balance DESC, id
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []game.LeaderboardRow
	var rank int64 = 1
	for rows.Next() {
		var r game.LeaderboardRow
		if err := rows.Scan(&r.Username, &r.Balance); err != nil {
			return nil, err
		}
		r.Rank = rank
		rank++
		out = append(out, r)
	}
	return out, rows.Err()
}
