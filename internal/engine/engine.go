// Package engine runs the periodic game-state loops: income disbursement,
// random company events, stock price walks, the overdue-loan sweep and the
// tax sweep. Every loop is self-contained; a failure on one row is logged
// and the rest of the pass continues.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	mathrand "math/rand"
	"sort"
	"sync"
	"time"

	"github.com/vicky-or-victoria/Risky-Monopoly-Electric-Boogaloo-sub000/internal/game"
	"github.com/vicky-or-victoria/Risky-Monopoly-Electric-Boogaloo-sub000/internal/notify"
)

// Store is the persistence surface the ticks run against. All balance and
// income writes are single-statement relative deltas so interleaved ticks
// stay additive without cross-tick locking.
type Store interface {
	ListAllCompanies(ctx context.Context) ([]game.Company, error)
	GetCompany(ctx context.Context, companyID int64) (game.Company, error)
	DeleteCompany(ctx context.Context, companyID int64) error
	// ApplyCompanyIncomeDelta adds delta to current income, stamps the
	// last-event time and returns the updated row.
	ApplyCompanyIncomeDelta(ctx context.Context, companyID int64, delta int64, eventAt time.Time) (game.Company, error)
	AppendCompanyEventLog(ctx context.Context, companyID int64, category game.EventCategory, description string, delta int64) error

	GetPlayer(ctx context.Context, playerID string) (game.Player, error)
	CreditPlayerBalance(ctx context.Context, playerID string, delta int64) error
	ListPlayersWithPositiveBalance(ctx context.Context) ([]game.Player, error)

	ListOverdueUnpaidLoans(ctx context.Context, now time.Time) ([]game.Loan, error)
	MarkLoanPaid(ctx context.Context, loanID int64) error

	ListStockPrices(ctx context.Context) (map[string]int64, error)
	SetStockPrice(ctx context.Context, symbol string, price int64) error
	AppendStockPriceHistory(ctx context.Context, symbol string, oldPrice, newPrice int64, pctChange float64) error

	ListGuildSettings(ctx context.Context) ([]game.GuildSettings, error)
	GetEventFrequencyHours(ctx context.Context, guildID string) (int, error)
	GetTaxRate(ctx context.Context, guildID string) (int, error)
	LogTaxCollection(ctx context.Context, playerID string, amount int64, guildID string) error
}

type Engine struct {
	store   Store
	sink    notify.Notifier
	catalog *game.Catalog
	log     *slog.Logger

	mu   sync.Mutex
	rand *mathrand.Rand
	now  func() time.Time

	statsMu sync.Mutex
	stats   map[string]TickStat
}

// TickStat is the ops-facing record of one loop's recent activity.
type TickStat struct {
	Tick      string    `json:"tick"`
	Runs      int64     `json:"runs"`
	LastRunAt time.Time `json:"last_run_at"`
	LastError string    `json:"last_error,omitempty"`
}

func New(store Store, sink notify.Notifier, catalog *game.Catalog, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		store:   store,
		sink:    sink,
		catalog: catalog,
		log:     logger,
		rand:    mathrand.New(mathrand.NewSource(time.Now().UnixNano())),
		now:     time.Now,
		stats:   make(map[string]TickStat),
	}
}

// RunByName dispatches a single pass of the named tick. The ops API uses
// this for manual runs.
func (e *Engine) RunByName(ctx context.Context, name string) error {
	switch name {
	case "income":
		return e.RunIncome(ctx)
	case "events":
		return e.RunEvents(ctx)
	case "stocks":
		return e.RunStocks(ctx)
	case "loan_sweep":
		return e.RunLoanSweep(ctx)
	case "tax_sweep":
		return e.RunTaxSweep(ctx)
	default:
		return fmt.Errorf("unknown tick %q", name)
	}
}

func (e *Engine) Stats() []TickStat {
	e.statsMu.Lock()
	defer e.statsMu.Unlock()
	out := make([]TickStat, 0, len(e.stats))
	for _, s := range e.stats {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Tick < out[j].Tick })
	return out
}

func (e *Engine) recordRun(tick string, runErr error) {
	e.statsMu.Lock()
	defer e.statsMu.Unlock()
	s := e.stats[tick]
	s.Tick = tick
	s.Runs++
	s.LastRunAt = e.now()
	s.LastError = ""
	if runErr != nil {
		s.LastError = runErr.Error()
	}
	e.stats[tick] = s
}

func (e *Engine) nextFloat() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rand.Float64()
}

func (e *Engine) intn(n int) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rand.Intn(n)
}
