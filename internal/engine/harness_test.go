package engine

import (
	"context"
	"fmt"
	"log/slog"
	mathrand "math/rand"
	"sort"
	"time"

	"github.com/vicky-or-victoria/Risky-Monopoly-Electric-Boogaloo-sub000/internal/game"
)

type historyRow struct {
	symbol   string
	oldPrice int64
	newPrice int64
	pct      float64
}

type eventLogRow struct {
	companyID   int64
	category    game.EventCategory
	description string
	delta       int64
}

type taxLogRow struct {
	playerID string
	guildID  string
	amount   int64
}

type fakeStore struct {
	companies map[int64]game.Company
	players   map[string]game.Player
	loans     map[int64]game.Loan
	prices    map[string]int64
	guilds    []game.GuildSettings

	history  []historyRow
	eventLog []eventLogRow
	taxLog   []taxLogRow

	failCreditFor map[string]bool
	failFreqFor   map[string]bool
	failMarkPaid  map[int64]bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		companies:     make(map[int64]game.Company),
		players:       make(map[string]game.Player),
		loans:         make(map[int64]game.Loan),
		prices:        make(map[string]int64),
		failCreditFor: make(map[string]bool),
		failFreqFor:   make(map[string]bool),
		failMarkPaid:  make(map[int64]bool),
	}
}

func (f *fakeStore) ListAllCompanies(context.Context) ([]game.Company, error) {
	out := make([]game.Company, 0, len(f.companies))
	for _, c := range f.companies {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeStore) GetCompany(_ context.Context, id int64) (game.Company, error) {
	c, ok := f.companies[id]
	if !ok {
		return game.Company{}, game.ErrCompanyNotFound
	}
	return c, nil
}

func (f *fakeStore) DeleteCompany(_ context.Context, id int64) error {
	if _, ok := f.companies[id]; !ok {
		return game.ErrCompanyNotFound
	}
	delete(f.companies, id)
	return nil
}

func (f *fakeStore) ApplyCompanyIncomeDelta(_ context.Context, id int64, delta int64, eventAt time.Time) (game.Company, error) {
	c, ok := f.companies[id]
	if !ok {
		return game.Company{}, game.ErrCompanyNotFound
	}
	c.CurrentIncome += delta
	c.LastEventAt = eventAt
	f.companies[id] = c
	return c, nil
}

func (f *fakeStore) AppendCompanyEventLog(_ context.Context, id int64, category game.EventCategory, description string, delta int64) error {
	f.eventLog = append(f.eventLog, eventLogRow{id, category, description, delta})
	return nil
}

func (f *fakeStore) GetPlayer(_ context.Context, id string) (game.Player, error) {
	p, ok := f.players[id]
	if !ok {
		return game.Player{}, game.ErrPlayerNotFound
	}
	return p, nil
}

func (f *fakeStore) CreditPlayerBalance(_ context.Context, id string, delta int64) error {
	if f.failCreditFor[id] {
		return fmt.Errorf("credit %s: injected failure", id)
	}
	p, ok := f.players[id]
	if !ok {
		return game.ErrPlayerNotFound
	}
	p.Balance += delta
	f.players[id] = p
	return nil
}

func (f *fakeStore) ListPlayersWithPositiveBalance(context.Context) ([]game.Player, error) {
	var out []game.Player
	for _, p := range f.players {
		if p.Balance > 0 {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeStore) ListOverdueUnpaidLoans(_ context.Context, now time.Time) ([]game.Loan, error) {
	var out []game.Loan
	for _, l := range f.loans {
		if !l.Paid && l.DueAt.Before(now) {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DueAt.Before(out[j].DueAt) })
	return out, nil
}

func (f *fakeStore) MarkLoanPaid(_ context.Context, id int64) error {
	if f.failMarkPaid[id] {
		return fmt.Errorf("mark paid %d: injected failure", id)
	}
	l, ok := f.loans[id]
	if !ok {
		return game.ErrLoanNotFound
	}
	l.Paid = true
	f.loans[id] = l
	return nil
}

func (f *fakeStore) ListStockPrices(context.Context) (map[string]int64, error) {
	out := make(map[string]int64, len(f.prices))
	for k, v := range f.prices {
		out[k] = v
	}
	return out, nil
}

func (f *fakeStore) SetStockPrice(_ context.Context, symbol string, price int64) error {
	if _, ok := f.prices[symbol]; !ok {
		return game.ErrStockNotFound
	}
	f.prices[symbol] = price
	return nil
}

func (f *fakeStore) AppendStockPriceHistory(_ context.Context, symbol string, oldPrice, newPrice int64, pct float64) error {
	f.history = append(f.history, historyRow{symbol, oldPrice, newPrice, pct})
	return nil
}

func (f *fakeStore) ListGuildSettings(context.Context) ([]game.GuildSettings, error) {
	return append([]game.GuildSettings(nil), f.guilds...), nil
}

func (f *fakeStore) GetEventFrequencyHours(_ context.Context, guildID string) (int, error) {
	if f.failFreqFor[guildID] {
		return 0, fmt.Errorf("frequency %s: injected failure", guildID)
	}
	for _, g := range f.guilds {
		if g.GuildID == guildID {
			return g.EventFrequencyHours, nil
		}
	}
	return game.DefaultEventFrequencyHours, nil
}

func (f *fakeStore) GetTaxRate(_ context.Context, guildID string) (int, error) {
	for _, g := range f.guilds {
		if g.GuildID == guildID {
			return g.TaxRate, nil
		}
	}
	return 0, nil
}

func (f *fakeStore) LogTaxCollection(_ context.Context, playerID string, amount int64, guildID string) error {
	f.taxLog = append(f.taxLog, taxLogRow{playerID, guildID, amount})
	return nil
}

type sinkCall struct {
	kind    string
	company game.Company
	event   game.EventSpec
	delta   int64
	guildID string
	total   int64
	players int
	seized  int64
	loan    game.Loan
}

type recordingSink struct {
	calls        []sinkCall
	failBoardFor map[string]bool
	failAll      bool
}

func newRecordingSink() *recordingSink {
	return &recordingSink{failBoardFor: make(map[string]bool)}
}

func (r *recordingSink) EditCompanyStatus(_ context.Context, c game.Company, e game.EventSpec, delta int64) error {
	if r.failAll {
		return fmt.Errorf("injected sink failure")
	}
	r.calls = append(r.calls, sinkCall{kind: "status", company: c, event: e, delta: delta})
	return nil
}

func (r *recordingSink) PostEventToThread(_ context.Context, c game.Company, e game.EventSpec, delta int64) error {
	if r.failAll {
		return fmt.Errorf("injected sink failure")
	}
	r.calls = append(r.calls, sinkCall{kind: "thread", company: c, event: e, delta: delta})
	return nil
}

func (r *recordingSink) EditStockBoard(_ context.Context, gs game.GuildSettings, _ []game.StockQuote) error {
	if r.failAll || r.failBoardFor[gs.GuildID] {
		return fmt.Errorf("injected board failure")
	}
	r.calls = append(r.calls, sinkCall{kind: "board", guildID: gs.GuildID})
	return nil
}

func (r *recordingSink) DMBorrower(_ context.Context, borrowerID string, loan game.Loan, seized int64) error {
	if r.failAll {
		return fmt.Errorf("injected sink failure")
	}
	r.calls = append(r.calls, sinkCall{kind: "dm", guildID: borrowerID, loan: loan, seized: seized})
	return nil
}

func (r *recordingSink) NotifyCompanySeized(_ context.Context, c game.Company, loan game.Loan) error {
	if r.failAll {
		return fmt.Errorf("injected sink failure")
	}
	r.calls = append(r.calls, sinkCall{kind: "seized", company: c, loan: loan})
	return nil
}

func (r *recordingSink) AnnounceTax(_ context.Context, gs game.GuildSettings, total int64, players int) error {
	if r.failAll {
		return fmt.Errorf("injected sink failure")
	}
	r.calls = append(r.calls, sinkCall{kind: "tax", guildID: gs.GuildID, total: total, players: players})
	return nil
}

func (r *recordingSink) byKind(kind string) []sinkCall {
	var out []sinkCall
	for _, c := range r.calls {
		if c.kind == kind {
			out = append(out, c)
		}
	}
	return out
}

func testCatalog() *game.Catalog {
	c, err := game.LoadCatalog("")
	if err != nil {
		panic(err)
	}
	return c
}

func newTestEngine(store *fakeStore, sink *recordingSink, at time.Time) *Engine {
	e := New(store, sink, testCatalog(), slog.Default())
	e.rand = mathrand.New(mathrand.NewSource(42))
	e.now = func() time.Time { return at }
	return e
}
