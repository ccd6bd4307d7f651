package engine

import (
	"context"
	"testing"
	"time"

	"github.com/vicky-or-victoria/Risky-Monopoly-Electric-Boogaloo-sub000/internal/game"
)

func TestTaxSweepFloorsDeduction(t *testing.T) {
	store := newFakeStore()
	store.guilds = []game.GuildSettings{{GuildID: "g1", TaxRate: 10, TaxChannelID: "c1"}}
	store.players["alice"] = game.Player{ID: "alice", Balance: 999}

	sink := newRecordingSink()
	e := newTestEngine(store, sink, time.Now())
	if err := e.RunTaxSweep(context.Background()); err != nil {
		t.Fatalf("tax sweep: %v", err)
	}

	// floor(999 * 10 / 100) = 99
	if got := store.players["alice"].Balance; got != 900 {
		t.Fatalf("balance = %d, want 900 after a floored 99 deduction", got)
	}
	if len(store.taxLog) != 1 || store.taxLog[0].amount != 99 {
		t.Fatalf("tax log = %+v, want one row of 99", store.taxLog)
	}
	announcements := sink.byKind("tax")
	if len(announcements) != 1 || announcements[0].total != 99 || announcements[0].players != 1 {
		t.Fatalf("announcement = %+v, want total 99 from 1 player", announcements)
	}
}

func TestTaxSweepSkipsZeroRateAndZeroAmounts(t *testing.T) {
	store := newFakeStore()
	store.guilds = []game.GuildSettings{
		{GuildID: "untaxed", TaxRate: 0, TaxChannelID: "c0"},
		{GuildID: "taxed", TaxRate: 10, TaxChannelID: "c1"},
	}
	// floor(5 * 10 / 100) = 0: nothing to take, no log row.
	store.players["tiny"] = game.Player{ID: "tiny", Balance: 5}
	store.players["broke"] = game.Player{ID: "broke", Balance: -100}

	sink := newRecordingSink()
	e := newTestEngine(store, sink, time.Now())
	if err := e.RunTaxSweep(context.Background()); err != nil {
		t.Fatalf("tax sweep: %v", err)
	}

	if got := store.players["tiny"].Balance; got != 5 {
		t.Fatalf("tiny balance = %d, want untouched 5", got)
	}
	if got := store.players["broke"].Balance; got != -100 {
		t.Fatalf("negative balances are never taxed, got %d", got)
	}
	if len(store.taxLog) != 0 {
		t.Fatalf("expected no tax log rows, got %+v", store.taxLog)
	}
	if len(sink.byKind("tax")) != 0 {
		t.Fatalf("no announcement when nothing was collected")
	}
}

func TestTaxSweepEachTaxingGuildLeviesAllPlayers(t *testing.T) {
	store := newFakeStore()
	store.guilds = []game.GuildSettings{
		{GuildID: "g1", TaxRate: 10, TaxChannelID: "c1"},
		{GuildID: "g2", TaxRate: 5, TaxChannelID: "c2"},
	}
	store.players["alice"] = game.Player{ID: "alice", Balance: 1000}

	e := newTestEngine(store, newRecordingSink(), time.Now())
	if err := e.RunTaxSweep(context.Background()); err != nil {
		t.Fatalf("tax sweep: %v", err)
	}

	// g1 takes 100 of 1000, then g2 takes floor(900*5/100)=45.
	if got := store.players["alice"].Balance; got != 855 {
		t.Fatalf("balance = %d, want 855 after both guilds levied", got)
	}
	if len(store.taxLog) != 2 {
		t.Fatalf("expected two log rows, got %+v", store.taxLog)
	}
}

func TestTaxSweepPerPlayerFailureIsolation(t *testing.T) {
	store := newFakeStore()
	store.guilds = []game.GuildSettings{{GuildID: "g1", TaxRate: 10, TaxChannelID: "c1"}}
	store.players["alice"] = game.Player{ID: "alice", Balance: 1000}
	store.players["bob"] = game.Player{ID: "bob", Balance: 500}
	store.failCreditFor["alice"] = true

	sink := newRecordingSink()
	e := newTestEngine(store, sink, time.Now())
	if err := e.RunTaxSweep(context.Background()); err != nil {
		t.Fatalf("tax sweep: %v", err)
	}

	if got := store.players["bob"].Balance; got != 450 {
		t.Fatalf("bob balance = %d, want 450 despite alice failing", got)
	}
	announcements := sink.byKind("tax")
	if len(announcements) != 1 || announcements[0].total != 50 || announcements[0].players != 1 {
		t.Fatalf("announcement must count only successful deductions, got %+v", announcements)
	}
}
