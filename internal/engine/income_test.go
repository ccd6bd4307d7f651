package engine

import (
	"context"
	"testing"
	"time"

	"github.com/vicky-or-victoria/Risky-Monopoly-Electric-Boogaloo-sub000/internal/game"
)

func TestIncomeTickCreditsEveryOwner(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	store := newFakeStore()
	store.players["alice"] = game.Player{ID: "alice", Username: "alice", Balance: 100}
	store.players["bob"] = game.Player{ID: "bob", Username: "bob", Balance: 0}
	store.companies[1] = game.Company{ID: 1, OwnerID: "alice", GuildID: "g1", Tier: game.TierF, CurrentIncome: 10, LastEventAt: now}
	store.companies[2] = game.Company{ID: 2, OwnerID: "alice", GuildID: "g1", Tier: game.TierC, CurrentIncome: 25, LastEventAt: now}
	store.companies[3] = game.Company{ID: 3, OwnerID: "bob", GuildID: "g1", Tier: game.TierA, CurrentIncome: 40, LastEventAt: now}

	e := newTestEngine(store, newRecordingSink(), now)
	if err := e.RunIncome(context.Background()); err != nil {
		t.Fatalf("income tick: %v", err)
	}

	if got := store.players["alice"].Balance; got != 135 {
		t.Fatalf("alice balance = %d, want 135 (sum across both companies)", got)
	}
	if got := store.players["bob"].Balance; got != 40 {
		t.Fatalf("bob balance = %d, want 40", got)
	}
}

func TestIncomeTickRowFailureDoesNotAbort(t *testing.T) {
	now := time.Now()
	store := newFakeStore()
	store.players["alice"] = game.Player{ID: "alice", Balance: 0}
	store.players["bob"] = game.Player{ID: "bob", Balance: 0}
	store.companies[1] = game.Company{ID: 1, OwnerID: "alice", Tier: game.TierF, CurrentIncome: 10}
	store.companies[2] = game.Company{ID: 2, OwnerID: "bob", Tier: game.TierF, CurrentIncome: 20}
	store.failCreditFor["alice"] = true

	e := newTestEngine(store, newRecordingSink(), now)
	if err := e.RunIncome(context.Background()); err != nil {
		t.Fatalf("income tick should survive per-row failure: %v", err)
	}
	if got := store.players["bob"].Balance; got != 20 {
		t.Fatalf("bob balance = %d, want 20 despite alice failing", got)
	}
	if got := store.players["alice"].Balance; got != 0 {
		t.Fatalf("alice balance = %d, want 0", got)
	}
}
