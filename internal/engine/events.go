package engine

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/vicky-or-victoria/Risky-Monopoly-Electric-Boogaloo-sub000/internal/game"
)

// RunEvents applies random events to companies whose per-guild event
// window has elapsed. Companies without a thread binding are skipped
// outright, since guild context is derived from the thread.
func (e *Engine) RunEvents(ctx context.Context) error {
	now := e.now()
	companies, err := e.store.ListAllCompanies(ctx)
	if err != nil {
		return fmt.Errorf("list companies: %w", err)
	}
	applied := 0
	for _, c := range companies {
		if c.ThreadID == "" {
			continue
		}
		ok, err := e.resolveCompanyEvent(ctx, c, now)
		if err != nil {
			e.log.Error("event resolve failed", "company_id", c.ID, "err", err)
			continue
		}
		if ok {
			applied++
		}
	}
	e.log.Debug("event tick complete", "companies", len(companies), "applied", applied)
	return nil
}

func (e *Engine) resolveCompanyEvent(ctx context.Context, c game.Company, now time.Time) (bool, error) {
	hours, err := e.store.GetEventFrequencyHours(ctx, c.GuildID)
	if err != nil {
		return false, fmt.Errorf("event frequency: %w", err)
	}
	if hours <= 0 {
		hours = game.DefaultEventFrequencyHours
	}
	if now.Sub(c.LastEventAt) < time.Duration(hours)*time.Hour {
		return false, nil
	}

	spec := e.catalog.SelectEvent(c.Tier, e.nextFloat(), e.intn)
	delta := int64(math.Round(float64(c.CurrentIncome) * spec.Multiplier))

	// The timestamp resets for every category, neutral included, so the
	// delta write goes through even when it is zero.
	updated, err := e.store.ApplyCompanyIncomeDelta(ctx, c.ID, delta, now)
	if err != nil {
		return false, fmt.Errorf("apply income delta: %w", err)
	}
	if err := e.store.AppendCompanyEventLog(ctx, c.ID, spec.Category, spec.Description, delta); err != nil {
		return false, fmt.Errorf("append event log: %w", err)
	}

	if err := e.sink.EditCompanyStatus(ctx, updated, spec, delta); err != nil {
		e.log.Warn("status embed edit failed", "company_id", c.ID, "err", err)
	}
	if err := e.sink.PostEventToThread(ctx, updated, spec, delta); err != nil {
		e.log.Warn("thread post failed", "company_id", c.ID, "err", err)
	}
	return true, nil
}
