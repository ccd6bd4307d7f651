package engine

import (
	"context"
	"fmt"
)

// RunIncome credits every company's owner with the company's current
// income. No eligibility filter, no notification; a company whose owner
// cannot be credited is skipped.
func (e *Engine) RunIncome(ctx context.Context) error {
	companies, err := e.store.ListAllCompanies(ctx)
	if err != nil {
		return fmt.Errorf("list companies: %w", err)
	}
	credited := 0
	for _, c := range companies {
		if err := e.store.CreditPlayerBalance(ctx, c.OwnerID, c.CurrentIncome); err != nil {
			e.log.Error("income credit failed", "company_id", c.ID, "owner_id", c.OwnerID, "err", err)
			continue
		}
		credited++
	}
	e.log.Debug("income tick complete", "companies", len(companies), "credited", credited)
	return nil
}
