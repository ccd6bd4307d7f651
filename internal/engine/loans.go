package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/vicky-or-victoria/Risky-Monopoly-Electric-Boogaloo-sub000/internal/game"
)

// RunLoanSweep penalizes every unpaid loan past its due date. Marking paid
// is the terminal step of each penalty path, so a loan that fails partway
// stays overdue and is penalized again on the next sweep.
func (e *Engine) RunLoanSweep(ctx context.Context) error {
	loans, err := e.store.ListOverdueUnpaidLoans(ctx, e.now())
	if err != nil {
		return fmt.Errorf("list overdue loans: %w", err)
	}
	for _, loan := range loans {
		if err := e.settleLoan(ctx, loan); err != nil {
			e.log.Error("loan penalty failed", "loan_id", loan.ID, "borrower_id", loan.BorrowerID, "err", err)
			continue
		}
	}
	e.log.Debug("loan sweep complete", "overdue", len(loans))
	return nil
}

func (e *Engine) settleLoan(ctx context.Context, loan game.Loan) error {
	if loan.Secured() {
		return e.seizeCollateral(ctx, loan)
	}

	player, err := e.store.GetPlayer(ctx, loan.BorrowerID)
	if err != nil {
		return fmt.Errorf("load borrower: %w", err)
	}
	seized := loan.TotalOwed
	if player.Balance < seized {
		seized = player.Balance
	}
	if seized < 0 {
		// An already-negative balance yields nothing to seize; the
		// penalty never pushes the balance further down than zero would.
		seized = 0
	}
	if seized > 0 {
		if err := e.store.CreditPlayerBalance(ctx, loan.BorrowerID, -seized); err != nil {
			return fmt.Errorf("seize balance: %w", err)
		}
	}
	if err := e.sink.DMBorrower(ctx, loan.BorrowerID, loan, seized); err != nil {
		e.log.Warn("loan penalty dm failed", "loan_id", loan.ID, "err", err)
	}
	return e.store.MarkLoanPaid(ctx, loan.ID)
}

func (e *Engine) seizeCollateral(ctx context.Context, loan game.Loan) error {
	company, err := e.store.GetCompany(ctx, loan.CollateralCompanyID)
	switch {
	case err == nil:
		if err := e.store.DeleteCompany(ctx, company.ID); err != nil {
			return fmt.Errorf("delete collateral: %w", err)
		}
		if err := e.sink.NotifyCompanySeized(ctx, company, loan); err != nil {
			e.log.Warn("collateral seizure notify failed", "loan_id", loan.ID, "err", err)
		}
	case errors.Is(err, game.ErrCompanyNotFound):
		// Collateral already gone (disband or admin delete); nothing left
		// to liquidate, the loan still settles.
	default:
		return fmt.Errorf("load collateral: %w", err)
	}
	return e.store.MarkLoanPaid(ctx, loan.ID)
}
