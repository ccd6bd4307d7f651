package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Schedule holds how often each loop fires. The fast loops (income,
// events, stocks) run on tickers; the coarse sweeps run on cron specs so
// they stay wall-clock aligned. Missed firings are dropped rather than
// overlapped.
type Schedule struct {
	IncomeEvery time.Duration
	EventEvery  time.Duration
	StockEvery  time.Duration
	LoanSpec    string
	TaxSpec     string
}

// Start launches every tick loop and returns a stop function that blocks
// until in-flight passes finish. Errors inside a pass are logged and the
// loop keeps its cadence; nothing propagates to the caller.
func (e *Engine) Start(ctx context.Context, sched Schedule) (func(), error) {
	c := cron.New()
	if _, err := c.AddFunc(sched.LoanSpec, func() { e.runPass(ctx, "loan_sweep", e.RunLoanSweep) }); err != nil {
		return nil, fmt.Errorf("register loan sweep: %w", err)
	}
	if _, err := c.AddFunc(sched.TaxSpec, func() { e.runPass(ctx, "tax_sweep", e.RunTaxSweep) }); err != nil {
		return nil, fmt.Errorf("register tax sweep: %w", err)
	}
	c.Start()

	var wg sync.WaitGroup
	wg.Add(3)
	go e.loop(ctx, &wg, "income", sched.IncomeEvery, e.RunIncome)
	go e.loop(ctx, &wg, "events", sched.EventEvery, e.RunEvents)
	go e.loop(ctx, &wg, "stocks", sched.StockEvery, e.RunStocks)

	e.log.Info("tick engine started",
		"income_every", sched.IncomeEvery.String(),
		"event_every", sched.EventEvery.String(),
		"stock_every", sched.StockEvery.String(),
		"loan_spec", sched.LoanSpec,
		"tax_spec", sched.TaxSpec,
	)

	stop := func() {
		<-c.Stop().Done()
		wg.Wait()
		e.log.Info("tick engine stopped")
	}
	return stop, nil
}

func (e *Engine) loop(ctx context.Context, wg *sync.WaitGroup, name string, every time.Duration, run func(context.Context) error) {
	defer wg.Done()
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			e.runPass(ctx, name, run)
		}
	}
}

func (e *Engine) runPass(ctx context.Context, name string, run func(context.Context) error) {
	err := run(ctx)
	e.recordRun(name, err)
	if err != nil {
		e.log.Error("tick pass failed", "tick", name, "err", err)
	}
}
