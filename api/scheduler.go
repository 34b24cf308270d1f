/*
scheduler.go - Automated day-close scheduler

PURPOSE:
  Periodically posts completed attendance records from past days into the
  hours bank.

DESIGN:
  - Runs a background goroutine with configurable check interval
  - Only records whose day has fully passed are considered
  - Incomplete records are skipped and stay open for correction
  - Idempotency keys on ledger entries make reruns safe

USAGE:
  scheduler := NewDayCloseScheduler(handler)
  scheduler.Start()
  // ... later
  scheduler.Stop()

SEE ALSO:
  - handlers.go: ClosePastDays and the /api/admin/close endpoint
  - hoursbank/ledger.go: CloseDay workflow
*/
package api

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// DayCloseScheduler posts past days into the hours bank on a timer.
type DayCloseScheduler struct {
	Handler       *Handler
	CheckInterval time.Duration
	Enabled       bool

	ticker *time.Ticker
	stop   chan struct{}
	wg     sync.WaitGroup
	mu     sync.Mutex
}

// NewDayCloseScheduler creates a new scheduler.
func NewDayCloseScheduler(handler *Handler) *DayCloseScheduler {
	return &DayCloseScheduler{
		Handler:       handler,
		CheckInterval: 1 * time.Hour,
		Enabled:       true,
	}
}

// Start begins the scheduler.
func (ds *DayCloseScheduler) Start() {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	if !ds.Enabled {
		log.Info().Msg("day-close scheduler disabled, not starting")
		return
	}

	ds.ticker = time.NewTicker(ds.CheckInterval)
	ds.stop = make(chan struct{})
	ds.wg.Add(1)

	go ds.run(ds.ticker, ds.stop)

	log.Info().Dur("interval", ds.CheckInterval).Msg("day-close scheduler started")
}

// Stop stops the scheduler. Calling Stop again, or without a prior
// Start, is a no-op.
func (ds *DayCloseScheduler) Stop() {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	if ds.ticker == nil {
		return
	}
	ds.ticker.Stop()
	ds.ticker = nil
	close(ds.stop)
	ds.wg.Wait()
	log.Info().Msg("day-close scheduler stopped")
}

func (ds *DayCloseScheduler) run(ticker *time.Ticker, stop <-chan struct{}) {
	defer ds.wg.Done()

	// Run immediately on start
	ds.checkAndClose()

	for {
		select {
		case <-ticker.C:
			ds.checkAndClose()
		case <-stop:
			return
		}
	}
}

func (ds *DayCloseScheduler) checkAndClose() {
	ctx := context.Background()

	// Everything before today's midnight is a past day.
	now := time.Now()
	cutoff := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	closed, skipped, err := ds.Handler.ClosePastDays(ctx, cutoff)
	if err != nil {
		log.Error().Err(err).Msg("day close failed")
		return
	}
	if closed > 0 || skipped > 0 {
		log.Info().Int("closed", closed).Int("skipped", skipped).Msg("day close completed")
	}
}

// RunNow triggers an immediate check (for testing/admin).
func (ds *DayCloseScheduler) RunNow() {
	ds.checkAndClose()
}
