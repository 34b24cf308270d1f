package api

import (
	"testing"
	"time"
)

func TestDayCloseScheduler_StopIsIdempotent(t *testing.T) {
	// GIVEN: A running scheduler
	h := newTestHandler(t)
	ds := NewDayCloseScheduler(h)
	ds.CheckInterval = time.Hour
	ds.Start()

	// WHEN/THEN: Stopping twice does not panic
	ds.Stop()
	ds.Stop()
}

func TestDayCloseScheduler_StopWithoutStart(t *testing.T) {
	h := newTestHandler(t)
	ds := NewDayCloseScheduler(h)

	ds.Stop()
}
