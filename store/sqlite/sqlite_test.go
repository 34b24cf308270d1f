/*
sqlite_test.go - Store behavior tests

Tests for:
- CreateRecord error mapping (duplicate punch vs other failures)
- Leave request persistence round trips
*/
package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cuidaemprego/timeclock/leave"
	"github.com/cuidaemprego/timeclock/store/sqlite"
	"github.com/cuidaemprego/timeclock/timeclock"
)

func newStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func pendingPunch(punchType timeclock.PunchType) timeclock.Punch {
	return timeclock.Punch{
		Type:   punchType,
		Label:  string(punchType),
		Time:   timeclock.TimeUnset,
		Status: timeclock.StatusPendente,
	}
}

// =============================================================================
// RECORD CREATION
// =============================================================================

func TestCreateRecord_DuplicatePunchType(t *testing.T) {
	// GIVEN: A record carrying the same punch slot twice
	store := newStore(t)
	rec := timeclock.AttendanceRecord{
		ID:           "rec-1",
		EmployeeID:   "emp-1",
		EmployeeName: "Maria Silva",
		Date:         date(2026, time.March, 10),
		WorkModelID:  "PADRAO",
		Punches: []timeclock.Punch{
			pendingPunch(timeclock.PunchEntradaTrabalho),
			pendingPunch(timeclock.PunchEntradaTrabalho),
		},
	}

	// THEN: The unique-constraint failure maps to the domain error
	err := store.CreateRecord(context.Background(), rec)
	assert.ErrorIs(t, err, timeclock.ErrDuplicatePunch)
}

func TestCreateRecord_UnrelatedFailureNotDuplicate(t *testing.T) {
	// GIVEN: A store whose connection is gone
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	require.NoError(t, store.Close())

	rec := timeclock.AttendanceRecord{
		ID:          "rec-1",
		EmployeeID:  "emp-1",
		Date:        date(2026, time.March, 10),
		WorkModelID: "PADRAO",
		Punches:     []timeclock.Punch{pendingPunch(timeclock.PunchEntradaTrabalho)},
	}

	// THEN: The failure surfaces as-is, not as a punch conflict
	err = store.CreateRecord(context.Background(), rec)
	require.Error(t, err)
	assert.NotErrorIs(t, err, timeclock.ErrDuplicatePunch)
}

// =============================================================================
// LEAVE REQUESTS
// =============================================================================

func TestVacationPersistence(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	req := leave.VacationRequest{
		ID:           "vac-1",
		EmployeeID:   "emp-1",
		StartDate:    date(2026, time.July, 6),
		EndDate:      date(2026, time.July, 17),
		BusinessDays: 10,
		AccrualYear:  2026,
		Notes:        "praia",
		Status:       leave.StatusPendente,
		CreatedAt:    time.Now(),
	}
	require.NoError(t, store.SaveVacation(ctx, req))

	got, err := store.GetVacation(ctx, "vac-1")
	require.NoError(t, err)
	assert.Equal(t, leave.StatusPendente, got.Status)
	assert.Equal(t, 10, got.BusinessDays)
	assert.Equal(t, 2026, got.AccrualYear)
	assert.Equal(t, "praia", got.Notes)
	assert.True(t, got.StartDate.Equal(req.StartDate))

	now := time.Now()
	got.Status = leave.StatusAprovada
	got.DecidedBy = "gestor"
	got.DecidedAt = &now
	require.NoError(t, store.UpdateVacation(ctx, *got))

	pending, err := store.ListVacations(ctx, "emp-1", leave.StatusPendente)
	require.NoError(t, err)
	assert.Empty(t, pending)
	approved, err := store.ListVacations(ctx, "emp-1", leave.StatusAprovada)
	require.NoError(t, err)
	require.Len(t, approved, 1)
	assert.Equal(t, "gestor", approved[0].DecidedBy)
	require.NotNil(t, approved[0].DecidedAt)

	_, err = store.GetVacation(ctx, "missing")
	assert.ErrorIs(t, err, leave.ErrRequestNotFound)
	err = store.UpdateVacation(ctx, leave.VacationRequest{ID: "missing"})
	assert.ErrorIs(t, err, leave.ErrRequestNotFound)
}

func TestDayOffPersistence(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	req := leave.DayOffRequest{
		ID:         "off-1",
		EmployeeID: "emp-1",
		StartDate:  date(2026, time.April, 21),
		EndDate:    date(2026, time.April, 21),
		Type:       leave.DayOffBancoHoras,
		Reason:     "compensacao",
		Status:     leave.StatusPendente,
		CreatedAt:  time.Now(),
	}
	require.NoError(t, store.SaveDayOff(ctx, req))

	got, err := store.GetDayOff(ctx, "off-1")
	require.NoError(t, err)
	assert.Equal(t, leave.DayOffBancoHoras, got.Type)
	assert.Equal(t, "compensacao", got.Reason)

	got.Status = leave.StatusRejeitada
	got.DecidedBy = "gestor"
	require.NoError(t, store.UpdateDayOff(ctx, *got))

	all, err := store.ListDayOffs(ctx, "emp-1", "")
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, leave.StatusRejeitada, all[0].Status)

	_, err = store.GetDayOff(ctx, "missing")
	assert.ErrorIs(t, err, leave.ErrRequestNotFound)
}
