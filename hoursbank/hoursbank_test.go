package hoursbank_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cuidaemprego/timeclock/hoursbank"
	"github.com/cuidaemprego/timeclock/timeclock"
)

func newService() *hoursbank.Service {
	return hoursbank.NewService(hoursbank.NewMemoryLedger(), hoursbank.NewMemoryRequests())
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func completeResult(balanceMinutes int) timeclock.BalanceResult {
	worked := 480 + balanceMinutes
	return timeclock.BalanceResult{
		Complete:       true,
		WorkedMinutes:  worked,
		BalanceMinutes: balanceMinutes,
		DisplayWorked:  timeclock.FormatDuration(worked),
		DisplayBalance: timeclock.FormatBalance(balanceMinutes),
	}
}

// =============================================================================
// DAY CLOSE
// =============================================================================

func TestCloseDay_PostsBalanceDelta(t *testing.T) {
	ctx := context.Background()
	svc := newService()
	rec := timeclock.AttendanceRecord{ID: "rec-1", EmployeeID: "emp-101", Date: date(2025, time.March, 19)}

	entry, err := svc.CloseDay(ctx, rec, completeResult(90))
	require.NoError(t, err)
	assert.Equal(t, 90, entry.DeltaMinutes)
	assert.Equal(t, hoursbank.SourceDayClose, entry.Source)
	assert.Equal(t, "dayclose-rec-1", entry.IdempotencyKey)

	balance, err := svc.Balance(ctx, "emp-101")
	require.NoError(t, err)
	assert.Equal(t, 90, balance.Minutes)
	assert.Equal(t, "+1h30m", balance.Display)
	assert.True(t, balance.Hours.Equal(decimal.RequireFromString("1.5")), "got %s", balance.Hours)
}

func TestCloseDay_IncompleteRecordRejected(t *testing.T) {
	svc := newService()
	rec := timeclock.AttendanceRecord{ID: "rec-1", EmployeeID: "emp-101", Date: date(2025, time.March, 19)}

	_, err := svc.CloseDay(context.Background(), rec, timeclock.BalanceResult{Complete: false, DisplayWorked: timeclock.DisplayPendente})
	assert.ErrorIs(t, err, hoursbank.ErrRecordIncomplete)
}

func TestCloseDay_Idempotent(t *testing.T) {
	ctx := context.Background()
	svc := newService()
	rec := timeclock.AttendanceRecord{ID: "rec-1", EmployeeID: "emp-101", Date: date(2025, time.March, 19)}

	_, err := svc.CloseDay(ctx, rec, completeResult(-30))
	require.NoError(t, err)

	_, err = svc.CloseDay(ctx, rec, completeResult(-30))
	assert.ErrorIs(t, err, hoursbank.ErrDuplicateIdempotencyKey)

	balance, err := svc.Balance(ctx, "emp-101")
	require.NoError(t, err)
	assert.Equal(t, -30, balance.Minutes, "retry must not double-post")
}

// =============================================================================
// OVERTIME
// =============================================================================

func TestOvertime_ApprovalCreditsBank(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	req, err := svc.SubmitOvertime(ctx, "emp-102", date(2025, time.March, 20), decimal.RequireFromString("1.5"), "cobertura de plantão")
	require.NoError(t, err)
	assert.Equal(t, hoursbank.OvertimePendente, req.Status)
	assert.Equal(t, 90, req.Minutes())

	approved, err := svc.ApproveOvertime(ctx, req.ID, "admin")
	require.NoError(t, err)
	assert.Equal(t, hoursbank.OvertimeAprovado, approved.Status)
	assert.Equal(t, "admin", approved.DecidedBy)
	require.NotNil(t, approved.DecidedAt)

	balance, err := svc.Balance(ctx, "emp-102")
	require.NoError(t, err)
	assert.Equal(t, 90, balance.Minutes)
}

func TestOvertime_DoubleDecisionRejected(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	req, err := svc.SubmitOvertime(ctx, "emp-102", date(2025, time.March, 20), decimal.NewFromInt(2), "plantão")
	require.NoError(t, err)

	_, err = svc.ApproveOvertime(ctx, req.ID, "admin")
	require.NoError(t, err)

	_, err = svc.ApproveOvertime(ctx, req.ID, "admin")
	assert.ErrorIs(t, err, hoursbank.ErrAlreadyDecided)

	_, err = svc.RejectOvertime(ctx, req.ID, "admin")
	assert.ErrorIs(t, err, hoursbank.ErrAlreadyDecided)
}

func TestOvertime_RejectionLeavesBankUntouched(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	req, err := svc.SubmitOvertime(ctx, "emp-103", date(2025, time.March, 21), decimal.NewFromInt(3), "projeto especial")
	require.NoError(t, err)

	rejected, err := svc.RejectOvertime(ctx, req.ID, "admin")
	require.NoError(t, err)
	assert.Equal(t, hoursbank.OvertimeRejeitado, rejected.Status)

	balance, err := svc.Balance(ctx, "emp-103")
	require.NoError(t, err)
	assert.Equal(t, 0, balance.Minutes)
}

func TestOvertime_NonPositiveHoursRejected(t *testing.T) {
	svc := newService()
	_, err := svc.SubmitOvertime(context.Background(), "emp-103", date(2025, time.March, 21), decimal.Zero, "")
	assert.ErrorIs(t, err, hoursbank.ErrInvalidHours)
}

// =============================================================================
// STATEMENT
// =============================================================================

func TestStatement_RunningBalanceIncludesOpening(t *testing.T) {
	ctx := context.Background()
	svc := newService()
	rec := func(id string, day int) timeclock.AttendanceRecord {
		return timeclock.AttendanceRecord{ID: id, EmployeeID: "emp-104", Date: date(2025, time.March, day)}
	}

	_, err := svc.CloseDay(ctx, rec("rec-1", 10), completeResult(60))
	require.NoError(t, err)
	_, err = svc.CloseDay(ctx, rec("rec-2", 11), completeResult(-30))
	require.NoError(t, err)
	_, err = svc.CloseDay(ctx, rec("rec-3", 12), completeResult(15))
	require.NoError(t, err)

	// Window starts at day 11: opening balance is day 10's +60.
	lines, err := svc.Statement(ctx, "emp-104", date(2025, time.March, 11), date(2025, time.March, 31))
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, 30, lines[0].RunningMinutes)
	assert.Equal(t, 45, lines[1].RunningMinutes)
}

func TestHours_Conversion(t *testing.T) {
	assert.True(t, hoursbank.Hours(90).Equal(decimal.RequireFromString("1.5")))
	assert.True(t, hoursbank.Hours(-30).Equal(decimal.RequireFromString("-0.5")))
	assert.True(t, hoursbank.Hours(50).Equal(decimal.RequireFromString("0.83")))
}
