/*
ledger.go - Hours-bank ledger interface and workflows

PURPOSE:
  Defines the persistence interface for bank entries and the Service that
  runs the three workflows feeding the bank:

  1. Day close: a complete attendance record's balance becomes an entry
  2. Overtime: an approved request credits its minutes
  3. Adjustment: an admin posts a manual correction

APPEND-ONLY CONTRACT:
  The Ledger interface has no update or delete. Every write carries an
  idempotency key; a duplicate key is rejected with
  ErrDuplicateIdempotencyKey, which callers (the day-close scheduler in
  particular) treat as "already posted, safe to skip".

IMPLEMENTATIONS:
  - store/sqlite: production persistence
  - memory.go: in-memory for tests

SEE ALSO:
  - api/scheduler.go: Drives CloseDay for completed past days
*/
package hoursbank

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cuidaemprego/timeclock/timeclock"
)

// =============================================================================
// LEDGER - Persistence interface (append-only)
// =============================================================================

// Ledger persists bank entries. Append-only; corrections are new entries.
type Ledger interface {
	// Append persists one entry. Returns ErrDuplicateIdempotencyKey if
	// the entry's key was seen before.
	Append(ctx context.Context, e Entry) error

	// Entries returns an employee's entries in [from, to], ordered by
	// date then creation.
	Entries(ctx context.Context, employeeID timeclock.EmployeeID, from, to time.Time) ([]Entry, error)

	// BalanceMinutes returns the all-time running sum for an employee.
	BalanceMinutes(ctx context.Context, employeeID timeclock.EmployeeID) (int, error)
}

// RequestStore persists overtime requests.
type RequestStore interface {
	SaveRequest(ctx context.Context, r OvertimeRequest) error
	GetRequest(ctx context.Context, id string) (*OvertimeRequest, error)
	ListRequests(ctx context.Context, status OvertimeStatus) ([]OvertimeRequest, error)
	UpdateRequest(ctx context.Context, r OvertimeRequest) error
}

// =============================================================================
// SERVICE - Bank workflows
// =============================================================================

// Service binds the ledger and request store into the bank workflows.
type Service struct {
	Ledger   Ledger
	Requests RequestStore
}

func NewService(ledger Ledger, requests RequestStore) *Service {
	return &Service{Ledger: ledger, Requests: requests}
}

// CloseDay posts a completed record's balance into the bank. The
// idempotency key is derived from the record id, so closing the same day
// twice returns ErrDuplicateIdempotencyKey instead of double-posting.
func (s *Service) CloseDay(ctx context.Context, rec timeclock.AttendanceRecord, result timeclock.BalanceResult) (Entry, error) {
	if !result.Complete {
		return Entry{}, ErrRecordIncomplete
	}

	entry := Entry{
		ID:             uuid.NewString(),
		EmployeeID:     rec.EmployeeID,
		Date:           rec.Date,
		DeltaMinutes:   result.BalanceMinutes,
		Source:         SourceDayClose,
		Reason:         fmt.Sprintf("fechamento do dia %s (%s trabalhadas)", rec.Date.Format("2006-01-02"), result.DisplayWorked),
		ReferenceID:    rec.ID,
		IdempotencyKey: "dayclose-" + rec.ID,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.Ledger.Append(ctx, entry); err != nil {
		return Entry{}, err
	}
	return entry, nil
}

// Adjust posts a manual admin correction.
func (s *Service) Adjust(ctx context.Context, employeeID timeclock.EmployeeID, date time.Time, deltaMinutes int, reason, actor string) (Entry, error) {
	entry := Entry{
		ID:             uuid.NewString(),
		EmployeeID:     employeeID,
		Date:           date,
		DeltaMinutes:   deltaMinutes,
		Source:         SourceAdjustment,
		Reason:         reason,
		ReferenceID:    actor,
		IdempotencyKey: "adjust-" + uuid.NewString(),
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.Ledger.Append(ctx, entry); err != nil {
		return Entry{}, err
	}
	return entry, nil
}

// SubmitOvertime validates and stores a pending overtime request.
func (s *Service) SubmitOvertime(ctx context.Context, employeeID timeclock.EmployeeID, date time.Time, hours decimal.Decimal, reason string) (OvertimeRequest, error) {
	if !hours.IsPositive() {
		return OvertimeRequest{}, ErrInvalidHours
	}
	req := OvertimeRequest{
		ID:         uuid.NewString(),
		EmployeeID: employeeID,
		Date:       date,
		Hours:      hours,
		Reason:     reason,
		Status:     OvertimePendente,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.Requests.SaveRequest(ctx, req); err != nil {
		return OvertimeRequest{}, err
	}
	return req, nil
}

// ApproveOvertime credits the requested minutes and marks the request
// approved. Crediting is idempotent per request id.
func (s *Service) ApproveOvertime(ctx context.Context, requestID, approver string) (*OvertimeRequest, error) {
	req, err := s.Requests.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.Status != OvertimePendente {
		return nil, &AlreadyDecidedError{RequestID: requestID, Status: req.Status}
	}

	entry := Entry{
		ID:             uuid.NewString(),
		EmployeeID:     req.EmployeeID,
		Date:           req.Date,
		DeltaMinutes:   req.Minutes(),
		Source:         SourceOvertime,
		Reason:         req.Reason,
		ReferenceID:    req.ID,
		IdempotencyKey: "overtime-" + req.ID,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.Ledger.Append(ctx, entry); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	req.Status = OvertimeAprovado
	req.DecidedBy = approver
	req.DecidedAt = &now
	if err := s.Requests.UpdateRequest(ctx, *req); err != nil {
		return nil, err
	}
	return req, nil
}

// RejectOvertime records the decision without touching the ledger.
func (s *Service) RejectOvertime(ctx context.Context, requestID, approver string) (*OvertimeRequest, error) {
	req, err := s.Requests.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.Status != OvertimePendente {
		return nil, &AlreadyDecidedError{RequestID: requestID, Status: req.Status}
	}

	now := time.Now().UTC()
	req.Status = OvertimeRejeitado
	req.DecidedBy = approver
	req.DecidedAt = &now
	if err := s.Requests.UpdateRequest(ctx, *req); err != nil {
		return nil, err
	}
	return req, nil
}

// =============================================================================
// BALANCE AND STATEMENT
// =============================================================================

// BankBalance is the running sum with its decimal-hours rendering.
type BankBalance struct {
	Minutes int
	Hours   decimal.Decimal
	Display string
}

// Balance returns the employee's current bank balance.
func (s *Service) Balance(ctx context.Context, employeeID timeclock.EmployeeID) (BankBalance, error) {
	minutes, err := s.Ledger.BalanceMinutes(ctx, employeeID)
	if err != nil {
		return BankBalance{}, err
	}
	return BankBalance{
		Minutes: minutes,
		Hours:   Hours(minutes),
		Display: timeclock.FormatBalance(minutes),
	}, nil
}

// StatementLine is one entry with the running balance after it.
type StatementLine struct {
	Entry          Entry
	RunningMinutes int
}

// Statement returns the entries in [from, to] with a running balance.
// The running balance starts from the sum of everything before the window
// so the last line equals the true balance as of 'to'.
func (s *Service) Statement(ctx context.Context, employeeID timeclock.EmployeeID, from, to time.Time) ([]StatementLine, error) {
	opening := 0
	if !from.IsZero() {
		before, err := s.Ledger.Entries(ctx, employeeID, time.Time{}, from.AddDate(0, 0, -1))
		if err != nil {
			return nil, err
		}
		for _, e := range before {
			opening += e.DeltaMinutes
		}
	}

	entries, err := s.Ledger.Entries(ctx, employeeID, from, to)
	if err != nil {
		return nil, err
	}

	lines := make([]StatementLine, len(entries))
	running := opening
	for i, e := range entries {
		running += e.DeltaMinutes
		lines[i] = StatementLine{Entry: e, RunningMinutes: running}
	}
	return lines, nil
}
