package leave

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/cuidaemprego/timeclock/hoursbank"
	"github.com/cuidaemprego/timeclock/timeclock"
)

// =============================================================================
// STORAGE CONTRACTS
// =============================================================================

// VacationStore persists vacation requests.
type VacationStore interface {
	SaveVacation(ctx context.Context, req VacationRequest) error
	GetVacation(ctx context.Context, id string) (*VacationRequest, error)
	ListVacations(ctx context.Context, employeeID timeclock.EmployeeID, status Status) ([]VacationRequest, error)
	UpdateVacation(ctx context.Context, req VacationRequest) error
}

// DayOffStore persists day-off requests.
type DayOffStore interface {
	SaveDayOff(ctx context.Context, req DayOffRequest) error
	GetDayOff(ctx context.Context, id string) (*DayOffRequest, error)
	ListDayOffs(ctx context.Context, employeeID timeclock.EmployeeID, status Status) ([]DayOffRequest, error)
	UpdateDayOff(ctx context.Context, req DayOffRequest) error
}

// =============================================================================
// SERVICE
// =============================================================================

// VacationNoticeDays is the minimum advance notice for a vacation start.
const VacationNoticeDays = 30

// VacationQuotaDays is the business-day allowance per accrual year.
const VacationQuotaDays = 30

// Service runs the leave request workflows.
type Service struct {
	Vacations VacationStore
	DayOffs   DayOffStore
	Ledger    hoursbank.Ledger
}

// NewService wires the leave workflows to their stores and to the
// hours-bank ledger used by bank-hours day offs.
func NewService(vacations VacationStore, dayOffs DayOffStore, ledger hoursbank.Ledger) *Service {
	return &Service{Vacations: vacations, DayOffs: dayOffs, Ledger: ledger}
}

// =============================================================================
// VACATION WORKFLOW
// =============================================================================

// SubmitVacation validates and records a pending vacation request.
//
// Rules: the range must be ordered, the start must honor the notice
// period, the range must not conflict with another active request, and
// the accrual year's business-day quota must not be exceeded by
// already approved or concluded vacations plus this one.
func (s *Service) SubmitVacation(ctx context.Context, employeeID timeclock.EmployeeID, start, end time.Time, accrualYear int, notes string) (*VacationRequest, error) {
	if start.After(end) {
		return nil, ErrInvalidRange
	}
	if start.Before(today().AddDate(0, 0, VacationNoticeDays)) {
		return nil, fmt.Errorf("%w: start %s is under %d days away", ErrShortNotice, start.Format("2006-01-02"), VacationNoticeDays)
	}
	if accrualYear == 0 {
		accrualYear = start.Year()
	}

	existing, err := s.Vacations.ListVacations(ctx, employeeID, "")
	if err != nil {
		return nil, fmt.Errorf("listing vacations: %w", err)
	}
	used := 0
	for _, v := range existing {
		if v.Status.active() && overlaps(start, end, v.StartDate, v.EndDate) {
			return nil, fmt.Errorf("%w: overlaps vacation %s", ErrConflict, v.ID)
		}
		if v.AccrualYear == accrualYear && (v.Status == StatusAprovada || v.Status == StatusConcluida) {
			used += v.BusinessDays
		}
	}
	days := BusinessDays(start, end)
	if used+days > VacationQuotaDays {
		return nil, fmt.Errorf("%w: %d used + %d requested > %d", ErrQuotaExceeded, used, days, VacationQuotaDays)
	}

	req := VacationRequest{
		ID:           uuid.NewString(),
		EmployeeID:   employeeID,
		StartDate:    start,
		EndDate:      end,
		BusinessDays: days,
		AccrualYear:  accrualYear,
		Notes:        notes,
		Status:       StatusPendente,
		CreatedAt:    time.Now(),
	}
	if err := s.Vacations.SaveVacation(ctx, req); err != nil {
		return nil, fmt.Errorf("saving vacation: %w", err)
	}
	return &req, nil
}

// ApproveVacation moves a pending vacation to approved.
func (s *Service) ApproveVacation(ctx context.Context, id, decidedBy string) (*VacationRequest, error) {
	return s.decideVacation(ctx, id, decidedBy, StatusAprovada)
}

// RejectVacation moves a pending vacation to rejected.
func (s *Service) RejectVacation(ctx context.Context, id, decidedBy string) (*VacationRequest, error) {
	return s.decideVacation(ctx, id, decidedBy, StatusRejeitada)
}

func (s *Service) decideVacation(ctx context.Context, id, decidedBy string, to Status) (*VacationRequest, error) {
	req, err := s.Vacations.GetVacation(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Status != StatusPendente {
		return nil, &StateError{RequestID: id, Status: req.Status, Violation: ErrNotPending}
	}
	now := time.Now()
	req.Status = to
	req.DecidedBy = decidedBy
	req.DecidedAt = &now
	if err := s.Vacations.UpdateVacation(ctx, *req); err != nil {
		return nil, fmt.Errorf("updating vacation: %w", err)
	}
	return req, nil
}

// CancelVacation cancels a pending or approved vacation. An approved
// vacation that already started cannot be cancelled.
func (s *Service) CancelVacation(ctx context.Context, id string) (*VacationRequest, error) {
	req, err := s.Vacations.GetVacation(ctx, id)
	if err != nil {
		return nil, err
	}
	switch req.Status {
	case StatusPendente:
	case StatusAprovada:
		if !today().Before(req.StartDate) {
			return nil, &StateError{RequestID: id, Status: req.Status, Violation: ErrAlreadyStarted}
		}
	default:
		return nil, &StateError{RequestID: id, Status: req.Status, Violation: ErrNotPending}
	}
	req.Status = StatusCancelada
	if err := s.Vacations.UpdateVacation(ctx, *req); err != nil {
		return nil, fmt.Errorf("updating vacation: %w", err)
	}
	return req, nil
}

// ConcludeVacation marks an approved vacation whose end date has
// passed as concluded, consuming its accrual-year quota for good.
func (s *Service) ConcludeVacation(ctx context.Context, id string) (*VacationRequest, error) {
	req, err := s.Vacations.GetVacation(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Status != StatusAprovada {
		return nil, &StateError{RequestID: id, Status: req.Status, Violation: ErrNotApproved}
	}
	if !req.EndDate.Before(today()) {
		return nil, &StateError{RequestID: id, Status: req.Status, Violation: ErrNotFinished}
	}
	req.Status = StatusConcluida
	if err := s.Vacations.UpdateVacation(ctx, *req); err != nil {
		return nil, fmt.Errorf("updating vacation: %w", err)
	}
	return req, nil
}

// =============================================================================
// DAY-OFF WORKFLOW
// =============================================================================

// SubmitDayOff validates and records a pending day-off request.
func (s *Service) SubmitDayOff(ctx context.Context, employeeID timeclock.EmployeeID, start, end time.Time, kind DayOffType, reason string) (*DayOffRequest, error) {
	if start.After(end) {
		return nil, ErrInvalidRange
	}
	if !start.After(today()) {
		return nil, ErrPastStart
	}
	switch kind {
	case DayOffCompensatoria, DayOffAbono, DayOffBancoHoras:
	default:
		return nil, fmt.Errorf("unknown day-off type %q", kind)
	}

	existing, err := s.DayOffs.ListDayOffs(ctx, employeeID, "")
	if err != nil {
		return nil, fmt.Errorf("listing day offs: %w", err)
	}
	for _, d := range existing {
		if d.Status.active() && overlaps(start, end, d.StartDate, d.EndDate) {
			return nil, fmt.Errorf("%w: overlaps day off %s", ErrConflict, d.ID)
		}
	}

	req := DayOffRequest{
		ID:         uuid.NewString(),
		EmployeeID: employeeID,
		StartDate:  start,
		EndDate:    end,
		Type:       kind,
		Reason:     reason,
		Status:     StatusPendente,
		CreatedAt:  time.Now(),
	}
	if err := s.DayOffs.SaveDayOff(ctx, req); err != nil {
		return nil, fmt.Errorf("saving day off: %w", err)
	}
	return &req, nil
}

// ApproveDayOff moves a pending day off to approved. A bank-hours day
// off debits the employee's hours bank first; the debit carries an
// idempotency key derived from the request id, so a retried approval
// never double-charges.
func (s *Service) ApproveDayOff(ctx context.Context, id, decidedBy string) (*DayOffRequest, error) {
	req, err := s.DayOffs.GetDayOff(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Status != StatusPendente {
		return nil, &StateError{RequestID: id, Status: req.Status, Violation: ErrNotPending}
	}

	if req.Type == DayOffBancoHoras {
		cost := req.BankMinutes()
		balance, err := s.Ledger.BalanceMinutes(ctx, req.EmployeeID)
		if err != nil {
			return nil, fmt.Errorf("reading bank balance: %w", err)
		}
		if balance < cost {
			return nil, fmt.Errorf("%w: need %dm, have %dm", ErrInsufficientBalance, cost, balance)
		}
		entry := hoursbank.Entry{
			ID:             uuid.NewString(),
			EmployeeID:     req.EmployeeID,
			Date:           req.StartDate,
			DeltaMinutes:   -cost,
			Source:         hoursbank.SourceAdjustment,
			Reason:         fmt.Sprintf("folga banco de horas %s a %s", req.StartDate.Format("2006-01-02"), req.EndDate.Format("2006-01-02")),
			ReferenceID:    req.ID,
			IdempotencyKey: "dayoff-" + req.ID,
			CreatedAt:      time.Now(),
		}
		if err := s.Ledger.Append(ctx, entry); err != nil && !errors.Is(err, hoursbank.ErrDuplicateIdempotencyKey) {
			return nil, fmt.Errorf("debiting hours bank: %w", err)
		}
	}

	now := time.Now()
	req.Status = StatusAprovada
	req.DecidedBy = decidedBy
	req.DecidedAt = &now
	if err := s.DayOffs.UpdateDayOff(ctx, *req); err != nil {
		return nil, fmt.Errorf("updating day off: %w", err)
	}
	return req, nil
}

// RejectDayOff moves a pending day off to rejected.
func (s *Service) RejectDayOff(ctx context.Context, id, decidedBy string) (*DayOffRequest, error) {
	req, err := s.DayOffs.GetDayOff(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Status != StatusPendente {
		return nil, &StateError{RequestID: id, Status: req.Status, Violation: ErrNotPending}
	}
	now := time.Now()
	req.Status = StatusRejeitada
	req.DecidedBy = decidedBy
	req.DecidedAt = &now
	if err := s.DayOffs.UpdateDayOff(ctx, *req); err != nil {
		return nil, fmt.Errorf("updating day off: %w", err)
	}
	return req, nil
}

// CancelDayOff cancels a pending or approved day off before it starts.
// Cancelling an approved bank-hours day off refunds the debit with a
// reversal entry keyed by the request id.
func (s *Service) CancelDayOff(ctx context.Context, id string) (*DayOffRequest, error) {
	req, err := s.DayOffs.GetDayOff(ctx, id)
	if err != nil {
		return nil, err
	}
	switch req.Status {
	case StatusPendente:
	case StatusAprovada:
		if !today().Before(req.StartDate) {
			return nil, &StateError{RequestID: id, Status: req.Status, Violation: ErrAlreadyStarted}
		}
		if req.Type == DayOffBancoHoras {
			entry := hoursbank.Entry{
				ID:             uuid.NewString(),
				EmployeeID:     req.EmployeeID,
				Date:           req.StartDate,
				DeltaMinutes:   req.BankMinutes(),
				Source:         hoursbank.SourceAdjustment,
				Reason:         "estorno de folga banco de horas cancelada",
				ReferenceID:    req.ID,
				IdempotencyKey: "dayoff-cancel-" + req.ID,
				CreatedAt:      time.Now(),
			}
			if err := s.Ledger.Append(ctx, entry); err != nil && !errors.Is(err, hoursbank.ErrDuplicateIdempotencyKey) {
				return nil, fmt.Errorf("refunding hours bank: %w", err)
			}
		}
	default:
		return nil, &StateError{RequestID: id, Status: req.Status, Violation: ErrNotPending}
	}
	req.Status = StatusCancelada
	if err := s.DayOffs.UpdateDayOff(ctx, *req); err != nil {
		return nil, fmt.Errorf("updating day off: %w", err)
	}
	return req, nil
}

// today is the current UTC date at midnight; request dates are stored
// as UTC midnights, so comparisons stay on the same clock.
func today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
