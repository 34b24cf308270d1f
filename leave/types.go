/*
Package leave manages vacation and day-off requests.

PURPOSE:
  Employees request time away from work; HR decides. Two request shapes
  share the same pending/approved/rejected lifecycle:

  - Vacation (ferias): a date range measured in business days, capped
    per accrual year, requiring advance notice.
  - DayOff (folga): a short absence. A bank-hours day off debits the
    hours-bank ledger on approval, one entry per request.

KEY CONCEPTS:
  - Status: pendente -> aprovada | rejeitada | cancelada; approved
    vacations additionally become concluida once their end date passes.
  - BusinessDays: Monday-Friday count over the inclusive range. Quota
    math uses business days; bank-hours debits use calendar days.
  - Conflict: two active requests of the same employee may not overlap.

SEE ALSO:
  - service.go: Workflows and their validation rules
  - hoursbank: The ledger debited by bank-hours day offs
*/
package leave

import (
	"errors"
	"fmt"
	"time"

	"github.com/cuidaemprego/timeclock/timeclock"
)

// =============================================================================
// STATUS AND KINDS
// =============================================================================

// Status is the decision state of a leave request.
type Status string

const (
	StatusPendente  Status = "pendente"
	StatusAprovada  Status = "aprovada"
	StatusRejeitada Status = "rejeitada"
	StatusCancelada Status = "cancelada"
	StatusConcluida Status = "concluida"
)

// active reports whether a request in this status still blocks the
// employee's calendar.
func (s Status) active() bool {
	return s == StatusPendente || s == StatusAprovada || s == StatusConcluida
}

// DayOffType classifies a day-off request.
type DayOffType string

const (
	DayOffCompensatoria DayOffType = "compensatoria"
	DayOffAbono         DayOffType = "abono"
	DayOffBancoHoras    DayOffType = "banco_horas"
)

// =============================================================================
// REQUESTS
// =============================================================================

// VacationRequest is a vacation over a date range.
type VacationRequest struct {
	ID           string
	EmployeeID   timeclock.EmployeeID
	StartDate    time.Time
	EndDate      time.Time
	BusinessDays int
	AccrualYear  int
	Notes        string
	Status       Status
	DecidedBy    string
	DecidedAt    *time.Time
	CreatedAt    time.Time
}

// DayOffRequest is a short absence, possibly paid from the hours bank.
type DayOffRequest struct {
	ID         string
	EmployeeID timeclock.EmployeeID
	StartDate  time.Time
	EndDate    time.Time
	Type       DayOffType
	Reason     string
	Status     Status
	DecidedBy  string
	DecidedAt  *time.Time
	CreatedAt  time.Time
}

// BankMinutes is the hours-bank debit an approved bank-hours day off
// costs: eight hours per calendar day of the inclusive range.
func (r DayOffRequest) BankMinutes() int {
	days := int(r.EndDate.Sub(r.StartDate).Hours()/24) + 1
	return days * 8 * 60
}

// BusinessDays counts Monday-Friday days in the inclusive range.
func BusinessDays(start, end time.Time) int {
	n := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		wd := d.Weekday()
		if wd != time.Saturday && wd != time.Sunday {
			n++
		}
	}
	return n
}

func overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !aStart.After(bEnd) && !bStart.After(aEnd)
}

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrInvalidRange is returned when the start date is after the end.
	ErrInvalidRange = errors.New("start date must not be after end date")

	// ErrShortNotice is returned when a vacation starts sooner than the
	// required notice period.
	ErrShortNotice = errors.New("vacation requires advance notice")

	// ErrPastStart is returned when a day off starts before today.
	ErrPastStart = errors.New("day off must start in the future")

	// ErrConflict is returned when the range overlaps another active
	// request of the same employee.
	ErrConflict = errors.New("conflicting leave request")

	// ErrQuotaExceeded is returned when a vacation would exceed the
	// business-day quota for its accrual year.
	ErrQuotaExceeded = errors.New("vacation quota exceeded for accrual year")

	// ErrInsufficientBalance is returned when approving a bank-hours
	// day off the employee's bank cannot cover.
	ErrInsufficientBalance = errors.New("insufficient hours-bank balance")

	// ErrRequestNotFound is returned for an unknown request id.
	ErrRequestNotFound = errors.New("leave request not found")

	// ErrNotPending is returned when deciding a request that was
	// already decided.
	ErrNotPending = errors.New("leave request is not pending")

	// ErrNotApproved is returned when concluding a vacation that was
	// never approved.
	ErrNotApproved = errors.New("vacation is not approved")

	// ErrNotFinished is returned when concluding a vacation whose end
	// date has not passed.
	ErrNotFinished = errors.New("vacation has not finished yet")

	// ErrAlreadyStarted is returned when cancelling an approved
	// vacation that already began.
	ErrAlreadyStarted = errors.New("vacation already started")
)

// StateError reports a lifecycle violation with the request's status.
type StateError struct {
	RequestID string
	Status    Status
	Violation error
}

func (e *StateError) Error() string {
	return fmt.Sprintf("request %s is %s: %v", e.RequestID, e.Status, e.Violation)
}

func (e *StateError) Unwrap() error { return e.Violation }
