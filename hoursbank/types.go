/*
Package hoursbank implements the per-employee hours bank (banco de horas).

PURPOSE:
  Each closed day produces a signed balance - overtime positive, shortfall
  negative. The hours bank is the append-only ledger of those deltas plus
  approved overtime credits and manual admin corrections. The running sum
  answers "how many minutes is this employee up or down?".

KEY CONCEPTS IN THIS FILE (types.go):
  - Entry: An immutable ledger line (minutes delta with source and reason)
  - Source: Where a delta came from (day close, overtime, adjustment)
  - OvertimeRequest: A pending/approved/rejected overtime claim in hours

DESIGN PRINCIPLES:
  1. Append-only: Entries are never modified; corrections are new entries
  2. Idempotency: Every entry carries a key so day-close and approval can
     be retried without double-crediting
  3. Minutes inside, hours outside: The ledger stores integer minutes;
     decimal.Decimal is used only at the display/request boundary

SEE ALSO:
  - ledger.go: Ledger interface, Service workflows, statements
  - memory.go: In-memory implementations for tests
*/
package hoursbank

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cuidaemprego/timeclock/timeclock"
)

// =============================================================================
// ENTRY - One immutable ledger line
// =============================================================================

// Source identifies what produced a ledger entry.
type Source string

const (
	SourceDayClose   Source = "fechamento_dia"
	SourceOvertime   Source = "hora_extra"
	SourceAdjustment Source = "ajuste_manual"
)

// Entry is one signed minute delta in an employee's hours bank.
type Entry struct {
	ID             string
	EmployeeID     timeclock.EmployeeID
	Date           time.Time
	DeltaMinutes   int
	Source         Source
	Reason         string
	ReferenceID    string
	IdempotencyKey string
	CreatedAt      time.Time
}

// =============================================================================
// OVERTIME REQUEST
// =============================================================================

type OvertimeStatus string

const (
	OvertimePendente  OvertimeStatus = "pendente"
	OvertimeAprovado  OvertimeStatus = "aprovado"
	OvertimeRejeitado OvertimeStatus = "rejeitado"
)

// OvertimeRequest is an employee's claim for extra hours on a date.
// Hours is decimal because overtime is requested in fractional hours
// ("1.5h"); it converts to whole ledger minutes on approval.
type OvertimeRequest struct {
	ID         string
	EmployeeID timeclock.EmployeeID
	Date       time.Time
	Hours      decimal.Decimal
	Reason     string
	Status     OvertimeStatus
	DecidedBy  string
	DecidedAt  *time.Time
	CreatedAt  time.Time
}

// Minutes converts the requested hours to whole ledger minutes.
func (r OvertimeRequest) Minutes() int {
	return int(r.Hours.Mul(decimal.NewFromInt(60)).Round(0).IntPart())
}

// Hours converts ledger minutes to decimal hours, two places.
func Hours(minutes int) decimal.Decimal {
	return decimal.NewFromInt(int64(minutes)).DivRound(decimal.NewFromInt(60), 2)
}

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrDuplicateIdempotencyKey is returned when an entry with the same
	// idempotency key already exists. Expected behavior for retries.
	ErrDuplicateIdempotencyKey = errors.New("duplicate idempotency key")

	// ErrRecordIncomplete is returned when closing a day whose record
	// still has pending punches. An incomplete day has no balance to post.
	ErrRecordIncomplete = errors.New("attendance record is incomplete")

	// ErrRequestNotFound is returned for an unknown overtime request id.
	ErrRequestNotFound = errors.New("overtime request not found")

	// ErrAlreadyDecided is returned when approving or rejecting a request
	// that is no longer pending.
	ErrAlreadyDecided = errors.New("overtime request already decided")

	// ErrInvalidHours is returned for a non-positive overtime claim.
	ErrInvalidHours = errors.New("overtime hours must be positive")
)

// AlreadyDecidedError carries the request's current status.
type AlreadyDecidedError struct {
	RequestID string
	Status    OvertimeStatus
}

func (e *AlreadyDecidedError) Error() string {
	return fmt.Sprintf("overtime request %s already %s", e.RequestID, e.Status)
}

func (e *AlreadyDecidedError) Unwrap() error { return ErrAlreadyDecided }
