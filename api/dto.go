/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract, allowing:
  - Field renaming without breaking clients
  - API-specific validation
  - Version evolution

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Request types carry go-playground/validator struct tags; handlers run
  h.validate.Struct on every decoded body before touching the domain.

SEE ALSO:
  - handlers.go: Uses these types
  - factory/model.go: ModelJSON type
*/
package api

import (
	"github.com/cuidaemprego/timeclock/factory"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// EmployeeDTO represents an employee in API responses.
type EmployeeDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	WorkModelID string `json:"work_model_id"`
	CreatedAt   string `json:"created_at,omitempty"`
}

// CreateEmployeeRequest is the request to create an employee.
type CreateEmployeeRequest struct {
	ID          string `json:"id" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"omitempty,email"`
	WorkModelID string `json:"work_model_id" validate:"required"`
}

// ModelDTO represents a work model in API responses.
type ModelDTO struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Kind            string    `json:"kind"`
	ExpectedMinutes int       `json:"expected_minutes"`
	Expected        string    `json:"expected"`
	Slots           []SlotDTO `json:"slots"`
}

// SlotDTO is one punch slot of a model.
type SlotDTO struct {
	Type     string `json:"type"`
	Label    string `json:"label"`
	Role     string `json:"role"`
	Required bool   `json:"required"`
}

// CreateModelRequest is the request to create a work model.
type CreateModelRequest struct {
	Config factory.ModelJSON `json:"config"`
}

// PunchDTO is one punch slot with its recorded state.
type PunchDTO struct {
	Type     string `json:"type"`
	Label    string `json:"label"`
	Time     string `json:"time"`
	Status   string `json:"status"`
	Location string `json:"location,omitempty"`
}

// RecordDTO represents an attendance record with its computed balance.
type RecordDTO struct {
	ID           string     `json:"id"`
	EmployeeID   string     `json:"employee_id"`
	EmployeeName string     `json:"employee_name"`
	Date         string     `json:"date"`
	WorkModelID  string     `json:"work_model_id"`
	Punches      []PunchDTO `json:"punches"`
	Notes        string     `json:"notes,omitempty"`

	Complete       bool   `json:"complete"`
	WorkedMinutes  int    `json:"worked_minutes"`
	BalanceMinutes int    `json:"balance_minutes"`
	Worked         string `json:"worked"`
	Balance        string `json:"balance"`
	Error          string `json:"error,omitempty"`
}

// OpenRecordRequest opens the attendance record for an employee-day.
type OpenRecordRequest struct {
	EmployeeID string `json:"employee_id" validate:"required"`
	Date       string `json:"date" validate:"required,datetime=2006-01-02"`
}

// PunchRequest records a punch on one slot of a record.
type PunchRequest struct {
	Type     string `json:"type" validate:"required"`
	Time     string `json:"time" validate:"required"`
	Location string `json:"location"`
}

// AdjustPunchRequest is an admin correction of a recorded punch.
type AdjustPunchRequest struct {
	Type   string `json:"type" validate:"required"`
	Time   string `json:"time" validate:"required"`
	Actor  string `json:"actor"`
	Reason string `json:"reason"`
}

// BankBalanceDTO is an employee's hours-bank balance.
type BankBalanceDTO struct {
	EmployeeID string `json:"employee_id"`
	Minutes    int    `json:"minutes"`
	Hours      string `json:"hours"`
	Display    string `json:"display"`
}

// BankEntryDTO is one ledger line in a statement.
type BankEntryDTO struct {
	ID             string `json:"id"`
	Date           string `json:"date"`
	DeltaMinutes   int    `json:"delta_minutes"`
	Delta          string `json:"delta"`
	Source         string `json:"source"`
	Reason         string `json:"reason,omitempty"`
	ReferenceID    string `json:"reference_id,omitempty"`
	RunningMinutes int    `json:"running_minutes"`
	Running        string `json:"running"`
}

// StatementDTO is a windowed bank statement.
type StatementDTO struct {
	EmployeeID string         `json:"employee_id"`
	From       string         `json:"from,omitempty"`
	To         string         `json:"to,omitempty"`
	Entries    []BankEntryDTO `json:"entries"`
}

// BankAdjustmentRequest posts a manual bank correction.
type BankAdjustmentRequest struct {
	EmployeeID   string `json:"employee_id" validate:"required"`
	Date         string `json:"date" validate:"required,datetime=2006-01-02"`
	DeltaMinutes int    `json:"delta_minutes" validate:"required"`
	Reason       string `json:"reason" validate:"required"`
	Actor        string `json:"actor"`
}

// SubmitOvertimeRequest submits an overtime claim.
type SubmitOvertimeRequest struct {
	EmployeeID string `json:"employee_id" validate:"required"`
	Date       string `json:"date" validate:"required,datetime=2006-01-02"`
	Hours      string `json:"hours" validate:"required"`
	Reason     string `json:"reason"`
}

// OvertimeDTO represents an overtime request in API responses.
type OvertimeDTO struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	Hours      string `json:"hours"`
	Reason     string `json:"reason,omitempty"`
	Status     string `json:"status"`
	DecidedBy  string `json:"decided_by,omitempty"`
	DecidedAt  string `json:"decided_at,omitempty"`
	CreatedAt  string `json:"created_at,omitempty"`
}

// DecideOvertimeRequest carries the approver of an overtime decision.
type DecideOvertimeRequest struct {
	Actor string `json:"actor"`
}

// SubmitVacationRequest submits a vacation request.
type SubmitVacationRequest struct {
	EmployeeID  string `json:"employee_id" validate:"required"`
	StartDate   string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate     string `json:"end_date" validate:"required,datetime=2006-01-02"`
	AccrualYear int    `json:"accrual_year"`
	Notes       string `json:"notes"`
}

// VacationDTO represents a vacation request in API responses.
type VacationDTO struct {
	ID           string `json:"id"`
	EmployeeID   string `json:"employee_id"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	BusinessDays int    `json:"business_days"`
	AccrualYear  int    `json:"accrual_year"`
	Notes        string `json:"notes,omitempty"`
	Status       string `json:"status"`
	DecidedBy    string `json:"decided_by,omitempty"`
	DecidedAt    string `json:"decided_at,omitempty"`
	CreatedAt    string `json:"created_at,omitempty"`
}

// SubmitDayOffRequest submits a day-off request.
type SubmitDayOffRequest struct {
	EmployeeID string `json:"employee_id" validate:"required"`
	StartDate  string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate    string `json:"end_date" validate:"required,datetime=2006-01-02"`
	Type       string `json:"type" validate:"required,oneof=compensatoria abono banco_horas"`
	Reason     string `json:"reason"`
}

// DayOffDTO represents a day-off request in API responses.
type DayOffDTO struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	Type       string `json:"type"`
	Reason     string `json:"reason,omitempty"`
	Status     string `json:"status"`
	DecidedBy  string `json:"decided_by,omitempty"`
	DecidedAt  string `json:"decided_at,omitempty"`
	CreatedAt  string `json:"created_at,omitempty"`
}

// DecideLeaveRequest carries the approver of a leave decision.
type DecideLeaveRequest struct {
	Actor string `json:"actor"`
}

// DailyReportDTO summarizes one date across all employees.
type DailyReportDTO struct {
	Date       string      `json:"date"`
	Total      int         `json:"total"`
	Complete   int         `json:"complete"`
	Pending    int         `json:"pending"`
	Records    []RecordDTO `json:"records"`
	NetMinutes int         `json:"net_minutes"`
	NetBalance string      `json:"net_balance"`
}

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
