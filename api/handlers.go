/*
handlers.go - HTTP API handlers for the timeclock service

PURPOSE:
  Exposes the work-hours engine and hours bank via REST API. Handles HTTP
  request/response, JSON serialization, and delegates to domain logic.

ENDPOINTS:
  Employees:
    GET    /api/employees                    List all employees
    POST   /api/employees                    Create employee
    GET    /api/employees/{id}               Get employee details
    GET    /api/employees/{id}/records       Record history
    GET    /api/employees/{id}/bank          Hours-bank balance
    GET    /api/employees/{id}/bank/statement Windowed statement

  Models:
    GET    /api/models                       List work models
    POST   /api/models                       Create model from JSON
    GET    /api/models/{id}                  Get model

  Records:
    POST   /api/records                      Open an employee-day
    GET    /api/records/{id}                 Record with computed balance
    GET    /api/records/{id}/balance         Balance only
    POST   /api/records/{id}/punches         Register a punch
    PUT    /api/records/{id}/punches         Admin punch correction

  Overtime:
    POST   /api/overtime                     Submit request
    GET    /api/overtime/pending             Pending requests
    POST   /api/overtime/{id}/approve        Approve (credits the bank)
    POST   /api/overtime/{id}/reject         Reject

  Vacations / day offs:
    POST   /api/vacations                    Submit vacation request
    GET    /api/vacations/pending            Pending vacations
    POST   /api/vacations/{id}/approve       Approve
    POST   /api/vacations/{id}/reject        Reject
    POST   /api/vacations/{id}/cancel        Cancel
    POST   /api/vacations/{id}/conclude      Mark finished vacation concluded
    POST   /api/dayoffs                      Submit day-off request
    GET    /api/dayoffs/pending              Pending day offs
    POST   /api/dayoffs/{id}/approve         Approve (bank type debits the bank)
    POST   /api/dayoffs/{id}/reject          Reject
    POST   /api/dayoffs/{id}/cancel          Cancel (refunds a bank debit)

  Admin:
    POST   /api/admin/adjustments            Manual bank adjustment
    POST   /api/admin/close                  Close completed past days now

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, malformed punch times
  - 404: Resource not found
  - 409: Conflict (duplicate punch, repeated close, decided request)
  - 422: Record references an unknown work model
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cuidaemprego/timeclock/factory"
	"github.com/cuidaemprego/timeclock/hoursbank"
	"github.com/cuidaemprego/timeclock/leave"
	"github.com/cuidaemprego/timeclock/store/sqlite"
	"github.com/cuidaemprego/timeclock/timeclock"
)

const dateLayout = "2006-01-02"

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store  *sqlite.Store
	Engine *timeclock.Engine
	Bank   *hoursbank.Service
	Leave  *leave.Service

	catalog  *timeclock.MemoryCatalog
	validate *validator.Validate
}

// NewHandler creates a new handler with the given store. The catalog
// starts with the builtin models; LoadModels adds the stored ones.
func NewHandler(store *sqlite.Store) *Handler {
	catalog := timeclock.DefaultCatalog()
	return &Handler{
		Store:    store,
		Engine:   &timeclock.Engine{Catalog: catalog},
		Bank:     hoursbank.NewService(store.Bank(), store),
		Leave:    leave.NewService(store, store, store.Bank()),
		catalog:  catalog,
		validate: validator.New(),
	}
}

// LoadModels loads stored work models into the catalog.
func (h *Handler) LoadModels(ctx context.Context) error {
	records, err := h.Store.ListWorkModels(ctx)
	if err != nil {
		return err
	}
	for _, r := range records {
		model, err := factory.ParseModel(r.ConfigJSON)
		if err != nil {
			continue // Skip invalid models
		}
		h.catalog.Register(model)
	}
	return nil
}

// =============================================================================
// EMPLOYEE HANDLERS
// =============================================================================

// ListEmployees returns all employees.
func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Store.ListEmployees(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list employees", err)
		return
	}

	dtos := make([]EmployeeDTO, len(employees))
	for i, e := range employees {
		dtos[i] = toEmployeeDTO(e)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetEmployee returns a single employee.
func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	emp, err := h.Store.GetEmployee(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get employee", err)
		return
	}
	if emp == nil {
		writeError(w, http.StatusNotFound, "Employee not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, toEmployeeDTO(*emp))
}

// CreateEmployee creates a new employee bound to a work model.
func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Validation failed", err)
		return
	}

	if _, err := h.catalog.Lookup(timeclock.WorkModelID(req.WorkModelID)); err != nil {
		writeDomainError(w, err)
		return
	}

	emp := sqlite.Employee{
		ID:          req.ID,
		Name:        req.Name,
		Email:       req.Email,
		WorkModelID: timeclock.WorkModelID(req.WorkModelID),
	}
	if err := h.Store.SaveEmployee(r.Context(), emp); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create employee", err)
		return
	}
	writeJSON(w, http.StatusCreated, toEmployeeDTO(emp))
}

// ListEmployeeRecords returns an employee's records in a date window.
// GET /api/employees/{id}/records?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *Handler) ListEmployeeRecords(w http.ResponseWriter, r *http.Request) {
	employeeID := timeclock.EmployeeID(chi.URLParam(r, "id"))

	from, to, err := parseWindow(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
		return
	}
	if from.IsZero() {
		from = time.Now().AddDate(0, -1, 0)
	}
	if to.IsZero() {
		to = time.Now()
	}

	recs, err := h.Store.ListRecordsByEmployee(r.Context(), employeeID, from, to)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list records", err)
		return
	}

	dtos := make([]RecordDTO, 0, len(recs))
	for _, rec := range recs {
		dto, err := h.toRecordDTO(rec)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		dtos = append(dtos, dto)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// WORK MODEL HANDLERS
// =============================================================================

// ListModels returns the work model catalog.
func (h *Handler) ListModels(w http.ResponseWriter, r *http.Request) {
	models := h.catalog.List()
	dtos := make([]ModelDTO, len(models))
	for i, m := range models {
		dtos[i] = toModelDTO(m)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetModel returns a single work model.
func (h *Handler) GetModel(w http.ResponseWriter, r *http.Request) {
	model, err := h.catalog.Lookup(timeclock.WorkModelID(chi.URLParam(r, "id")))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toModelDTO(model))
}

// CreateModel creates a work model from its JSON definition and adds it
// to the catalog.
func (h *Handler) CreateModel(w http.ResponseWriter, r *http.Request) {
	var req CreateModelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	model, err := factory.FromJSON(req.Config)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if err := h.catalog.Register(model); err != nil {
		writeDomainError(w, err)
		return
	}

	record := sqlite.WorkModelRecord{
		ID:              string(model.ID),
		Name:            model.Name,
		Kind:            string(model.Kind),
		ExpectedMinutes: model.ExpectedMinutes,
		ConfigJSON:      factory.ModelToJSONString(model),
	}
	if err := h.Store.SaveWorkModel(r.Context(), record); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save model", err)
		return
	}
	writeJSON(w, http.StatusCreated, toModelDTO(model))
}

// =============================================================================
// RECORD HANDLERS
// =============================================================================

// OpenRecord opens the attendance record for an employee-day. Every slot
// of the employee's model starts unset and pending.
func (h *Handler) OpenRecord(w http.ResponseWriter, r *http.Request) {
	var req OpenRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Validation failed", err)
		return
	}

	ctx := r.Context()
	emp, err := h.Store.GetEmployee(ctx, req.EmployeeID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get employee", err)
		return
	}
	if emp == nil {
		writeError(w, http.StatusNotFound, "Employee not found", nil)
		return
	}

	model, err := h.catalog.Lookup(emp.WorkModelID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	date, _ := time.Parse(dateLayout, req.Date)

	punches := make([]timeclock.Punch, len(model.Slots))
	for i, slot := range model.Slots {
		punches[i] = timeclock.Punch{
			Type:   slot.Type,
			Label:  slot.Label,
			Time:   timeclock.TimeUnset,
			Status: timeclock.StatusPendente,
		}
	}

	rec := timeclock.AttendanceRecord{
		ID:           uuid.NewString(),
		EmployeeID:   timeclock.EmployeeID(emp.ID),
		EmployeeName: emp.Name,
		Date:         date,
		WorkModelID:  model.ID,
		Punches:      punches,
	}

	if err := h.Store.CreateRecord(ctx, rec); err != nil {
		writeDomainError(w, err)
		return
	}

	dto, err := h.toRecordDTO(rec)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, dto)
}

// GetRecord returns a record with its computed balance.
func (h *Handler) GetRecord(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.loadRecord(w, r)
	if !ok {
		return
	}
	dto, err := h.toRecordDTO(*rec)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto)
}

// GetRecordBalance returns only the balance computation for a record.
func (h *Handler) GetRecordBalance(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.loadRecord(w, r)
	if !ok {
		return
	}
	result, err := h.Engine.Balance(*rec)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"record_id":       rec.ID,
		"complete":        result.Complete,
		"worked_minutes":  result.WorkedMinutes,
		"balance_minutes": result.BalanceMinutes,
		"worked":          result.DisplayWorked,
		"balance":         result.DisplayBalance,
	})
}

// RegisterPunch records a punch on one slot of a record. A slot already
// punched cannot be punched again; corrections go through AdjustPunch.
func (h *Handler) RegisterPunch(w http.ResponseWriter, r *http.Request) {
	var req PunchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Validation failed", err)
		return
	}

	rec, ok := h.loadRecord(w, r)
	if !ok {
		return
	}

	model, err := h.catalog.Lookup(rec.WorkModelID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	punchType := timeclock.PunchType(req.Type)
	slot, found := model.Slot(punchType)
	if !found {
		writeError(w, http.StatusBadRequest, "Punch type not in work model", nil)
		return
	}

	if existing, ok := rec.Punch(punchType); ok && existing.Recorded() {
		writeDomainError(w, timeclock.ErrDuplicatePunch)
		return
	}

	if _, err := timeclock.ParseClockTime(req.Time); err != nil {
		writeDomainError(w, &timeclock.MalformedTimeError{PunchType: punchType, Value: req.Time})
		return
	}

	punch := timeclock.Punch{
		Type:     punchType,
		Label:    slot.Label,
		Time:     req.Time,
		Status:   timeclock.StatusRegular,
		Location: req.Location,
	}
	if err := h.Store.SetPunch(r.Context(), rec.ID, punch); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save punch", err)
		return
	}

	updated, err := h.Store.GetRecord(r.Context(), rec.ID)
	if err != nil || updated == nil {
		writeError(w, http.StatusInternalServerError, "Failed to reload record", err)
		return
	}
	dto, err := h.toRecordDTO(*updated)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto)
}

// AdjustPunch is an admin correction of a punch. The slot is marked
// adjusted so reports can tell corrections from original punches.
func (h *Handler) AdjustPunch(w http.ResponseWriter, r *http.Request) {
	var req AdjustPunchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Validation failed", err)
		return
	}

	rec, ok := h.loadRecord(w, r)
	if !ok {
		return
	}

	model, err := h.catalog.Lookup(rec.WorkModelID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	punchType := timeclock.PunchType(req.Type)
	slot, found := model.Slot(punchType)
	if !found {
		writeError(w, http.StatusBadRequest, "Punch type not in work model", nil)
		return
	}

	if _, err := timeclock.ParseClockTime(req.Time); err != nil {
		writeDomainError(w, &timeclock.MalformedTimeError{PunchType: punchType, Value: req.Time})
		return
	}

	punch := timeclock.Punch{
		Type:   punchType,
		Label:  slot.Label,
		Time:   req.Time,
		Status: timeclock.StatusAjustado,
	}
	if err := h.Store.SetPunch(r.Context(), rec.ID, punch); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save punch", err)
		return
	}

	updated, err := h.Store.GetRecord(r.Context(), rec.ID)
	if err != nil || updated == nil {
		writeError(w, http.StatusInternalServerError, "Failed to reload record", err)
		return
	}
	dto, err := h.toRecordDTO(*updated)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto)
}

func (h *Handler) loadRecord(w http.ResponseWriter, r *http.Request) (*timeclock.AttendanceRecord, bool) {
	id := chi.URLParam(r, "id")
	rec, err := h.Store.GetRecord(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get record", err)
		return nil, false
	}
	if rec == nil {
		writeError(w, http.StatusNotFound, "Record not found", nil)
		return nil, false
	}
	return rec, true
}

// =============================================================================
// HOURS BANK HANDLERS
// =============================================================================

// GetBankBalance returns an employee's hours-bank balance.
func (h *Handler) GetBankBalance(w http.ResponseWriter, r *http.Request) {
	employeeID := timeclock.EmployeeID(chi.URLParam(r, "id"))

	balance, err := h.Bank.Balance(r.Context(), employeeID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get balance", err)
		return
	}
	writeJSON(w, http.StatusOK, BankBalanceDTO{
		EmployeeID: string(employeeID),
		Minutes:    balance.Minutes,
		Hours:      balance.Hours.String(),
		Display:    balance.Display,
	})
}

// GetBankStatement returns the bank statement for a date window.
// GET /api/employees/{id}/bank/statement?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *Handler) GetBankStatement(w http.ResponseWriter, r *http.Request) {
	employeeID := timeclock.EmployeeID(chi.URLParam(r, "id"))

	from, to, err := parseWindow(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
		return
	}

	lines, err := h.Bank.Statement(r.Context(), employeeID, from, to)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get statement", err)
		return
	}

	dto := StatementDTO{
		EmployeeID: string(employeeID),
		Entries:    make([]BankEntryDTO, len(lines)),
	}
	if !from.IsZero() {
		dto.From = from.Format(dateLayout)
	}
	if !to.IsZero() {
		dto.To = to.Format(dateLayout)
	}
	for i, line := range lines {
		dto.Entries[i] = BankEntryDTO{
			ID:             line.Entry.ID,
			Date:           line.Entry.Date.Format(dateLayout),
			DeltaMinutes:   line.Entry.DeltaMinutes,
			Delta:          timeclock.FormatBalance(line.Entry.DeltaMinutes),
			Source:         string(line.Entry.Source),
			Reason:         line.Entry.Reason,
			ReferenceID:    line.Entry.ReferenceID,
			RunningMinutes: line.RunningMinutes,
			Running:        timeclock.FormatBalance(line.RunningMinutes),
		}
	}
	writeJSON(w, http.StatusOK, dto)
}

// CreateBankAdjustment posts a manual bank correction.
// POST /api/admin/adjustments
func (h *Handler) CreateBankAdjustment(w http.ResponseWriter, r *http.Request) {
	var req BankAdjustmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Validation failed", err)
		return
	}
	if req.Actor == "" {
		req.Actor = "admin"
	}

	date, _ := time.Parse(dateLayout, req.Date)
	entry, err := h.Bank.Adjust(r.Context(), timeclock.EmployeeID(req.EmployeeID), date, req.DeltaMinutes, req.Reason, req.Actor)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"id":            entry.ID,
		"delta_minutes": entry.DeltaMinutes,
		"delta":         timeclock.FormatBalance(entry.DeltaMinutes),
	})
}

// TriggerDayClose closes completed past days immediately.
// POST /api/admin/close
func (h *Handler) TriggerDayClose(w http.ResponseWriter, r *http.Request) {
	closed, skipped, err := h.ClosePastDays(r.Context(), time.Now())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to close days", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"closed":  closed,
		"skipped": skipped,
	})
}

// ClosePastDays posts every complete, unclosed record from days before
// the cutoff into the hours bank. Incomplete records are skipped and
// stay open for correction. Used by the scheduler and the admin
// endpoint.
func (h *Handler) ClosePastDays(ctx context.Context, cutoff time.Time) (closed, skipped int, err error) {
	recs, err := h.Store.ListUnclosedRecordsBefore(ctx, cutoff)
	if err != nil {
		return 0, 0, err
	}

	for _, rec := range recs {
		result, err := h.Engine.Balance(rec)
		if err != nil {
			skipped++
			continue
		}
		if !result.Complete {
			skipped++
			continue
		}

		_, err = h.Bank.CloseDay(ctx, rec, result)
		if err != nil && !errors.Is(err, hoursbank.ErrDuplicateIdempotencyKey) {
			skipped++
			continue
		}
		if err := h.Store.MarkRecordClosed(ctx, rec.ID, time.Now()); err != nil {
			return closed, skipped, err
		}
		closed++
	}
	return closed, skipped, nil
}

// =============================================================================
// OVERTIME HANDLERS
// =============================================================================

// SubmitOvertime submits an overtime request.
// POST /api/overtime
func (h *Handler) SubmitOvertime(w http.ResponseWriter, r *http.Request) {
	var req SubmitOvertimeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Validation failed", err)
		return
	}

	hours, err := decimal.NewFromString(req.Hours)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid hours value", err)
		return
	}
	date, _ := time.Parse(dateLayout, req.Date)

	request, err := h.Bank.SubmitOvertime(r.Context(), timeclock.EmployeeID(req.EmployeeID), date, hours, req.Reason)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toOvertimeDTO(request))
}

// ListPendingOvertime returns requests awaiting a decision.
// GET /api/overtime/pending
func (h *Handler) ListPendingOvertime(w http.ResponseWriter, r *http.Request) {
	requests, err := h.Store.ListRequests(r.Context(), hoursbank.OvertimePendente)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list requests", err)
		return
	}
	dtos := make([]OvertimeDTO, len(requests))
	for i, req := range requests {
		dtos[i] = toOvertimeDTO(req)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// ApproveOvertime approves a request and credits the bank.
// POST /api/overtime/{id}/approve
func (h *Handler) ApproveOvertime(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req DecideOvertimeRequest
	// Body is optional; an empty or absent one means the default actor.
	_ = json.NewDecoder(r.Body).Decode(&req)
	if req.Actor == "" {
		req.Actor = "admin"
	}

	request, err := h.Bank.ApproveOvertime(r.Context(), id, req.Actor)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOvertimeDTO(*request))
}

// RejectOvertime rejects a request without touching the bank.
// POST /api/overtime/{id}/reject
func (h *Handler) RejectOvertime(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req DecideOvertimeRequest
	// Body is optional; an empty or absent one means the default actor.
	_ = json.NewDecoder(r.Body).Decode(&req)
	if req.Actor == "" {
		req.Actor = "admin"
	}

	request, err := h.Bank.RejectOvertime(r.Context(), id, req.Actor)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOvertimeDTO(*request))
}

// =============================================================================
// REPORT HANDLERS
// =============================================================================

// DailyReport summarizes one date across all employees.
// GET /api/reports/daily?date=YYYY-MM-DD
func (h *Handler) DailyReport(w http.ResponseWriter, r *http.Request) {
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		dateStr = time.Now().Format(dateLayout)
	}
	date, err := time.Parse(dateLayout, dateStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
		return
	}

	recs, err := h.Store.ListRecordsByDate(r.Context(), date)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list records", err)
		return
	}

	report := DailyReportDTO{
		Date:    date.Format(dateLayout),
		Total:   len(recs),
		Records: make([]RecordDTO, 0, len(recs)),
	}
	for _, rec := range recs {
		dto, err := h.toRecordDTO(rec)
		if err != nil {
			// One broken record must not take down the whole report;
			// surface it as a pending row carrying the error.
			dto = RecordDTO{
				ID:           rec.ID,
				EmployeeID:   string(rec.EmployeeID),
				EmployeeName: rec.EmployeeName,
				Date:         rec.Date.Format(dateLayout),
				WorkModelID:  string(rec.WorkModelID),
				Worked:       timeclock.DisplayPendente,
				Balance:      timeclock.DisplayPendente,
				Error:        err.Error(),
			}
		}
		if dto.Complete {
			report.Complete++
			report.NetMinutes += dto.BalanceMinutes
		} else {
			report.Pending++
		}
		report.Records = append(report.Records, dto)
	}
	report.NetBalance = timeclock.FormatBalance(report.NetMinutes)

	writeJSON(w, http.StatusOK, report)
}

// =============================================================================
// HELPERS
// =============================================================================

func (h *Handler) toRecordDTO(rec timeclock.AttendanceRecord) (RecordDTO, error) {
	result, err := h.Engine.Balance(rec)
	if err != nil {
		return RecordDTO{}, err
	}

	punches := make([]PunchDTO, len(rec.Punches))
	for i, p := range rec.Punches {
		punches[i] = PunchDTO{
			Type:     string(p.Type),
			Label:    p.Label,
			Time:     p.Time,
			Status:   string(p.Status),
			Location: p.Location,
		}
	}

	return RecordDTO{
		ID:             rec.ID,
		EmployeeID:     string(rec.EmployeeID),
		EmployeeName:   rec.EmployeeName,
		Date:           rec.Date.Format(dateLayout),
		WorkModelID:    string(rec.WorkModelID),
		Punches:        punches,
		Notes:          rec.Notes,
		Complete:       result.Complete,
		WorkedMinutes:  result.WorkedMinutes,
		BalanceMinutes: result.BalanceMinutes,
		Worked:         result.DisplayWorked,
		Balance:        result.DisplayBalance,
	}, nil
}

func toEmployeeDTO(e sqlite.Employee) EmployeeDTO {
	dto := EmployeeDTO{
		ID:          e.ID,
		Name:        e.Name,
		Email:       e.Email,
		WorkModelID: string(e.WorkModelID),
	}
	if !e.CreatedAt.IsZero() {
		dto.CreatedAt = e.CreatedAt.Format(time.RFC3339)
	}
	return dto
}

func toModelDTO(m timeclock.WorkModel) ModelDTO {
	slots := make([]SlotDTO, len(m.Slots))
	for i, s := range m.Slots {
		slots[i] = SlotDTO{
			Type:     string(s.Type),
			Label:    s.Label,
			Role:     string(s.Role),
			Required: s.Required,
		}
	}
	return ModelDTO{
		ID:              string(m.ID),
		Name:            m.Name,
		Kind:            string(m.Kind),
		ExpectedMinutes: m.ExpectedMinutes,
		Expected:        timeclock.FormatDuration(m.ExpectedMinutes),
		Slots:           slots,
	}
}

func toOvertimeDTO(r hoursbank.OvertimeRequest) OvertimeDTO {
	dto := OvertimeDTO{
		ID:         r.ID,
		EmployeeID: string(r.EmployeeID),
		Date:       r.Date.Format(dateLayout),
		Hours:      r.Hours.String(),
		Reason:     r.Reason,
		Status:     string(r.Status),
		DecidedBy:  r.DecidedBy,
	}
	if r.DecidedAt != nil {
		dto.DecidedAt = r.DecidedAt.Format(time.RFC3339)
	}
	if !r.CreatedAt.IsZero() {
		dto.CreatedAt = r.CreatedAt.Format(time.RFC3339)
	}
	return dto
}

func parseWindow(r *http.Request) (from, to time.Time, err error) {
	if s := r.URL.Query().Get("from"); s != "" {
		from, err = time.Parse(dateLayout, s)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	if s := r.URL.Query().Get("to"); s != "" {
		to, err = time.Parse(dateLayout, s)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	return from, to, nil
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeDomainError maps domain errors onto HTTP statuses.
func writeDomainError(w http.ResponseWriter, err error) {
	var decided *hoursbank.AlreadyDecidedError

	switch {
	case errors.Is(err, timeclock.ErrModelNotFound):
		writeError(w, http.StatusUnprocessableEntity, "Work model not found", err)
	case errors.Is(err, timeclock.ErrMalformedTime):
		writeError(w, http.StatusBadRequest, "Malformed punch time", err)
	case errors.Is(err, timeclock.ErrInvalidModel):
		writeError(w, http.StatusBadRequest, "Invalid work model", err)
	case errors.Is(err, timeclock.ErrDuplicatePunch):
		writeError(w, http.StatusConflict, "Punch already recorded", err)
	case errors.Is(err, timeclock.ErrModelMismatch):
		writeError(w, http.StatusUnprocessableEntity, "Record does not match work model", err)
	case errors.Is(err, sqlite.ErrRecordExists):
		writeError(w, http.StatusConflict, "Record already open for this day", err)
	case errors.Is(err, hoursbank.ErrDuplicateIdempotencyKey):
		writeError(w, http.StatusConflict, "Already posted", err)
	case errors.Is(err, hoursbank.ErrRecordIncomplete):
		writeError(w, http.StatusConflict, "Record is incomplete", err)
	case errors.Is(err, hoursbank.ErrRequestNotFound):
		writeError(w, http.StatusNotFound, "Request not found", err)
	case errors.As(err, &decided):
		writeError(w, http.StatusConflict, "Request already decided", err)
	case errors.Is(err, hoursbank.ErrInvalidHours):
		writeError(w, http.StatusBadRequest, "Hours must be positive", err)
	case errors.Is(err, leave.ErrInvalidRange), errors.Is(err, leave.ErrShortNotice),
		errors.Is(err, leave.ErrPastStart), errors.Is(err, leave.ErrQuotaExceeded):
		writeError(w, http.StatusBadRequest, "Invalid leave request", err)
	case errors.Is(err, leave.ErrConflict):
		writeError(w, http.StatusConflict, "Conflicting leave request", err)
	case errors.Is(err, leave.ErrInsufficientBalance):
		writeError(w, http.StatusConflict, "Insufficient hours-bank balance", err)
	case errors.Is(err, leave.ErrRequestNotFound):
		writeError(w, http.StatusNotFound, "Leave request not found", err)
	case errors.Is(err, leave.ErrNotPending), errors.Is(err, leave.ErrNotApproved),
		errors.Is(err, leave.ErrNotFinished), errors.Is(err, leave.ErrAlreadyStarted):
		writeError(w, http.StatusConflict, "Leave request state does not allow this", err)
	default:
		writeError(w, http.StatusInternalServerError, "Internal error", err)
	}
}
