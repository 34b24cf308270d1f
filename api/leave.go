package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/cuidaemprego/timeclock/leave"
	"github.com/cuidaemprego/timeclock/timeclock"
)

// =============================================================================
// VACATION HANDLERS
// =============================================================================

// SubmitVacation submits a vacation request.
// POST /api/vacations
func (h *Handler) SubmitVacation(w http.ResponseWriter, r *http.Request) {
	var req SubmitVacationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Validation failed", err)
		return
	}

	start, _ := time.Parse(dateLayout, req.StartDate)
	end, _ := time.Parse(dateLayout, req.EndDate)

	request, err := h.Leave.SubmitVacation(r.Context(), timeclock.EmployeeID(req.EmployeeID), start, end, req.AccrualYear, req.Notes)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toVacationDTO(*request))
}

// ListPendingVacations returns vacations awaiting a decision.
// GET /api/vacations/pending
func (h *Handler) ListPendingVacations(w http.ResponseWriter, r *http.Request) {
	requests, err := h.Store.ListVacations(r.Context(), "", leave.StatusPendente)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list vacations", err)
		return
	}
	dtos := make([]VacationDTO, len(requests))
	for i, req := range requests {
		dtos[i] = toVacationDTO(req)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// ListEmployeeVacations returns one employee's vacation history.
// GET /api/employees/{id}/vacations
func (h *Handler) ListEmployeeVacations(w http.ResponseWriter, r *http.Request) {
	employeeID := timeclock.EmployeeID(chi.URLParam(r, "id"))
	requests, err := h.Store.ListVacations(r.Context(), employeeID, "")
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list vacations", err)
		return
	}
	dtos := make([]VacationDTO, len(requests))
	for i, req := range requests {
		dtos[i] = toVacationDTO(req)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// ApproveVacation approves a pending vacation.
// POST /api/vacations/{id}/approve
func (h *Handler) ApproveVacation(w http.ResponseWriter, r *http.Request) {
	request, err := h.Leave.ApproveVacation(r.Context(), chi.URLParam(r, "id"), decisionActor(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toVacationDTO(*request))
}

// RejectVacation rejects a pending vacation.
// POST /api/vacations/{id}/reject
func (h *Handler) RejectVacation(w http.ResponseWriter, r *http.Request) {
	request, err := h.Leave.RejectVacation(r.Context(), chi.URLParam(r, "id"), decisionActor(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toVacationDTO(*request))
}

// decisionActor reads the optional decision body; an empty or absent
// one means the default actor.
func decisionActor(r *http.Request) string {
	var req DecideLeaveRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	if req.Actor == "" {
		return "admin"
	}
	return req.Actor
}

// CancelVacation cancels a pending or not-yet-started vacation.
// POST /api/vacations/{id}/cancel
func (h *Handler) CancelVacation(w http.ResponseWriter, r *http.Request) {
	request, err := h.Leave.CancelVacation(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toVacationDTO(*request))
}

// ConcludeVacation marks an approved, finished vacation as concluded.
// POST /api/vacations/{id}/conclude
func (h *Handler) ConcludeVacation(w http.ResponseWriter, r *http.Request) {
	request, err := h.Leave.ConcludeVacation(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toVacationDTO(*request))
}

// =============================================================================
// DAY-OFF HANDLERS
// =============================================================================

// SubmitDayOff submits a day-off request.
// POST /api/dayoffs
func (h *Handler) SubmitDayOff(w http.ResponseWriter, r *http.Request) {
	var req SubmitDayOffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Validation failed", err)
		return
	}

	start, _ := time.Parse(dateLayout, req.StartDate)
	end, _ := time.Parse(dateLayout, req.EndDate)

	request, err := h.Leave.SubmitDayOff(r.Context(), timeclock.EmployeeID(req.EmployeeID), start, end, leave.DayOffType(req.Type), req.Reason)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toDayOffDTO(*request))
}

// ListPendingDayOffs returns day offs awaiting a decision.
// GET /api/dayoffs/pending
func (h *Handler) ListPendingDayOffs(w http.ResponseWriter, r *http.Request) {
	requests, err := h.Store.ListDayOffs(r.Context(), "", leave.StatusPendente)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list day offs", err)
		return
	}
	dtos := make([]DayOffDTO, len(requests))
	for i, req := range requests {
		dtos[i] = toDayOffDTO(req)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// ListEmployeeDayOffs returns one employee's day-off history.
// GET /api/employees/{id}/dayoffs
func (h *Handler) ListEmployeeDayOffs(w http.ResponseWriter, r *http.Request) {
	employeeID := timeclock.EmployeeID(chi.URLParam(r, "id"))
	requests, err := h.Store.ListDayOffs(r.Context(), employeeID, "")
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list day offs", err)
		return
	}
	dtos := make([]DayOffDTO, len(requests))
	for i, req := range requests {
		dtos[i] = toDayOffDTO(req)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// ApproveDayOff approves a pending day off. A bank-hours day off
// debits the employee's hours bank.
// POST /api/dayoffs/{id}/approve
func (h *Handler) ApproveDayOff(w http.ResponseWriter, r *http.Request) {
	request, err := h.Leave.ApproveDayOff(r.Context(), chi.URLParam(r, "id"), decisionActor(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toDayOffDTO(*request))
}

// RejectDayOff rejects a pending day off.
// POST /api/dayoffs/{id}/reject
func (h *Handler) RejectDayOff(w http.ResponseWriter, r *http.Request) {
	request, err := h.Leave.RejectDayOff(r.Context(), chi.URLParam(r, "id"), decisionActor(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toDayOffDTO(*request))
}

// CancelDayOff cancels a pending or not-yet-started day off.
// POST /api/dayoffs/{id}/cancel
func (h *Handler) CancelDayOff(w http.ResponseWriter, r *http.Request) {
	request, err := h.Leave.CancelDayOff(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toDayOffDTO(*request))
}

// =============================================================================
// DTO MAPPING
// =============================================================================

func toVacationDTO(r leave.VacationRequest) VacationDTO {
	dto := VacationDTO{
		ID:           r.ID,
		EmployeeID:   string(r.EmployeeID),
		StartDate:    r.StartDate.Format(dateLayout),
		EndDate:      r.EndDate.Format(dateLayout),
		BusinessDays: r.BusinessDays,
		AccrualYear:  r.AccrualYear,
		Notes:        r.Notes,
		Status:       string(r.Status),
		DecidedBy:    r.DecidedBy,
	}
	if r.DecidedAt != nil {
		dto.DecidedAt = r.DecidedAt.Format(time.RFC3339)
	}
	if !r.CreatedAt.IsZero() {
		dto.CreatedAt = r.CreatedAt.Format(time.RFC3339)
	}
	return dto
}

func toDayOffDTO(r leave.DayOffRequest) DayOffDTO {
	dto := DayOffDTO{
		ID:         r.ID,
		EmployeeID: string(r.EmployeeID),
		StartDate:  r.StartDate.Format(dateLayout),
		EndDate:    r.EndDate.Format(dateLayout),
		Type:       string(r.Type),
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
