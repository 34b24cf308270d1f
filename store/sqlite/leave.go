package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/cuidaemprego/timeclock/leave"
	"github.com/cuidaemprego/timeclock/timeclock"
)

// =============================================================================
// LEAVE REQUESTS - leave.VacationStore and leave.DayOffStore on SQLite
// =============================================================================

var (
	_ leave.VacationStore = (*Store)(nil)
	_ leave.DayOffStore   = (*Store)(nil)
)

func (s *Store) SaveVacation(ctx context.Context, r leave.VacationRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO vacation_requests (id, employee_id, start_date, end_date, business_days, accrual_year, notes, status, decided_by, decided_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, string(r.EmployeeID), r.StartDate.Format(dateLayout), r.EndDate.Format(dateLayout),
		r.BusinessDays, r.AccrualYear, r.Notes, string(r.Status),
		r.DecidedBy, formatNullableTime(r.DecidedAt), r.CreatedAt.UTC().Format(time.RFC3339))
	return err
}

func (s *Store) GetVacation(ctx context.Context, id string) (*leave.VacationRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, employee_id, start_date, end_date, business_days, accrual_year,
		       COALESCE(notes, ''), status, COALESCE(decided_by, ''), COALESCE(decided_at, ''), created_at
		FROM vacation_requests WHERE id = ?`, id)
	req, err := scanVacation(row)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, leave.ErrRequestNotFound
	}
	return req, nil
}

func (s *Store) ListVacations(ctx context.Context, employeeID timeclock.EmployeeID, status leave.Status) ([]leave.VacationRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, employee_id, start_date, end_date, business_days, accrual_year,
		       COALESCE(notes, ''), status, COALESCE(decided_by, ''), COALESCE(decided_at, ''), created_at
		FROM vacation_requests WHERE 1=1`
	args := []any{}
	if employeeID != "" {
		query += ` AND employee_id = ?`
		args = append(args, string(employeeID))
	}
	if status != "" {
		query += ` AND status = ?`
		args = append(args, string(status))
	}
	query += ` ORDER BY start_date`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []leave.VacationRequest
	for rows.Next() {
		req, err := scanVacation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *req)
	}
	return out, rows.Err()
}

func (s *Store) UpdateVacation(ctx context.Context, r leave.VacationRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `
		UPDATE vacation_requests SET status = ?, decided_by = ?, decided_at = ? WHERE id = ?`,
		string(r.Status), r.DecidedBy, formatNullableTime(r.DecidedAt), r.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return leave.ErrRequestNotFound
	}
	return nil
}

func (s *Store) SaveDayOff(ctx context.Context, r leave.DayOffRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO dayoff_requests (id, employee_id, start_date, end_date, type, reason, status, decided_by, decided_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, string(r.EmployeeID), r.StartDate.Format(dateLayout), r.EndDate.Format(dateLayout),
		string(r.Type), r.Reason, string(r.Status),
		r.DecidedBy, formatNullableTime(r.DecidedAt), r.CreatedAt.UTC().Format(time.RFC3339))
	return err
}

func (s *Store) GetDayOff(ctx context.Context, id string) (*leave.DayOffRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, employee_id, start_date, end_date, type, COALESCE(reason, ''),
		       status, COALESCE(decided_by, ''), COALESCE(decided_at, ''), created_at
		FROM dayoff_requests WHERE id = ?`, id)
	req, err := scanDayOff(row)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, leave.ErrRequestNotFound
	}
	return req, nil
}

func (s *Store) ListDayOffs(ctx context.Context, employeeID timeclock.EmployeeID, status leave.Status) ([]leave.DayOffRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, employee_id, start_date, end_date, type, COALESCE(reason, ''),
		       status, COALESCE(decided_by, ''), COALESCE(decided_at, ''), created_at
		FROM dayoff_requests WHERE 1=1`
	args := []any{}
	if employeeID != "" {
		query += ` AND employee_id = ?`
		args = append(args, string(employeeID))
	}
	if status != "" {
		query += ` AND status = ?`
		args = append(args, string(status))
	}
	query += ` ORDER BY start_date`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []leave.DayOffRequest
	for rows.Next() {
		req, err := scanDayOff(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *req)
	}
	return out, rows.Err()
}

func (s *Store) UpdateDayOff(ctx context.Context, r leave.DayOffRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `
		UPDATE dayoff_requests SET status = ?, decided_by = ?, decided_at = ? WHERE id = ?`,
		string(r.Status), r.DecidedBy, formatNullableTime(r.DecidedAt), r.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return leave.ErrRequestNotFound
	}
	return nil
}

func scanVacation(row rowScanner) (*leave.VacationRequest, error) {
	var r leave.VacationRequest
	var employee, start, end, status, decidedAt, createdAt string
	err := row.Scan(&r.ID, &employee, &start, &end, &r.BusinessDays, &r.AccrualYear,
		&r.Notes, &status, &r.DecidedBy, &decidedAt, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	r.EmployeeID = timeclock.EmployeeID(employee)
	r.Status = leave.Status(status)
	r.StartDate, _ = time.Parse(dateLayout, start)
	r.EndDate, _ = time.Parse(dateLayout, end)
	r.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	if decidedAt != "" {
		if t, err := time.Parse(time.RFC3339, decidedAt); err == nil {
			r.DecidedAt = &t
		}
	}
	return &r, nil
}

func scanDayOff(row rowScanner) (*leave.DayOffRequest, error) {
	var r leave.DayOffRequest
	var employee, start, end, kind, status, decidedAt, createdAt string
	err := row.Scan(&r.ID, &employee, &start, &end, &kind, &r.Reason,
		&status, &r.DecidedBy, &decidedAt, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	r.EmployeeID = timeclock.EmployeeID(employee)
	r.Type = leave.DayOffType(kind)
	r.Status = leave.Status(status)
	r.StartDate, _ = time.Parse(dateLayout, start)
	r.EndDate, _ = time.Parse(dateLayout, end)
	r.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	if decidedAt != "" {
		if t, err := time.Parse(time.RFC3339, decidedAt); err == nil {
			r.DecidedAt = &t
		}
	}
	return &r, nil
}
