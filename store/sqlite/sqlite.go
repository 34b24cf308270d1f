/*
Package sqlite provides SQLite-backed persistence for the timeclock service.

PURPOSE:
  Implements storage for employees, work models, attendance records with
  their punches, the hours-bank ledger, and overtime requests. In
  production the same patterns apply to PostgreSQL - only minor SQL
  dialect differences.

KEY TABLES:
  employees:           Who punches the clock, with their assigned model
  work_models:         Model definitions (parsed columns + config JSON)
  attendance_records:  One row per employee-day
  punches:             One row per slot per record
  hours_bank:          Append-only minute-delta ledger
  overtime_requests:   Overtime claims and their decisions

APPEND-ONLY ENFORCEMENT:
  hours_bank has no UPDATE or DELETE path; the idempotency_key unique
  index rejects replays so day-close and overtime approval can retry
  safely.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. SQLite is opened with WAL for
  better read concurrency and crash recovery.

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper
  migration tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - hoursbank/ledger.go: Ledger and RequestStore interfaces this satisfies
  - timeclock/types.go: Record and punch types stored here
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/cuidaemprego/timeclock/hoursbank"
	"github.com/cuidaemprego/timeclock/timeclock"
)

// ErrRecordExists is returned when opening a second attendance record for
// the same employee and date.
var ErrRecordExists = errors.New("attendance record already exists for employee and date")

const dateLayout = "2006-01-02"

// Store implements all persistence for the service using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS employees (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT,
		work_model_id TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS work_models (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		kind TEXT NOT NULL,
		expected_minutes INTEGER NOT NULL,
		config_json TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS attendance_records (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL,
		employee_name TEXT NOT NULL,
		date TEXT NOT NULL,
		work_model_id TEXT NOT NULL,
		notes TEXT,
		closed_at TEXT,
		created_at TEXT NOT NULL,
		UNIQUE(employee_id, date)
	);

	CREATE INDEX IF NOT EXISTS idx_records_date
		ON attendance_records(date);
	-- Day-close scan: unclosed records from past days
	CREATE INDEX IF NOT EXISTS idx_records_open
		ON attendance_records(date) WHERE closed_at IS NULL;

	CREATE TABLE IF NOT EXISTS punches (
		record_id TEXT NOT NULL,
		ordinal INTEGER NOT NULL,
		punch_type TEXT NOT NULL,
		label TEXT NOT NULL,
		time TEXT NOT NULL,
		status TEXT NOT NULL,
		location TEXT,
		PRIMARY KEY (record_id, punch_type),
		FOREIGN KEY (record_id) REFERENCES attendance_records(id)
	);

	-- Hours bank (append-only ledger)
	CREATE TABLE IF NOT EXISTS hours_bank (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL,
		date TEXT NOT NULL,
		delta_minutes INTEGER NOT NULL,
		source TEXT NOT NULL,
		reason TEXT,
		reference_id TEXT,
		idempotency_key TEXT UNIQUE,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_bank_employee_date
		ON hours_bank(employee_id, date);

	CREATE TABLE IF NOT EXISTS overtime_requests (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL,
		date TEXT NOT NULL,
		hours TEXT NOT NULL,
		reason TEXT,
		status TEXT NOT NULL,
		decided_by TEXT,
		decided_at TEXT,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_overtime_status
		ON overtime_requests(status);

	CREATE TABLE IF NOT EXISTS vacation_requests (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		business_days INTEGER NOT NULL,
		accrual_year INTEGER NOT NULL,
		notes TEXT,
		status TEXT NOT NULL,
		decided_by TEXT,
		decided_at TEXT,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_vacation_employee
		ON vacation_requests(employee_id, status);

	CREATE TABLE IF NOT EXISTS dayoff_requests (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		type TEXT NOT NULL,
		reason TEXT,
		status TEXT NOT NULL,
		decided_by TEXT,
		decided_at TEXT,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_dayoff_employee
		ON dayoff_requests(employee_id, status);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// EMPLOYEES
// =============================================================================

// Employee is a stored employee row.
type Employee struct {
	ID          string
	Name        string
	Email       string
	WorkModelID timeclock.WorkModelID
	CreatedAt   time.Time
}

func (s *Store) SaveEmployee(ctx context.Context, e Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO employees (id, name, email, work_model_id, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name=excluded.name, email=excluded.email,
			work_model_id=excluded.work_model_id`,
		e.ID, e.Name, e.Email, string(e.WorkModelID), e.CreatedAt.Format(time.RFC3339))
	return err
}

// GetEmployee returns nil when no employee has the given id.
func (s *Store) GetEmployee(ctx context.Context, id string) (*Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, COALESCE(email, ''), work_model_id, created_at
		FROM employees WHERE id = ?`, id)
	return scanEmployee(row)
}

func (s *Store) ListEmployees(ctx context.Context) ([]Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, COALESCE(email, ''), work_model_id, created_at
		FROM employees ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEmployee(row rowScanner) (*Employee, error) {
	var e Employee
	var modelID, createdAt string
	err := row.Scan(&e.ID, &e.Name, &e.Email, &modelID, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	e.WorkModelID = timeclock.WorkModelID(modelID)
	e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &e, nil
}

// =============================================================================
// WORK MODELS
// =============================================================================

// WorkModelRecord is a stored model definition: parsed columns for
// listing plus the full config JSON for the factory.
type WorkModelRecord struct {
	ID              string
	Name            string
	Kind            string
	ExpectedMinutes int
	ConfigJSON      string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (s *Store) SaveWorkModel(ctx context.Context, r WorkModelRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO work_models (id, name, kind, expected_minutes, config_json, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name=excluded.name, kind=excluded.kind,
			expected_minutes=excluded.expected_minutes, config_json=excluded.config_json,
			updated_at=excluded.updated_at`,
		r.ID, r.Name, r.Kind, r.ExpectedMinutes, r.ConfigJSON, now, now)
	return err
}

func (s *Store) GetWorkModel(ctx context.Context, id string) (*WorkModelRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var r WorkModelRecord
	var createdAt, updatedAt string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, kind, expected_minutes, config_json, created_at, updated_at
		FROM work_models WHERE id = ?`, id).
		Scan(&r.ID, &r.Name, &r.Kind, &r.ExpectedMinutes, &r.ConfigJSON, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	r.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	r.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &r, nil
}

func (s *Store) ListWorkModels(ctx context.Context) ([]WorkModelRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, kind, expected_minutes, config_json, created_at, updated_at
		FROM work_models ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []WorkModelRecord
	for rows.Next() {
		var r WorkModelRecord
		var createdAt, updatedAt string
		if err := rows.Scan(&r.ID, &r.Name, &r.Kind, &r.ExpectedMinutes, &r.ConfigJSON, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		r.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		r.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
		out = append(out, r)
	}
	return out, rows.Err()
}

// =============================================================================
// ATTENDANCE RECORDS AND PUNCHES
// =============================================================================

// CreateRecord inserts a record with its punch rows. One record per
// employee per date; a second open attempt returns ErrRecordExists.
func (s *Store) CreateRecord(ctx context.Context, rec timeclock.AttendanceRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, `
		SELECT COUNT(1) FROM attendance_records WHERE employee_id = ? AND date = ?`,
		string(rec.EmployeeID), rec.Date.Format(dateLayout)).Scan(&exists)
	if err != nil {
		return err
	}
	if exists > 0 {
		return ErrRecordExists
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO attendance_records (id, employee_id, employee_name, date, work_model_id, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, string(rec.EmployeeID), rec.EmployeeName, rec.Date.Format(dateLayout),
		string(rec.WorkModelID), rec.Notes, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return err
	}

	for i, p := range rec.Punches {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO punches (record_id, ordinal, punch_type, label, time, status, location)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			rec.ID, i+1, string(p.Type), p.Label, p.Time, string(p.Status), p.Location)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: %s", timeclock.ErrDuplicatePunch, p.Type)
			}
			return fmt.Errorf("inserting punch %s: %w", p.Type, err)
		}
	}

	return tx.Commit()
}

// isUniqueViolation reports whether err is a SQLite unique-constraint
// failure, as opposed to an FK violation or an I/O error.
func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}

// SetPunch updates one slot's punch on a record, inserting the row when
// the slot was added after the record was opened.
func (s *Store) SetPunch(ctx context.Context, recordID string, p timeclock.Punch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `
		UPDATE punches SET time = ?, status = ?, location = COALESCE(NULLIF(?, ''), location)
		WHERE record_id = ? AND punch_type = ?`,
		p.Time, string(p.Status), p.Location, recordID, string(p.Type))
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		var next int
		if err := s.db.QueryRowContext(ctx, `
			SELECT COALESCE(MAX(ordinal), 0) + 1 FROM punches WHERE record_id = ?`, recordID).Scan(&next); err != nil {
			return err
		}
		_, err = s.db.ExecContext(ctx, `
			INSERT INTO punches (record_id, ordinal, punch_type, label, time, status, location)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			recordID, next, string(p.Type), p.Label, p.Time, string(p.Status), p.Location)
		return err
	}
	return nil
}

// GetRecord loads a record with its punches, or nil when absent.
func (s *Store) GetRecord(ctx context.Context, id string) (*timeclock.AttendanceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getRecordWhere(ctx, `WHERE r.id = ?`, id)
}

// GetRecordByEmployeeDate loads the record for an employee-day.
func (s *Store) GetRecordByEmployeeDate(ctx context.Context, employeeID timeclock.EmployeeID, date time.Time) (*timeclock.AttendanceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getRecordWhere(ctx, `WHERE r.employee_id = ? AND r.date = ?`,
		string(employeeID), date.Format(dateLayout))
}

func (s *Store) getRecordWhere(ctx context.Context, where string, args ...any) (*timeclock.AttendanceRecord, error) {
	recs, err := s.queryRecords(ctx, where, args...)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, nil
	}
	return &recs[0], nil
}

// ListRecordsByDate returns every record for a calendar date.
func (s *Store) ListRecordsByDate(ctx context.Context, date time.Time) ([]timeclock.AttendanceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queryRecords(ctx, `WHERE r.date = ?`, date.Format(dateLayout))
}

// ListRecordsByEmployee returns an employee's records in [from, to].
func (s *Store) ListRecordsByEmployee(ctx context.Context, employeeID timeclock.EmployeeID, from, to time.Time) ([]timeclock.AttendanceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queryRecords(ctx, `WHERE r.employee_id = ? AND r.date >= ? AND r.date <= ?`,
		string(employeeID), from.Format(dateLayout), to.Format(dateLayout))
}

// ListUnclosedRecordsBefore returns records from days strictly before the
// cutoff that were never posted to the hours bank.
func (s *Store) ListUnclosedRecordsBefore(ctx context.Context, cutoff time.Time) ([]timeclock.AttendanceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queryRecords(ctx, `WHERE r.closed_at IS NULL AND r.date < ?`, cutoff.Format(dateLayout))
}

// MarkRecordClosed stamps a record after its balance reached the bank.
func (s *Store) MarkRecordClosed(ctx context.Context, recordID string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		UPDATE attendance_records SET closed_at = ? WHERE id = ?`,
		at.UTC().Format(time.RFC3339), recordID)
	return err
}

func (s *Store) queryRecords(ctx context.Context, where string, args ...any) ([]timeclock.AttendanceRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT r.id, r.employee_id, r.employee_name, r.date, r.work_model_id, COALESCE(r.notes, '')
		FROM attendance_records r `+where+` ORDER BY r.date, r.employee_name`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []timeclock.AttendanceRecord
	for rows.Next() {
		var rec timeclock.AttendanceRecord
		var employeeID, date, modelID string
		if err := rows.Scan(&rec.ID, &employeeID, &rec.EmployeeName, &date, &modelID, &rec.Notes); err != nil {
			return nil, err
		}
		rec.EmployeeID = timeclock.EmployeeID(employeeID)
		rec.WorkModelID = timeclock.WorkModelID(modelID)
		rec.Date, _ = time.Parse(dateLayout, date)
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range recs {
		punches, err := s.queryPunches(ctx, recs[i].ID)
		if err != nil {
			return nil, err
		}
		recs[i].Punches = punches
	}
	return recs, nil
}

func (s *Store) queryPunches(ctx context.Context, recordID string) ([]timeclock.Punch, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT punch_type, label, time, status, COALESCE(location, '')
		FROM punches WHERE record_id = ? ORDER BY ordinal`, recordID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var punches []timeclock.Punch
	for rows.Next() {
		var p timeclock.Punch
		var punchType, status string
		if err := rows.Scan(&punchType, &p.Label, &p.Time, &status, &p.Location); err != nil {
			return nil, err
		}
		p.Type = timeclock.PunchType(punchType)
		p.Status = timeclock.PunchStatus(status)
		punches = append(punches, p)
	}
	return punches, rows.Err()
}

// =============================================================================
// HOURS BANK - hoursbank.Ledger via Bank()
// =============================================================================

// BankLedger adapts the store to the hoursbank.Ledger interface.
type BankLedger struct {
	store *Store
}

// Bank returns the hours-bank view of the store.
func (s *Store) Bank() *BankLedger { return &BankLedger{store: s} }

var _ hoursbank.Ledger = (*BankLedger)(nil)

func (b *BankLedger) Append(ctx context.Context, e hoursbank.Entry) error {
	s := b.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if e.IdempotencyKey != "" {
		var count int
		if err := s.db.QueryRowContext(ctx, `
			SELECT COUNT(1) FROM hours_bank WHERE idempotency_key = ?`, e.IdempotencyKey).Scan(&count); err != nil {
			return err
		}
		if count > 0 {
			return hoursbank.ErrDuplicateIdempotencyKey
		}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO hours_bank (id, employee_id, date, delta_minutes, source, reason, reference_id, idempotency_key, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, NULLIF(?, ''), ?)`,
		e.ID, string(e.EmployeeID), e.Date.Format(dateLayout), e.DeltaMinutes, string(e.Source),
		e.Reason, e.ReferenceID, e.IdempotencyKey, e.CreatedAt.UTC().Format(time.RFC3339))
	return err
}

func (b *BankLedger) Entries(ctx context.Context, employeeID timeclock.EmployeeID, from, to time.Time) ([]hoursbank.Entry, error) {
	s := b.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, employee_id, date, delta_minutes, source, COALESCE(reason, ''),
		       COALESCE(reference_id, ''), COALESCE(idempotency_key, ''), created_at
		FROM hours_bank WHERE employee_id = ?`
	args := []any{string(employeeID)}
	if !from.IsZero() {
		query += ` AND date >= ?`
		args = append(args, from.Format(dateLayout))
	}
	if !to.IsZero() {
		query += ` AND date <= ?`
		args = append(args, to.Format(dateLayout))
	}
	query += ` ORDER BY date, created_at`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []hoursbank.Entry
	for rows.Next() {
		var e hoursbank.Entry
		var employee, date, source, createdAt string
		if err := rows.Scan(&e.ID, &employee, &date, &e.DeltaMinutes, &source, &e.Reason, &e.ReferenceID, &e.IdempotencyKey, &createdAt); err != nil {
			return nil, err
		}
		e.EmployeeID = timeclock.EmployeeID(employee)
		e.Source = hoursbank.Source(source)
		e.Date, _ = time.Parse(dateLayout, date)
		e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		out = append(out, e)
	}
	return out, rows.Err()
}

func (b *BankLedger) BalanceMinutes(ctx context.Context, employeeID timeclock.EmployeeID) (int, error) {
	s := b.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var total int
	err := s.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(delta_minutes), 0) FROM hours_bank WHERE employee_id = ?`,
		string(employeeID)).Scan(&total)
	return total, err
}

// =============================================================================
// OVERTIME REQUESTS - hoursbank.RequestStore
// =============================================================================

var _ hoursbank.RequestStore = (*Store)(nil)

func (s *Store) SaveRequest(ctx context.Context, r hoursbank.OvertimeRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO overtime_requests (id, employee_id, date, hours, reason, status, decided_by, decided_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, string(r.EmployeeID), r.Date.Format(dateLayout), r.Hours.String(), r.Reason,
		string(r.Status), r.DecidedBy, formatNullableTime(r.DecidedAt), r.CreatedAt.UTC().Format(time.RFC3339))
	return err
}

func (s *Store) GetRequest(ctx context.Context, id string) (*hoursbank.OvertimeRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, employee_id, date, hours, COALESCE(reason, ''), status,
		       COALESCE(decided_by, ''), COALESCE(decided_at, ''), created_at
		FROM overtime_requests WHERE id = ?`, id)
	req, err := scanOvertime(row)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, hoursbank.ErrRequestNotFound
	}
	return req, nil
}

func (s *Store) ListRequests(ctx context.Context, status hoursbank.OvertimeStatus) ([]hoursbank.OvertimeRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, employee_id, date, hours, COALESCE(reason, ''), status,
		       COALESCE(decided_by, ''), COALESCE(decided_at, ''), created_at
		FROM overtime_requests`
	args := []any{}
	if status != "" {
		query += ` WHERE status = ?`
		args = append(args, string(status))
	}
	query += ` ORDER BY created_at`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []hoursbank.OvertimeRequest
	for rows.Next() {
		req, err := scanOvertime(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *req)
	}
	return out, rows.Err()
}

func (s *Store) UpdateRequest(ctx context.Context, r hoursbank.OvertimeRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `
		UPDATE overtime_requests SET status = ?, decided_by = ?, decided_at = ? WHERE id = ?`,
		string(r.Status), r.DecidedBy, formatNullableTime(r.DecidedAt), r.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return hoursbank.ErrRequestNotFound
	}
	return nil
}

func scanOvertime(row rowScanner) (*hoursbank.OvertimeRequest, error) {
	var r hoursbank.OvertimeRequest
	var employee, date, hours, status, decidedAt, createdAt string
	err := row.Scan(&r.ID, &employee, &date, &hours, &r.Reason, &status, &r.DecidedBy, &decidedAt, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	r.EmployeeID = timeclock.EmployeeID(employee)
	r.Status = hoursbank.OvertimeStatus(status)
	r.Date, _ = time.Parse(dateLayout, date)
	r.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	if h, err := decimal.NewFromString(hours); err == nil {
		r.Hours = h
	}
	if decidedAt != "" {
		if t, err := time.Parse(time.RFC3339, decidedAt); err == nil {
			r.DecidedAt = &t
		}
	}
	return &r, nil
}

func formatNullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}
