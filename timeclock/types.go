/*
Package timeclock provides the core time-and-attendance balance engine.

PURPOSE:
  This package contains the types and algorithms that turn a day's raw
  clock punches plus a declared work model into worked-duration and
  balance-vs-expected figures. Whether the employee follows the standard
  8h office day, a half-day schedule, a 12h shift, or home office, the
  same engine computes worked minutes and the signed balance.

KEY CONCEPTS IN THIS FILE (types.go):
  - ClockTime: A time-of-day value parsed from "HH:MM" text
  - Punch: A single recorded clock event (in/out/pause/resume)
  - AttendanceRecord: One employee-day of punches against a work model
  - BalanceResult: The engine output rendered for display

DESIGN PRINCIPLES:
  1. Purity: The engine performs no I/O and never mutates its inputs
  2. Incomplete is data: A missing punch is an expected mid-shift state,
     modeled as a value, never as an error
  3. Type Safety: Strong typing for IDs prevents mixing employee and
     work-model identifiers
  4. Closed variants: Per-model segment logic dispatches on ModelKind,
     not on string comparisons scattered through the computation

USAGE:
  catalog := timeclock.DefaultCatalog()
  engine := &timeclock.Engine{Catalog: catalog}
  result, err := engine.Balance(record)
  fmt.Println(result.DisplayWorked, result.DisplayBalance)

SEE ALSO:
  - model.go: Work-model definitions and the built-in catalog entries
  - engine.go: Worked-minutes and balance computation
  - catalog.go: Work-model catalog interface and in-memory implementation
*/
package timeclock

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// =============================================================================
// IDENTIFIERS
// =============================================================================

type EmployeeID string
type WorkModelID string
type PunchType string

// Punch types of the built-in work models. Custom models may define their
// own types; the engine relies on slot roles, not on these strings.
const (
	PunchEntradaTrabalho PunchType = "entrada_trabalho"
	PunchSaidaAlmoco     PunchType = "saida_almoco"
	PunchEntradaAlmoco   PunchType = "entrada_almoco"
	PunchSaidaTrabalho   PunchType = "saida_trabalho"

	PunchEntradaPlantao PunchType = "entrada_plantao"
	PunchPausa1         PunchType = "pausa_1"
	PunchRetorno1       PunchType = "retorno_1"
	PunchPausa2         PunchType = "pausa_2"
	PunchRetorno2       PunchType = "retorno_2"
	PunchSaidaPlantao   PunchType = "saida_plantao"

	PunchInicioExpediente PunchType = "inicio_expediente"
	PunchPausa            PunchType = "pausa"
	PunchRetorno          PunchType = "retorno"
	PunchFimExpediente    PunchType = "fim_expediente"
)

// =============================================================================
// CLOCK TIME - "HH:MM" time-of-day value
// =============================================================================

// TimeUnset is the sentinel for a punch that has not been recorded yet.
const TimeUnset = "--:--"

// ClockTime is a parsed time-of-day. All balance arithmetic is done in
// integer minutes since midnight; punches crossing midnight are out of scope.
type ClockTime struct {
	Hour   int
	Minute int
}

// ParseClockTime parses "HH:MM" (24h). The unset sentinel and the empty
// string are NOT valid here; callers gate on IsUnset first.
func ParseClockTime(s string) (ClockTime, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return ClockTime{}, &MalformedTimeError{Value: s}
	}
	h, errH := strconv.Atoi(parts[0])
	m, errM := strconv.Atoi(parts[1])
	if errH != nil || errM != nil || h < 0 || h > 23 || m < 0 || m > 59 {
		return ClockTime{}, &MalformedTimeError{Value: s}
	}
	return ClockTime{Hour: h, Minute: m}, nil
}

// IsUnset reports whether a raw punch time is the unset sentinel.
func IsUnset(s string) bool { return s == "" || s == TimeUnset }

// Minutes returns minutes since midnight.
func (c ClockTime) Minutes() int { return c.Hour*60 + c.Minute }

func (c ClockTime) String() string { return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute) }

// =============================================================================
// PUNCH - Single clock event
// =============================================================================

// PunchStatus tags a punch for display and approval workflows. The balance
// computation ignores it, except that a pending punch makes the record
// incomplete.
type PunchStatus string

const (
	StatusRegular          PunchStatus = "regular"
	StatusAtraso           PunchStatus = "atraso"
	StatusHoraExtra        PunchStatus = "hora_extra"
	StatusPendente         PunchStatus = "pendente"
	StatusAjustado         PunchStatus = "ajustado"
	StatusAprovado         PunchStatus = "aprovado"
	StatusRejeitado        PunchStatus = "rejeitado"
	StatusFaltaJustificada PunchStatus = "falta_justificada"
)

// Punch is one recorded clock event within a record.
// Time holds raw "HH:MM" text or the unset sentinel; the engine parses it
// so that a malformed value surfaces as a typed error instead of a
// nonsensical duration.
type Punch struct {
	Type     PunchType
	Label    string
	Time     string
	Status   PunchStatus
	Location string
}

// Recorded reports whether the punch has a set, non-pending time.
func (p Punch) Recorded() bool {
	return !IsUnset(p.Time) && p.Status != StatusPendente
}

// =============================================================================
// ATTENDANCE RECORD - One employee-day snapshot
// =============================================================================

// AttendanceRecord is a read-only snapshot of one employee's punches for
// one calendar day. The engine never creates, stores, or mutates records.
type AttendanceRecord struct {
	ID           string
	EmployeeID   EmployeeID
	EmployeeName string
	Date         time.Time
	WorkModelID  WorkModelID
	Punches      []Punch
	Notes        string
}

// Punch returns the punch for a slot type, if present.
// Within one record punch types are unique per slot; duplicates are a
// data-quality error handled by the caller, and the first match wins here.
func (r AttendanceRecord) Punch(t PunchType) (Punch, bool) {
	for _, p := range r.Punches {
		if p.Type == t {
			return p, true
		}
	}
	return Punch{}, false
}

// =============================================================================
// BALANCE RESULT - Engine output, not persisted
// =============================================================================

// DisplayPendente is rendered when required punches are still missing.
const DisplayPendente = "Pendente"

// Worked is the result of the worked-minutes computation. Incomplete
// records (required punch unset or pending) carry Complete=false and must
// never be treated as zero minutes worked.
type Worked struct {
	Minutes  int
	Complete bool
}

// BalanceResult is the fully rendered outcome for one record.
type BalanceResult struct {
	Complete       bool
	WorkedMinutes  int
	BalanceMinutes int
	DisplayWorked  string
	DisplayBalance string
}

// FormatDuration renders non-negative minutes as "{h}h{mm}m".
func FormatDuration(minutes int) string {
	return fmt.Sprintf("%dh%02dm", minutes/60, minutes%60)
}

// FormatBalance renders a signed minute balance with an explicit leading
// sign; zero is "+0h00m".
func FormatBalance(minutes int) string {
	sign := "+"
	if minutes < 0 {
		sign = "-"
		minutes = -minutes
	}
	return sign + FormatDuration(minutes)
}
