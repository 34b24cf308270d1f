/*
engine.go - Worked-minutes and balance computation

PURPOSE:
  The central calculation: given one attendance record and its work model,
  compute total worked minutes and the signed balance against the model's
  expected minutes. This is a stateless pure computation invoked once per
  record per render or report cycle.

COMPLETENESS GATING:
  Before any arithmetic, every REQUIRED slot of the model must have a
  recorded punch (set time, not pending). If not, the result is an
  incomplete value - the employee simply hasn't finished the shift yet.
  Incomplete is never zero minutes and never an error.

SEGMENT PAIRING BY MODEL KIND:
  KindStandard    morning (lunch-out - in) + afternoon (out - lunch-in)
  KindHalfDay     out - in
  KindShift       (out - in) - sum of positionally matched pause pairs
  KindHomeOffice  pause pair subtracted only when BOTH sides are set
  KindCustom      same pairing as KindShift over the admin-defined slots

LENIENT PAUSE MATCHING:
  When pause and resume counts differ (possible in custom models), only
  the matched prefix of pairs is subtracted. This mirrors the historical
  behavior of the attendance front-end; stricter validation belongs to
  model definition time, not record scoring.

CONCURRENCY:
  The engine holds no mutable state and may be invoked concurrently for
  many records without coordination. The injected catalog must be treated
  as a consistent read-only snapshot per computation.

SEE ALSO:
  - model.go: Slot roles the pairing relies on
  - types.go: Worked, BalanceResult, formatting helpers
*/
package timeclock

// =============================================================================
// ENGINE - Catalog-aware entry point
// =============================================================================

// Engine binds the pure computation to an injected work-model catalog.
type Engine struct {
	Catalog Catalog
}

// WorkedMinutes resolves the record's model and computes worked minutes.
func (e *Engine) WorkedMinutes(rec AttendanceRecord) (Worked, error) {
	model, err := e.Catalog.Lookup(rec.WorkModelID)
	if err != nil {
		return Worked{}, err
	}
	return ComputeWorkedMinutes(rec, model)
}

// Balance resolves the record's model and computes the full balance result.
func (e *Engine) Balance(rec AttendanceRecord) (BalanceResult, error) {
	model, err := e.Catalog.Lookup(rec.WorkModelID)
	if err != nil {
		return BalanceResult{}, err
	}
	return ComputeBalance(rec, model)
}

// =============================================================================
// WORKED MINUTES
// =============================================================================

// ComputeWorkedMinutes computes total worked minutes for one record under
// one model. The record must reference the given model.
func ComputeWorkedMinutes(rec AttendanceRecord, model WorkModel) (Worked, error) {
	if rec.WorkModelID != model.ID {
		return Worked{}, ErrModelMismatch
	}

	// Completeness gate: every required slot needs a recorded punch.
	for _, slot := range model.Slots {
		if !slot.Required {
			continue
		}
		p, ok := rec.Punch(slot.Type)
		if !ok || !p.Recorded() {
			return Worked{}, nil
		}
	}

	// Parse all recorded punches up front so a malformed value surfaces
	// as a typed error before any subtraction happens.
	minutes := make(map[PunchType]int, len(model.Slots))
	for _, slot := range model.Slots {
		p, ok := rec.Punch(slot.Type)
		if !ok || !p.Recorded() {
			continue
		}
		ct, err := ParseClockTime(p.Time)
		if err != nil {
			return Worked{}, &MalformedTimeError{PunchType: p.Type, Value: p.Time}
		}
		minutes[slot.Type] = ct.Minutes()
	}

	total, ok := workedByKind(model, minutes)
	if !ok {
		return Worked{}, nil
	}
	return Worked{Minutes: total, Complete: true}, nil
}

// workedByKind dispatches on the model kind. The bool result is false when
// the slot structure leaves the record unscoreable (e.g. an empty custom
// model), which callers report as incomplete.
func workedByKind(model WorkModel, minutes map[PunchType]int) (int, bool) {
	switch model.Kind {
	case KindStandard:
		in, ok1 := roleMinute(model, minutes, RoleClockIn)
		lunchOut, ok2 := firstPause(model, minutes)
		lunchIn, ok3 := firstResume(model, minutes)
		out, ok4 := roleMinute(model, minutes, RoleClockOut)
		if !(ok1 && ok2 && ok3 && ok4) {
			return 0, false
		}
		return (lunchOut - in) + (out - lunchIn), true

	case KindHalfDay:
		in, ok1 := roleMinute(model, minutes, RoleClockIn)
		out, ok2 := roleMinute(model, minutes, RoleClockOut)
		if !(ok1 && ok2) {
			return 0, false
		}
		return out - in, true

	case KindShift, KindCustom:
		in, ok1 := roleMinute(model, minutes, RoleClockIn)
		out, ok2 := roleMinute(model, minutes, RoleClockOut)
		if !(ok1 && ok2) {
			return 0, false
		}
		return out - in - pausedMinutes(model, minutes), true

	case KindHomeOffice:
		in, ok1 := roleMinute(model, minutes, RoleClockIn)
		out, ok2 := roleMinute(model, minutes, RoleClockOut)
		if !(ok1 && ok2) {
			return 0, false
		}
		// The pause pair is optional: subtract it only when both sides
		// were recorded, otherwise score the uninterrupted span.
		return out - in - pausedMinutes(model, minutes), true

	default:
		return 0, false
	}
}

// roleMinute finds the recorded minute value of the first slot with a role.
func roleMinute(model WorkModel, minutes map[PunchType]int, role SlotRole) (int, bool) {
	for _, s := range model.Slots {
		if s.Role == role {
			m, ok := minutes[s.Type]
			return m, ok
		}
	}
	return 0, false
}

func firstPause(model WorkModel, minutes map[PunchType]int) (int, bool) {
	return roleMinute(model, minutes, RolePause)
}

func firstResume(model WorkModel, minutes map[PunchType]int) (int, bool) {
	return roleMinute(model, minutes, RoleResume)
}

// pausedMinutes sums resume-minus-pause over positionally matched pairs.
// Pauses and resumes pair by index in slot order; an unmatched tail on
// either side is ignored.
func pausedMinutes(model WorkModel, minutes map[PunchType]int) int {
	var pauses, resumes []int
	for _, s := range model.Slots {
		m, ok := minutes[s.Type]
		if !ok {
			continue
		}
		switch s.Role {
		case RolePause:
			pauses = append(pauses, m)
		case RoleResume:
			resumes = append(resumes, m)
		}
	}

	n := len(pauses)
	if len(resumes) < n {
		n = len(resumes)
	}
	total := 0
	for i := 0; i < n; i++ {
		total += resumes[i] - pauses[i]
	}
	return total
}

// =============================================================================
// BALANCE
// =============================================================================

// ComputeBalance computes worked minutes and renders the balance against
// the model's expected minutes. Incomplete records come back flagged with
// DisplayWorked "Pendente" and no numeric balance.
func ComputeBalance(rec AttendanceRecord, model WorkModel) (BalanceResult, error) {
	worked, err := ComputeWorkedMinutes(rec, model)
	if err != nil {
		return BalanceResult{}, err
	}
	if !worked.Complete {
		return BalanceResult{
			Complete:      false,
			DisplayWorked: DisplayPendente,
		}, nil
	}

	balance := worked.Minutes - model.ExpectedMinutes
	return BalanceResult{
		Complete:       true,
		WorkedMinutes:  worked.Minutes,
		BalanceMinutes: balance,
		DisplayWorked:  FormatDuration(worked.Minutes),
		DisplayBalance: FormatBalance(balance),
	}, nil
}
