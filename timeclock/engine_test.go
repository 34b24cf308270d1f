/*
engine_test.go - Specification tests for the balance engine

PURPOSE:
  These tests are executable specifications of the scoring rules. Each
  test documents one behavior: completeness gating, per-model segment
  pairing, display formatting, and the error taxonomy.

READING THESE TESTS:
  Each test has GIVEN/WHEN/THEN comments explaining the scenario and
  assertions with explanatory messages.
*/
package timeclock_test

import (
	"errors"
	"testing"
	"time"

	"github.com/cuidaemprego/timeclock/timeclock"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func punch(t timeclock.PunchType, at string) timeclock.Punch {
	status := timeclock.StatusRegular
	if timeclock.IsUnset(at) {
		status = timeclock.StatusPendente
	}
	return timeclock.Punch{Type: t, Time: at, Status: status}
}

func padraoRecord(entrada, saidaAlmoco, entradaAlmoco, saida string) timeclock.AttendanceRecord {
	return timeclock.AttendanceRecord{
		ID:          "rec-1",
		EmployeeID:  "emp-101",
		Date:        time.Date(2025, time.March, 19, 0, 0, 0, 0, time.UTC),
		WorkModelID: "PADRAO",
		Punches: []timeclock.Punch{
			punch(timeclock.PunchEntradaTrabalho, entrada),
			punch(timeclock.PunchSaidaAlmoco, saidaAlmoco),
			punch(timeclock.PunchEntradaAlmoco, entradaAlmoco),
			punch(timeclock.PunchSaidaTrabalho, saida),
		},
	}
}

// =============================================================================
// COMPLETENESS GATING
// =============================================================================

func TestComputeBalance_MissingRequiredPunch_IsIncomplete(t *testing.T) {
	// GIVEN: A standard-model record whose final punch is still unset
	// WHEN: Computing the balance
	// THEN: The result is incomplete with "Pendente", never zero minutes

	rec := padraoRecord("08:00", "12:00", "13:00", timeclock.TimeUnset)

	result, err := timeclock.ComputeBalance(rec, timeclock.PadraoModel())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Complete {
		t.Fatal("expected incomplete result for unset saida_trabalho")
	}
	if result.DisplayWorked != timeclock.DisplayPendente {
		t.Errorf("expected %q, got %q", timeclock.DisplayPendente, result.DisplayWorked)
	}
	if result.DisplayBalance != "" {
		t.Errorf("incomplete record must not show a numeric balance, got %q", result.DisplayBalance)
	}
}

func TestComputeBalance_AbsentPunch_IsIncomplete(t *testing.T) {
	// GIVEN: A record missing a required punch entirely (not just unset)
	rec := padraoRecord("08:00", "12:00", "13:00", "17:00")
	rec.Punches = rec.Punches[:3]

	result, err := timeclock.ComputeBalance(rec, timeclock.PadraoModel())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Complete {
		t.Fatal("expected incomplete result for absent punch")
	}
}

func TestComputeBalance_PendingStatus_ForcesIncomplete(t *testing.T) {
	// GIVEN: Every punch has a time, but one is still pending approval
	rec := padraoRecord("08:00", "12:00", "13:00", "17:00")
	rec.Punches[3].Status = timeclock.StatusPendente

	result, err := timeclock.ComputeBalance(rec, timeclock.PadraoModel())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Complete {
		t.Fatal("pending punch must force the whole record incomplete")
	}
}

func TestComputeBalance_MalformedTimeShadowedByIncomplete(t *testing.T) {
	// GIVEN: One punch unset and another malformed
	// THEN: Gating wins - the record is incomplete, no error raised
	rec := padraoRecord("8h00", "12:00", "13:00", timeclock.TimeUnset)

	result, err := timeclock.ComputeBalance(rec, timeclock.PadraoModel())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Complete {
		t.Fatal("expected incomplete result")
	}
}

// =============================================================================
// STANDARD MODEL
// =============================================================================

func TestComputeBalance_StandardModel_RoundNumbers(t *testing.T) {
	// GIVEN: 08:00-12:00 + 13:00-17:00 against 480 expected minutes
	rec := padraoRecord("08:00", "12:00", "13:00", "17:00")

	result, err := timeclock.ComputeBalance(rec, timeclock.PadraoModel())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.WorkedMinutes != 480 {
		t.Errorf("expected 480 worked minutes, got %d", result.WorkedMinutes)
	}
	if result.BalanceMinutes != 0 {
		t.Errorf("expected zero balance, got %d", result.BalanceMinutes)
	}
	if result.DisplayWorked != "8h00m" {
		t.Errorf("expected display 8h00m, got %q", result.DisplayWorked)
	}
	if result.DisplayBalance != "+0h00m" {
		t.Errorf("expected display +0h00m, got %q", result.DisplayBalance)
	}
}

func TestComputeBalance_StandardModel_Overtime(t *testing.T) {
	// GIVEN: Leaving at 18:30 instead of 17:00
	rec := padraoRecord("08:00", "12:00", "13:00", "18:30")

	result, err := timeclock.ComputeBalance(rec, timeclock.PadraoModel())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.WorkedMinutes != 570 {
		t.Errorf("expected 570 worked minutes, got %d", result.WorkedMinutes)
	}
	if result.BalanceMinutes != 90 {
		t.Errorf("expected +90 balance, got %d", result.BalanceMinutes)
	}
	if result.DisplayBalance != "+1h30m" {
		t.Errorf("expected +1h30m, got %q", result.DisplayBalance)
	}
}

func TestComputeBalance_StandardModel_Shortfall(t *testing.T) {
	// GIVEN: Leaving at 16:00, one hour early
	rec := padraoRecord("08:00", "12:00", "13:00", "16:00")

	result, err := timeclock.ComputeBalance(rec, timeclock.PadraoModel())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.WorkedMinutes != 420 {
		t.Errorf("expected 420 worked minutes, got %d", result.WorkedMinutes)
	}
	if result.BalanceMinutes != -60 {
		t.Errorf("expected -60 balance, got %d", result.BalanceMinutes)
	}
	if result.DisplayBalance != "-1h00m" {
		t.Errorf("expected -1h00m, got %q", result.DisplayBalance)
	}
}

// =============================================================================
// HALF-DAY MODEL
// =============================================================================

func TestComputeBalance_HalfDay_SingleSegment(t *testing.T) {
	rec := timeclock.AttendanceRecord{
		WorkModelID: "MEIO_PERIODO",
		Punches: []timeclock.Punch{
			punch(timeclock.PunchEntradaTrabalho, "08:00"),
			punch(timeclock.PunchSaidaTrabalho, "12:30"),
		},
	}

	result, err := timeclock.ComputeBalance(rec, timeclock.MeioPeriodoModel())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.WorkedMinutes != 270 {
		t.Errorf("expected 270 worked minutes, got %d", result.WorkedMinutes)
	}
	if result.DisplayBalance != "+0h30m" {
		t.Errorf("expected +0h30m, got %q", result.DisplayBalance)
	}
}

// =============================================================================
// SHIFT MODEL
// =============================================================================

func plantaoRecord(times map[timeclock.PunchType]string) timeclock.AttendanceRecord {
	model := timeclock.Plantao12hModel()
	rec := timeclock.AttendanceRecord{WorkModelID: model.ID}
	for _, slot := range model.Slots {
		rec.Punches = append(rec.Punches, punch(slot.Type, times[slot.Type]))
	}
	return rec
}

func TestComputeBalance_ShiftModel_PauseSubtraction(t *testing.T) {
	// GIVEN: 07:00-19:00 span with two half-hour intervals, 720 expected
	// THEN: 720 span - 60 pause = 660 worked, balance -60
	rec := plantaoRecord(map[timeclock.PunchType]string{
		timeclock.PunchEntradaPlantao: "07:00",
		timeclock.PunchPausa1:         "12:00",
		timeclock.PunchRetorno1:       "12:30",
		timeclock.PunchPausa2:         "18:00",
		timeclock.PunchRetorno2:       "18:30",
		timeclock.PunchSaidaPlantao:   "19:00",
	})

	result, err := timeclock.ComputeBalance(rec, timeclock.Plantao12hModel())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.WorkedMinutes != 660 {
		t.Errorf("expected 660 worked minutes, got %d", result.WorkedMinutes)
	}
	if result.BalanceMinutes != -60 {
		t.Errorf("expected -60 balance, got %d", result.BalanceMinutes)
	}
}

func TestComputeWorkedMinutes_CustomModel_MismatchedPausePrefix(t *testing.T) {
	// GIVEN: A custom model where a resume slot is optional and unset
	// THEN: Only the matched prefix of pause pairs is subtracted
	model := timeclock.WorkModel{
		ID:              "ESCALA_NOTURNA",
		Name:            "Escala Noturna",
		Kind:            timeclock.KindCustom,
		ExpectedMinutes: 600,
		Slots: []timeclock.Slot{
			{Type: "entrada_escala", Label: "Entrada", Ordinal: 1, Role: timeclock.RoleClockIn, Required: true},
			{Type: "pausa_a", Label: "Pausa A", Ordinal: 2, Role: timeclock.RolePause, Required: true},
			{Type: "retorno_a", Label: "Retorno A", Ordinal: 3, Role: timeclock.RoleResume, Required: true},
			{Type: "pausa_b", Label: "Pausa B", Ordinal: 4, Role: timeclock.RolePause, Required: false},
			{Type: "retorno_b", Label: "Retorno B", Ordinal: 5, Role: timeclock.RoleResume, Required: false},
			{Type: "saida_escala", Label: "Saída", Ordinal: 6, Role: timeclock.RoleClockOut, Required: true},
		},
	}
	rec := timeclock.AttendanceRecord{
		WorkModelID: model.ID,
		Punches: []timeclock.Punch{
			punch("entrada_escala", "08:00"),
			punch("pausa_a", "12:00"),
			punch("retorno_a", "12:30"),
			punch("pausa_b", "15:00"), // pause recorded, resume never was
			punch("saida_escala", "18:00"),
		},
	}

	worked, err := timeclock.ComputeWorkedMinutes(rec, model)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !worked.Complete {
		t.Fatal("optional unset resume must not gate completeness")
	}
	// 600 span - 30 matched pause; the unmatched pausa_b is ignored.
	if worked.Minutes != 570 {
		t.Errorf("expected 570 worked minutes, got %d", worked.Minutes)
	}
}

// =============================================================================
// HOME-OFFICE MODEL
// =============================================================================

func homeOfficeRecord(inicio, pausa, retorno, fim string) timeclock.AttendanceRecord {
	return timeclock.AttendanceRecord{
		WorkModelID: "HOME_OFFICE",
		Punches: []timeclock.Punch{
			punch(timeclock.PunchInicioExpediente, inicio),
			punch(timeclock.PunchPausa, pausa),
			punch(timeclock.PunchRetorno, retorno),
			punch(timeclock.PunchFimExpediente, fim),
		},
	}
}

func TestComputeBalance_HomeOffice_WithoutPause(t *testing.T) {
	// GIVEN: 09:00-18:00 with the optional pause pair unset
	// THEN: Complete, 540 worked minutes - pause slots are optional
	rec := homeOfficeRecord("09:00", timeclock.TimeUnset, timeclock.TimeUnset, "18:00")

	result, err := timeclock.ComputeBalance(rec, timeclock.HomeOfficeModel())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Complete {
		t.Fatal("unset optional pause must not make the record incomplete")
	}
	if result.WorkedMinutes != 540 {
		t.Errorf("expected 540 worked minutes, got %d", result.WorkedMinutes)
	}
}

func TestComputeBalance_HomeOffice_WithPause(t *testing.T) {
	// GIVEN: 09:00-18:00 with a one-hour pause recorded on both sides
	rec := homeOfficeRecord("09:00", "12:00", "13:00", "18:00")

	result, err := timeclock.ComputeBalance(rec, timeclock.HomeOfficeModel())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.WorkedMinutes != 480 {
		t.Errorf("expected 480 worked minutes, got %d", result.WorkedMinutes)
	}
	if result.DisplayBalance != "+0h00m" {
		t.Errorf("expected +0h00m, got %q", result.DisplayBalance)
	}
}

func TestComputeBalance_HomeOffice_OneSidedPauseIgnored(t *testing.T) {
	// GIVEN: A pause with no matching resume
	// THEN: The pause is ignored; the uninterrupted span is scored
	rec := homeOfficeRecord("09:00", "12:00", timeclock.TimeUnset, "18:00")

	result, err := timeclock.ComputeBalance(rec, timeclock.HomeOfficeModel())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Complete {
		t.Fatal("one-sided optional pause must not gate completeness")
	}
	if result.WorkedMinutes != 540 {
		t.Errorf("expected 540 worked minutes, got %d", result.WorkedMinutes)
	}
}

// =============================================================================
// ERRORS AND PURITY
// =============================================================================

func TestEngine_UnknownModel_RaisesConfigurationError(t *testing.T) {
	// GIVEN: A record referencing a model absent from the catalog
	// THEN: ErrModelNotFound, never a default-model-based guess
	engine := &timeclock.Engine{Catalog: timeclock.DefaultCatalog()}
	rec := timeclock.AttendanceRecord{WorkModelID: "TURNO_INEXISTENTE"}

	_, err := engine.Balance(rec)
	if !errors.Is(err, timeclock.ErrModelNotFound) {
		t.Fatalf("expected ErrModelNotFound, got %v", err)
	}

	var nf *timeclock.ModelNotFoundError
	if !errors.As(err, &nf) || nf.ID != "TURNO_INEXISTENTE" {
		t.Errorf("expected structured ModelNotFoundError with id, got %v", err)
	}
}

func TestComputeWorkedMinutes_ModelMismatch(t *testing.T) {
	rec := padraoRecord("08:00", "12:00", "13:00", "17:00")
	rec.WorkModelID = "HOME_OFFICE"

	_, err := timeclock.ComputeWorkedMinutes(rec, timeclock.PadraoModel())
	if !errors.Is(err, timeclock.ErrModelMismatch) {
		t.Fatalf("expected ErrModelMismatch, got %v", err)
	}
}

func TestComputeWorkedMinutes_MalformedTime(t *testing.T) {
	// GIVEN: A complete record where one punch is set but not valid HH:MM
	rec := padraoRecord("08:00", "12:00", "treze horas", "17:00")

	_, err := timeclock.ComputeWorkedMinutes(rec, timeclock.PadraoModel())
	if !errors.Is(err, timeclock.ErrMalformedTime) {
		t.Fatalf("expected ErrMalformedTime, got %v", err)
	}

	var mt *timeclock.MalformedTimeError
	if !errors.As(err, &mt) || mt.PunchType != timeclock.PunchEntradaAlmoco {
		t.Errorf("expected MalformedTimeError naming the punch, got %v", err)
	}
}

func TestComputeBalance_Idempotent(t *testing.T) {
	// Pure function: identical inputs, identical outputs, inputs untouched.
	rec := padraoRecord("08:00", "12:00", "13:00", "18:30")
	model := timeclock.PadraoModel()

	first, err := timeclock.ComputeBalance(rec, model)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := timeclock.ComputeBalance(rec, model)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Errorf("expected identical results, got %+v then %+v", first, second)
	}
	if rec.Punches[3].Time != "18:30" {
		t.Error("engine must not mutate its inputs")
	}
}
