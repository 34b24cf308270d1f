/*
model.go - Work-model definitions

PURPOSE:
  A work model is the template for one day of work: which punches are
  expected, in which order, and how many minutes the day is worth. The
  catalog of models is read-only input for the engine; models are loaded
  from configuration or the backend and never mutated here.

KEY CONCEPTS:
  - ModelKind: Closed set of segment-pairing strategies
  - SlotRole: What a punch means for the computation (in/out/pause/resume)
  - Slot: One expected punch (type, label, ordinal, role, required flag)

BUILT-IN MODELS:
  PADRAO        8h  office day with lunch break (two segments)
  MEIO_PERIODO  4h  half day (single segment)
  PLANTAO_12H   12h shift with two pause/resume pairs
  HOME_OFFICE   8h  remote day with an OPTIONAL pause/resume pair

PAUSE PAIRING:
  Pauses and resumes pair by position in slot order, never by label text.
  A model is only valid when every pause has a resume later in the
  sequence; records, however, are handled leniently (see engine.go).

SEE ALSO:
  - engine.go: Per-kind worked-minutes computation
  - catalog.go: Catalog interface and DefaultCatalog()
*/
package timeclock

// =============================================================================
// MODEL KIND - Closed set of segment strategies
// =============================================================================

// ModelKind selects the segment-pairing algorithm for a model. Adding a
// new kind is a compiler-checked exercise: the engine's dispatch switch
// must learn about it.
type ModelKind string

const (
	// KindStandard: in, pause-out (lunch), pause-in, out. Two segments.
	KindStandard ModelKind = "padrao"

	// KindHalfDay: in, out. One segment.
	KindHalfDay ModelKind = "meio_periodo"

	// KindShift: in, N pause/resume pairs, out. Span minus pauses.
	KindShift ModelKind = "plantao"

	// KindHomeOffice: in, optional pause/resume, out. The pause is
	// subtracted only when both sides are recorded.
	KindHomeOffice ModelKind = "home_office"

	// KindCustom: admin-defined slot list. Computed like a shift: first
	// clock-in to last clock-out minus positionally matched pauses.
	KindCustom ModelKind = "personalizado"
)

// =============================================================================
// SLOT - One expected punch in a model
// =============================================================================

// SlotRole is the computational meaning of a slot. Roles keep the engine
// free of string sniffing on punch-type tags.
type SlotRole string

const (
	RoleClockIn  SlotRole = "entrada"
	RoleClockOut SlotRole = "saida"
	RolePause    SlotRole = "pausa"
	RoleResume   SlotRole = "retorno"
)

// Slot declares one expected punch. Ordinals are contiguous starting at 1.
// Optional slots (Required=false) do not block completeness.
type Slot struct {
	Type     PunchType
	Label    string
	Ordinal  int
	Role     SlotRole
	Required bool
}

// =============================================================================
// WORK MODEL
// =============================================================================

// WorkModel is an immutable day template.
type WorkModel struct {
	ID              WorkModelID
	Name            string
	Kind            ModelKind
	ExpectedMinutes int
	Slots           []Slot
}

// Validate checks the structural invariants of a model: contiguous
// ordinals from 1, exactly one clock-in and one clock-out, clock-in first
// and clock-out last, and every pause followed by a matching resume.
func (m WorkModel) Validate() error {
	if m.ID == "" {
		return &InvalidModelError{ID: m.ID, Detail: "missing model id"}
	}
	if m.ExpectedMinutes < 0 {
		return &InvalidModelError{ID: m.ID, Detail: "negative expected minutes"}
	}
	if len(m.Slots) == 0 {
		// PERSONALIZADO starts empty until the administrator defines it.
		if m.Kind == KindCustom {
			return nil
		}
		return &InvalidModelError{ID: m.ID, Detail: "model has no slots"}
	}

	ins, outs, pauses, resumes := 0, 0, 0, 0
	for i, s := range m.Slots {
		if s.Ordinal != i+1 {
			return &InvalidModelError{ID: m.ID, Detail: "slot ordinals must be contiguous from 1"}
		}
		switch s.Role {
		case RoleClockIn:
			ins++
			if i != 0 {
				return &InvalidModelError{ID: m.ID, Detail: "clock-in must be the first slot"}
			}
		case RoleClockOut:
			outs++
			if i != len(m.Slots)-1 {
				return &InvalidModelError{ID: m.ID, Detail: "clock-out must be the last slot"}
			}
		case RolePause:
			pauses++
		case RoleResume:
			resumes++
			if resumes > pauses {
				return &InvalidModelError{ID: m.ID, Detail: "resume slot without a preceding pause"}
			}
		default:
			return &InvalidModelError{ID: m.ID, Detail: "unknown slot role: " + string(s.Role)}
		}
	}
	if ins != 1 || outs != 1 {
		return &InvalidModelError{ID: m.ID, Detail: "model needs exactly one clock-in and one clock-out"}
	}
	if pauses != resumes {
		return &InvalidModelError{ID: m.ID, Detail: "every pause needs a matching resume"}
	}
	return nil
}

// Slot returns the slot declaring a punch type, if the model has one.
func (m WorkModel) Slot(t PunchType) (Slot, bool) {
	for _, s := range m.Slots {
		if s.Type == t {
			return s, true
		}
	}
	return Slot{}, false
}

// =============================================================================
// BUILT-IN MODELS
// =============================================================================

// PadraoModel is the standard 8h office day with a lunch break.
func PadraoModel() WorkModel {
	return WorkModel{
		ID:              "PADRAO",
		Name:            "Padrão (8h)",
		Kind:            KindStandard,
		ExpectedMinutes: 8 * 60,
		Slots: []Slot{
			{Type: PunchEntradaTrabalho, Label: "Entrada Trabalho", Ordinal: 1, Role: RoleClockIn, Required: true},
			{Type: PunchSaidaAlmoco, Label: "Saída Almoço", Ordinal: 2, Role: RolePause, Required: true},
			{Type: PunchEntradaAlmoco, Label: "Retorno Almoço", Ordinal: 3, Role: RoleResume, Required: true},
			{Type: PunchSaidaTrabalho, Label: "Saída Trabalho", Ordinal: 4, Role: RoleClockOut, Required: true},
		},
	}
}

// MeioPeriodoModel is the 4h half-day schedule.
func MeioPeriodoModel() WorkModel {
	return WorkModel{
		ID:              "MEIO_PERIODO",
		Name:            "Meio Período (4h)",
		Kind:            KindHalfDay,
		ExpectedMinutes: 4 * 60,
		Slots: []Slot{
			{Type: PunchEntradaTrabalho, Label: "Entrada", Ordinal: 1, Role: RoleClockIn, Required: true},
			{Type: PunchSaidaTrabalho, Label: "Saída", Ordinal: 2, Role: RoleClockOut, Required: true},
		},
	}
}

// Plantao12hModel is the 12h shift with two interval pairs.
func Plantao12hModel() WorkModel {
	return WorkModel{
		ID:              "PLANTAO_12H",
		Name:            "Plantão (12h)",
		Kind:            KindShift,
		ExpectedMinutes: 12 * 60,
		Slots: []Slot{
			{Type: PunchEntradaPlantao, Label: "Entrada Plantão", Ordinal: 1, Role: RoleClockIn, Required: true},
			{Type: PunchPausa1, Label: "Intervalo 1", Ordinal: 2, Role: RolePause, Required: true},
			{Type: PunchRetorno1, Label: "Retorno 1", Ordinal: 3, Role: RoleResume, Required: true},
			{Type: PunchPausa2, Label: "Intervalo 2", Ordinal: 4, Role: RolePause, Required: true},
			{Type: PunchRetorno2, Label: "Retorno 2", Ordinal: 5, Role: RoleResume, Required: true},
			{Type: PunchSaidaPlantao, Label: "Saída Plantão", Ordinal: 6, Role: RoleClockOut, Required: true},
		},
	}
}

// HomeOfficeModel is the 8h remote day. The pause pair is optional: a day
// without a recorded pause is still complete.
func HomeOfficeModel() WorkModel {
	return WorkModel{
		ID:              "HOME_OFFICE",
		Name:            "Home Office",
		Kind:            KindHomeOffice,
		ExpectedMinutes: 8 * 60,
		Slots: []Slot{
			{Type: PunchInicioExpediente, Label: "Início Expediente", Ordinal: 1, Role: RoleClockIn, Required: true},
			{Type: PunchPausa, Label: "Pausa", Ordinal: 2, Role: RolePause, Required: false},
			{Type: PunchRetorno, Label: "Retorno", Ordinal: 3, Role: RoleResume, Required: false},
			{Type: PunchFimExpediente, Label: "Fim Expediente", Ordinal: 4, Role: RoleClockOut, Required: true},
		},
	}
}

// BuiltinModels returns the four ready-made work models.
func BuiltinModels() []WorkModel {
	return []WorkModel{PadraoModel(), MeioPeriodoModel(), Plantao12hModel(), HomeOfficeModel()}
}
