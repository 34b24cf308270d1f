/*
Package factory provides JSON to Go work-model conversion.

PURPOSE:
  Converts JSON work-model definitions into timeclock.WorkModel values.
  This enables schedule configuration without code changes - an
  administrator can define a PERSONALIZADO model in JSON, and the factory
  produces a validated catalog entry.

WHY JSON?
  - Administrators can define custom schedules from the admin UI
  - Easy database storage of model configs alongside the built-ins
  - Version control for schedule definitions

JSON SCHEMA:
  {
    "id": "ESCALA_NOTURNA",
    "name": "Escala Noturna",
    "kind": "personalizado",
    "expected_minutes": 600,
    "slots": [
      {"type": "entrada_escala", "label": "Entrada", "role": "entrada"},
      {"type": "pausa_a",        "label": "Pausa",   "role": "pausa"},
      {"type": "retorno_a",      "label": "Retorno", "role": "retorno"},
      {"type": "saida_escala",   "label": "Saída",   "role": "saida"}
    ]
  }

KEY FEATURES:
  - Ordinals are assigned from slot order; they never appear in JSON
  - "required" defaults to true; optional slots must say so explicitly
  - The parsed model is validated before it is returned

USAGE:
  model, err := factory.ParseModel(jsonStr)
  catalog.Register(model)

SEE ALSO:
  - timeclock/model.go: WorkModel and its invariants
  - store/sqlite: persists the JSON alongside the parsed columns
*/
package factory

import (
	"encoding/json"
	"fmt"

	"github.com/cuidaemprego/timeclock/timeclock"
)

// ModelJSON is the wire format for a work-model definition.
type ModelJSON struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Kind            string     `json:"kind"`
	ExpectedMinutes int        `json:"expected_minutes"`
	Slots           []SlotJSON `json:"slots"`
}

// SlotJSON is one expected punch. Required defaults to true when omitted.
type SlotJSON struct {
	Type     string `json:"type"`
	Label    string `json:"label"`
	Role     string `json:"role"`
	Required *bool  `json:"required,omitempty"`
}

var kinds = map[string]timeclock.ModelKind{
	string(timeclock.KindStandard):   timeclock.KindStandard,
	string(timeclock.KindHalfDay):    timeclock.KindHalfDay,
	string(timeclock.KindShift):      timeclock.KindShift,
	string(timeclock.KindHomeOffice): timeclock.KindHomeOffice,
	string(timeclock.KindCustom):     timeclock.KindCustom,
}

var roles = map[string]timeclock.SlotRole{
	string(timeclock.RoleClockIn):  timeclock.RoleClockIn,
	string(timeclock.RoleClockOut): timeclock.RoleClockOut,
	string(timeclock.RolePause):    timeclock.RolePause,
	string(timeclock.RoleResume):   timeclock.RoleResume,
}

// ParseModel parses and validates a JSON work-model definition.
func ParseModel(jsonStr string) (timeclock.WorkModel, error) {
	var mj ModelJSON
	if err := json.Unmarshal([]byte(jsonStr), &mj); err != nil {
		return timeclock.WorkModel{}, fmt.Errorf("parse work model: %w", err)
	}
	return FromJSON(mj)
}

// FromJSON converts an already-decoded definition into a validated model.
func FromJSON(mj ModelJSON) (timeclock.WorkModel, error) {
	kind, ok := kinds[mj.Kind]
	if !ok {
		return timeclock.WorkModel{}, &timeclock.InvalidModelError{
			ID:     timeclock.WorkModelID(mj.ID),
			Detail: fmt.Sprintf("unknown model kind %q", mj.Kind),
		}
	}

	model := timeclock.WorkModel{
		ID:              timeclock.WorkModelID(mj.ID),
		Name:            mj.Name,
		Kind:            kind,
		ExpectedMinutes: mj.ExpectedMinutes,
	}

	for i, sj := range mj.Slots {
		role, ok := roles[sj.Role]
		if !ok {
			return timeclock.WorkModel{}, &timeclock.InvalidModelError{
				ID:     model.ID,
				Detail: fmt.Sprintf("unknown slot role %q", sj.Role),
			}
		}
		required := true
		if sj.Required != nil {
			required = *sj.Required
		}
		model.Slots = append(model.Slots, timeclock.Slot{
			Type:     timeclock.PunchType(sj.Type),
			Label:    sj.Label,
			Ordinal:  i + 1,
			Role:     role,
			Required: required,
		})
	}

	if err := model.Validate(); err != nil {
		return timeclock.WorkModel{}, err
	}
	return model, nil
}

// ToJSON renders a model back to its wire format.
func ToJSON(m timeclock.WorkModel) ModelJSON {
	mj := ModelJSON{
		ID:              string(m.ID),
		Name:            m.Name,
		Kind:            string(m.Kind),
		ExpectedMinutes: m.ExpectedMinutes,
	}
	for _, s := range m.Slots {
		sj := SlotJSON{Type: string(s.Type), Label: s.Label, Role: string(s.Role)}
		if !s.Required {
			f := false
			sj.Required = &f
		}
		mj.Slots = append(mj.Slots, sj)
	}
	return mj
}

// ModelToJSONString renders a model as a JSON document for storage.
func ModelToJSONString(m timeclock.WorkModel) string {
	b, _ := json.MarshalIndent(ToJSON(m), "", "  ")
	return string(b)
}
