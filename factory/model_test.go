package factory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cuidaemprego/timeclock/factory"
	"github.com/cuidaemprego/timeclock/timeclock"
)

func TestParseModel_CustomShiftDefinition(t *testing.T) {
	jsonStr := `{
		"id": "ESCALA_NOTURNA",
		"name": "Escala Noturna",
		"kind": "personalizado",
		"expected_minutes": 600,
		"slots": [
			{"type": "entrada_escala", "label": "Entrada", "role": "entrada"},
			{"type": "pausa_a", "label": "Pausa", "role": "pausa", "required": false},
			{"type": "retorno_a", "label": "Retorno", "role": "retorno", "required": false},
			{"type": "saida_escala", "label": "Saída", "role": "saida"}
		]
	}`

	model, err := factory.ParseModel(jsonStr)
	require.NoError(t, err)

	assert.Equal(t, timeclock.WorkModelID("ESCALA_NOTURNA"), model.ID)
	assert.Equal(t, timeclock.KindCustom, model.Kind)
	assert.Equal(t, 600, model.ExpectedMinutes)
	require.Len(t, model.Slots, 4)
	assert.Equal(t, 1, model.Slots[0].Ordinal)
	assert.Equal(t, 4, model.Slots[3].Ordinal)
	assert.True(t, model.Slots[0].Required, "required defaults to true")
	assert.False(t, model.Slots[1].Required)
	assert.Equal(t, timeclock.RolePause, model.Slots[1].Role)
}

func TestParseModel_Errors(t *testing.T) {
	tests := []struct {
		name    string
		jsonStr string
		wantErr error
	}{
		{
			"unknown kind",
			`{"id": "X", "kind": "turno_magico", "slots": []}`,
			timeclock.ErrInvalidModel,
		},
		{
			"unknown role",
			`{"id": "X", "kind": "personalizado", "slots": [{"type": "a", "role": "dormir"}]}`,
			timeclock.ErrInvalidModel,
		},
		{
			"unbalanced pauses",
			`{"id": "X", "kind": "plantao", "expected_minutes": 480, "slots": [
				{"type": "in", "role": "entrada"},
				{"type": "p", "role": "pausa"},
				{"type": "out", "role": "saida"}
			]}`,
			timeclock.ErrInvalidModel,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := factory.ParseModel(tc.jsonStr)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}

	_, err := factory.ParseModel(`{this is not json`)
	assert.Error(t, err)
}

func TestToJSON_RoundTripsBuiltins(t *testing.T) {
	for _, m := range timeclock.BuiltinModels() {
		parsed, err := factory.ParseModel(factory.ModelToJSONString(m))
		require.NoError(t, err, "model %s", m.ID)
		assert.Equal(t, m, parsed, "model %s must survive the JSON round trip", m.ID)
	}
}
