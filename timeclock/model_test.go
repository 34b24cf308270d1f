package timeclock_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cuidaemprego/timeclock/timeclock"
)

func TestBuiltinModels_AreValid(t *testing.T) {
	for _, m := range timeclock.BuiltinModels() {
		assert.NoError(t, m.Validate(), "built-in model %s must validate", m.ID)
	}
}

func TestBuiltinModels_ExpectedMinutes(t *testing.T) {
	expected := map[timeclock.WorkModelID]int{
		"PADRAO":       480,
		"MEIO_PERIODO": 240,
		"PLANTAO_12H":  720,
		"HOME_OFFICE":  480,
	}
	for _, m := range timeclock.BuiltinModels() {
		assert.Equal(t, expected[m.ID], m.ExpectedMinutes, "model %s", m.ID)
	}
}

func TestWorkModel_Validate_RejectsBrokenStructures(t *testing.T) {
	base := func() timeclock.WorkModel {
		return timeclock.WorkModel{
			ID:              "TESTE",
			Name:            "Teste",
			Kind:            timeclock.KindShift,
			ExpectedMinutes: 480,
			Slots: []timeclock.Slot{
				{Type: "in", Ordinal: 1, Role: timeclock.RoleClockIn, Required: true},
				{Type: "p1", Ordinal: 2, Role: timeclock.RolePause, Required: true},
				{Type: "r1", Ordinal: 3, Role: timeclock.RoleResume, Required: true},
				{Type: "out", Ordinal: 4, Role: timeclock.RoleClockOut, Required: true},
			},
		}
	}

	tests := []struct {
		name   string
		mutate func(*timeclock.WorkModel)
	}{
		{"missing id", func(m *timeclock.WorkModel) { m.ID = "" }},
		{"gap in ordinals", func(m *timeclock.WorkModel) { m.Slots[2].Ordinal = 5 }},
		{"pause without resume", func(m *timeclock.WorkModel) { m.Slots = append(m.Slots[:2], m.Slots[3]); m.Slots[2].Ordinal = 3 }},
		{"resume before pause", func(m *timeclock.WorkModel) {
			m.Slots[1], m.Slots[2] = m.Slots[2], m.Slots[1]
			m.Slots[1].Ordinal, m.Slots[2].Ordinal = 2, 3
		}},
		{"clock-out not last", func(m *timeclock.WorkModel) {
			m.Slots[2], m.Slots[3] = m.Slots[3], m.Slots[2]
			m.Slots[2].Ordinal, m.Slots[3].Ordinal = 3, 4
		}},
		{"negative expected minutes", func(m *timeclock.WorkModel) { m.ExpectedMinutes = -10 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := base()
			tc.mutate(&m)
			err := m.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, timeclock.ErrInvalidModel)
		})
	}
}

func TestWorkModel_Validate_EmptyCustomModelAllowed(t *testing.T) {
	// PERSONALIZADO starts with no slots until the administrator fills it in.
	m := timeclock.WorkModel{ID: "PERSONALIZADO", Name: "Personalizado", Kind: timeclock.KindCustom}
	assert.NoError(t, m.Validate())
}

func TestMemoryCatalog_RegisterLookupList(t *testing.T) {
	c := timeclock.NewMemoryCatalog()
	require.NoError(t, c.Register(timeclock.PadraoModel()))
	require.NoError(t, c.Register(timeclock.HomeOfficeModel()))

	m, err := c.Lookup("PADRAO")
	require.NoError(t, err)
	assert.Equal(t, timeclock.KindStandard, m.Kind)

	_, err = c.Lookup("NAO_EXISTE")
	assert.ErrorIs(t, err, timeclock.ErrModelNotFound)

	list := c.List()
	require.Len(t, list, 2)
	assert.Equal(t, timeclock.WorkModelID("HOME_OFFICE"), list[0].ID)
	assert.Equal(t, timeclock.WorkModelID("PADRAO"), list[1].ID)
}

func TestMemoryCatalog_Register_ValidatesModel(t *testing.T) {
	c := timeclock.NewMemoryCatalog()
	err := c.Register(timeclock.WorkModel{ID: "QUEBRADO", Kind: timeclock.KindStandard})
	assert.ErrorIs(t, err, timeclock.ErrInvalidModel)
}

func TestMemoryCatalog_Snapshot_IsConsistent(t *testing.T) {
	c := timeclock.DefaultCatalog()
	snap := c.Snapshot()

	// Replacing a model in the live catalog must not leak into the snapshot.
	altered := timeclock.PadraoModel()
	altered.ExpectedMinutes = 300
	require.NoError(t, c.Register(altered))

	m, err := snap.Lookup("PADRAO")
	require.NoError(t, err)
	assert.Equal(t, 480, m.ExpectedMinutes)
}

func TestParseClockTime(t *testing.T) {
	tests := []struct {
		in      string
		minutes int
		ok      bool
	}{
		{"08:00", 480, true},
		{"8:30", 510, true},
		{"23:59", 1439, true},
		{"00:00", 0, true},
		{"24:00", 0, false},
		{"12:60", 0, false},
		{"--:--", 0, false},
		{"", 0, false},
		{"8h30", 0, false},
		{"12:3a", 0, false},
	}
	for _, tc := range tests {
		ct, err := timeclock.ParseClockTime(tc.in)
		if tc.ok {
			require.NoError(t, err, "input %q", tc.in)
			assert.Equal(t, tc.minutes, ct.Minutes(), "input %q", tc.in)
		} else {
			assert.ErrorIs(t, err, timeclock.ErrMalformedTime, "input %q", tc.in)
		}
	}
}

func TestFormatters(t *testing.T) {
	assert.Equal(t, "8h00m", timeclock.FormatDuration(480))
	assert.Equal(t, "0h05m", timeclock.FormatDuration(5))
	assert.Equal(t, "+1h30m", timeclock.FormatBalance(90))
	assert.Equal(t, "-1h00m", timeclock.FormatBalance(-60))
	assert.Equal(t, "+0h00m", timeclock.FormatBalance(0))
}
