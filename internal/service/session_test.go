package service

import (
	"testing"

	"go-clinic-workflow/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() entity.MedicationInput {
	return entity.MedicationInput{
		Name:    "Paracetamol",
		Morning: "1",
		Night:   "1",
		Days:    "5",
		Qty:     "10",
		Info:    "After food",
	}
}

func TestAddMedicationBuildsLine(t *testing.T) {
	m := NewSessionManager()
	m.Begin("dr.rao")
	m.SelectPatient("dr.rao", "p1")

	line, err := m.AddMedication("dr.rao", validInput())
	require.NoError(t, err)
	assert.Equal(t, "Paracetamol", line.Name)
	assert.Equal(t, "1 - 0 - 1", line.Dosage)
	assert.Equal(t, "5", line.Days)
	assert.NotZero(t, line.ID)

	assert.Len(t, m.Medications("dr.rao"), 1)
}

func TestAddMedicationRejectsIncompleteLines(t *testing.T) {
	m := NewSessionManager()
	m.Begin("dr.rao")

	for _, mutate := range []func(*entity.MedicationInput){
		func(in *entity.MedicationInput) { in.Name = "" },
		func(in *entity.MedicationInput) { in.Days = "  " },
		func(in *entity.MedicationInput) { in.Qty = "" },
		func(in *entity.MedicationInput) { in.Info = "" },
	} {
		input := validInput()
		mutate(&input)

		_, err := m.AddMedication("dr.rao", input)
		assert.ErrorIs(t, err, ErrIncompleteMedication)
	}

	// Rejected lines never touch the list.
	assert.Empty(t, m.Medications("dr.rao"))
}

func TestMedicationLineIDsAreMonotonic(t *testing.T) {
	m := NewSessionManager()
	m.Begin("dr.rao")

	var last int64
	for i := 0; i < 5; i++ {
		line, err := m.AddMedication("dr.rao", validInput())
		require.NoError(t, err)
		assert.Greater(t, line.ID, last)
		last = line.ID
	}
}

func TestRemoveMedication(t *testing.T) {
	m := NewSessionManager()
	m.Begin("dr.rao")

	first, err := m.AddMedication("dr.rao", validInput())
	require.NoError(t, err)
	second, err := m.AddMedication("dr.rao", validInput())
	require.NoError(t, err)

	m.RemoveMedication("dr.rao", first.ID)

	lines := m.Medications("dr.rao")
	require.Len(t, lines, 1)
	assert.Equal(t, second.ID, lines[0].ID)

	// Removing an unknown id is a no-op.
	m.RemoveMedication("dr.rao", 99999)
	assert.Len(t, m.Medications("dr.rao"), 1)
}

func TestSelectPatientClearsMedications(t *testing.T) {
	m := NewSessionManager()
	m.Begin("dr.rao")
	m.SelectPatient("dr.rao", "p1")

	_, err := m.AddMedication("dr.rao", validInput())
	require.NoError(t, err)

	// Re-selecting, even the same patient, starts from a clean list.
	m.SelectPatient("dr.rao", "p1")
	assert.Empty(t, m.Medications("dr.rao"))

	_, err = m.AddMedication("dr.rao", validInput())
	require.NoError(t, err)
	m.SelectPatient("dr.rao", "p2")
	assert.Empty(t, m.Medications("dr.rao"))

	selected, ok := m.SelectedPatient("dr.rao")
	assert.True(t, ok)
	assert.Equal(t, "p2", selected)
}

func TestClearConsultationResetsSelection(t *testing.T) {
	m := NewSessionManager()
	m.Begin("dr.rao")
	m.SelectPatient("dr.rao", "p1")

	_, err := m.AddMedication("dr.rao", validInput())
	require.NoError(t, err)

	m.ClearConsultation("dr.rao")

	_, ok := m.SelectedPatient("dr.rao")
	assert.False(t, ok)
	assert.Empty(t, m.Medications("dr.rao"))
}

func TestEndDiscardsSession(t *testing.T) {
	m := NewSessionManager()
	m.Begin("dr.rao")
	m.SelectPatient("dr.rao", "p1")

	m.End("dr.rao")

	_, ok := m.SelectedPatient("dr.rao")
	assert.False(t, ok)
}

func TestSessionsAreIsolatedPerUser(t *testing.T) {
	m := NewSessionManager()
	m.Begin("dr.rao")
	m.Begin("dr.iyer")
	m.SelectPatient("dr.rao", "p1")
	m.SelectPatient("dr.iyer", "p2")

	_, err := m.AddMedication("dr.rao", validInput())
	require.NoError(t, err)

	assert.Empty(t, m.Medications("dr.iyer"))

	selected, _ := m.SelectedPatient("dr.iyer")
	assert.Equal(t, "p2", selected)
}
