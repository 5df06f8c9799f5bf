package service

import (
	"testing"
	"time"

	"go-clinic-workflow/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderPrescription(t *testing.T) {
	renderer := NewTextPrescriptionRenderer("Sunrise Clinic")

	medication, err := entity.EncodeMedications([]entity.Medication{
		{ID: 1, Name: "Paracetamol", Dosage: "1 - 0 - 1", Days: "5", Qty: "10", Info: "After food"},
		{ID: 2, Name: "Cetirizine", Dosage: "0 - 0 - 1 (mg)", Days: "3", Qty: "3", Info: "Before sleep", Remarks: "Drowsy"},
	})
	require.NoError(t, err)

	consultation := &entity.Consultation{
		PatientName:      "Asha",
		ChiefComplaints:  "Fever",
		Diagnosis:        "Viral fever",
		Medication:       medication,
		ConsultationDate: time.Date(2026, time.August, 20, 10, 0, 0, 0, time.UTC),
		DoctorName:       "dr.rao",
	}
	patient := &entity.Patient{Age: "36", Gender: "Female", Phone: "0123456789"}

	document, err := renderer.Render(consultation, patient)
	require.NoError(t, err)

	assert.Contains(t, document, "Sunrise Clinic")
	assert.Contains(t, document, "Patient: Asha")
	assert.Contains(t, document, "Age/Gender: 36 / Female")
	assert.Contains(t, document, "Date: 20 Aug 2026")
	assert.Contains(t, document, "Chief Complaints:\nFever")
	assert.Contains(t, document, "- Paracetamol [1 - 0 - 1] - for 5 days | After food")
	assert.Contains(t, document, "- Cetirizine [0 - 0 - 1 (mg)] - for 3 days | Before sleep (Drowsy)")
	assert.Contains(t, document, "Dr. dr.rao")
}

func TestRenderPrescriptionDefaultsBlankSections(t *testing.T) {
	renderer := NewTextPrescriptionRenderer("Sunrise Clinic")

	consultation := &entity.Consultation{
		PatientName:      "Asha",
		Medication:       "[]",
		ConsultationDate: time.Date(2026, time.August, 20, 10, 0, 0, 0, time.UTC),
	}

	document, err := renderer.Render(consultation, nil)
	require.NoError(t, err)

	assert.Contains(t, document, "Chief Complaints:\nN/A")
	assert.Contains(t, document, "Diagnosis:\nN/A")
	// History is only printed when present.
	assert.NotContains(t, document, "History:")
	assert.Contains(t, document, "Dr. Unknown")
}

func TestRenderPrescriptionLegacyFreeTextMedication(t *testing.T) {
	renderer := NewTextPrescriptionRenderer("Sunrise Clinic")

	consultation := &entity.Consultation{
		PatientName:      "Asha",
		Medication:       "Take two pills daily",
		ConsultationDate: time.Date(2026, time.August, 20, 10, 0, 0, 0, time.UTC),
		DoctorName:       "dr.rao",
	}

	document, err := renderer.Render(consultation, nil)
	require.NoError(t, err)
	assert.Contains(t, document, "Take two pills daily")
}
