package service

import (
	"fmt"
	"strings"

	"go-clinic-workflow/internal/domain/entity"
)

// PrescriptionRenderer turns a completed consultation plus an optional
// patient snapshot into a prescription document. How the document is laid
// out or printed is the consumer's business; this is the content only.
type PrescriptionRenderer interface {
	Render(consultation *entity.Consultation, patient *entity.Patient) (string, error)
}

type textPrescriptionRenderer struct {
	clinicName string
}

// NewTextPrescriptionRenderer renders prescriptions as plain text.
func NewTextPrescriptionRenderer(clinicName string) PrescriptionRenderer {
	return &textPrescriptionRenderer{clinicName: clinicName}
}

func (r *textPrescriptionRenderer) Render(consultation *entity.Consultation, patient *entity.Patient) (string, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", r.clinicName)
	fmt.Fprintf(&b, "Patient: %s\n", consultation.PatientName)
	if patient != nil {
		fmt.Fprintf(&b, "Age/Gender: %s / %s\n", patient.Age, patient.Gender)
		fmt.Fprintf(&b, "Phone: %s\n", patient.Phone)
	}
	fmt.Fprintf(&b, "Date: %s\n\n", consultation.ConsultationDate.Format("02 Jan 2006"))

	writeSection(&b, "Chief Complaints", consultation.ChiefComplaints)
	if consultation.History != "" {
		writeSection(&b, "History", consultation.History)
	}
	writeSection(&b, "Investigation", consultation.Investigation)
	writeSection(&b, "Diagnosis", consultation.Diagnosis)

	b.WriteString("Rx (Medication):\n")
	lines, err := consultation.Medications()
	if err != nil {
		// Legacy records may carry a free-text medication field; show it as is.
		fmt.Fprintf(&b, "%s\n", consultation.Medication)
	} else {
		for _, line := range lines {
			fmt.Fprintf(&b, "- %s [%s] - for %s days | %s", line.Name, line.Dosage, line.Days, line.Info)
			if line.Remarks != "" {
				fmt.Fprintf(&b, " (%s)", line.Remarks)
			}
			b.WriteString("\n")
		}
	}

	fmt.Fprintf(&b, "\nDr. %s\n", doctorName(consultation))

	return b.String(), nil
}

func writeSection(b *strings.Builder, title, content string) {
	if content == "" {
		content = "N/A"
	}
	fmt.Fprintf(b, "%s:\n%s\n\n", title, content)
}

func doctorName(c *entity.Consultation) string {
	if c.DoctorName == "" {
		return "Unknown"
	}
	return c.DoctorName
}
