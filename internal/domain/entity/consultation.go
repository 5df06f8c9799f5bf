package entity

import (
	"encoding/json"
	"fmt"
	"time"
)

// Consultation is one completed consultation for a patient. Consultations
// are append-only: created once on submit, never edited or deleted. A
// patient accumulates one consultation per closed encounter.
//
// PatientName and DoctorName are snapshots taken at submit time and are not
// kept in sync with later edits. Medication carries the serialized line
// items; use Medications / EncodeMedications to cross that boundary.
type Consultation struct {
	ID               string    `json:"id"`
	PatientID        string    `json:"patientId"`
	PatientName      string    `json:"patientName"`
	ChiefComplaints  string    `json:"chiefComplaints"`
	Investigation    string    `json:"investigation"`
	History          string    `json:"history"`
	Diagnosis        string    `json:"diagnosis"`
	Medication       string    `json:"medication"`
	ConsultationDate time.Time `json:"consultationDate"`
	DoctorName       string    `json:"doctorName"`
}

// EncodeMedications serializes medication lines for the consultation's
// medication field. DecodeMedications is its inverse.
func EncodeMedications(lines []Medication) (string, error) {
	if len(lines) == 0 {
		return "[]", nil
	}
	encoded, err := json.Marshal(lines)
	if err != nil {
		return "", fmt.Errorf("encode medication lines: %w", err)
	}
	return string(encoded), nil
}

// DecodeMedications parses a serialized medication payload back into
// ordered line items. An empty payload decodes to no lines.
func DecodeMedications(payload string) ([]Medication, error) {
	if payload == "" {
		return nil, nil
	}
	var lines []Medication
	if err := json.Unmarshal([]byte(payload), &lines); err != nil {
		return nil, fmt.Errorf("decode medication lines: %w", err)
	}
	return lines, nil
}

// Medications decodes the consultation's medication payload.
func (c *Consultation) Medications() ([]Medication, error) {
	return DecodeMedications(c.Medication)
}
