package dto

import "time"

type SelectPatientRequest struct {
	PatientID string `json:"patient_id" validate:"required"`
}

// SubmitConsultationRequest carries the free-text consultation fields. The
// medication list and the target patient come from the session, not the
// request body.
type SubmitConsultationRequest struct {
	ChiefComplaints string `json:"chiefComplaints" validate:"max=5000"`
	Investigation   string `json:"investigation" validate:"max=5000"`
	History         string `json:"history" validate:"max=5000"`
	Diagnosis       string `json:"diagnosis" validate:"max=5000"`
}

type AddMedicationRequest struct {
	Name      string `json:"name"`
	Unit      string `json:"unit"`
	Morning   string `json:"morning" validate:"omitempty,numeric"`
	Afternoon string `json:"afternoon" validate:"omitempty,numeric"`
	Night     string `json:"night" validate:"omitempty,numeric"`
	Days      string `json:"days"`
	Qty       string `json:"qty"`
	Info      string `json:"info"`
	Remarks   string `json:"remarks"`
}

type MedicationResponse struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Unit    string `json:"unit,omitempty"`
	Dosage  string `json:"dosage"`
	Days    string `json:"days"`
	Qty     string `json:"qty"`
	Info    string `json:"info"`
	Remarks string `json:"remarks,omitempty"`
}

type SuggestedQuantityResponse struct {
	Qty int `json:"qty"`
}

type ConsultationResponse struct {
	ID               string               `json:"id"`
	PatientID        string               `json:"patientId"`
	PatientName      string               `json:"patientName"`
	ChiefComplaints  string               `json:"chiefComplaints,omitempty"`
	Investigation    string               `json:"investigation,omitempty"`
	History          string               `json:"history,omitempty"`
	Diagnosis        string               `json:"diagnosis,omitempty"`
	Medications      []MedicationResponse `json:"medications"`
	ConsultationDate time.Time            `json:"consultationDate"`
	DoctorName       string               `json:"doctorName"`
}

// SelectPatientResponse is the opened patient record plus their merged
// consultation history, newest first.
type SelectPatientResponse struct {
	Patient    PatientResponse        `json:"patient"`
	CaseClosed bool                   `json:"case_closed"`
	History    []ConsultationResponse `json:"history"`
}

type DocumentResponse struct {
	ConsultationID string `json:"consultation_id"`
	Document       string `json:"document"`
}
