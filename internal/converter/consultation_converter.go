package converter

import (
	"go-clinic-workflow/internal/delivery/dto"
	"go-clinic-workflow/internal/domain/entity"
)

// ConsultationToResponse converts a Consultation entity to its response
// DTO, decoding the medication payload into structured lines. A payload
// that fails to decode (legacy free-text records) yields no lines.
func ConsultationToResponse(consultation *entity.Consultation) *dto.ConsultationResponse {
	if consultation == nil {
		return nil
	}

	lines, err := consultation.Medications()
	if err != nil {
		lines = nil
	}

	return &dto.ConsultationResponse{
		ID:               consultation.ID,
		PatientID:        consultation.PatientID,
		PatientName:      consultation.PatientName,
		ChiefComplaints:  consultation.ChiefComplaints,
		Investigation:    consultation.Investigation,
		History:          consultation.History,
		Diagnosis:        consultation.Diagnosis,
		Medications:      MedicationsToResponses(lines),
		ConsultationDate: consultation.ConsultationDate,
		DoctorName:       consultation.DoctorName,
	}
}

// ConsultationsToResponses converts a merged consultation view.
func ConsultationsToResponses(consultations []entity.Consultation) []dto.ConsultationResponse {
	responses := make([]dto.ConsultationResponse, 0, len(consultations))
	for i := range consultations {
		responses = append(responses, *ConsultationToResponse(&consultations[i]))
	}
	return responses
}

// MedicationToResponse converts one medication line.
func MedicationToResponse(line entity.Medication) dto.MedicationResponse {
	return dto.MedicationResponse{
		ID:      line.ID,
		Name:    line.Name,
		Unit:    line.Unit,
		Dosage:  line.Dosage,
		Days:    line.Days,
		Qty:     line.Qty,
		Info:    line.Info,
		Remarks: line.Remarks,
	}
}

// MedicationsToResponses converts an in-progress medication list.
func MedicationsToResponses(lines []entity.Medication) []dto.MedicationResponse {
	responses := make([]dto.MedicationResponse, 0, len(lines))
	for _, line := range lines {
		responses = append(responses, MedicationToResponse(line))
	}
	return responses
}
