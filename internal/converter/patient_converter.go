package converter

import (
	"go-clinic-workflow/internal/delivery/dto"
	"go-clinic-workflow/internal/domain/entity"
)

// PatientToResponse converts a Patient entity to its response DTO.
func PatientToResponse(patient *entity.Patient) *dto.PatientResponse {
	if patient == nil {
		return nil
	}

	return &dto.PatientResponse{
		ID:               patient.ID,
		Name:             patient.Name,
		Gender:           patient.Gender,
		Phone:            patient.Phone,
		DateOfBirth:      patient.DateOfBirth,
		Age:              patient.Age,
		Address:          patient.Address,
		RegistrationDate: patient.RegistrationDate,
		Status:           string(patient.Status),
		RegisteredBy:     patient.RegisteredBy,
	}
}

// PatientsToResponses converts a merged patient view.
func PatientsToResponses(patients []entity.Patient) []dto.PatientResponse {
	responses := make([]dto.PatientResponse, 0, len(patients))
	for i := range patients {
		responses = append(responses, *PatientToResponse(&patients[i]))
	}
	return responses
}
