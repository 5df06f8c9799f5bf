package dto

import "time"

type RegisterPatientRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Gender      string `json:"gender" validate:"required,oneof=Male Female Other"`
	Phone       string `json:"phone" validate:"required,len=10,numeric"`
	DateOfBirth string `json:"dateOfBirth" validate:"omitempty,datetime=2006-01-02"`
	Age         string `json:"age" validate:"omitempty,numeric"`
	Address     string `json:"address" validate:"omitempty,max=1000"`
}

type SearchPatientRequest struct {
	Phone string `json:"phone" validate:"required,len=10,numeric"`
}

type ListPatientsRequest struct {
	Tab    string `json:"tab" validate:"omitempty,oneof=open closed"`
	Search string `json:"search"`
	From   string `json:"from" validate:"omitempty,datetime=2006-01-02"`
	To     string `json:"to" validate:"omitempty,datetime=2006-01-02"`
}

type PatientResponse struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Gender           string    `json:"gender"`
	Phone            string    `json:"phone"`
	DateOfBirth      string    `json:"dateOfBirth,omitempty"`
	Age              string    `json:"age,omitempty"`
	Address          string    `json:"address,omitempty"`
	RegistrationDate time.Time `json:"registrationDate"`
	Status           string    `json:"status"`
	RegisteredBy     string    `json:"registeredBy"`
}
