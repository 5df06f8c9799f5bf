package entity

import (
	"fmt"
	"time"
)

// PatientStatus is the encounter state of a patient. A patient is either
// inside an open episode of care or has had it closed by a consultation.
type PatientStatus string

const (
	PatientStatusOpen   PatientStatus = "open"
	PatientStatusClosed PatientStatus = "closed"
)

// Patient is a registered clinic patient. Records are stored as JSON
// documents in both the local cache and the remote document store; the
// field names below are the document schema shared by both.
//
// Status is the only field mutated after registration. Age and DateOfBirth
// are independently editable and are not reconciled against each other.
type Patient struct {
	ID               string        `json:"id"`
	Name             string        `json:"name"`
	Gender           string        `json:"gender"`
	Phone            string        `json:"phone"`
	DateOfBirth      string        `json:"dateOfBirth,omitempty"`
	Age              string        `json:"age,omitempty"`
	Address          string        `json:"address,omitempty"`
	RegistrationDate time.Time     `json:"registrationDate"`
	Status           PatientStatus `json:"status"`
	RegisteredBy     string        `json:"registeredBy"`
}

// IsClosed reports whether the patient's last encounter has been closed.
// Any status other than "closed" counts as open, so legacy records with a
// blank status land in the open partition.
func (p *Patient) IsClosed() bool {
	return p.Status == PatientStatusClosed
}

// Close marks the patient's current encounter as closed.
func (p *Patient) Close() {
	p.Status = PatientStatusClosed
}

// Reopen starts a new encounter for the patient, regardless of the
// current status. The patient keeps their id and consultation history.
func (p *Patient) Reopen() {
	p.Status = PatientStatusOpen
}

// AgeFromDOB derives a display age from a YYYY-MM-DD date of birth as a
// plain calendar-year difference.
func AgeFromDOB(dob string, now time.Time) (int, error) {
	birth, err := time.Parse("2006-01-02", dob)
	if err != nil {
		return 0, fmt.Errorf("parse date of birth: %w", err)
	}
	return now.Year() - birth.Year(), nil
}

// DOBFromAge derives a placeholder January 1st date of birth from an age.
func DOBFromAge(age int, now time.Time) string {
	return fmt.Sprintf("%04d-01-01", now.Year()-age)
}
