package repository

import (
	"context"

	"go-clinic-workflow/internal/domain/entity"
)

// RemoteStore is the central document collection service reachable over the
// network. It may be unavailable at any time; callers treat every method as
// best-effort and degrade to the local cache on error. Put is an idempotent
// upsert; UpdatePatient merges only the given fields into the stored
// document.
type RemoteStore interface {
	GetAllPatients(ctx context.Context) ([]entity.Patient, error)
	GetAllConsultations(ctx context.Context) ([]entity.Consultation, error)

	GetPatientsWhere(ctx context.Context, field, value string) ([]entity.Patient, error)
	GetConsultationsWhere(ctx context.Context, field, value string) ([]entity.Consultation, error)
	GetUsersWhere(ctx context.Context, field, value string) ([]entity.User, error)

	PutPatient(ctx context.Context, patient *entity.Patient) error
	PutConsultation(ctx context.Context, consultation *entity.Consultation) error
	UpdatePatient(ctx context.Context, id string, fields map[string]any) error
}
