package repository

import (
	"context"

	"go-clinic-workflow/internal/domain/entity"
)

// Collection names shared by the local cache and the remote document store.
const (
	CollectionPatients      = "patients"
	CollectionConsultations = "consultations"
	CollectionUsers         = "users"
)

// LocalStore is the key-value cache on the clinic device. Reads and writes
// are synchronous and operate on whole collections: read all, mutate in
// memory, write all back. A missing collection reads as empty.
//
// The store serializes access per collection, so a Mutate callback sees a
// consistent snapshot and its write cannot interleave with another
// mutation of the same collection.
type LocalStore interface {
	ReadPatients(ctx context.Context) ([]entity.Patient, error)
	WritePatients(ctx context.Context, patients []entity.Patient) error
	MutatePatients(ctx context.Context, fn func(patients []entity.Patient) ([]entity.Patient, error)) error

	ReadConsultations(ctx context.Context) ([]entity.Consultation, error)
	WriteConsultations(ctx context.Context, consultations []entity.Consultation) error
	MutateConsultations(ctx context.Context, fn func(consultations []entity.Consultation) ([]entity.Consultation, error)) error
}
