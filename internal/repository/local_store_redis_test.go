package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-clinic-workflow/internal/domain/entity"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLocalStore(t *testing.T) (*miniredis.Miniredis, *redisLocalStore) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return mr, &redisLocalStore{client: client}
}

func TestReadPatientsUninitializedCollection(t *testing.T) {
	_, store := newTestLocalStore(t)

	patients, err := store.ReadPatients(context.Background())
	require.NoError(t, err)
	assert.Empty(t, patients)
}

func TestPatientsRoundTrip(t *testing.T) {
	_, store := newTestLocalStore(t)
	ctx := context.Background()

	patients := []entity.Patient{
		{ID: "p1", Name: "Asha", Phone: "0123456789", RegistrationDate: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), Status: entity.PatientStatusOpen},
		{ID: "p2", Name: "Binu", Phone: "0999999999", RegistrationDate: time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC), Status: entity.PatientStatusClosed},
	}

	require.NoError(t, store.WritePatients(ctx, patients))

	read, err := store.ReadPatients(ctx)
	require.NoError(t, err)
	assert.Equal(t, patients, read)
}

func TestWritePatientsReplacesWholeCollection(t *testing.T) {
	_, store := newTestLocalStore(t)
	ctx := context.Background()

	require.NoError(t, store.WritePatients(ctx, []entity.Patient{{ID: "p1"}, {ID: "p2"}}))
	require.NoError(t, store.WritePatients(ctx, []entity.Patient{{ID: "p3"}}))

	read, err := store.ReadPatients(ctx)
	require.NoError(t, err)
	require.Len(t, read, 1)
	assert.Equal(t, "p3", read[0].ID)
}

func TestMutatePatients(t *testing.T) {
	_, store := newTestLocalStore(t)
	ctx := context.Background()

	require.NoError(t, store.WritePatients(ctx, []entity.Patient{{ID: "p1", Status: entity.PatientStatusOpen}}))

	err := store.MutatePatients(ctx, func(patients []entity.Patient) ([]entity.Patient, error) {
		for i := range patients {
			if patients[i].ID == "p1" {
				patients[i].Status = entity.PatientStatusClosed
			}
		}
		return append(patients, entity.Patient{ID: "p2"}), nil
	})
	require.NoError(t, err)

	read, err := store.ReadPatients(ctx)
	require.NoError(t, err)
	require.Len(t, read, 2)
	assert.Equal(t, entity.PatientStatusClosed, read[0].Status)
	assert.Equal(t, "p2", read[1].ID)
}

func TestMutatePatientsCallbackErrorLeavesCollectionUntouched(t *testing.T) {
	_, store := newTestLocalStore(t)
	ctx := context.Background()

	require.NoError(t, store.WritePatients(ctx, []entity.Patient{{ID: "p1"}}))

	boom := errors.New("boom")
	err := store.MutatePatients(ctx, func(patients []entity.Patient) ([]entity.Patient, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)

	read, err := store.ReadPatients(ctx)
	require.NoError(t, err)
	require.Len(t, read, 1)
	assert.Equal(t, "p1", read[0].ID)
}

func TestConsultationsRoundTrip(t *testing.T) {
	_, store := newTestLocalStore(t)
	ctx := context.Background()

	consultations := []entity.Consultation{
		{ID: "c1", PatientID: "p1", Diagnosis: "Viral fever", Medication: "[]", ConsultationDate: time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC), DoctorName: "dr.rao"},
	}

	require.NoError(t, store.WriteConsultations(ctx, consultations))

	read, err := store.ReadConsultations(ctx)
	require.NoError(t, err)
	assert.Equal(t, consultations, read)
}

func TestReadPatientsCorruptPayload(t *testing.T) {
	mr, store := newTestLocalStore(t)
	mr.Set(patientsKey, "{not json")

	_, err := store.ReadPatients(context.Background())
	assert.Error(t, err)
}
