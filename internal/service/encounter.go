package service

import (
	"context"
	"errors"

	"go-clinic-workflow/internal/domain/entity"
	"go-clinic-workflow/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

// ErrPatientNotFound is returned when a status transition targets a
// patient id that is not in the local cache.
var ErrPatientNotFound = errors.New("patient not found")

// EncounterService drives the patient status transitions: open at
// registration, closed by a completed consultation, reopened by a new
// encounter. The local cache is updated synchronously; the remote store is
// mirrored as a detached best-effort task and a failed mirror is left for
// the next reconciling read to paper over.
type EncounterService struct {
	local  repository.LocalStore
	remote repository.RemoteStore
	mirror *Mirror
	log    *logrus.Logger
}

func NewEncounterService(local repository.LocalStore, remote repository.RemoteStore, mirror *Mirror, log *logrus.Logger) *EncounterService {
	return &EncounterService{
		local:  local,
		remote: remote,
		mirror: mirror,
		log:    log,
	}
}

// Reopen starts a new encounter: the patient goes back to open no matter
// the current status, keeping their id and consultation history.
func (s *EncounterService) Reopen(ctx context.Context, patientID string) (*entity.Patient, error) {
	return s.transition(ctx, patientID, entity.PatientStatusOpen)
}

// Close ends the patient's current encounter after a consultation.
func (s *EncounterService) Close(ctx context.Context, patientID string) (*entity.Patient, error) {
	return s.transition(ctx, patientID, entity.PatientStatusClosed)
}

func (s *EncounterService) transition(ctx context.Context, patientID string, status entity.PatientStatus) (*entity.Patient, error) {
	var updated *entity.Patient

	err := s.local.MutatePatients(ctx, func(patients []entity.Patient) ([]entity.Patient, error) {
		for i := range patients {
			if patients[i].ID == patientID {
				patients[i].Status = status
				p := patients[i]
				updated = &p
				return patients, nil
			}
		}

		// Known only to the remote store (registered on another device):
		// pull the record into the local cache with its new status, so the
		// transition is visible here without waiting on remote propagation.
		pulled, err := s.fetchRemote(ctx, patientID)
		if err != nil {
			return nil, err
		}
		pulled.Status = status
		updated = pulled
		return append(patients, *pulled), nil
	})
	if err != nil {
		return nil, err
	}

	s.mirror.Do("patient status", func(ctx context.Context) error {
		return s.remote.UpdatePatient(ctx, patientID, map[string]any{"status": string(status)})
	})

	s.log.Infof("Patient %s moved to %s", patientID, status)

	return updated, nil
}

func (s *EncounterService) fetchRemote(ctx context.Context, patientID string) (*entity.Patient, error) {
	patients, err := s.remote.GetPatientsWhere(ctx, "id", patientID)
	if err != nil {
		s.log.Warnf("Remote lookup for patient %s failed: %+v", patientID, err)
		return nil, ErrPatientNotFound
	}
	if len(patients) == 0 {
		return nil, ErrPatientNotFound
	}
	p := patients[0]
	return &p, nil
}
