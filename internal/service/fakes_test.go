package service

import (
	"context"
	"errors"
	"sync"

	"go-clinic-workflow/internal/domain/entity"
)

// fakeLocalStore is an in-memory LocalStore for service tests.
type fakeLocalStore struct {
	mu            sync.Mutex
	patients      []entity.Patient
	consultations []entity.Consultation
	failReads     bool
}

func (s *fakeLocalStore) ReadPatients(ctx context.Context) ([]entity.Patient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failReads {
		return nil, errors.New("local store unavailable")
	}
	out := make([]entity.Patient, len(s.patients))
	copy(out, s.patients)
	return out, nil
}

func (s *fakeLocalStore) WritePatients(ctx context.Context, patients []entity.Patient) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.patients = patients
	return nil
}

func (s *fakeLocalStore) MutatePatients(ctx context.Context, fn func([]entity.Patient) ([]entity.Patient, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	mutated, err := fn(s.patients)
	if err != nil {
		return err
	}
	s.patients = mutated
	return nil
}

func (s *fakeLocalStore) ReadConsultations(ctx context.Context) ([]entity.Consultation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failReads {
		return nil, errors.New("local store unavailable")
	}
	out := make([]entity.Consultation, len(s.consultations))
	copy(out, s.consultations)
	return out, nil
}

func (s *fakeLocalStore) WriteConsultations(ctx context.Context, consultations []entity.Consultation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.consultations = consultations
	return nil
}

func (s *fakeLocalStore) MutateConsultations(ctx context.Context, fn func([]entity.Consultation) ([]entity.Consultation, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	mutated, err := fn(s.consultations)
	if err != nil {
		return err
	}
	s.consultations = mutated
	return nil
}

// fakeRemoteStore is an in-memory RemoteStore for service tests. Setting
// down makes every call fail, simulating an unreachable document store.
type fakeRemoteStore struct {
	mu            sync.Mutex
	patients      map[string]entity.Patient
	consultations map[string]entity.Consultation
	users         []entity.User
	down          bool

	patchedFields map[string]map[string]any
}

func newFakeRemoteStore() *fakeRemoteStore {
	return &fakeRemoteStore{
		patients:      make(map[string]entity.Patient),
		consultations: make(map[string]entity.Consultation),
		patchedFields: make(map[string]map[string]any),
	}
}

var errRemoteDown = errors.New("remote store unreachable")

func (s *fakeRemoteStore) GetAllPatients(ctx context.Context) ([]entity.Patient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.down {
		return nil, errRemoteDown
	}
	out := make([]entity.Patient, 0, len(s.patients))
	for _, p := range s.patients {
		out = append(out, p)
	}
	return out, nil
}

func (s *fakeRemoteStore) GetAllConsultations(ctx context.Context) ([]entity.Consultation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.down {
		return nil, errRemoteDown
	}
	out := make([]entity.Consultation, 0, len(s.consultations))
	for _, c := range s.consultations {
		out = append(out, c)
	}
	return out, nil
}

func (s *fakeRemoteStore) GetPatientsWhere(ctx context.Context, field, value string) ([]entity.Patient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.down {
		return nil, errRemoteDown
	}
	var out []entity.Patient
	for _, p := range s.patients {
		if (field == "id" && p.ID == value) || (field == "phone" && p.Phone == value) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *fakeRemoteStore) GetConsultationsWhere(ctx context.Context, field, value string) ([]entity.Consultation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.down {
		return nil, errRemoteDown
	}
	var out []entity.Consultation
	for _, c := range s.consultations {
		if (field == "id" && c.ID == value) || (field == "patientId" && c.PatientID == value) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *fakeRemoteStore) GetUsersWhere(ctx context.Context, field, value string) ([]entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.down {
		return nil, errRemoteDown
	}
	var out []entity.User
	for _, u := range s.users {
		if field == "username" && u.Username == value {
			out = append(out, u)
		}
	}
	return out, nil
}

func (s *fakeRemoteStore) PutPatient(ctx context.Context, patient *entity.Patient) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.down {
		return errRemoteDown
	}
	s.patients[patient.ID] = *patient
	return nil
}

func (s *fakeRemoteStore) PutConsultation(ctx context.Context, consultation *entity.Consultation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.down {
		return errRemoteDown
	}
	s.consultations[consultation.ID] = *consultation
	return nil
}

func (s *fakeRemoteStore) UpdatePatient(ctx context.Context, id string, fields map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.down {
		return errRemoteDown
	}
	s.patchedFields[id] = fields
	if p, ok := s.patients[id]; ok {
		if status, ok := fields["status"].(string); ok {
			p.Status = entity.PatientStatus(status)
			s.patients[id] = p
		}
	}
	return nil
}
