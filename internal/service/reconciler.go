package service

import (
	"context"
	"sort"
	"time"

	"go-clinic-workflow/internal/domain/entity"
	"go-clinic-workflow/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

// Reconciler merges the local cache and the remote document store into one
// de-duplicated view per entity kind. The merge is offline-first: on an id
// collision the local record wins unconditionally, so a change made on this
// device is visible even if its remote mirror never landed. Remote
// unavailability degrades silently to a local-only view.
//
// Every call merges fresh; no merge state is kept between calls.
type Reconciler struct {
	local  repository.LocalStore
	remote repository.RemoteStore
	log    *logrus.Logger
}

func NewReconciler(local repository.LocalStore, remote repository.RemoteStore, log *logrus.Logger) *Reconciler {
	return &Reconciler{
		local:  local,
		remote: remote,
		log:    log,
	}
}

// MergedPatients returns all patients from both stores, newest
// registration first.
func (r *Reconciler) MergedPatients(ctx context.Context) ([]entity.Patient, error) {
	remote, err := r.remote.GetAllPatients(ctx)
	if err != nil {
		r.log.Warnf("Remote patients fetch failed, serving local only: %+v", err)
		remote = nil
	}

	local, err := r.local.ReadPatients(ctx)
	if err != nil {
		return nil, err
	}

	merged := mergeRecords(remote, local,
		func(p entity.Patient) string { return p.ID },
		func(p entity.Patient) time.Time { return p.RegistrationDate },
	)
	return merged, nil
}

// MergedConsultations returns all consultations from both stores, newest
// first.
func (r *Reconciler) MergedConsultations(ctx context.Context) ([]entity.Consultation, error) {
	remote, err := r.remote.GetAllConsultations(ctx)
	if err != nil {
		r.log.Warnf("Remote consultations fetch failed, serving local only: %+v", err)
		remote = nil
	}

	local, err := r.local.ReadConsultations(ctx)
	if err != nil {
		return nil, err
	}

	merged := mergeRecords(remote, local,
		func(c entity.Consultation) string { return c.ID },
		func(c entity.Consultation) time.Time { return c.ConsultationDate },
	)
	return merged, nil
}

// PatientConsultations returns the merged consultation history for one
// patient, newest first.
func (r *Reconciler) PatientConsultations(ctx context.Context, patientID string) ([]entity.Consultation, error) {
	remote, err := r.remote.GetConsultationsWhere(ctx, "patientId", patientID)
	if err != nil {
		r.log.Warnf("Remote history fetch for patient %s failed, serving local only: %+v", patientID, err)
		remote = nil
	}

	local, err := r.local.ReadConsultations(ctx)
	if err != nil {
		return nil, err
	}
	var localForPatient []entity.Consultation
	for _, c := range local {
		if c.PatientID == patientID {
			localForPatient = append(localForPatient, c)
		}
	}

	merged := mergeRecords(remote, localForPatient,
		func(c entity.Consultation) string { return c.ID },
		func(c entity.Consultation) time.Time { return c.ConsultationDate },
	)
	return merged, nil
}

// PatientsByPhone returns merged patients whose phone matches exactly.
func (r *Reconciler) PatientsByPhone(ctx context.Context, phone string) ([]entity.Patient, error) {
	remote, err := r.remote.GetPatientsWhere(ctx, "phone", phone)
	if err != nil {
		r.log.Warnf("Remote phone search failed, serving local only: %+v", err)
		remote = nil
	}

	local, err := r.local.ReadPatients(ctx)
	if err != nil {
		return nil, err
	}
	var localMatches []entity.Patient
	for _, p := range local {
		if p.Phone == phone {
			localMatches = append(localMatches, p)
		}
	}

	merged := mergeRecords(remote, localMatches,
		func(p entity.Patient) string { return p.ID },
		func(p entity.Patient) time.Time { return p.RegistrationDate },
	)
	return merged, nil
}

// mergeRecords builds the merged view: remote records first, then local
// records overwriting on id collision. Output is ordered by timestamp
// descending; ties keep insertion order (remote arrivals before local-only
// records).
func mergeRecords[T any](remote, local []T, id func(T) string, timestamp func(T) time.Time) []T {
	byID := make(map[string]T, len(remote)+len(local))
	order := make([]string, 0, len(remote)+len(local))

	for _, record := range remote {
		key := id(record)
		if _, seen := byID[key]; !seen {
			order = append(order, key)
		}
		byID[key] = record
	}
	for _, record := range local {
		key := id(record)
		if _, seen := byID[key]; !seen {
			order = append(order, key)
		}
		byID[key] = record
	}

	merged := make([]T, 0, len(order))
	for _, key := range order {
		merged = append(merged, byID[key])
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return timestamp(merged[i]).After(timestamp(merged[j]))
	})

	return merged
}
