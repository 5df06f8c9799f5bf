package usecase

import (
	"context"
	"errors"
	"time"

	"go-clinic-workflow/internal/converter"
	"go-clinic-workflow/internal/delivery/dto"
	"go-clinic-workflow/internal/domain/entity"
	"go-clinic-workflow/internal/domain/repository"
	"go-clinic-workflow/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrNoPatientSelected    = errors.New("no patient selected")
	ErrConsultationNotFound = errors.New("consultation not found")
)

type ConsultationUsecase interface {
	SelectPatient(ctx context.Context, username, patientID string) (*dto.SelectPatientResponse, error)
	History(ctx context.Context, patientID string) ([]dto.ConsultationResponse, error)
	AddMedication(ctx context.Context, username string, req *dto.AddMedicationRequest) (*dto.MedicationResponse, error)
	RemoveMedication(ctx context.Context, username string, lineID int64) []dto.MedicationResponse
	Medications(ctx context.Context, username string) []dto.MedicationResponse
	Submit(ctx context.Context, username string, req *dto.SubmitConsultationRequest) (*dto.ConsultationResponse, error)
	Document(ctx context.Context, consultationID string) (*dto.DocumentResponse, error)
}

// consultationUsecase is the care professional's flow: open a patient
// record, compose medication lines, and submit the consultation. Submit
// commits locally (the durability floor), mirrors to the remote store
// best-effort, and closes the patient's encounter; a failed remote mirror
// leaves a documented inconsistency window until the next reconciling
// read.
type consultationUsecase struct {
	log        *logrus.Logger
	local      repository.LocalStore
	remote     repository.RemoteStore
	reconciler *service.Reconciler
	encounters *service.EncounterService
	sessions   *service.SessionManager
	mirror     *service.Mirror
	renderer   service.PrescriptionRenderer
}

func NewConsultationUsecase(
	log *logrus.Logger,
	local repository.LocalStore,
	remote repository.RemoteStore,
	reconciler *service.Reconciler,
	encounters *service.EncounterService,
	sessions *service.SessionManager,
	mirror *service.Mirror,
	renderer service.PrescriptionRenderer,
) ConsultationUsecase {
	return &consultationUsecase{
		log:        log,
		local:      local,
		remote:     remote,
		reconciler: reconciler,
		encounters: encounters,
		sessions:   sessions,
		mirror:     mirror,
		renderer:   renderer,
	}
}

// SelectPatient opens a patient record for consultation. Selecting clears
// any medication lines composed for a previously selected patient.
func (u *consultationUsecase) SelectPatient(ctx context.Context, username, patientID string) (*dto.SelectPatientResponse, error) {
	patient, err := u.findPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}

	u.sessions.SelectPatient(username, patientID)

	history, err := u.reconciler.PatientConsultations(ctx, patientID)
	if err != nil {
		return nil, err
	}

	return &dto.SelectPatientResponse{
		Patient:    *converter.PatientToResponse(patient),
		CaseClosed: patient.IsClosed(),
		History:    converter.ConsultationsToResponses(history),
	}, nil
}

// History returns the merged consultation history for a patient, newest
// first.
func (u *consultationUsecase) History(ctx context.Context, patientID string) ([]dto.ConsultationResponse, error) {
	history, err := u.reconciler.PatientConsultations(ctx, patientID)
	if err != nil {
		return nil, err
	}
	return converter.ConsultationsToResponses(history), nil
}

func (u *consultationUsecase) AddMedication(ctx context.Context, username string, req *dto.AddMedicationRequest) (*dto.MedicationResponse, error) {
	line, err := u.sessions.AddMedication(username, entity.MedicationInput{
		Name:      req.Name,
		Unit:      req.Unit,
		Morning:   req.Morning,
		Afternoon: req.Afternoon,
		Night:     req.Night,
		Days:      req.Days,
		Qty:       req.Qty,
		Info:      req.Info,
		Remarks:   req.Remarks,
	})
	if err != nil {
		return nil, err
	}

	response := converter.MedicationToResponse(line)
	return &response, nil
}

func (u *consultationUsecase) RemoveMedication(ctx context.Context, username string, lineID int64) []dto.MedicationResponse {
	u.sessions.RemoveMedication(username, lineID)
	return converter.MedicationsToResponses(u.sessions.Medications(username))
}

func (u *consultationUsecase) Medications(ctx context.Context, username string) []dto.MedicationResponse {
	return converter.MedicationsToResponses(u.sessions.Medications(username))
}

// Submit assembles and persists the consultation for the selected patient
// and closes their encounter.
func (u *consultationUsecase) Submit(ctx context.Context, username string, req *dto.SubmitConsultationRequest) (*dto.ConsultationResponse, error) {
	patientID, ok := u.sessions.SelectedPatient(username)
	if !ok {
		return nil, ErrNoPatientSelected
	}

	patient, err := u.findPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}

	medication, err := entity.EncodeMedications(u.sessions.Medications(username))
	if err != nil {
		u.log.Warnf("Failed to encode medication lines: %+v", err)
		return nil, err
	}

	consultation := entity.Consultation{
		ID:               uuid.NewString(),
		PatientID:        patientID,
		PatientName:      patient.Name,
		ChiefComplaints:  req.ChiefComplaints,
		Investigation:    req.Investigation,
		History:          req.History,
		Diagnosis:        req.Diagnosis,
		Medication:       medication,
		ConsultationDate: time.Now().UTC(),
		DoctorName:       username,
	}

	// Local commit is the durability floor; it alone decides success.
	err = u.local.MutateConsultations(ctx, func(consultations []entity.Consultation) ([]entity.Consultation, error) {
		return append(consultations, consultation), nil
	})
	if err != nil {
		u.log.Warnf("Failed to save consultation locally: %+v", err)
		return nil, err
	}

	u.mirror.Do("consultation", func(ctx context.Context) error {
		return u.remote.PutConsultation(ctx, &consultation)
	})

	if _, err := u.encounters.Close(ctx, patientID); err != nil {
		u.log.Warnf("Failed to close encounter for patient %s: %+v", patientID, err)
		return nil, err
	}

	u.sessions.ClearConsultation(username)

	u.log.Infof("Consultation %s saved for patient %s", consultation.ID, patientID)

	return converter.ConsultationToResponse(&consultation), nil
}

// Document renders the prescription document for a saved consultation,
// used right after submit and for reprints from the history list.
func (u *consultationUsecase) Document(ctx context.Context, consultationID string) (*dto.DocumentResponse, error) {
	consultation, err := u.findConsultation(ctx, consultationID)
	if err != nil {
		return nil, err
	}

	// The patient snapshot enriches the document but is optional; the
	// consultation already carries the denormalized name.
	var patient *entity.Patient
	if p, err := u.findPatient(ctx, consultation.PatientID); err == nil {
		patient = p
	}

	document, err := u.renderer.Render(consultation, patient)
	if err != nil {
		return nil, err
	}

	return &dto.DocumentResponse{
		ConsultationID: consultationID,
		Document:       document,
	}, nil
}

// findPatient looks the patient up locally first and falls back to the
// remote store, mirroring the offline-first read order.
func (u *consultationUsecase) findPatient(ctx context.Context, patientID string) (*entity.Patient, error) {
	local, err := u.local.ReadPatients(ctx)
	if err != nil {
		return nil, err
	}
	for i := range local {
		if local[i].ID == patientID {
			return &local[i], nil
		}
	}

	remote, err := u.remote.GetPatientsWhere(ctx, "id", patientID)
	if err != nil {
		u.log.Warnf("Remote patient lookup failed: %+v", err)
		return nil, ErrPatientNotFound
	}
	if len(remote) == 0 {
		return nil, ErrPatientNotFound
	}
	return &remote[0], nil
}

func (u *consultationUsecase) findConsultation(ctx context.Context, consultationID string) (*entity.Consultation, error) {
	local, err := u.local.ReadConsultations(ctx)
	if err != nil {
		return nil, err
	}
	for i := range local {
		if local[i].ID == consultationID {
			return &local[i], nil
		}
	}

	remote, err := u.remote.GetConsultationsWhere(ctx, "id", consultationID)
	if err != nil {
		u.log.Warnf("Remote consultation lookup failed: %+v", err)
		return nil, ErrConsultationNotFound
	}
	if len(remote) == 0 {
		return nil, ErrConsultationNotFound
	}
	return &remote[0], nil
}
