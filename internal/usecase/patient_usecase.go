package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"go-clinic-workflow/internal/converter"
	"go-clinic-workflow/internal/delivery/dto"
	"go-clinic-workflow/internal/delivery/http/middleware"
	"go-clinic-workflow/internal/domain/entity"
	"go-clinic-workflow/internal/domain/repository"
	"go-clinic-workflow/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var ErrPatientNotFound = errors.New("patient not found")

type PatientUsecase interface {
	Register(ctx context.Context, req *dto.RegisterPatientRequest) (*dto.PatientResponse, error)
	SearchByPhone(ctx context.Context, phone string) (*dto.PatientResponse, error)
	OpenNewEncounter(ctx context.Context, patientID string) (*dto.PatientResponse, error)
	List(ctx context.Context, req *dto.ListPatientsRequest) ([]dto.PatientResponse, error)
}

// patientUsecase covers the front-desk flow: register new patients, find
// returning ones by phone, and reopen encounters. Writes commit to the
// local cache first and mirror to the remote store best-effort; reads go
// through the reconciler so both stores contribute.
type patientUsecase struct {
	log        *logrus.Logger
	local      repository.LocalStore
	remote     repository.RemoteStore
	reconciler *service.Reconciler
	encounters *service.EncounterService
	mirror     *service.Mirror
}

func NewPatientUsecase(
	log *logrus.Logger,
	local repository.LocalStore,
	remote repository.RemoteStore,
	reconciler *service.Reconciler,
	encounters *service.EncounterService,
	mirror *service.Mirror,
) PatientUsecase {
	return &patientUsecase{
		log:        log,
		local:      local,
		remote:     remote,
		reconciler: reconciler,
		encounters: encounters,
		mirror:     mirror,
	}
}

func (u *patientUsecase) Register(ctx context.Context, req *dto.RegisterPatientRequest) (*dto.PatientResponse, error) {
	registeredBy, _ := middleware.GetUsernameFromContext(ctx)
	if registeredBy == "" {
		registeredBy = "unknown"
	}

	patient := entity.Patient{
		ID:               uuid.NewString(),
		Name:             req.Name,
		Gender:           req.Gender,
		Phone:            req.Phone,
		DateOfBirth:      req.DateOfBirth,
		Age:              req.Age,
		Address:          req.Address,
		RegistrationDate: time.Now().UTC(),
		Status:           entity.PatientStatusOpen,
		RegisteredBy:     registeredBy,
	}

	err := u.local.MutatePatients(ctx, func(patients []entity.Patient) ([]entity.Patient, error) {
		for i := range patients {
			if patients[i].ID == patient.ID {
				patients[i] = patient
				return patients, nil
			}
		}
		return append(patients, patient), nil
	})
	if err != nil {
		u.log.Warnf("Failed to save patient locally: %+v", err)
		return nil, err
	}

	u.mirror.Do("patient registration", func(ctx context.Context) error {
		return u.remote.PutPatient(ctx, &patient)
	})

	u.log.Infof("Registered patient %s (%s)", patient.ID, patient.Phone)

	return converter.PatientToResponse(&patient), nil
}

// SearchByPhone finds a returning patient by exact phone match over the
// merged view. Phone is a lookup convenience, not a unique key: when
// several patients share a number the newest registration wins.
func (u *patientUsecase) SearchByPhone(ctx context.Context, phone string) (*dto.PatientResponse, error) {
	matches, err := u.reconciler.PatientsByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, ErrPatientNotFound
	}
	return converter.PatientToResponse(&matches[0]), nil
}

// OpenNewEncounter moves the patient back to open regardless of current
// status. No new record is created and past consultations stay attached.
func (u *patientUsecase) OpenNewEncounter(ctx context.Context, patientID string) (*dto.PatientResponse, error) {
	patient, err := u.encounters.Reopen(ctx, patientID)
	if err != nil {
		if errors.Is(err, service.ErrPatientNotFound) {
			return nil, ErrPatientNotFound
		}
		return nil, err
	}
	return converter.PatientToResponse(patient), nil
}

// List returns the merged patient view partitioned by encounter status,
// optionally narrowed by a name/phone search and a registration date
// range. A patient is in exactly one partition at any time.
func (u *patientUsecase) List(ctx context.Context, req *dto.ListPatientsRequest) ([]dto.PatientResponse, error) {
	merged, err := u.reconciler.MergedPatients(ctx)
	if err != nil {
		return nil, err
	}

	wantClosed := req.Tab == string(entity.PatientStatusClosed)
	search := strings.ToLower(strings.TrimSpace(req.Search))
	from, to, err := parseDateRange(req.From, req.To)
	if err != nil {
		return nil, err
	}

	filtered := make([]entity.Patient, 0, len(merged))
	for _, p := range merged {
		if p.IsClosed() != wantClosed {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(p.Phone, search) {
			continue
		}
		if !inDateRange(p.RegistrationDate, from, to) {
			continue
		}
		filtered = append(filtered, p)
	}

	return converter.PatientsToResponses(filtered), nil
}

func parseDateRange(fromStr, toStr string) (from, to time.Time, err error) {
	if fromStr != "" {
		from, err = time.Parse("2006-01-02", fromStr)
		if err != nil {
			return
		}
	}
	if toStr != "" {
		to, err = time.Parse("2006-01-02", toStr)
		if err != nil {
			return
		}
		// Inclusive upper bound on the whole day.
		to = to.AddDate(0, 0, 1)
	}
	return
}

func inDateRange(t, from, to time.Time) bool {
	if !from.IsZero() && t.Before(from) {
		return false
	}
	if !to.IsZero() && !t.Before(to) {
		return false
	}
	return true
}
