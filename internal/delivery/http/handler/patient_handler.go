package handler

import (
	"encoding/json"
	"net/http"

	"go-clinic-workflow/internal/delivery/dto"
	"go-clinic-workflow/internal/usecase"
	"go-clinic-workflow/pkg/response"
	"go-clinic-workflow/pkg/validator"

	"github.com/gorilla/mux"
)

type PatientHandler struct {
	patientUsecase usecase.PatientUsecase
	validator      *validator.CustomValidator
}

func NewPatientHandler(patientUsecase usecase.PatientUsecase, validator *validator.CustomValidator) *PatientHandler {
	return &PatientHandler{
		patientUsecase: patientUsecase,
		validator:      validator,
	}
}

func (h *PatientHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterPatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	patient, err := h.patientUsecase.Register(r.Context(), &req)
	if err != nil {
		response.InternalServerError(w, "Failed to register patient")
		return
	}

	response.Success(w, http.StatusCreated, "Patient registered successfully", patient)
}

func (h *PatientHandler) SearchByPhone(w http.ResponseWriter, r *http.Request) {
	req := dto.SearchPatientRequest{Phone: r.URL.Query().Get("phone")}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	patient, err := h.patientUsecase.SearchByPhone(r.Context(), req.Phone)
	if err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "No patient found with this phone number")
		default:
			response.InternalServerError(w, "Failed to search patient")
		}
		return
	}

	response.Success(w, http.StatusOK, "Patient found", patient)
}

func (h *PatientHandler) OpenNewEncounter(w http.ResponseWriter, r *http.Request) {
	patientID := mux.Vars(r)["id"]

	patient, err := h.patientUsecase.OpenNewEncounter(r.Context(), patientID)
	if err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		default:
			response.InternalServerError(w, "Failed to open new encounter")
		}
		return
	}

	response.Success(w, http.StatusOK, "New encounter opened", patient)
}

func (h *PatientHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := dto.ListPatientsRequest{
		Tab:    query.Get("tab"),
		Search: query.Get("search"),
		From:   query.Get("from"),
		To:     query.Get("to"),
	}
	if req.Tab == "" {
		req.Tab = "open"
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	patients, err := h.patientUsecase.List(r.Context(), &req)
	if err != nil {
		response.InternalServerError(w, "Failed to list patients")
		return
	}

	response.Success(w, http.StatusOK, "Patients retrieved", patients)
}
