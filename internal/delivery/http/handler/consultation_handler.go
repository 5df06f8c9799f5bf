package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"go-clinic-workflow/internal/delivery/dto"
	"go-clinic-workflow/internal/delivery/http/middleware"
	"go-clinic-workflow/internal/domain/entity"
	"go-clinic-workflow/internal/service"
	"go-clinic-workflow/internal/usecase"
	"go-clinic-workflow/pkg/response"
	"go-clinic-workflow/pkg/validator"

	"github.com/gorilla/mux"
)

type ConsultationHandler struct {
	consultationUsecase usecase.ConsultationUsecase
	validator           *validator.CustomValidator
}

func NewConsultationHandler(consultationUsecase usecase.ConsultationUsecase, validator *validator.CustomValidator) *ConsultationHandler {
	return &ConsultationHandler{
		consultationUsecase: consultationUsecase,
		validator:           validator,
	}
}

// SelectPatient opens a patient record for the consultation in progress
// and returns it together with the patient's consultation history.
func (h *ConsultationHandler) SelectPatient(w http.ResponseWriter, r *http.Request) {
	var req dto.SelectPatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	username, _ := middleware.GetUsernameFromContext(r.Context())

	result, err := h.consultationUsecase.SelectPatient(r.Context(), username, req.PatientID)
	if err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		default:
			response.InternalServerError(w, "Failed to select patient")
		}
		return
	}

	response.Success(w, http.StatusOK, "Patient selected", result)
}

func (h *ConsultationHandler) History(w http.ResponseWriter, r *http.Request) {
	patientID := mux.Vars(r)["id"]

	history, err := h.consultationUsecase.History(r.Context(), patientID)
	if err != nil {
		response.InternalServerError(w, "Failed to load consultation history")
		return
	}

	response.Success(w, http.StatusOK, "Consultation history retrieved", history)
}

func (h *ConsultationHandler) AddMedication(w http.ResponseWriter, r *http.Request) {
	var req dto.AddMedicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	username, _ := middleware.GetUsernameFromContext(r.Context())

	line, err := h.consultationUsecase.AddMedication(r.Context(), username, &req)
	if err != nil {
		switch err {
		case service.ErrIncompleteMedication:
			response.Error(w, http.StatusBadRequest, "Medication name, days, quantity and instruction are required", nil)
		default:
			response.InternalServerError(w, "Failed to add medication")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Medication added", line)
}

func (h *ConsultationHandler) RemoveMedication(w http.ResponseWriter, r *http.Request) {
	lineID, err := strconv.ParseInt(mux.Vars(r)["lineId"], 10, 64)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid medication line id", nil)
		return
	}

	username, _ := middleware.GetUsernameFromContext(r.Context())

	lines := h.consultationUsecase.RemoveMedication(r.Context(), username, lineID)
	response.Success(w, http.StatusOK, "Medication removed", lines)
}

func (h *ConsultationHandler) ListMedications(w http.ResponseWriter, r *http.Request) {
	username, _ := middleware.GetUsernameFromContext(r.Context())

	lines := h.consultationUsecase.Medications(r.Context(), username)
	response.Success(w, http.StatusOK, "Medications retrieved", lines)
}

// SuggestedQuantity proposes a dispense quantity from the dose slots and
// duration on the form. The client may ignore it.
func (h *ConsultationHandler) SuggestedQuantity(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	morning := parseDose(query.Get("morning"))
	afternoon := parseDose(query.Get("afternoon"))
	night := parseDose(query.Get("night"))
	days := parseDose(query.Get("days"))

	qty, ok := entity.SuggestedQuantity(morning, afternoon, night, days)
	if !ok {
		response.Error(w, http.StatusBadRequest, "Dosage and days must be positive to suggest a quantity", nil)
		return
	}

	response.Success(w, http.StatusOK, "Suggested quantity calculated", dto.SuggestedQuantityResponse{Qty: qty})
}

func (h *ConsultationHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req dto.SubmitConsultationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	username, _ := middleware.GetUsernameFromContext(r.Context())

	consultation, err := h.consultationUsecase.Submit(r.Context(), username, &req)
	if err != nil {
		switch err {
		case usecase.ErrNoPatientSelected:
			response.Error(w, http.StatusBadRequest, "Select a patient before submitting a consultation", nil)
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		default:
			response.InternalServerError(w, "Failed to save consultation")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Consultation saved", consultation)
}

func (h *ConsultationHandler) Document(w http.ResponseWriter, r *http.Request) {
	consultationID := mux.Vars(r)["id"]

	document, err := h.consultationUsecase.Document(r.Context(), consultationID)
	if err != nil {
		switch err {
		case usecase.ErrConsultationNotFound:
			response.NotFound(w, "Consultation not found")
		default:
			response.InternalServerError(w, "Failed to render prescription document")
		}
		return
	}

	response.Success(w, http.StatusOK, "Prescription document rendered", document)
}

func parseDose(v string) float64 {
	if v == "" {
		return 0
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0
	}
	return f
}
