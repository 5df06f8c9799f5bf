package docstore

import (
	"encoding/json"
	"net/http"

	"go-clinic-workflow/pkg/response"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Handler exposes the document store over HTTP. Documents go in and out as
// raw payloads; the envelope rows (kind, doc_id, updated_at) stay
// server-side.
type Handler struct {
	db        *gorm.DB
	documents *documentRepository
	log       *logrus.Logger
}

func NewHandler(db *gorm.DB, log *logrus.Logger) *Handler {
	return &Handler{
		db:        db,
		documents: NewDocumentRepository(),
		log:       log,
	}
}

// List returns all documents of a kind, optionally filtered by equality on
// one payload field (?field=phone&value=0123456789).
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	kind := mux.Vars(r)["kind"]
	query := r.URL.Query()

	var (
		documents []Document
		err       error
	)
	if field := query.Get("field"); field != "" {
		documents, err = h.documents.FindWhere(h.db, kind, field, query.Get("value"))
	} else {
		documents, err = h.documents.FindAll(h.db, kind)
	}
	if err != nil {
		h.log.Warnf("Failed to list documents of kind %s: %+v", kind, err)
		response.InternalServerError(w, "Failed to list documents")
		return
	}

	payloads := make([]JSON, 0, len(documents))
	for _, document := range documents {
		payloads = append(payloads, document.Data)
	}

	response.Success(w, http.StatusOK, "Documents retrieved", payloads)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	document, err := h.documents.FindByID(h.db, vars["kind"], vars["id"])
	if err != nil {
		switch err {
		case ErrDocumentNotFound:
			response.NotFound(w, "Document not found")
		default:
			h.log.Warnf("Failed to get document %s/%s: %+v", vars["kind"], vars["id"], err)
			response.InternalServerError(w, "Failed to get document")
		}
		return
	}

	response.Success(w, http.StatusOK, "Document retrieved", document.Data)
}

// Put stores the payload under (kind, id), replacing any previous version
// wholesale.
func (h *Handler) Put(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var payload JSON
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	document := &Document{
		Kind:  vars["kind"],
		DocID: vars["id"],
		Data:  payload,
	}
	if err := h.documents.Upsert(h.db, document); err != nil {
		h.log.Warnf("Failed to put document %s/%s: %+v", vars["kind"], vars["id"], err)
		response.InternalServerError(w, "Failed to save document")
		return
	}

	response.Success(w, http.StatusOK, "Document saved", document.Data)
}

// Patch merges the request fields over the stored payload, leaving
// untouched fields as they were.
func (h *Handler) Patch(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var fields JSON
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	document, err := h.documents.Patch(h.db, vars["kind"], vars["id"], fields)
	if err != nil {
		switch err {
		case ErrDocumentNotFound:
			response.NotFound(w, "Document not found")
		default:
			h.log.Warnf("Failed to patch document %s/%s: %+v", vars["kind"], vars["id"], err)
			response.InternalServerError(w, "Failed to update document")
		}
		return
	}

	response.Success(w, http.StatusOK, "Document updated", document.Data)
}
