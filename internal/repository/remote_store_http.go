package repository

import (
	"context"
	"fmt"

	"go-clinic-workflow/config"
	"go-clinic-workflow/internal/domain/entity"
	domainRepo "go-clinic-workflow/internal/domain/repository"

	"github.com/go-resty/resty/v2"
)

// documentsEnvelope matches the document store's response envelope.
type documentsEnvelope[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    []T    `json:"data"`
}

// httpRemoteStore talks to the central document store service. No retries:
// a failed call is absorbed by the caller per the offline-first policy, not
// repeated.
type httpRemoteStore struct {
	client *resty.Client
}

func NewHTTPRemoteStore(cfg config.RemoteStoreConfig) domainRepo.RemoteStore {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout)

	return &httpRemoteStore{client: client}
}

func (s *httpRemoteStore) GetAllPatients(ctx context.Context) ([]entity.Patient, error) {
	return getDocuments[entity.Patient](ctx, s.client, domainRepo.CollectionPatients, "", "")
}

func (s *httpRemoteStore) GetAllConsultations(ctx context.Context) ([]entity.Consultation, error) {
	return getDocuments[entity.Consultation](ctx, s.client, domainRepo.CollectionConsultations, "", "")
}

func (s *httpRemoteStore) GetPatientsWhere(ctx context.Context, field, value string) ([]entity.Patient, error) {
	return getDocuments[entity.Patient](ctx, s.client, domainRepo.CollectionPatients, field, value)
}

func (s *httpRemoteStore) GetConsultationsWhere(ctx context.Context, field, value string) ([]entity.Consultation, error) {
	return getDocuments[entity.Consultation](ctx, s.client, domainRepo.CollectionConsultations, field, value)
}

func (s *httpRemoteStore) GetUsersWhere(ctx context.Context, field, value string) ([]entity.User, error) {
	return getDocuments[entity.User](ctx, s.client, domainRepo.CollectionUsers, field, value)
}

func (s *httpRemoteStore) PutPatient(ctx context.Context, patient *entity.Patient) error {
	return putDocument(ctx, s.client, domainRepo.CollectionPatients, patient.ID, patient)
}

func (s *httpRemoteStore) PutConsultation(ctx context.Context, consultation *entity.Consultation) error {
	return putDocument(ctx, s.client, domainRepo.CollectionConsultations, consultation.ID, consultation)
}

func (s *httpRemoteStore) UpdatePatient(ctx context.Context, id string, fields map[string]any) error {
	resp, err := s.client.R().
		SetContext(ctx).
		SetPathParams(map[string]string{"kind": domainRepo.CollectionPatients, "id": id}).
		SetBody(fields).
		Patch("/kinds/{kind}/documents/{id}")
	if err != nil {
		return fmt.Errorf("remote store update %s/%s: %w", domainRepo.CollectionPatients, id, err)
	}
	if resp.IsError() {
		return fmt.Errorf("remote store update %s/%s: %s", domainRepo.CollectionPatients, id, resp.Status())
	}
	return nil
}

func getDocuments[T any](ctx context.Context, client *resty.Client, kind, field, value string) ([]T, error) {
	envelope := &documentsEnvelope[T]{}
	req := client.R().
		SetContext(ctx).
		SetPathParam("kind", kind).
		SetResult(envelope)
	if field != "" {
		req.SetQueryParams(map[string]string{"field": field, "value": value})
	}

	resp, err := req.Get("/kinds/{kind}/documents")
	if err != nil {
		return nil, fmt.Errorf("remote store get %s: %w", kind, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("remote store get %s: %s", kind, resp.Status())
	}
	return envelope.Data, nil
}

func putDocument(ctx context.Context, client *resty.Client, kind, id string, document any) error {
	resp, err := client.R().
		SetContext(ctx).
		SetPathParams(map[string]string{"kind": kind, "id": id}).
		SetBody(document).
		Put("/kinds/{kind}/documents/{id}")
	if err != nil {
		return fmt.Errorf("remote store put %s/%s: %w", kind, id, err)
	}
	if resp.IsError() {
		return fmt.Errorf("remote store put %s/%s: %s", kind, id, resp.Status())
	}
	return nil
}
