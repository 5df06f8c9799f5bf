package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"go-clinic-workflow/internal/domain/entity"
	domainRepo "go-clinic-workflow/internal/domain/repository"

	"github.com/redis/go-redis/v9"
)

// Redis keys for the persisted collections. Each collection is one JSON
// array value, replaced wholesale on write.
const (
	patientsKey      = "clinic:patients"
	consultationsKey = "clinic:consultations"
)

// redisLocalStore persists whole collections as single JSON values in the
// device-local Redis. One mutex per collection makes the single-mutator
// assumption explicit: a read-modify-write cycle through Mutate cannot
// interleave with another mutation of the same collection.
type redisLocalStore struct {
	client *redis.Client

	muPatients      sync.Mutex
	muConsultations sync.Mutex
}

func NewRedisLocalStore(client *redis.Client) domainRepo.LocalStore {
	return &redisLocalStore{client: client}
}

func (s *redisLocalStore) ReadPatients(ctx context.Context) ([]entity.Patient, error) {
	s.muPatients.Lock()
	defer s.muPatients.Unlock()
	return readCollection[entity.Patient](ctx, s.client, patientsKey)
}

func (s *redisLocalStore) WritePatients(ctx context.Context, patients []entity.Patient) error {
	s.muPatients.Lock()
	defer s.muPatients.Unlock()
	return writeCollection(ctx, s.client, patientsKey, patients)
}

func (s *redisLocalStore) MutatePatients(ctx context.Context, fn func([]entity.Patient) ([]entity.Patient, error)) error {
	s.muPatients.Lock()
	defer s.muPatients.Unlock()
	return mutateCollection(ctx, s.client, patientsKey, fn)
}

func (s *redisLocalStore) ReadConsultations(ctx context.Context) ([]entity.Consultation, error) {
	s.muConsultations.Lock()
	defer s.muConsultations.Unlock()
	return readCollection[entity.Consultation](ctx, s.client, consultationsKey)
}

func (s *redisLocalStore) WriteConsultations(ctx context.Context, consultations []entity.Consultation) error {
	s.muConsultations.Lock()
	defer s.muConsultations.Unlock()
	return writeCollection(ctx, s.client, consultationsKey, consultations)
}

func (s *redisLocalStore) MutateConsultations(ctx context.Context, fn func([]entity.Consultation) ([]entity.Consultation, error)) error {
	s.muConsultations.Lock()
	defer s.muConsultations.Unlock()
	return mutateCollection(ctx, s.client, consultationsKey, fn)
}

func readCollection[T any](ctx context.Context, client *redis.Client, key string) ([]T, error) {
	raw, err := client.Get(ctx, key).Result()
	if err == redis.Nil {
		// Uninitialized collection reads as empty.
		return []T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read local collection %s: %w", key, err)
	}

	var records []T
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return nil, fmt.Errorf("decode local collection %s: %w", key, err)
	}
	return records, nil
}

func writeCollection[T any](ctx context.Context, client *redis.Client, key string, records []T) error {
	if records == nil {
		records = []T{}
	}
	encoded, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode local collection %s: %w", key, err)
	}
	if err := client.Set(ctx, key, encoded, 0).Err(); err != nil {
		return fmt.Errorf("write local collection %s: %w", key, err)
	}
	return nil
}

func mutateCollection[T any](ctx context.Context, client *redis.Client, key string, fn func([]T) ([]T, error)) error {
	records, err := readCollection[T](ctx, client, key)
	if err != nil {
		return err
	}
	mutated, err := fn(records)
	if err != nil {
		return err
	}
	return writeCollection(ctx, client, key, mutated)
}
