package docstore

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Document is one schemaless record in the central store, addressed by
// (kind, doc_id). The payload is stored as jsonb so the store never needs
// to know the shape of patients, consultations or users.
type Document struct {
	Kind      string    `gorm:"primaryKey;type:varchar(100)" json:"kind"`
	DocID     string    `gorm:"primaryKey;type:varchar(100);column:doc_id" json:"doc_id"`
	Data      JSON      `gorm:"type:jsonb" json:"data"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Document) TableName() string {
	return "documents"
}

// JSON type for GORM JSONB support
type JSON map[string]interface{}

// Value returns json value, implement driver.Valuer interface
func (j JSON) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan scan value into Jsonb, implements sql.Scanner interface
func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New(fmt.Sprint("Failed to unmarshal JSONB value:", value))
	}

	result := map[string]interface{}{}
	err := json.Unmarshal(bytes, &result)
	*j = JSON(result)
	return err
}

// MergeFields returns base with the patch's top-level fields written over
// it. The merge is shallow: a patched field replaces the old value
// entirely, nested objects included. Neither input is modified.
func MergeFields(base, patch JSON) JSON {
	merged := make(JSON, len(base)+len(patch))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range patch {
		merged[k] = v
	}
	return merged
}
