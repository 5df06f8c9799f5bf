package docstore

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrDocumentNotFound = errors.New("document not found")

type documentRepository struct{}

func NewDocumentRepository() *documentRepository {
	return &documentRepository{}
}

func (r *documentRepository) FindAll(db *gorm.DB, kind string) ([]Document, error) {
	var documents []Document
	err := db.Where("kind = ?", kind).Order("updated_at DESC").Find(&documents).Error
	if err != nil {
		return nil, err
	}
	return documents, nil
}

// FindWhere filters documents by equality on one top-level payload field.
func (r *documentRepository) FindWhere(db *gorm.DB, kind, field, value string) ([]Document, error) {
	var documents []Document
	err := db.Where("kind = ? AND data->>? = ?", kind, field, value).
		Order("updated_at DESC").
		Find(&documents).Error
	if err != nil {
		return nil, err
	}
	return documents, nil
}

func (r *documentRepository) FindByID(db *gorm.DB, kind, docID string) (*Document, error) {
	var document Document
	err := db.Where("kind = ? AND doc_id = ?", kind, docID).First(&document).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}
	return &document, nil
}

// Upsert replaces the document payload wholesale, creating the row when it
// does not exist. Put semantics: the stored payload is exactly what was
// sent.
func (r *documentRepository) Upsert(db *gorm.DB, document *Document) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "kind"}, {Name: "doc_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(document).Error
}

// Patch merges the given fields over the stored payload and saves the
// result. Fails with ErrDocumentNotFound when the document does not exist.
func (r *documentRepository) Patch(db *gorm.DB, kind, docID string, fields JSON) (*Document, error) {
	document, err := r.FindByID(db, kind, docID)
	if err != nil {
		return nil, err
	}

	document.Data = MergeFields(document.Data, fields)
	if err := db.Save(document).Error; err != nil {
		return nil, err
	}
	return document, nil
}
