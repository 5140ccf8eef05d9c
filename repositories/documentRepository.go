package repositories

import (
	"CarePoint/models"
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

const (
	UploadStatusPending  = "pending"
	UploadStatusUploaded = "uploaded"

	AnalysisProcessing = "processing"
	AnalysisCompleted  = "completed"
	AnalysisFailed     = "failed"
)

type DocumentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// Create inserts the metadata row and assigns the blob key derived from the
// generated ID, both in one transaction.
func (r *DocumentRepository) Create(ctx context.Context, doc *models.MedicalDocument) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		doc.UploadStatus = UploadStatusPending
		if err := tx.Create(doc).Error; err != nil {
			return fmt.Errorf("failed to create document record: %w", err)
		}

		doc.BlobKey = fmt.Sprintf("%d/%d/%s", doc.PatientID, doc.ID, doc.FileName)
		if err := tx.Model(&models.MedicalDocument{}).
			Where("id = ?", doc.ID).
			Update("blob_key", doc.BlobKey).Error; err != nil {
			return fmt.Errorf("failed to assign blob key: %w", err)
		}
		return nil
	})
}

func (r *DocumentRepository) GetByID(ctx context.Context, id uint) (*models.MedicalDocument, error) {
	var doc models.MedicalDocument
	if err := r.db.WithContext(ctx).First(&doc, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	return &doc, nil
}

func (r *DocumentRepository) ListByPatient(ctx context.Context, patientID uint) ([]models.MedicalDocument, error) {
	var docs []models.MedicalDocument
	err := r.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("uploaded_at DESC").
		Find(&docs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	return docs, nil
}

func (r *DocumentRepository) MarkUploaded(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Model(&models.MedicalDocument{}).
		Where("id = ?", id).
		Update("upload_status", UploadStatusUploaded)
	if result.Error != nil {
		return fmt.Errorf("failed to mark document uploaded: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrDocumentNotFound
	}
	return nil
}

// SaveAnalysis records the analyzer's verdict for a document, replacing any
// earlier attempt.
func (r *DocumentRepository) SaveAnalysis(ctx context.Context, documentID uint, status, rawResult string) error {
	analysis := models.DocumentAnalysis{
		DocumentID: documentID,
		Status:     status,
		RawResult:  rawResult,
	}
	err := r.db.WithContext(ctx).Create(&analysis).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("failed to save analysis: %w", err)
	}

	result := r.db.WithContext(ctx).Model(&models.DocumentAnalysis{}).
		Where("document_id = ?", documentID).
		Updates(map[string]interface{}{"status": status, "raw_result": rawResult})
	if result.Error != nil {
		return fmt.Errorf("failed to update analysis: %w", result.Error)
	}
	return nil
}

// GetAnalysis returns nil without error when no analysis row exists yet,
// which callers report as still processing.
func (r *DocumentRepository) GetAnalysis(ctx context.Context, documentID uint) (*models.DocumentAnalysis, error) {
	var analysis models.DocumentAnalysis
	err := r.db.WithContext(ctx).First(&analysis, "document_id = ?", documentID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get analysis: %w", err)
	}
	return &analysis, nil
}
