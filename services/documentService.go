package services

import (
	"CarePoint/blobstore"
	"CarePoint/models"
	"CarePoint/repositories"
	"context"
	"log"
	"time"
)

// DocumentService runs the medical-document pipeline: a metadata row plus a
// presigned upload URL, then analysis in the background once the client
// confirms the upload. Analysis shares the database with the scheduling
// core but touches none of its tables.
type DocumentService struct {
	repository *repositories.DocumentRepository
	store      *blobstore.Store
	analyzer   blobstore.Analyzer
}

func NewDocumentService(repository *repositories.DocumentRepository, store *blobstore.Store, analyzer blobstore.Analyzer) *DocumentService {
	return &DocumentService{repository: repository, store: store, analyzer: analyzer}
}

// UploadGrant is a created document plus the URL the client uploads to.
type UploadGrant struct {
	Document models.MedicalDocument `json:"document"`
	SASURL   string                 `json:"sas_url"`
}

// DocumentStatus is a document with its analysis state. Status is
// "processing" until the analyzer has stored a verdict.
type DocumentStatus struct {
	Document models.MedicalDocument `json:"document"`
	Status   string                 `json:"status"`
	Result   string                 `json:"result,omitempty"`
}

func (s *DocumentService) RequestUpload(ctx context.Context, patientID uint, fileName string) (*UploadGrant, error) {
	doc := models.MedicalDocument{PatientID: patientID, FileName: fileName}
	if err := s.repository.Create(ctx, &doc); err != nil {
		return nil, err
	}

	url, err := s.store.PresignUpload(ctx, doc.BlobKey)
	if err != nil {
		return nil, err
	}

	return &UploadGrant{Document: doc, SASURL: url}, nil
}

// ConfirmUpload marks the document uploaded and kicks off analysis in the
// background. Analysis failures are recorded against the document and never
// affect the upload itself.
func (s *DocumentService) ConfirmUpload(ctx context.Context, patientID, documentID uint) (*models.MedicalDocument, error) {
	doc, err := s.repository.GetByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if doc.PatientID != patientID {
		return nil, repositories.ErrNotDocumentOwner
	}

	if err := s.repository.MarkUploaded(ctx, doc.ID); err != nil {
		return nil, err
	}
	doc.UploadStatus = repositories.UploadStatusUploaded

	go s.analyze(doc.ID, doc.BlobKey)

	return doc, nil
}

func (s *DocumentService) GetStatus(ctx context.Context, patientID, documentID uint) (*DocumentStatus, error) {
	doc, err := s.repository.GetByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if doc.PatientID != patientID {
		return nil, repositories.ErrNotDocumentOwner
	}

	analysis, err := s.repository.GetAnalysis(ctx, doc.ID)
	if err != nil {
		return nil, err
	}

	status := &DocumentStatus{Document: *doc, Status: repositories.AnalysisProcessing}
	if analysis != nil {
		status.Status = analysis.Status
		status.Result = analysis.RawResult
	}
	return status, nil
}

func (s *DocumentService) ListByPatient(ctx context.Context, patientID uint) ([]models.MedicalDocument, error) {
	return s.repository.ListByPatient(ctx, patientID)
}

func (s *DocumentService) analyze(documentID uint, blobKey string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	url, err := s.store.PresignDownload(ctx, blobKey)
	if err != nil {
		log.Printf("Failed to presign document %d for analysis: %v", documentID, err)
		s.recordAnalysis(ctx, documentID, repositories.AnalysisFailed, "")
		return
	}

	result, err := s.analyzer.Analyze(ctx, url)
	if err != nil {
		log.Printf("Analysis failed for document %d: %v", documentID, err)
		s.recordAnalysis(ctx, documentID, repositories.AnalysisFailed, "")
		return
	}

	s.recordAnalysis(ctx, documentID, repositories.AnalysisCompleted, result)
}

func (s *DocumentService) recordAnalysis(ctx context.Context, documentID uint, status, result string) {
	if err := s.repository.SaveAnalysis(ctx, documentID, status, result); err != nil {
		log.Printf("Failed to record analysis for document %d: %v", documentID, err)
	}
}
