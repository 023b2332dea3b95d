// internal/services/pdf_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Sheikh-Nabeel/Mystic-NFT-backend/internal/models"
	"github.com/Sheikh-Nabeel/Mystic-NFT-backend/internal/repository"
	"github.com/Sheikh-Nabeel/Mystic-NFT-backend/internal/storage"
	"github.com/Sheikh-Nabeel/Mystic-NFT-backend/internal/utils"
)

const (
	msgPDFRequired    = "PDF file is required"
	msgNewPDFRequired = "New PDF file is required"
	msgOnlyPDF        = "Only PDF files are allowed"
	msgPDFNotFound    = "PDF not found"
	msgUploadFailed   = "Error uploading PDF"
	msgUpdateFailed   = "Error updating PDF"
	msgDeleteFailed   = "Error deleting PDF"
	msgListFailed     = "Error retrieving PDFs"
)

// UploadFile is an incoming file attachment. Open is only called once the
// attachment has passed validation.
type UploadFile struct {
	Filename    string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

func FileFromHeader(header *multipart.FileHeader) *UploadFile {
	if header == nil {
		return nil
	}

	return &UploadFile{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Open: func() (io.ReadCloser, error) {
			return header.Open()
		},
	}
}

type PDFService struct {
	store   repository.Store[models.PDF]
	assets  storage.AssetStore
	maxSize int64
}

func NewPDFService(store repository.Store[models.PDF], assets storage.AssetStore, maxSizeMB int64) *PDFService {
	return &PDFService{
		store:   store,
		assets:  assets,
		maxSize: maxSizeMB * 1024 * 1024,
	}
}

func (s *PDFService) UploadPDF(ctx context.Context, file *UploadFile) (*models.PDF, error) {
	if err := s.checkFile(file, msgPDFRequired); err != nil {
		return nil, err
	}

	res, err := s.upload(ctx, file)
	if err != nil {
		return nil, utils.NewUpstreamError(msgUploadFailed, err)
	}

	pdf := &models.PDF{
		URL:          res.SecureURL,
		CloudinaryID: res.AssetID,
	}
	if err := s.store.Create(ctx, pdf); err != nil {
		logrus.WithField("asset_id", res.AssetID).WithError(err).Error("PDF asset uploaded but record was not created")
		return nil, utils.NewUpstreamError(msgUploadFailed, err)
	}

	return pdf, nil
}

// GetAllPDFs returns every record, newest first.
func (s *PDFService) GetAllPDFs(ctx context.Context) ([]models.PDF, error) {
	pdfs, _, err := s.store.List(ctx, repository.Query{OrderBy: "created_at DESC"})
	if err != nil {
		return nil, utils.NewUpstreamError(msgListFailed, err)
	}
	if pdfs == nil {
		pdfs = []models.PDF{}
	}
	return pdfs, nil
}

func (s *PDFService) GetPDFByID(ctx context.Context, id string) (*models.PDF, error) {
	return s.find(ctx, id)
}

// UpdatePDF replaces the asset behind an existing record. The old asset is
// destroyed before the replacement is uploaded; the record keeps its id.
func (s *PDFService) UpdatePDF(ctx context.Context, id string, file *UploadFile) (*models.PDF, error) {
	if err := s.checkFile(file, msgNewPDFRequired); err != nil {
		return nil, err
	}

	pdf, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.assets.Destroy(ctx, pdf.CloudinaryID); err != nil {
		return nil, utils.NewUpstreamError(msgUpdateFailed, err)
	}

	res, err := s.upload(ctx, file)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"pdf_id":   pdf.ID,
			"asset_id": pdf.CloudinaryID,
		}).WithError(err).Error("Old PDF asset destroyed but replacement upload failed")
		return nil, utils.NewUpstreamError(msgUpdateFailed, err)
	}

	pdf.URL = res.SecureURL
	pdf.CloudinaryID = res.AssetID
	if err := s.store.Save(ctx, pdf); err != nil {
		logrus.WithFields(logrus.Fields{
			"pdf_id":   pdf.ID,
			"asset_id": res.AssetID,
		}).WithError(err).Error("Replacement PDF asset uploaded but record was not updated")
		return nil, utils.NewUpstreamError(msgUpdateFailed, err)
	}

	return pdf, nil
}

func (s *PDFService) DeletePDF(ctx context.Context, id string) error {
	pdf, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if err := s.assets.Destroy(ctx, pdf.CloudinaryID); err != nil {
		return utils.NewUpstreamError(msgDeleteFailed, err)
	}

	if err := s.store.Delete(ctx, pdf.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return utils.NewNotFoundError(msgPDFNotFound)
		}
		logrus.WithFields(logrus.Fields{
			"pdf_id":   pdf.ID,
			"asset_id": pdf.CloudinaryID,
		}).WithError(err).Error("PDF asset destroyed but record was not deleted")
		return utils.NewUpstreamError(msgDeleteFailed, err)
	}

	return nil
}

func (s *PDFService) find(ctx context.Context, id string) (*models.PDF, error) {
	pdfID, err := uuid.Parse(id)
	if err != nil {
		return nil, utils.NewNotFoundError(msgPDFNotFound)
	}

	pdf, err := s.store.FindByID(ctx, pdfID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.NewNotFoundError(msgPDFNotFound)
		}
		return nil, utils.NewUpstreamError("Error retrieving PDF", err)
	}

	return pdf, nil
}

// checkFile validates the declared MIME type only; content is not sniffed.
func (s *PDFService) checkFile(file *UploadFile, missingMessage string) error {
	if file == nil {
		return utils.NewValidationError(missingMessage, nil)
	}

	if !strings.Contains(strings.ToLower(file.ContentType), "pdf") {
		return utils.NewValidationError(msgOnlyPDF, nil)
	}

	if s.maxSize > 0 && file.Size > s.maxSize {
		return utils.NewValidationError(
			fmt.Sprintf("PDF file exceeds the maximum size of %d MB", s.maxSize/(1024*1024)), nil)
	}

	return nil
}

func (s *PDFService) upload(ctx context.Context, file *UploadFile) (*storage.UploadResult, error) {
	content, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer content.Close()

	return s.assets.Upload(ctx, content, file.Filename)
}
