package services

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"resumatch/internal/models"
)

var pdfMagic = []byte("%PDF-")

type UploadValidator interface {
	ValidateResume(name, mediaType string, data []byte) (*models.UploadCandidate, error)
	ValidateJobDescription(text string) error
	Inspect(candidate *models.UploadCandidate) (*models.PDFDetails, error)
}

type uploadValidator struct {
	maxFileSize    int64
	strictPDFCheck bool
}

func NewUploadValidator(maxFileSize int64, strictPDFCheck bool) UploadValidator {
	return &uploadValidator{
		maxFileSize:    maxFileSize,
		strictPDFCheck: strictPDFCheck,
	}
}

// ValidateResume checks a selected file before any network activity and
// returns the accepted candidate. Every rejection is a
// *models.ValidationError naming the file field; nothing is returned on
// rejection so prior state stays untouched.
func (v *uploadValidator) ValidateResume(name, mediaType string, data []byte) (*models.UploadCandidate, error) {
	if name == "" {
		return nil, models.NewValidationError("file", "no file selected")
	}

	// Validate file extensions
	ext := strings.ToLower(filepath.Ext(name))
	if ext != ".pdf" {
		return nil, models.NewValidationError("file", fmt.Sprintf("invalid file extension: %s", ext))
	}

	// Validate the declared media type, ignoring parameters
	declared := strings.ToLower(strings.TrimSpace(mediaType))
	if i := strings.Index(declared, ";"); i >= 0 {
		declared = strings.TrimSpace(declared[:i])
	}
	if declared != "" && declared != models.MediaTypePDF {
		return nil, models.NewValidationError("file", "only PDF files are accepted")
	}

	if len(data) == 0 {
		return nil, models.NewValidationError("file", "file is empty")
	}

	if int64(len(data)) > v.maxFileSize {
		return nil, models.NewValidationError("file", fmt.Sprintf("file exceeds the maximum size of %d bytes", v.maxFileSize))
	}

	if !bytes.HasPrefix(data, pdfMagic) {
		return nil, models.NewValidationError("file", "file is not a valid PDF document")
	}

	candidate := &models.UploadCandidate{
		Name:      name,
		SizeBytes: int64(len(data)),
		MediaType: models.MediaTypePDF,
		Data:      data,
	}

	if v.strictPDFCheck {
		if _, err := v.Inspect(candidate); err != nil {
			return nil, models.NewValidationError("file", "file is not a valid PDF document")
		}
	}

	return candidate, nil
}

// ValidateJobDescription rejects descriptions that are empty after trimming.
func (v *uploadValidator) ValidateJobDescription(text string) error {
	if strings.TrimSpace(text) == "" {
		return models.NewValidationError("job_description", "job description must not be empty")
	}
	return nil
}

// Inspect parses the candidate as a PDF and reports what it found.
func (v *uploadValidator) Inspect(candidate *models.UploadCandidate) (*models.PDFDetails, error) {
	if candidate == nil || len(candidate.Data) == 0 {
		return nil, fmt.Errorf("no file data to inspect")
	}

	reader, err := pdf.NewReader(bytes.NewReader(candidate.Data), int64(len(candidate.Data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}

	return &models.PDFDetails{PageCount: reader.NumPage()}, nil
}
