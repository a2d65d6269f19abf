package models

const MediaTypePDF = "application/pdf"

// UploadCandidate is the resume selected for the next submission. It lives
// only in client memory for one interaction cycle and is replaced or cleared
// by user action, never persisted.
type UploadCandidate struct {
	Name      string `json:"name"`
	SizeBytes int64  `json:"size_bytes"`
	MediaType string `json:"media_type"`
	Data      []byte `json:"-"`
}

// PDFDetails carries what a deep inspection of the candidate found.
type PDFDetails struct {
	PageCount int
}
