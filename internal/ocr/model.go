package ocr

import (
	"errors"
	"time"
)

type Status string

const (
	StatusUploaded   Status = "MENU_UPLOADED"
	StatusProcessing Status = "OCR_PROCESSING"
	StatusDone       Status = "OCR_DONE"
	StatusFailed     Status = "OCR_FAILED"
)

var (
	ErrNotFound     = errors.New("scan not found")
	ErrForbidden    = errors.New("scan belongs to another user")
	ErrNotReady     = errors.New("scan has no OCR text yet")
	ErrNotRetryable = errors.New("only failed scans can be retried")
	ErrInvalidFile  = errors.New("invalid menu image")
)

// Scan is one uploaded menu photo and the text read from it.
type Scan struct {
	ID               int64     `json:"id"`
	UserID           string    `json:"user_id"`
	ImageKey         string    `json:"-"`
	ImageURL         string    `json:"image_url"`
	OriginalFilename string    `json:"original_filename"`
	ContentType      string    `json:"content_type"`
	Status           Status    `json:"status"`
	Text             string    `json:"text,omitempty"`
	Error            string    `json:"error,omitempty"`
	Attempts         int       `json:"attempts"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
