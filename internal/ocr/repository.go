package ocr

import "context"

// Repository persists scans and their OCR state.
type Repository interface {
	Create(ctx context.Context, scan *Scan) error
	Get(ctx context.Context, id int64) (*Scan, error)

	// ClaimNext moves the oldest MENU_UPLOADED scan to OCR_PROCESSING and returns it.
	// Returns (nil, nil) when no jobs are available.
	ClaimNext(ctx context.Context) (*Scan, error)

	MarkDone(ctx context.Context, id int64, text string) error
	MarkFailed(ctx context.Context, id int64, reason string) error

	// ResetForRetry moves an OCR_FAILED scan back to MENU_UPLOADED.
	// Returns ErrNotRetryable for any other status.
	ResetForRetry(ctx context.Context, id int64) error
}
