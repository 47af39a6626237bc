package ocr

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/muhammadbalawal/MenuPlus-sub000/internal/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service struct {
	repo      Repository
	store     storage.Store
	extractor Extractor
	cleaner   *Cleaner
	logger    *zap.Logger
}

func NewService(repo Repository, store storage.Store, extractor Extractor, cleaner *Cleaner, logger *zap.Logger) *Service {
	return &Service{
		repo:      repo,
		store:     store,
		extractor: extractor,
		cleaner:   cleaner,
		logger:    logger,
	}
}

// Upload stores the photo and queues it for the OCR worker.
func (s *Service) Upload(ctx context.Context, userID string, file *multipart.FileHeader) (*Scan, error) {
	if userID == "" {
		return nil, ErrForbidden
	}
	if file == nil {
		return nil, fmt.Errorf("%w: menu_image is required", ErrInvalidFile)
	}
	if err := ValidateFileExtension(file.Filename); err != nil {
		return nil, err
	}
	if file.Size > MaxUploadSize {
		return nil, fmt.Errorf("%w: file exceeds %d bytes", ErrInvalidFile, MaxUploadSize)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	key := fmt.Sprintf("scans/%s/%s%s", userID, uuid.New().String(), ext)

	url, err := storage.UploadMultipartFile(ctx, s.store, key, file)
	if err != nil {
		return nil, fmt.Errorf("upload menu image: %w", err)
	}

	scan := &Scan{
		UserID:           userID,
		ImageKey:         key,
		ImageURL:         url,
		OriginalFilename: file.Filename,
		ContentType:      file.Header.Get("Content-Type"),
		Status:           StatusUploaded,
	}
	if err := s.repo.Create(ctx, scan); err != nil {
		_ = s.store.Delete(ctx, key)
		return nil, err
	}

	s.logger.Info("MENU_UPLOADED",
		zap.Int64("scan_id", scan.ID),
		zap.String("user_id", userID),
		zap.String("key", key),
		zap.Int64("bytes", file.Size),
	)
	return scan, nil
}

// Get returns a scan owned by userID.
func (s *Service) Get(ctx context.Context, userID string, id int64) (*Scan, error) {
	scan, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if scan.UserID != userID {
		return nil, ErrForbidden
	}
	return scan, nil
}

// Retry queues a failed scan again.
func (s *Service) Retry(ctx context.Context, userID string, id int64) (*Scan, error) {
	scan, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if scan.Status != StatusFailed {
		return nil, ErrNotRetryable
	}

	if err := s.repo.ResetForRetry(ctx, id); err != nil {
		return nil, err
	}

	s.logger.Info("OCR_RETRY_QUEUED", zap.Int64("scan_id", id), zap.Int("attempts", scan.Attempts))
	return s.repo.Get(ctx, id)
}

// Text returns the cleaned OCR text of a finished scan.
func (s *Service) Text(ctx context.Context, userID string, id int64) (string, error) {
	scan, err := s.Get(ctx, userID, id)
	if err != nil {
		return "", err
	}
	if scan.Status != StatusDone {
		return "", ErrNotReady
	}
	return scan.Text, nil
}

// ProcessOne picks ONE pending scan and runs OCR on it. It reports whether a job
// was claimed. A failed job is recorded on the scan and is not returned as an
// error, so one bad image never stops the worker.
func (s *Service) ProcessOne(ctx context.Context) (bool, error) {
	scan, err := s.repo.ClaimNext(ctx)
	if err != nil {
		return false, fmt.Errorf("claim scan: %w", err)
	}
	if scan == nil {
		return false, nil
	}

	s.logger.Info("OCR_PROCESSING",
		zap.Int64("scan_id", scan.ID),
		zap.Int("attempt", scan.Attempts),
	)

	text, err := s.extract(ctx, scan)
	if err != nil {
		s.fail(ctx, scan.ID, err)
		return true, nil
	}

	writeCtx, cancel := statusContext(ctx)
	defer cancel()

	if err := s.repo.MarkDone(writeCtx, scan.ID, text); err != nil {
		s.fail(ctx, scan.ID, fmt.Errorf("save ocr text: %w", err))
		return true, fmt.Errorf("save ocr text for scan %d: %w", scan.ID, err)
	}

	s.logger.Info("OCR_DONE",
		zap.Int64("scan_id", scan.ID),
		zap.Int("text_length", len(text)),
	)
	return true, nil
}

var errNoText = errors.New("no text detected in image")

const statusWriteTimeout = 10 * time.Second

// statusContext outlives a cancelled worker context so a claimed scan never
// stays in OCR_PROCESSING after shutdown.
func statusContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), statusWriteTimeout)
}

func (s *Service) extract(ctx context.Context, scan *Scan) (string, error) {
	image, err := s.store.Download(ctx, scan.ImageKey)
	if err != nil {
		return "", fmt.Errorf("download image: %w", err)
	}
	if len(image) == 0 {
		return "", errors.New("image is empty")
	}

	if IsPDF(image) {
		s.logger.Info("OCR_SKIPPED_PDF", zap.Int64("scan_id", scan.ID))
		return "", errors.New("PDF files are not supported, upload a photo of the menu")
	}

	lines, err := s.extractor.ExtractLines(ctx, image)
	if err != nil {
		return "", err
	}

	text := s.cleaner.Clean(strings.Join(lines, "\n"))
	if text == "" {
		return "", errNoText
	}
	return text, nil
}

func (s *Service) fail(ctx context.Context, id int64, cause error) {
	s.logger.Warn("OCR_FAILED", zap.Int64("scan_id", id), zap.Error(cause))

	writeCtx, cancel := statusContext(ctx)
	defer cancel()

	if err := s.repo.MarkFailed(writeCtx, id, cause.Error()); err != nil {
		s.logger.Error("OCR_MARK_FAILED_ERROR", zap.Int64("scan_id", id), zap.Error(err))
	}
}
