package menu

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/muhammadbalawal/MenuPlus-sub000/internal/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrForbidden    = errors.New("menu belongs to another user")
	ErrInvalidInput = errors.New("invalid menu input")
)

const maxImageSize = 10 << 20

var imageExt = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/bmp":  ".bmp",
}

type SaveInput struct {
	MenuText        string
	SafeMenuContent string
	BestMenuContent string
	FullMenuContent string
	// ImageBase64 is optional; a data URL prefix is accepted.
	ImageBase64 string
}

type Service struct {
	repo   Repository
	store  storage.Store
	logger *zap.Logger
	now    func() time.Time
}

func NewService(repo Repository, store storage.Store, logger *zap.Logger) *Service {
	return &Service{repo: repo, store: store, logger: logger, now: time.Now}
}

// --------------------------------------------------
// Save analyzed menu
// --------------------------------------------------
func (s *Service) Save(ctx context.Context, userID string, in SaveInput) (*Menu, error) {
	if userID == "" || strings.TrimSpace(in.MenuText) == "" {
		return nil, fmt.Errorf("%w: menu_text is required", ErrInvalidInput)
	}

	m := &Menu{
		ID:              uuid.New().String(),
		UserID:          userID,
		MenuText:        in.MenuText,
		SafeMenuContent: in.SafeMenuContent,
		BestMenuContent: in.BestMenuContent,
		FullMenuContent: in.FullMenuContent,
		CreatedAt:       s.now().UTC(),
	}

	if in.ImageBase64 != "" {
		key, url, err := s.uploadImage(ctx, userID, in.ImageBase64)
		if err != nil {
			return nil, err
		}
		m.ImageKey = key
		m.ImageURL = url
	}

	if err := s.repo.Create(ctx, m); err != nil {
		if m.ImageKey != "" {
			_ = s.store.Delete(ctx, m.ImageKey)
		}
		return nil, err
	}

	s.logger.Info("MENU_SAVED",
		zap.String("menu_id", m.ID),
		zap.String("user_id", userID),
		zap.Bool("has_image", m.ImageKey != ""),
	)
	return m, nil
}

func (s *Service) uploadImage(ctx context.Context, userID, encoded string) (string, string, error) {
	if i := strings.Index(encoded, ";base64,"); i >= 0 && strings.HasPrefix(encoded, "data:") {
		encoded = encoded[i+len(";base64,"):]
	}

	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
	if err != nil {
		return "", "", fmt.Errorf("%w: image is not valid base64", ErrInvalidInput)
	}
	if len(data) == 0 || len(data) > maxImageSize {
		return "", "", fmt.Errorf("%w: image size out of range", ErrInvalidInput)
	}

	contentType := http.DetectContentType(data)
	ext, ok := imageExt[contentType]
	if !ok {
		return "", "", fmt.Errorf("%w: unsupported image type %s", ErrInvalidInput, contentType)
	}

	key := fmt.Sprintf("menus/%s/%s%s", userID, uuid.New().String(), ext)
	url, err := s.store.Upload(ctx, key, bytes.NewReader(data), contentType)
	if err != nil {
		return "", "", fmt.Errorf("upload menu image: %w", err)
	}
	return key, url, nil
}

func (s *Service) Get(ctx context.Context, userID, id string) (*Menu, error) {
	m, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if m.UserID != userID {
		return nil, ErrForbidden
	}
	return m, nil
}

func (s *Service) List(ctx context.Context, userID string) ([]Menu, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Delete removes the menu; the stored image is removed best-effort.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	m, err := s.Get(ctx, userID, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if m.ImageKey != "" {
		if err := s.store.Delete(ctx, m.ImageKey); err != nil {
			s.logger.Warn("MENU_IMAGE_DELETE_FAILED",
				zap.String("menu_id", id),
				zap.String("key", m.ImageKey),
				zap.Error(err),
			)
		}
	}

	s.logger.Info("MENU_DELETED", zap.String("menu_id", id), zap.String("user_id", userID))
	return nil
}
