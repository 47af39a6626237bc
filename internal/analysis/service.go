package analysis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/muhammadbalawal/MenuPlus-sub000/internal/llm"
	"github.com/muhammadbalawal/MenuPlus-sub000/internal/ocr"
	"github.com/muhammadbalawal/MenuPlus-sub000/internal/profile"

	"go.uber.org/zap"
)

var (
	ErrEmptyMenuText   = errors.New("menu text is empty")
	ErrProfileRequired = errors.New("user profile not found")
	ErrScanNotReady    = errors.New("scan has no OCR text yet")
	ErrScanNotFound    = errors.New("scan not found")
)

const defaultTimeout = 90 * time.Second

type ProfileReader interface {
	Get(ctx context.Context, userID string) (*profile.Profile, error)
}

// ScanReader resolves the OCR text of a finished scan owned by userID.
type ScanReader interface {
	Text(ctx context.Context, userID string, scanID int64) (string, error)
}

type AnalyzeInput struct {
	MenuText string
	ScanID   int64
}

// Analysis is one model answer split into display sections.
type Analysis struct {
	MenuText string `json:"menu_text"`
	Sections
	Provider  string    `json:"provider"`
	Model     string    `json:"model"`
	Missing   []Section `json:"missing_sections"`
	CreatedAt time.Time `json:"created_at"`
}

type Service struct {
	profiles ProfileReader
	llm      llm.Client
	scans    ScanReader
	timeout  time.Duration
	logger   *zap.Logger
	now      func() time.Time
}

// NewService wires the analysis pipeline. scans may be nil when OCR is not
// deployed; ScanID requests then fail with ErrScanNotFound.
func NewService(profiles ProfileReader, client llm.Client, scans ScanReader, timeout time.Duration, logger *zap.Logger) *Service {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Service{
		profiles: profiles,
		llm:      client,
		scans:    scans,
		timeout:  timeout,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *Service) Analyze(ctx context.Context, userID string, in AnalyzeInput) (*Analysis, error) {
	menuText, err := s.resolveMenuText(ctx, userID, in)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(menuText) == "" {
		return nil, ErrEmptyMenuText
	}

	p, err := s.profiles.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			return nil, ErrProfileRequired
		}
		return nil, fmt.Errorf("load profile: %w", err)
	}

	prompt := BuildPrompt(menuText, p)

	llmCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	started := s.now()
	raw, err := s.llm.Generate(llmCtx, prompt)
	if err != nil {
		s.logger.Error("ANALYSIS_FAILED",
			zap.String("user_id", userID),
			zap.String("client", s.llm.Name()),
			zap.Error(err),
		)
		return nil, fmt.Errorf("generate analysis: %w", err)
	}

	sections, missing := parseSections(raw)
	if len(missing) > 0 {
		s.logger.Warn("ANALYSIS_SECTIONS_MISSING",
			zap.String("user_id", userID),
			zap.Any("missing", missing),
			zap.Int("response_length", len(raw)),
		)
	}

	provider, model := splitClientName(s.llm.Name())

	s.logger.Info("ANALYSIS_DONE",
		zap.String("user_id", userID),
		zap.String("provider", provider),
		zap.Duration("took", s.now().Sub(started)),
	)

	if missing == nil {
		missing = []Section{}
	}

	return &Analysis{
		MenuText:  menuText,
		Sections:  sections,
		Provider:  provider,
		Model:     model,
		Missing:   missing,
		CreatedAt: s.now().UTC(),
	}, nil
}

func (s *Service) resolveMenuText(ctx context.Context, userID string, in AnalyzeInput) (string, error) {
	if strings.TrimSpace(in.MenuText) != "" || in.ScanID == 0 {
		return in.MenuText, nil
	}
	if s.scans == nil {
		return "", ErrScanNotFound
	}

	text, err := s.scans.Text(ctx, userID, in.ScanID)
	switch {
	case err == nil:
		return text, nil
	case errors.Is(err, ocr.ErrNotReady):
		return "", ErrScanNotReady
	case errors.Is(err, ocr.ErrNotFound), errors.Is(err, ocr.ErrForbidden):
		return "", ErrScanNotFound
	default:
		return "", fmt.Errorf("load scan text: %w", err)
	}
}

func splitClientName(name string) (string, string) {
	provider, model, ok := strings.Cut(name, ":")
	if !ok {
		return name, ""
	}
	return provider, model
}
