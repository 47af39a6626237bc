package ocr

import (
	"context"
	"fmt"
	"strings"

	"github.com/muhammadbalawal/MenuPlus-sub000/internal/config"
)

// Extractor reads the text lines printed on a menu image.
type Extractor interface {
	ExtractLines(ctx context.Context, image []byte) ([]string, error)
}

// NewExtractor picks the OCR engine named in cfg.
func NewExtractor(cfg config.OCRConfig) (Extractor, error) {
	switch cfg.Engine {
	case "tesseract", "":
		return NewTesseractExtractor(cfg.TesseractBin), nil
	case "vision":
		return NewVisionExtractor(cfg.VisionURL, cfg.VisionAPIKey)
	default:
		return nil, fmt.Errorf("unknown ocr engine %q", cfg.Engine)
	}
}

// SplitLines returns the trimmed, non-empty lines of text.
func SplitLines(text string) []string {
	lines := []string{}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
