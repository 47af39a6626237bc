package ocr

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
)

const pageBreak = "---PAGE BREAK---"

var (
	noiseLines = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^page\s*\d+$`), // "Page 1"
		regexp.MustCompile(`^\d+\s*/\s*\d+$`),  // "1/5"
		regexp.MustCompile(`^\d+$`),            // bare integers, usually page numbers
		regexp.MustCompile(`(?i)^confidential$`),
		regexp.MustCompile(`(?i)^menu$`), // repeated headers
	}
	priceLike    = regexp.MustCompile(`^[₹$€£]?\d*\.?\d+$`)
	spaceRun     = regexp.MustCompile(`[ \t]+`)
	blankLineRun = regexp.MustCompile(`\n{3,}`)
	ocrArtifacts = []string{"\uFFFD", "\f", "©", "™", "®"}
)

// Cleaner turns raw OCR output into compact text for the analysis prompt.
type Cleaner struct {
	maxLength int
	logger    *zap.Logger
}

func NewCleaner(maxLength int, logger *zap.Logger) *Cleaner {
	if maxLength <= 0 {
		maxLength = 15000
	}
	return &Cleaner{maxLength: maxLength, logger: logger}
}

func (c *Cleaner) Clean(raw string) string {
	if raw == "" {
		return raw
	}

	text := strings.ReplaceAll(raw, pageBreak, "\n")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = removeArtifacts(text)
	text = removeNoiseLines(text)
	text = normalizeWhitespace(text)
	text = strings.TrimSpace(c.truncate(text))

	c.logger.Debug("OCR_TEXT_CLEANED",
		zap.Int("input_length", len(raw)),
		zap.Int("output_length", len(text)),
	)
	return text
}

func removeNoiseLines(text string) string {
	lines := strings.Split(text, "\n")
	kept := lines[:0]

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if isNoise(trimmed) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

func isNoise(line string) bool {
	for _, p := range noiseLines {
		if p.MatchString(line) {
			return true
		}
	}
	// one or two stray glyphs, unless they look like a price. Bare integers
	// were already dropped above, so a price on its own line survives only
	// with a currency sign or decimals.
	if line != "" && utf8.RuneCountInString(line) < 3 && !priceLike.MatchString(line) {
		return true
	}
	return false
}

func normalizeWhitespace(text string) string {
	text = spaceRun.ReplaceAllString(text, " ")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	text = strings.Join(lines, "\n")

	return blankLineRun.ReplaceAllString(text, "\n\n")
}

func removeArtifacts(text string) string {
	for _, a := range ocrArtifacts {
		text = strings.ReplaceAll(text, a, "")
	}
	return text
}

// truncate caps text at maxLength bytes, preferring the last paragraph break in
// the second half and never splitting a rune.
func (c *Cleaner) truncate(text string) string {
	if len(text) <= c.maxLength {
		return text
	}

	cut := c.maxLength
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	truncated := text[:cut]

	if idx := strings.LastIndex(truncated, "\n\n"); idx > c.maxLength/2 {
		truncated = truncated[:idx]
	}

	c.logger.Info("OCR_TEXT_TRUNCATED",
		zap.Int("length", len(text)),
		zap.Int("kept", len(truncated)),
	)
	return truncated
}
