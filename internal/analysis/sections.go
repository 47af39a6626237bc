package analysis

import "strings"

// Section names one of the three display regions of an analysis.
type Section string

const (
	SectionSafe Section = "safe"
	SectionBest Section = "best"
	SectionFull Section = "full"
)

// Markers the model is instructed to wrap each section in. Matching is exact and
// case-sensitive.
const (
	SafeMenuStart = "=== SAFE MENU START ==="
	SafeMenuEnd   = "=== SAFE MENU END ==="
	BestMenuStart = "=== BEST MENU START ==="
	BestMenuEnd   = "=== BEST MENU END ==="
	FullMenuStart = "=== FULL MENU START ==="
	FullMenuEnd   = "=== FULL MENU END ==="
)

const (
	SafeFallback = "Unable to parse safe menu items. Please try again."
	BestFallback = "Unable to parse recommendations. Please try again."
)

// Sections is the parsed form of one model response.
type Sections struct {
	Safe string `json:"safe_menu"`
	Best string `json:"best_menu"`
	Full string `json:"full_menu"`
}

type markerPair struct {
	section Section
	start   string
	end     string
}

var markerPairs = []markerPair{
	{SectionSafe, SafeMenuStart, SafeMenuEnd},
	{SectionBest, BestMenuStart, BestMenuEnd},
	{SectionFull, FullMenuStart, FullMenuEnd},
}

// ParseSections splits a model response into its safe, best and full sections.
// It never fails: a section whose markers are missing or out of order gets its
// fallback, and the full section falls back to the raw response itself.
func ParseSections(raw string) Sections {
	s, _ := parseSections(raw)
	return s
}

// MissingSections lists the sections of raw that ParseSections had to fill with a
// fallback, in safe, best, full order.
func MissingSections(raw string) []Section {
	_, missing := parseSections(raw)
	return missing
}

func parseSections(raw string) (out Sections, missing []Section) {
	defer func() {
		if r := recover(); r != nil {
			out = Sections{Safe: raw, Best: raw, Full: raw}
			missing = []Section{SectionSafe, SectionBest, SectionFull}
		}
	}()

	for _, p := range markerPairs {
		text, ok := between(raw, p.start, p.end)
		if !ok {
			missing = append(missing, p.section)
			text = fallbackFor(p.section, raw)
		}

		switch p.section {
		case SectionSafe:
			out.Safe = text
		case SectionBest:
			out.Best = text
		case SectionFull:
			out.Full = text
		}
	}

	return out, missing
}

// between returns the trimmed text after the first start marker and before the first
// end marker. Both must exist and the start marker must end at or before the end
// marker begins.
func between(raw, start, end string) (string, bool) {
	i := strings.Index(raw, start)
	j := strings.Index(raw, end)
	if i < 0 || j < 0 || i >= j {
		return "", false
	}

	from := i + len(start)
	if from > j {
		return "", false
	}

	return strings.TrimSpace(raw[from:j]), true
}

func fallbackFor(section Section, raw string) string {
	switch section {
	case SectionSafe:
		return SafeFallback
	case SectionBest:
		return BestFallback
	default:
		return raw
	}
}
