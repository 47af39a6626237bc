package profile

import (
	"encoding/json"
	"strings"
	"time"
)

// Language a user can pick for translated menu analyses.
type Language struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Profile is a user's dietary profile.
//
// Allergies and dietary restrictions make a dish unsafe, dislikes make it a
// caution, preferences drive recommendations.
type Profile struct {
	UserID                string    `json:"user_id"`
	PreferredLanguageID   string    `json:"preferred_language_id"`
	PreferredLanguageName string    `json:"preferred_language_name,omitempty"`
	Allergies             []string  `json:"allergies"`
	DietaryRestrictions   []string  `json:"dietary_restrictions"`
	Dislikes              []string  `json:"dislikes"`
	Preferences           []string  `json:"preferences"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// Language returns the display name of the preferred language, falling back to its ID.
func (p *Profile) Language() string {
	if p.PreferredLanguageName != "" {
		return p.PreferredLanguageName
	}
	return p.PreferredLanguageID
}

// NormalizeTags trims every tag, drops empty ones and removes case-insensitive
// duplicates, keeping the first spelling. The result is never nil.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))

	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		key := strings.ToLower(t)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, t)
	}
	return out
}

// SplitTags parses the comma-separated form older clients send ("peanuts, shellfish").
func SplitTags(s string) []string {
	return NormalizeTags(strings.Split(s, ","))
}

// TagList accepts either a JSON array of strings or one comma-separated string.
type TagList []string

func (t *TagList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*t = NormalizeTags(list)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*t = SplitTags(s)
	return nil
}
