package menu

import "time"

// Menu is an analyzed menu a user chose to keep.
type Menu struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	MenuText        string    `json:"menu_text"`
	SafeMenuContent string    `json:"safe_menu_content,omitempty"`
	BestMenuContent string    `json:"best_menu_content,omitempty"`
	FullMenuContent string    `json:"full_menu_content,omitempty"`
	ImageKey        string    `json:"-"`
	ImageURL        string    `json:"image_url,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}
