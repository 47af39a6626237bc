package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DefaultLanguages seeds the language picker on first start.
var DefaultLanguages = [][2]string{
	{"en", "English"},
	{"fr", "French"},
	{"es", "Spanish"},
	{"ar", "Arabic"},
	{"zh", "Chinese"},
	{"hi", "Hindi"},
	{"ur", "Urdu"},
}

var schema = []struct {
	name string
	sql  string
}{
	// -------------------------------
	// USERS
	// -------------------------------
	{"users", `
		CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) UNIQUE NOT NULL,
			password VARCHAR(255) NOT NULL,
			role VARCHAR(50) NOT NULL DEFAULT 'USER',
			onboarding_status VARCHAR(20) NOT NULL DEFAULT 'PENDING',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`},
	{"users.onboarding_status", `
		ALTER TABLE users
		ADD COLUMN IF NOT EXISTS onboarding_status VARCHAR(20) NOT NULL DEFAULT 'PENDING'
	`},

	// -------------------------------
	// LANGUAGES + PROFILES
	// -------------------------------
	{"languages", `
		CREATE TABLE IF NOT EXISTS languages (
			id VARCHAR(10) PRIMARY KEY,
			name VARCHAR(100) NOT NULL
		)
	`},
	{"user_profiles", `
		CREATE TABLE IF NOT EXISTS user_profiles (
			user_id UUID PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
			preferred_language VARCHAR(10) NOT NULL REFERENCES languages(id),
			allergies TEXT[] NOT NULL DEFAULT '{}',
			dietary_restrictions TEXT[] NOT NULL DEFAULT '{}',
			dislikes TEXT[] NOT NULL DEFAULT '{}',
			preferences TEXT[] NOT NULL DEFAULT '{}',
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`},

	// -------------------------------
	// MENU SCANS (OCR queue)
	// -------------------------------
	{"menu_scans", `
		CREATE TABLE IF NOT EXISTS menu_scans (
			id BIGSERIAL PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			image_key VARCHAR(500) NOT NULL,
			image_url VARCHAR(1000) NOT NULL,
			original_filename VARCHAR(255) NOT NULL DEFAULT '',
			content_type VARCHAR(100) NOT NULL DEFAULT '',
			status VARCHAR(50) NOT NULL DEFAULT 'MENU_UPLOADED',
			ocr_text TEXT NULL,
			ocr_error TEXT NULL,
			attempts INT NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`},
	{"menu_scans_pending_idx", `
		CREATE INDEX IF NOT EXISTS menu_scans_pending_idx
		ON menu_scans (created_at)
		WHERE status = 'MENU_UPLOADED'
	`},

	// -------------------------------
	// SAVED MENUS
	// -------------------------------
	{"menus", `
		CREATE TABLE IF NOT EXISTS menus (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			menu_text TEXT NOT NULL,
			safe_menu_content TEXT NULL,
			best_menu_content TEXT NULL,
			full_menu_content TEXT NULL,
			image_key VARCHAR(500) NULL,
			image_url VARCHAR(1000) NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`},
	{"menus_user_idx", `
		CREATE INDEX IF NOT EXISTS menus_user_idx ON menus (user_id, created_at DESC)
	`},
}

// InitSchema creates or updates the database schema and seeds languages.
func InitSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt.sql); err != nil {
			return fmt.Errorf("schema %s: %w", stmt.name, err)
		}
	}

	for _, lang := range DefaultLanguages {
		_, err := pool.Exec(ctx, `
			INSERT INTO languages (id, name) VALUES ($1, $2)
			ON CONFLICT (id) DO NOTHING
		`, lang[0], lang[1])
		if err != nil {
			return fmt.Errorf("seed language %s: %w", lang[0], err)
		}
	}

	return nil
}
