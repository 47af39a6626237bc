package profile

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListLanguages(ctx context.Context) ([]Language, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name
		FROM languages
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	languages := []Language{}
	for rows.Next() {
		var l Language
		if err := rows.Scan(&l.ID, &l.Name); err != nil {
			return nil, err
		}
		languages = append(languages, l)
	}
	return languages, rows.Err()
}

func (r *PostgresRepository) GetLanguage(ctx context.Context, id string) (*Language, error) {
	var l Language
	err := r.db.QueryRow(ctx, `
		SELECT id, name FROM languages WHERE id = $1
	`, id).Scan(&l.ID, &l.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUnknownLanguage
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *PostgresRepository) UpsertLanguage(ctx context.Context, lang Language) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO languages (id, name)
		VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name
	`, lang.ID, lang.Name)
	return err
}

func (r *PostgresRepository) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	p := &Profile{}
	var languageName *string

	err := r.db.QueryRow(ctx, `
		SELECT
			up.user_id,
			up.preferred_language,
			l.name,
			up.allergies,
			up.dietary_restrictions,
			up.dislikes,
			up.preferences,
			up.updated_at
		FROM user_profiles up
		LEFT JOIN languages l
		  ON l.id = up.preferred_language
		WHERE up.user_id = $1
	`, userID).Scan(
		&p.UserID,
		&p.PreferredLanguageID,
		&languageName,
		&p.Allergies,
		&p.DietaryRestrictions,
		&p.Dislikes,
		&p.Preferences,
		&p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if languageName != nil {
		p.PreferredLanguageName = *languageName
	}
	return p, nil
}

// UpsertProfile creates the profile on first save and replaces every field afterwards.
func (r *PostgresRepository) UpsertProfile(ctx context.Context, p *Profile) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO user_profiles (
			user_id,
			preferred_language,
			allergies,
			dietary_restrictions,
			dislikes,
			preferences,
			updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, now())
		ON CONFLICT (user_id) DO UPDATE SET
			preferred_language   = EXCLUDED.preferred_language,
			allergies            = EXCLUDED.allergies,
			dietary_restrictions = EXCLUDED.dietary_restrictions,
			dislikes             = EXCLUDED.dislikes,
			preferences          = EXCLUDED.preferences,
			updated_at           = now()
		RETURNING updated_at
	`,
		p.UserID,
		p.PreferredLanguageID,
		p.Allergies,
		p.DietaryRestrictions,
		p.Dislikes,
		p.Preferences,
	).Scan(&p.UpdatedAt)
}
