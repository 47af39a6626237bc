package menu

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

const menuColumns = `
	id, user_id, menu_text,
	COALESCE(safe_menu_content, ''), COALESCE(best_menu_content, ''), COALESCE(full_menu_content, ''),
	COALESCE(image_key, ''), COALESCE(image_url, ''), created_at
`

func scanMenu(row pgx.Row, m *Menu) error {
	return row.Scan(
		&m.ID, &m.UserID, &m.MenuText,
		&m.SafeMenuContent, &m.BestMenuContent, &m.FullMenuContent,
		&m.ImageKey, &m.ImageURL, &m.CreatedAt,
	)
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (r *PostgresRepository) Create(ctx context.Context, m *Menu) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO menus (
			id, user_id, menu_text,
			safe_menu_content, best_menu_content, full_menu_content,
			image_key, image_url
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at
	`,
		m.ID, m.UserID, m.MenuText,
		nullable(m.SafeMenuContent), nullable(m.BestMenuContent), nullable(m.FullMenuContent),
		nullable(m.ImageKey), nullable(m.ImageURL),
	).Scan(&m.CreatedAt)
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*Menu, error) {
	var m Menu
	err := scanMenu(r.db.QueryRow(ctx, `SELECT `+menuColumns+` FROM menus WHERE id = $1`, id), &m)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]Menu, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+menuColumns+`
		FROM menus
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	menus := []Menu{}
	for rows.Next() {
		var m Menu
		if err := scanMenu(rows, &m); err != nil {
			return nil, err
		}
		menus = append(menus, m)
	}
	return menus, rows.Err()
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM menus WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
