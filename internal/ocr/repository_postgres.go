package ocr

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

const scanColumns = `
	id, user_id, image_key, image_url, original_filename, content_type,
	status, COALESCE(ocr_text, ''), COALESCE(ocr_error, ''), attempts,
	created_at, updated_at
`

func scanRow(row pgx.Row) (*Scan, error) {
	var s Scan
	err := row.Scan(
		&s.ID, &s.UserID, &s.ImageKey, &s.ImageURL, &s.OriginalFilename, &s.ContentType,
		&s.Status, &s.Text, &s.Error, &s.Attempts,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *PostgresRepository) Create(ctx context.Context, scan *Scan) error {
	if scan.Status == "" {
		scan.Status = StatusUploaded
	}

	return r.db.QueryRow(ctx, `
		INSERT INTO menu_scans (user_id, image_key, image_url, original_filename, content_type, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`,
		scan.UserID, scan.ImageKey, scan.ImageURL, scan.OriginalFilename, scan.ContentType, scan.Status,
	).Scan(&scan.ID, &scan.CreatedAt, &scan.UpdatedAt)
}

func (r *PostgresRepository) Get(ctx context.Context, id int64) (*Scan, error) {
	s, err := scanRow(r.db.QueryRow(ctx, `SELECT `+scanColumns+` FROM menu_scans WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return s, err
}

// ClaimNext locks the oldest pending row with SKIP LOCKED so several workers can
// poll the same table without picking the same scan.
func (r *PostgresRepository) ClaimNext(ctx context.Context) (*Scan, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	s, err := scanRow(tx.QueryRow(ctx, `
		SELECT `+scanColumns+`
		FROM menu_scans
		WHERE status = 'MENU_UPLOADED'
		ORDER BY created_at, id
		LIMIT 1
		FOR UPDATE SKIP LOCKED
	`))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	err = tx.QueryRow(ctx, `
		UPDATE menu_scans
		SET status = 'OCR_PROCESSING', attempts = attempts + 1, updated_at = now()
		WHERE id = $1
		RETURNING attempts, updated_at
	`, s.ID).Scan(&s.Attempts, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	s.Status = StatusProcessing
	return s, nil
}

func (r *PostgresRepository) MarkDone(ctx context.Context, id int64, text string) error {
	return r.exec(ctx, `
		UPDATE menu_scans
		SET status = 'OCR_DONE', ocr_text = $1, ocr_error = NULL, updated_at = now()
		WHERE id = $2
	`, text, id)
}

func (r *PostgresRepository) MarkFailed(ctx context.Context, id int64, reason string) error {
	return r.exec(ctx, `
		UPDATE menu_scans
		SET status = 'OCR_FAILED', ocr_error = $1, updated_at = now()
		WHERE id = $2
	`, reason, id)
}

func (r *PostgresRepository) ResetForRetry(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE menu_scans
		SET status = 'MENU_UPLOADED', ocr_error = NULL, updated_at = now()
		WHERE id = $1 AND status = 'OCR_FAILED'
	`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		if _, err := r.Get(ctx, id); err != nil {
			return err
		}
		return ErrNotRetryable
	}
	return nil
}

func (r *PostgresRepository) exec(ctx context.Context, query string, args ...any) error {
	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
