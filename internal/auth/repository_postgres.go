package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresUserRepository struct {
	db *pgxpool.Pool
}

func NewPostgresUserRepository(db *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) Save(ctx context.Context, user *User) error {
	// Generate UUID if not already set
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.OnboardingStatus == "" {
		user.OnboardingStatus = OnboardingPending
	}

	return r.db.QueryRow(ctx, `
		INSERT INTO users (id, name, email, password, role, onboarding_status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`,
		user.ID, user.Name, user.Email, user.Password, user.Role, user.OnboardingStatus,
	).Scan(&user.CreatedAt)
}

func (r *PostgresUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)
	`, email).Scan(&exists)
	return exists, err
}

func (r *PostgresUserRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	return r.findOne(ctx, `
		SELECT id, name, email, password, role, onboarding_status, created_at
		FROM users WHERE email = $1
	`, email)
}

func (r *PostgresUserRepository) FindByID(ctx context.Context, id string) (*User, error) {
	return r.findOne(ctx, `
		SELECT id, name, email, password, role, onboarding_status, created_at
		FROM users WHERE id = $1
	`, id)
}

func (r *PostgresUserRepository) findOne(ctx context.Context, query string, arg string) (*User, error) {
	user := &User{}
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Password,
		&user.Role,
		&user.OnboardingStatus,
		&user.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// --------------------------------------------------
// Onboarding Status
// --------------------------------------------------

func (r *PostgresUserRepository) GetOnboardingStatus(
	ctx context.Context,
	userID string,
) (string, error) {

	var status *string

	err := r.db.QueryRow(ctx, `
		SELECT onboarding_status
		FROM users
		WHERE id = $1
	`, userID).Scan(&status)

	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrUserNotFound
	}
	if err != nil {
		return "", err
	}

	if status == nil {
		return OnboardingPending, nil
	}

	return *status, nil
}

func (r *PostgresUserRepository) UpdateOnboardingStatus(
	ctx context.Context,
	userID string,
	status string,
) error {

	cmd, err := r.db.Exec(ctx, `
		UPDATE users
		SET onboarding_status = $1
		WHERE id = $2
	`, status, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}
