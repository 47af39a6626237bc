package menu

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("menu not found")

// Repository defines all database operations for saved menus
type Repository interface {
	Create(ctx context.Context, m *Menu) error
	Get(ctx context.Context, id string) (*Menu, error)
	// ListByUser returns the user's menus, newest first
	ListByUser(ctx context.Context, userID string) ([]Menu, error)
	Delete(ctx context.Context, id string) error
}
