package menu

import (
	"context"
	"sort"
	"sync"
)

type InMemoryRepository struct {
	mu    sync.RWMutex
	menus map[string]Menu
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{menus: make(map[string]Menu)}
}

func (r *InMemoryRepository) Create(ctx context.Context, m *Menu) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.menus[m.ID] = *m
	return nil
}

func (r *InMemoryRepository) Get(ctx context.Context, id string) (*Menu, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.menus[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &m, nil
}

func (r *InMemoryRepository) ListByUser(ctx context.Context, userID string) ([]Menu, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	menus := []Menu{}
	for _, m := range r.menus {
		if m.UserID == userID {
			menus = append(menus, m)
		}
	}
	sort.Slice(menus, func(i, j int) bool {
		return menus[i].CreatedAt.After(menus[j].CreatedAt)
	})
	return menus, nil
}

func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.menus[id]; !ok {
		return ErrNotFound
	}
	delete(r.menus, id)
	return nil
}
