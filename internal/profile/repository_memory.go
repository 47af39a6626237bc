package profile

import (
	"context"
	"sort"
	"sync"
	"time"
)

type InMemoryRepository struct {
	mu        sync.RWMutex
	languages map[string]Language
	profiles  map[string]*Profile
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		languages: make(map[string]Language),
		profiles:  make(map[string]*Profile),
	}
}

func (r *InMemoryRepository) ListLanguages(ctx context.Context) ([]Language, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Language, 0, len(r.languages))
	for _, l := range r.languages {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *InMemoryRepository) GetLanguage(ctx context.Context, id string) (*Language, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.languages[id]
	if !ok {
		return nil, ErrUnknownLanguage
	}
	return &l, nil
}

func (r *InMemoryRepository) UpsertLanguage(ctx context.Context, lang Language) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.languages[lang.ID] = lang
	return nil
}

func (r *InMemoryRepository) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.profiles[userID]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	if l, ok := r.languages[p.PreferredLanguageID]; ok {
		cp.PreferredLanguageName = l.Name
	}
	return &cp, nil
}

func (r *InMemoryRepository) UpsertProfile(ctx context.Context, p *Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p.UpdatedAt = time.Now()
	cp := *p
	r.profiles[p.UserID] = &cp
	return nil
}
