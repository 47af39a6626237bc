package ocr

import (
	"context"
	"sort"
	"sync"
	"time"
)

type InMemoryRepository struct {
	mu     sync.Mutex
	scans  map[int64]*Scan
	nextID int64
	now    func() time.Time
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		scans: make(map[int64]*Scan),
		now:   time.Now,
	}
}

func (r *InMemoryRepository) Create(ctx context.Context, scan *Scan) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	scan.ID = r.nextID
	if scan.Status == "" {
		scan.Status = StatusUploaded
	}
	// strictly increasing so claim order is stable within one clock tick
	scan.CreatedAt = r.now().Add(time.Duration(scan.ID))
	scan.UpdatedAt = scan.CreatedAt

	cp := *scan
	r.scans[scan.ID] = &cp
	return nil
}

func (r *InMemoryRepository) Get(ctx context.Context, id int64) (*Scan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.scans[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *InMemoryRepository) ClaimNext(ctx context.Context) (*Scan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var pending []*Scan
	for _, s := range r.scans {
		if s.Status == StatusUploaded {
			pending = append(pending, s)
		}
	}
	if len(pending) == 0 {
		return nil, nil
	}

	sort.Slice(pending, func(i, j int) bool {
		return pending[i].CreatedAt.Before(pending[j].CreatedAt)
	})

	s := pending[0]
	s.Status = StatusProcessing
	s.Attempts++
	s.UpdatedAt = r.now()

	cp := *s
	return &cp, nil
}

func (r *InMemoryRepository) MarkDone(ctx context.Context, id int64, text string) error {
	return r.update(id, func(s *Scan) {
		s.Status = StatusDone
		s.Text = text
		s.Error = ""
	})
}

func (r *InMemoryRepository) MarkFailed(ctx context.Context, id int64, reason string) error {
	return r.update(id, func(s *Scan) {
		s.Status = StatusFailed
		s.Error = reason
	})
}

func (r *InMemoryRepository) ResetForRetry(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.scans[id]
	if !ok {
		return ErrNotFound
	}
	if s.Status != StatusFailed {
		return ErrNotRetryable
	}
	s.Status = StatusUploaded
	s.Error = ""
	s.UpdatedAt = r.now()
	return nil
}

func (r *InMemoryRepository) update(id int64, fn func(*Scan)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.scans[id]
	if !ok {
		return ErrNotFound
	}
	fn(s)
	s.UpdatedAt = r.now()
	return nil
}
