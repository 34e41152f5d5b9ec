package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/globescholar/scholarhub/internal/domain/scholarship"
)

type ScholarshipsRepo struct {
	mu    sync.RWMutex
	items map[string]scholarship.Saved

	// monotonic counter so list order is deterministic even when two
	// creates land on the same wall-clock instant
	seq   int
	order map[string]int
}

func NewScholarshipsRepo() *ScholarshipsRepo {
	return &ScholarshipsRepo{
		items: make(map[string]scholarship.Saved),
		order: make(map[string]int),
	}
}

func (r *ScholarshipsRepo) Create(ctx context.Context, userID string, req scholarship.CreateRequest) (scholarship.Saved, error) {
	s := scholarship.NewFromCreateRequest(userID, req)

	r.mu.Lock()
	r.seq++
	r.items[s.ID] = s
	r.order[s.ID] = r.seq
	r.mu.Unlock()

	return s, nil
}

func (r *ScholarshipsRepo) ListByUser(ctx context.Context, userID string) ([]scholarship.Saved, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]scholarship.Saved, 0)

	for _, s := range r.items {
		if s.UserID == userID {
			out = append(out, s)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return r.order[out[i].ID] > r.order[out[j].ID]
	})

	return out, nil
}

func (r *ScholarshipsRepo) Delete(ctx context.Context, userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.items[id]

	if !ok || s.UserID != userID {
		return scholarship.ErrNotFound
	}

	delete(r.items, id)
	delete(r.order, id)

	return nil
}

// SetCreatedAt backdates a record; list-order tests need distinct timestamps.
func (r *ScholarshipsRepo) SetCreatedAt(id string, at time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.items[id]; ok {
		s.CreatedAt = at
		r.items[id] = s
	}
}
