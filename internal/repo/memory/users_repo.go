package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/globescholar/scholarhub/internal/domain/user"
	"github.com/globescholar/scholarhub/internal/repo/postgres"
	"github.com/google/uuid"
)

// UsersRepo mirrors the postgres repo over a map. Handler tests run against
// it so they stay hermetic.
type UsersRepo struct {
	mu    sync.RWMutex
	items map[string]user.User
}

func NewUsersRepo() *UsersRepo {
	return &UsersRepo{
		items: make(map[string]user.User),
	}
}

func (r *UsersRepo) Create(ctx context.Context, firstName, lastName, email, passwordHash string) (user.User, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.items {
		if existing.Email == normalized {
			return user.User{}, postgres.ErrEmailAlreadyUsed
		}
	}

	u := user.User{
		ID:           uuid.NewString(),
		FirstName:    firstName,
		LastName:     lastName,
		Email:        normalized,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}

	r.items[u.ID] = u

	return u, nil
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.items {
		if u.Email == normalized {
			return u, nil
		}
	}

	return user.User{}, user.ErrNotFound
}

func (r *UsersRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.items[id]

	if !ok {
		return user.User{}, user.ErrNotFound
	}

	return u, nil
}
