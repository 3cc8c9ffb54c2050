package user

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type memoryRepository struct {
	mu      sync.RWMutex
	byID    map[string]User
	byEmail map[string]string
}

// NewMemoryRepository builds an in-memory user store for testing. Identifiers
// keep the 24 character hex shape of real document ids.
func NewMemoryRepository() Repository {
	return &memoryRepository{
		byID:    make(map[string]User),
		byEmail: make(map[string]string),
	}
}

func (r *memoryRepository) Create(_ context.Context, u User) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[u.Email]; exists {
		return User{}, ErrDuplicateEmail
	}

	u.ID = primitive.NewObjectID().Hex()
	u.CreatedAt = time.Now().UTC()
	r.byID[u.ID] = u
	r.byEmail[u.Email] = u.ID
	return u, nil
}

func (r *memoryRepository) FindAll(_ context.Context) ([]User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]User, 0, len(r.byID))
	for _, u := range r.byID {
		users = append(users, u)
	}
	return users, nil
}

func (r *memoryRepository) FindByID(_ context.Context, id string) (User, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return User{}, ErrInvalidID
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

func (r *memoryRepository) FindByEmail(_ context.Context, email string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return User{}, ErrNotFound
	}
	return r.byID[id], nil
}

func (r *memoryRepository) Update(_ context.Context, id string, upd Update) (User, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return User{}, ErrInvalidID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok {
		return User{}, ErrNotFound
	}

	if upd.Name != nil {
		u.Name = *upd.Name
	}
	if upd.About != nil {
		u.About = *upd.About
	}
	if upd.Avatar != nil {
		u.Avatar = *upd.Avatar
	}

	r.byID[id] = u
	return u, nil
}
