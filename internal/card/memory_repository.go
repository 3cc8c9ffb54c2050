package card

import (
	"context"
	"slices"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type memoryRepository struct {
	mu    sync.RWMutex
	cards map[string]Card
}

// NewMemoryRepository builds an in-memory card store for testing.
func NewMemoryRepository() Repository {
	return &memoryRepository{cards: make(map[string]Card)}
}

func (r *memoryRepository) Create(_ context.Context, c Card) (Card, error) {
	if _, err := primitive.ObjectIDFromHex(c.Owner); err != nil {
		return Card{}, ErrInvalidID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	c.ID = primitive.NewObjectID().Hex()
	c.Likes = []string{}
	c.CreatedAt = time.Now().UTC()
	r.cards[c.ID] = c
	return c, nil
}

func (r *memoryRepository) FindAll(_ context.Context) ([]Card, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cards := make([]Card, 0, len(r.cards))
	for _, c := range r.cards {
		cards = append(cards, c)
	}
	return cards, nil
}

func (r *memoryRepository) FindByID(_ context.Context, id string) (Card, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return Card{}, ErrInvalidID
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.cards[id]
	if !ok {
		return Card{}, ErrNotFound
	}
	return c, nil
}

func (r *memoryRepository) Delete(_ context.Context, id string) error {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return ErrInvalidID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.cards[id]; !ok {
		return ErrNotFound
	}
	delete(r.cards, id)
	return nil
}

func (r *memoryRepository) AddLike(_ context.Context, cardID, userID string) (Card, error) {
	return r.updateLikes(cardID, userID, true)
}

func (r *memoryRepository) RemoveLike(_ context.Context, cardID, userID string) (Card, error) {
	return r.updateLikes(cardID, userID, false)
}

func (r *memoryRepository) updateLikes(cardID, userID string, add bool) (Card, error) {
	if _, err := primitive.ObjectIDFromHex(cardID); err != nil {
		return Card{}, ErrInvalidID
	}
	if _, err := primitive.ObjectIDFromHex(userID); err != nil {
		return Card{}, ErrInvalidID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.cards[cardID]
	if !ok {
		return Card{}, ErrNotFound
	}

	idx := slices.Index(c.Likes, userID)
	switch {
	case add && idx < 0:
		c.Likes = append(c.Likes, userID)
	case !add && idx >= 0:
		c.Likes = slices.Delete(slices.Clone(c.Likes), idx, idx+1)
	}

	r.cards[cardID] = c
	return c, nil
}
