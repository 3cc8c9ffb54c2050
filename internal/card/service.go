package card

import (
	"context"
	"errors"
)

// ErrNotOwner is returned when a caller mutates a card owned by someone else.
var ErrNotOwner = errors.New("card owned by another user")

// Service manages card lifecycle and enforces ownership on deletion.
type Service struct {
	repo Repository
}

// NewService creates a card service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateInput carries a validated card creation payload.
type CreateInput struct {
	Name  string
	Link  string
	Owner string
}

// Create stores a new card owned by the caller.
func (s *Service) Create(ctx context.Context, in CreateInput) (Card, error) {
	return s.repo.Create(ctx, Card{Name: in.Name, Link: in.Link, Owner: in.Owner})
}

// List returns all cards.
func (s *Service) List(ctx context.Context) ([]Card, error) {
	return s.repo.FindAll(ctx)
}

// Delete removes a card after checking that the caller owns it. The card is
// left untouched when the owner differs.
func (s *Service) Delete(ctx context.Context, cardID, callerID string) error {
	c, err := s.repo.FindByID(ctx, cardID)
	if err != nil {
		return err
	}

	if c.Owner != callerID {
		return ErrNotOwner
	}

	return s.repo.Delete(ctx, cardID)
}

// Like adds the caller to the card's likes set.
func (s *Service) Like(ctx context.Context, cardID, callerID string) (Card, error) {
	return s.repo.AddLike(ctx, cardID, callerID)
}

// Unlike removes the caller from the card's likes set.
func (s *Service) Unlike(ctx context.Context, cardID, callerID string) (Card, error) {
	return s.repo.RemoveLike(ctx, cardID, callerID)
}
