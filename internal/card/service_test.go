package card

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestCard(t *testing.T, svc *Service, owner string) Card {
	t.Helper()
	c, err := svc.Create(context.Background(), CreateInput{
		Name:  "Lago di Braies",
		Link:  "https://example.com/braies.png",
		Owner: owner,
	})
	require.NoError(t, err)
	return c
}

func TestCreateAndList(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	owner := primitive.NewObjectID().Hex()

	created := newTestCard(t, svc, owner)
	require.Equal(t, owner, created.Owner)
	require.Empty(t, created.Likes)

	cards, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, cards, 1)
	require.Equal(t, created.ID, cards[0].ID)
}

func TestDeleteEnforcesOwnership(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()
	owner := primitive.NewObjectID().Hex()
	stranger := primitive.NewObjectID().Hex()

	c := newTestCard(t, svc, owner)

	err := svc.Delete(ctx, c.ID, stranger)
	require.ErrorIs(t, err, ErrNotOwner)

	// The failed delete must leave the card untouched.
	still, err := svc.repo.FindByID(ctx, c.ID)
	require.NoError(t, err)
	require.Equal(t, c.ID, still.ID)

	require.NoError(t, svc.Delete(ctx, c.ID, owner))

	_, err = svc.repo.FindByID(ctx, c.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestLikeIsIdempotent(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()
	owner := primitive.NewObjectID().Hex()
	fan := primitive.NewObjectID().Hex()

	c := newTestCard(t, svc, owner)

	liked, err := svc.Like(ctx, c.ID, fan)
	require.NoError(t, err)
	require.Equal(t, []string{fan}, liked.Likes)

	liked, err = svc.Like(ctx, c.ID, fan)
	require.NoError(t, err)
	require.Equal(t, []string{fan}, liked.Likes)

	unliked, err := svc.Unlike(ctx, c.ID, fan)
	require.NoError(t, err)
	require.Empty(t, unliked.Likes)

	// Unliking a card you never liked is a no-op too.
	unliked, err = svc.Unlike(ctx, c.ID, fan)
	require.NoError(t, err)
	require.Empty(t, unliked.Likes)
}

func TestLookupSentinels(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()
	caller := primitive.NewObjectID().Hex()

	err := svc.Delete(ctx, "not-a-hex-id", caller)
	require.ErrorIs(t, err, ErrInvalidID)

	err = svc.Delete(ctx, primitive.NewObjectID().Hex(), caller)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Like(ctx, primitive.NewObjectID().Hex(), caller)
	require.ErrorIs(t, err, ErrNotFound)
}
