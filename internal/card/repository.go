package card

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Sentinel storage results, switched on explicitly by callers.
var (
	ErrNotFound  = errors.New("card not found")
	ErrInvalidID = errors.New("malformed card id")
)

// Repository persists cards. AddLike and RemoveLike have set semantics: a
// repeated like by the same user leaves the likes unchanged.
type Repository interface {
	Create(ctx context.Context, c Card) (Card, error)
	FindAll(ctx context.Context) ([]Card, error)
	FindByID(ctx context.Context, id string) (Card, error)
	Delete(ctx context.Context, id string) error
	AddLike(ctx context.Context, cardID, userID string) (Card, error)
	RemoveLike(ctx context.Context, cardID, userID string) (Card, error)
}

// cardDoc is the MongoDB document shape for a card.
type cardDoc struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty"`
	Name      string               `bson:"name"`
	Link      string               `bson:"link"`
	Owner     primitive.ObjectID   `bson:"owner"`
	Likes     []primitive.ObjectID `bson:"likes"`
	CreatedAt time.Time            `bson:"createdAt"`
}

func (d cardDoc) toCard() Card {
	likes := make([]string, 0, len(d.Likes))
	for _, l := range d.Likes {
		likes = append(likes, l.Hex())
	}
	return Card{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		Link:      d.Link,
		Owner:     d.Owner.Hex(),
		Likes:     likes,
		CreatedAt: d.CreatedAt,
	}
}

// MongoRepository implements Repository backed by a MongoDB collection.
type MongoRepository struct {
	cards *mongo.Collection
}

// NewMongoRepository builds a Mongo-backed card repository.
func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{cards: db.Collection("cards")}
}

// Create inserts a new card owned by the given user.
func (r *MongoRepository) Create(ctx context.Context, c Card) (Card, error) {
	owner, err := primitive.ObjectIDFromHex(c.Owner)
	if err != nil {
		return Card{}, ErrInvalidID
	}

	doc := cardDoc{
		ID:        primitive.NewObjectID(),
		Name:      c.Name,
		Link:      c.Link,
		Owner:     owner,
		Likes:     []primitive.ObjectID{},
		CreatedAt: time.Now().UTC(),
	}

	if _, err := r.cards.InsertOne(ctx, doc); err != nil {
		return Card{}, fmt.Errorf("insert card: %w", err)
	}

	return doc.toCard(), nil
}

// FindAll returns every card.
func (r *MongoRepository) FindAll(ctx context.Context) ([]Card, error) {
	cursor, err := r.cards.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("find cards: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []cardDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode cards: %w", err)
	}

	cards := make([]Card, 0, len(docs))
	for _, d := range docs {
		cards = append(cards, d.toCard())
	}
	return cards, nil
}

// FindByID fetches a card by its hex identifier.
func (r *MongoRepository) FindByID(ctx context.Context, id string) (Card, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return Card{}, ErrInvalidID
	}

	var doc cardDoc
	if err := r.cards.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Card{}, ErrNotFound
		}
		return Card{}, fmt.Errorf("find card: %w", err)
	}

	return doc.toCard(), nil
}

// Delete removes a card.
func (r *MongoRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	res, err := r.cards.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete card: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// AddLike adds the user to the card's likes set ($addToSet) and returns the
// updated card.
func (r *MongoRepository) AddLike(ctx context.Context, cardID, userID string) (Card, error) {
	return r.updateLikes(ctx, cardID, userID, "$addToSet")
}

// RemoveLike removes the user from the card's likes set ($pull) and returns
// the updated card.
func (r *MongoRepository) RemoveLike(ctx context.Context, cardID, userID string) (Card, error) {
	return r.updateLikes(ctx, cardID, userID, "$pull")
}

func (r *MongoRepository) updateLikes(ctx context.Context, cardID, userID, op string) (Card, error) {
	oid, err := primitive.ObjectIDFromHex(cardID)
	if err != nil {
		return Card{}, ErrInvalidID
	}
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return Card{}, ErrInvalidID
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc cardDoc
	err = r.cards.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{op: bson.M{"likes": uid}}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Card{}, ErrNotFound
		}
		return Card{}, fmt.Errorf("update likes: %w", err)
	}

	return doc.toCard(), nil
}
