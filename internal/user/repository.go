package user

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

// Sentinel storage results. Callers switch on these explicitly; lookups never
// panic or hide the distinction between a missing document and a malformed id.
var (
	ErrNotFound       = errors.New("user not found")
	ErrInvalidID      = errors.New("malformed user id")
	ErrDuplicateEmail = errors.New("email already registered")
)

// Repository persists users.
type Repository interface {
	Create(ctx context.Context, u User) (User, error)
	FindAll(ctx context.Context) ([]User, error)
	FindByID(ctx context.Context, id string) (User, error)
	FindByEmail(ctx context.Context, email string) (User, error)
	Update(ctx context.Context, id string, upd Update) (User, error)
}

// userDoc is the MongoDB document shape for a user.
type userDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Email     string             `bson:"email"`
	Password  []byte             `bson:"password"`
	Name      string             `bson:"name"`
	About     string             `bson:"about"`
	Avatar    string             `bson:"avatar"`
	CreatedAt time.Time          `bson:"createdAt"`
}

func (d userDoc) toUser() User {
	return User{
		ID:           d.ID.Hex(),
		Email:        d.Email,
		PasswordHash: d.Password,
		Name:         d.Name,
		About:        d.About,
		Avatar:       d.Avatar,
		CreatedAt:    d.CreatedAt,
	}
}

// MongoRepository implements Repository backed by a MongoDB collection.
type MongoRepository struct {
	users *mongo.Collection
}

// NewMongoRepository builds a Mongo-backed user repository.
func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{users: db.Collection("users")}
}

// EnsureIndexes creates the unique email index backing the duplicate check.
func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create email index: %w", err)
	}
	return nil
}

// Create inserts a new user and reports ErrDuplicateEmail on a unique index
// violation.
func (r *MongoRepository) Create(ctx context.Context, u User) (User, error) {
	doc := userDoc{
		ID:        primitive.NewObjectID(),
		Email:     u.Email,
		Password:  u.PasswordHash,
		Name:      u.Name,
		About:     u.About,
		Avatar:    u.Avatar,
		CreatedAt: time.Now().UTC(),
	}

	if _, err := r.users.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return User{}, ErrDuplicateEmail
		}
		return User{}, fmt.Errorf("insert user: %w", err)
	}

	return doc.toUser(), nil
}

// FindAll returns every registered user.
func (r *MongoRepository) FindAll(ctx context.Context) ([]User, error) {
	cursor, err := r.users.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []userDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}

	users := make([]User, 0, len(docs))
	for _, d := range docs {
		users = append(users, d.toUser())
	}
	return users, nil
}

// FindByID fetches a user by its hex identifier. A structurally invalid id
// yields ErrInvalidID, a missing document ErrNotFound.
func (r *MongoRepository) FindByID(ctx context.Context, id string) (User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return User{}, ErrInvalidID
	}

	var doc userDoc
	if err := r.users.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return User{}, ErrNotFound
		}
		return User{}, fmt.Errorf("find user: %w", err)
	}

	return doc.toUser(), nil
}

// FindByEmail fetches a user by email, hash included, for credential checks.
func (r *MongoRepository) FindByEmail(ctx context.Context, email string) (User, error) {
	var doc userDoc
	if err := r.users.FindOne(ctx, bson.M{"email": email}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return User{}, ErrNotFound
		}
		return User{}, fmt.Errorf("find user by email: %w", err)
	}

	return doc.toUser(), nil
}

// Update applies a partial profile change and returns the updated user.
func (r *MongoRepository) Update(ctx context.Context, id string, upd Update) (User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return User{}, ErrInvalidID
	}

	set := bson.M{}
	if upd.Name != nil {
		set["name"] = *upd.Name
	}
	if upd.About != nil {
		set["about"] = *upd.About
	}
	if upd.Avatar != nil {
		set["avatar"] = *upd.Avatar
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc userDoc
	err = r.users.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return User{}, ErrNotFound
		}
		return User{}, fmt.Errorf("update user: %w", err)
	}

	return doc.toUser(), nil
}
