package stores

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Ankitshukla6121/pizzapal/models"
)

// MongoUserStore persists users in a Mongo collection.
type MongoUserStore struct {
	collection *mongo.Collection
}

var _ UserStore = (*MongoUserStore)(nil)

// NewUserStore creates a user store over the given collection.
func NewUserStore(collection *mongo.Collection) *MongoUserStore {
	return &MongoUserStore{collection: collection}
}

// EnsureIndexes creates the unique index on email that backs the
// duplicate-registration check.
func (s *MongoUserStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create email index: %w", err)
	}
	return nil
}

// Create inserts a new user and returns its generated id. Returns
// ErrDuplicateEmail if the email is already taken.
func (s *MongoUserStore) Create(ctx context.Context, user models.User) (primitive.ObjectID, error) {
	result, err := s.collection.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, ErrDuplicateEmail
		}
		return primitive.NilObjectID, fmt.Errorf("insert user: %w", err)
	}
	return result.InsertedID.(primitive.ObjectID), nil
}

// FindByEmail fetches a user by email. Returns (nil, nil) if not found.
func (s *MongoUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &user, nil
}

// FindByID fetches a user by id. Returns (nil, nil) if not found.
func (s *MongoUserStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return &user, nil
}
