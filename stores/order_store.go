package stores

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Ankitshukla6121/pizzapal/models"
)

// MongoOrderStore persists orders in a Mongo collection.
type MongoOrderStore struct {
	collection *mongo.Collection
}

var _ OrderStore = (*MongoOrderStore)(nil)

// NewOrderStore creates an order store over the given collection.
func NewOrderStore(collection *mongo.Collection) *MongoOrderStore {
	return &MongoOrderStore{collection: collection}
}

// Insert adds a new order and returns its generated id. Status and
// creation time are filled in if the caller left them empty.
func (s *MongoOrderStore) Insert(ctx context.Context, order models.Order) (primitive.ObjectID, error) {
	if order.Status == "" {
		order.Status = models.OrderStatusPending
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}

	result, err := s.collection.InsertOne(ctx, order)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert order: %w", err)
	}
	return result.InsertedID.(primitive.ObjectID), nil
}

// FindByUser returns all orders placed by the given user, newest
// first.
func (s *MongoOrderStore) FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := s.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find orders: %w", err)
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	for cursor.Next(ctx) {
		var order models.Order
		if err := cursor.Decode(&order); err != nil {
			return nil, fmt.Errorf("decode order: %w", err)
		}
		orders = append(orders, order)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("read orders: %w", err)
	}
	return orders, nil
}
