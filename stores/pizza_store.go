package stores

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Ankitshukla6121/pizzapal/models"
)

// MongoPizzaStore persists catalog entries in a Mongo collection.
type MongoPizzaStore struct {
	collection *mongo.Collection
}

var _ PizzaStore = (*MongoPizzaStore)(nil)

// NewPizzaStore creates a pizza store over the given collection.
func NewPizzaStore(collection *mongo.Collection) *MongoPizzaStore {
	return &MongoPizzaStore{collection: collection}
}

// Insert adds a new catalog entry and returns its generated id.
func (s *MongoPizzaStore) Insert(ctx context.Context, pizza models.Pizza) (primitive.ObjectID, error) {
	result, err := s.collection.InsertOne(ctx, pizza)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert pizza: %w", err)
	}
	return result.InsertedID.(primitive.ObjectID), nil
}

// FindAll returns every catalog entry.
func (s *MongoPizzaStore) FindAll(ctx context.Context) ([]models.Pizza, error) {
	cursor, err := s.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find pizzas: %w", err)
	}
	defer cursor.Close(ctx)

	var pizzas []models.Pizza
	for cursor.Next(ctx) {
		var pizza models.Pizza
		if err := cursor.Decode(&pizza); err != nil {
			return nil, fmt.Errorf("decode pizza: %w", err)
		}
		pizzas = append(pizzas, pizza)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("read pizzas: %w", err)
	}
	return pizzas, nil
}
