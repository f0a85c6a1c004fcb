package stores

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Ankitshukla6121/pizzapal/models"
)

// ErrDuplicateEmail is returned when creating a user whose email is
// already registered.
var ErrDuplicateEmail = errors.New("email already registered")

// UserStore persists user records.
type UserStore interface {
	Create(ctx context.Context, user models.User) (primitive.ObjectID, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

// PizzaStore persists catalog entries.
type PizzaStore interface {
	Insert(ctx context.Context, pizza models.Pizza) (primitive.ObjectID, error)
	FindAll(ctx context.Context) ([]models.Pizza, error)
}

// OrderStore persists order records.
type OrderStore interface {
	Insert(ctx context.Context, order models.Order) (primitive.ObjectID, error)
	FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error)
}

// Stores bundles the three collections backing the application.
type Stores struct {
	Users  UserStore
	Pizzas PizzaStore
	Orders OrderStore
}

// New wires Mongo-backed stores over the given database.
func New(db *mongo.Database) *Stores {
	return &Stores{
		Users:  NewUserStore(db.Collection("users")),
		Pizzas: NewPizzaStore(db.Collection("pizzas")),
		Orders: NewOrderStore(db.Collection("orders")),
	}
}

// EnsureIndexes creates the indexes the stores rely on. Must succeed
// before the server starts accepting traffic.
func (s *Stores) EnsureIndexes(ctx context.Context) error {
	if us, ok := s.Users.(*MongoUserStore); ok {
		return us.EnsureIndexes(ctx)
	}
	return nil
}
