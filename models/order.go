package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderStatusPending is the status every new order starts in.
const OrderStatusPending = "Pending"

// Order records a pizza order. Ownership is keyed on UserID;
// CustomerName is display-only and not unique. PizzaID is a plain
// back-reference to a catalog entry; no foreign-key enforcement
// exists.
type Order struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID       primitive.ObjectID `bson:"user_id" json:"user_id"`
	CustomerName string             `bson:"customer_name" json:"customer_name"`
	PizzaID      primitive.ObjectID `bson:"pizza_id" json:"pizza_id"`
	Address      string             `bson:"address" json:"address"`
	Phone        string             `bson:"phone" json:"phone"`
	Status       string             `bson:"status" json:"status"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
}
