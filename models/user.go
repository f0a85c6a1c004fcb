package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a registered account. Password always holds a bcrypt
// hash, never the plaintext, and is never serialized to clients.
type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name     string             `bson:"name" json:"name"`
	Email    string             `bson:"email" json:"email"`
	Password string             `bson:"password,omitempty" json:"-"`
}
