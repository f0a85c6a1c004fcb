package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Pizza is a catalog entry. This is the single authoritative shape for
// the catalog; both the price/description and ingredients variants that
// existed historically are folded into it.
type Pizza struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name        string             `bson:"name" json:"name"`
	Price       float64            `bson:"price" json:"price"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Ingredients []string           `bson:"ingredients,omitempty" json:"ingredients,omitempty"`
}
