package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents one account. The password field holds a bcrypt hash and
// is never serialized to JSON.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password" json:"-"`
	Name      string             `bson:"name" json:"name"`
	Currency  string             `bson:"currency" json:"currency"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// DefaultCurrency is assigned to new accounts that do not specify one.
const DefaultCurrency = "Ks"
