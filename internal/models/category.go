package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CategoryList holds one user's ordered category labels. The same shape backs
// both the expense category collection and the income category collection;
// each user has at most one document per collection.
type CategoryList struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID     primitive.ObjectID `bson:"userId" json:"userId"`
	Categories []string           `bson:"categories" json:"categories"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}
