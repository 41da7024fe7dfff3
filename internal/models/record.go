package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Record is one expense or income entry. Both collections share the same
// shape; the only difference is that expenses require a category while
// income may leave it empty.
type Record struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Amount    float64            `bson:"amount" json:"amount"`
	Category  string             `bson:"category" json:"category"`
	Note      string             `bson:"note" json:"note"`
	Date      time.Time          `bson:"date" json:"date"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// RecordPatch carries the fields of a partial record update. Nil fields are
// left untouched.
type RecordPatch struct {
	Amount   *float64
	Category *string
	Note     *string
	Date     *time.Time
}
