package models

import (
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Deposit is one entry in a goal's embedded deposit array. Deposits have no
// life outside their goal: they are appended or removed by id, never updated.
type Deposit struct {
	ID     primitive.ObjectID `bson:"_id" json:"id"`
	Amount float64            `bson:"amount" json:"amount"`
	Note   string             `bson:"note" json:"note"`
	Date   time.Time          `bson:"date" json:"date"`
}

// SavingGoal represents one saving goal per user with its embedded deposits.
// Insertion order of Deposits is entry order, not deposit date order.
type SavingGoal struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID       primitive.ObjectID `bson:"userId" json:"userId"`
	Name         string             `bson:"name" json:"name"`
	TargetAmount float64            `bson:"targetAmount" json:"targetAmount"`
	EndDate      time.Time          `bson:"endDate" json:"endDate"`
	Deposits     []Deposit          `bson:"deposits" json:"deposits"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// TotalSaved sums the current deposit amounts. The value is never stored;
// recomputing it on every read keeps it from drifting out of sync with the
// deposit array.
func (g *SavingGoal) TotalSaved() float64 {
	var total float64
	for _, d := range g.Deposits {
		total += d.Amount
	}
	return total
}

// MarshalJSON includes the computed totalSaved field in every serialized goal.
func (g SavingGoal) MarshalJSON() ([]byte, error) {
	type alias SavingGoal
	return json.Marshal(struct {
		alias
		TotalSaved float64 `json:"totalSaved"`
	}{
		alias:      alias(g),
		TotalSaved: g.TotalSaved(),
	})
}

// GoalPatch carries the fields of a partial goal update. Nil fields are left
// untouched and are not validated; deposits are never part of a patch.
type GoalPatch struct {
	Name         *string
	TargetAmount *float64
	EndDate      *time.Time
}
