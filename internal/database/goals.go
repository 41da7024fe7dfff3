package database

import (
	"context"
	"fmt"
	"time"

	"expense-tracker-api/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ListGoals returns all goals owned by the user, newest-created first.
func (db *DB) ListGoals(ctx context.Context, userID primitive.ObjectID) ([]models.SavingGoal, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := db.goals.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch goals: %w", err)
	}
	defer cursor.Close(ctx)

	goals := []models.SavingGoal{}
	if err := cursor.All(ctx, &goals); err != nil {
		return nil, fmt.Errorf("failed to decode goals: %w", err)
	}
	return goals, nil
}

// FindGoal finds a goal by id, scoped to its owner.
func (db *DB) FindGoal(ctx context.Context, id, userID primitive.ObjectID) (*models.SavingGoal, error) {
	var goal models.SavingGoal
	err := db.goals.FindOne(ctx, bson.M{"_id": id, "userId": userID}).Decode(&goal)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find goal: %w", err)
	}
	return &goal, nil
}

// CreateGoal inserts a new goal with an empty deposit array.
func (db *DB) CreateGoal(ctx context.Context, goal *models.SavingGoal) error {
	now := time.Now()
	goal.ID = primitive.NewObjectID()
	goal.Deposits = []models.Deposit{}
	goal.CreatedAt = now
	goal.UpdatedAt = now

	_, err := db.goals.InsertOne(ctx, goal)
	if err != nil {
		return fmt.Errorf("failed to insert goal: %w", err)
	}
	return nil
}

// UpdateGoal applies a partial update to the goal-level fields. Only the
// fields present in the patch are written; the deposit array is untouched.
func (db *DB) UpdateGoal(ctx context.Context, id, userID primitive.ObjectID, patch models.GoalPatch) (*models.SavingGoal, error) {
	set := bson.M{"updatedAt": time.Now()}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.TargetAmount != nil {
		set["targetAmount"] = *patch.TargetAmount
	}
	if patch.EndDate != nil {
		set["endDate"] = *patch.EndDate
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var goal models.SavingGoal
	err := db.goals.FindOneAndUpdate(ctx, bson.M{"_id": id, "userId": userID}, bson.M{"$set": set}, opts).Decode(&goal)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update goal: %w", err)
	}
	return &goal, nil
}

// AddDeposit appends a deposit to the goal's embedded array with a single
// targeted $push. The full document is never read back and rewritten, so
// concurrent appends against the same goal cannot overwrite each other.
func (db *DB) AddDeposit(ctx context.Context, goalID, userID primitive.ObjectID, dep models.Deposit) (*models.SavingGoal, error) {
	update := bson.M{
		"$push": bson.M{"deposits": dep},
		"$set":  bson.M{"updatedAt": time.Now()},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var goal models.SavingGoal
	err := db.goals.FindOneAndUpdate(ctx, bson.M{"_id": goalID, "userId": userID}, update, opts).Decode(&goal)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to add deposit: %w", err)
	}
	return &goal, nil
}

// RemoveDeposit removes one deposit by id with a targeted $pull, under the
// same no-rewrite guarantee as AddDeposit. The deposit id is part of the
// filter, so a goal whose array lacks the id matches nothing and the removal
// cannot be mistaken for a success. Counting modified documents would not
// work here: the updatedAt $set modifies the document even when the $pull
// removes nothing.
func (db *DB) RemoveDeposit(ctx context.Context, goalID, userID, depositID primitive.ObjectID) (*models.SavingGoal, error) {
	filter := bson.M{"_id": goalID, "userId": userID, "deposits._id": depositID}
	update := bson.M{
		"$pull": bson.M{"deposits": bson.M{"_id": depositID}},
		"$set":  bson.M{"updatedAt": time.Now()},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var goal models.SavingGoal
	err := db.goals.FindOneAndUpdate(ctx, filter, update, opts).Decode(&goal)
	if err == nil {
		return &goal, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, fmt.Errorf("failed to remove deposit: %w", err)
	}

	// No match: either the goal is gone or only the deposit is.
	if _, err := db.FindGoal(ctx, goalID, userID); err != nil {
		return nil, err
	}
	return nil, ErrDepositNotFound
}

// DeleteGoal removes the goal document; the embedded deposits go with it.
func (db *DB) DeleteGoal(ctx context.Context, id, userID primitive.ObjectID) error {
	res, err := db.goals.DeleteOne(ctx, bson.M{"_id": id, "userId": userID})
	if err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// FindGoalByUser returns the user's goal, or nil when none exists. Backup
// export wants "no goal" as a value, not an error.
func (db *DB) FindGoalByUser(ctx context.Context, userID primitive.ObjectID) (*models.SavingGoal, error) {
	var goal models.SavingGoal
	err := db.goals.FindOne(ctx, bson.M{"userId": userID}).Decode(&goal)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find goal: %w", err)
	}
	return &goal, nil
}

// UpsertGoalSnapshot creates or replaces the goal-level fields from a backup
// snapshot. Restore leaves the goal exactly as the snapshot describes it.
func (db *DB) UpsertGoalSnapshot(ctx context.Context, userID primitive.ObjectID, snap models.BackupGoal) error {
	update := bson.M{
		"$set": bson.M{
			"userId":       userID,
			"targetAmount": snap.TargetAmount,
			"endDate":      snap.EndDate,
			"createdAt":    snap.CreatedDate,
			"updatedAt":    time.Now(),
		},
	}
	opts := options.Update().SetUpsert(true)
	_, err := db.goals.UpdateOne(ctx, bson.M{"userId": userID}, update, opts)
	if err != nil {
		return fmt.Errorf("failed to upsert goal: %w", err)
	}
	return nil
}

// DeleteGoalByUser removes the user's goal if any. Absence is not an error;
// restore with a null goal section just needs the end state to be "no goal".
func (db *DB) DeleteGoalByUser(ctx context.Context, userID primitive.ObjectID) error {
	_, err := db.goals.DeleteOne(ctx, bson.M{"userId": userID})
	if err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}
	return nil
}
