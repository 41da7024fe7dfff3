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

// RecordFilter narrows a record listing. Zero values mean no constraint.
type RecordFilter struct {
	Category  string
	StartDate *time.Time
	EndDate   *time.Time
}

// Expense and income records share one implementation; the public methods
// only pick the collection.

func (db *DB) InsertExpense(ctx context.Context, rec *models.Record) error {
	return db.insertRecord(ctx, db.expenses, rec)
}

func (db *DB) FindExpense(ctx context.Context, id, userID primitive.ObjectID) (*models.Record, error) {
	return db.findRecord(ctx, db.expenses, id, userID)
}

func (db *DB) ListExpenses(ctx context.Context, userID primitive.ObjectID, filter RecordFilter) ([]models.Record, error) {
	return db.listRecords(ctx, db.expenses, userID, filter)
}

func (db *DB) UpdateExpense(ctx context.Context, id, userID primitive.ObjectID, patch models.RecordPatch) (*models.Record, error) {
	return db.updateRecord(ctx, db.expenses, id, userID, patch)
}

func (db *DB) DeleteExpense(ctx context.Context, id, userID primitive.ObjectID) error {
	return db.deleteRecord(ctx, db.expenses, id, userID)
}

// DeleteAllExpenses removes every expense record for the user. Used by the
// destructive restore path.
func (db *DB) DeleteAllExpenses(ctx context.Context, userID primitive.ObjectID) error {
	_, err := db.expenses.DeleteMany(ctx, bson.M{"userId": userID})
	if err != nil {
		return fmt.Errorf("failed to delete expenses: %w", err)
	}
	return nil
}

// InsertExpenses bulk-inserts restored expense records.
func (db *DB) InsertExpenses(ctx context.Context, recs []models.Record) error {
	if len(recs) == 0 {
		return nil
	}
	docs := make([]interface{}, len(recs))
	now := time.Now()
	for i := range recs {
		recs[i].ID = primitive.NewObjectID()
		recs[i].CreatedAt = now
		recs[i].UpdatedAt = now
		docs[i] = recs[i]
	}
	_, err := db.expenses.InsertMany(ctx, docs)
	if err != nil {
		return fmt.Errorf("failed to insert expenses: %w", err)
	}
	return nil
}

func (db *DB) InsertIncome(ctx context.Context, rec *models.Record) error {
	return db.insertRecord(ctx, db.incomes, rec)
}

func (db *DB) FindIncome(ctx context.Context, id, userID primitive.ObjectID) (*models.Record, error) {
	return db.findRecord(ctx, db.incomes, id, userID)
}

func (db *DB) ListIncome(ctx context.Context, userID primitive.ObjectID, filter RecordFilter) ([]models.Record, error) {
	return db.listRecords(ctx, db.incomes, userID, filter)
}

func (db *DB) UpdateIncome(ctx context.Context, id, userID primitive.ObjectID, patch models.RecordPatch) (*models.Record, error) {
	return db.updateRecord(ctx, db.incomes, id, userID, patch)
}

func (db *DB) DeleteIncome(ctx context.Context, id, userID primitive.ObjectID) error {
	return db.deleteRecord(ctx, db.incomes, id, userID)
}

func (db *DB) insertRecord(ctx context.Context, coll *mongo.Collection, rec *models.Record) error {
	now := time.Now()
	rec.ID = primitive.NewObjectID()
	rec.CreatedAt = now
	rec.UpdatedAt = now
	if rec.Date.IsZero() {
		rec.Date = now
	}

	_, err := coll.InsertOne(ctx, rec)
	if err != nil {
		return fmt.Errorf("failed to insert %s record: %w", coll.Name(), err)
	}
	return nil
}

func (db *DB) findRecord(ctx context.Context, coll *mongo.Collection, id, userID primitive.ObjectID) (*models.Record, error) {
	var rec models.Record
	err := coll.FindOne(ctx, bson.M{"_id": id, "userId": userID}).Decode(&rec)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find %s record: %w", coll.Name(), err)
	}
	return &rec, nil
}

func (db *DB) listRecords(ctx context.Context, coll *mongo.Collection, userID primitive.ObjectID, filter RecordFilter) ([]models.Record, error) {
	query := bson.M{"userId": userID}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.StartDate != nil || filter.EndDate != nil {
		window := bson.M{}
		if filter.StartDate != nil {
			window["$gte"] = *filter.StartDate
		}
		if filter.EndDate != nil {
			window["$lte"] = *filter.EndDate
		}
		query["date"] = window
	}

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s records: %w", coll.Name(), err)
	}
	defer cursor.Close(ctx)

	records := []models.Record{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode %s records: %w", coll.Name(), err)
	}
	return records, nil
}

func (db *DB) updateRecord(ctx context.Context, coll *mongo.Collection, id, userID primitive.ObjectID, patch models.RecordPatch) (*models.Record, error) {
	set := bson.M{"updatedAt": time.Now()}
	if patch.Amount != nil {
		set["amount"] = *patch.Amount
	}
	if patch.Category != nil {
		set["category"] = *patch.Category
	}
	if patch.Note != nil {
		set["note"] = *patch.Note
	}
	if patch.Date != nil {
		set["date"] = *patch.Date
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var rec models.Record
	err := coll.FindOneAndUpdate(ctx, bson.M{"_id": id, "userId": userID}, bson.M{"$set": set}, opts).Decode(&rec)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update %s record: %w", coll.Name(), err)
	}
	return &rec, nil
}

func (db *DB) deleteRecord(ctx context.Context, coll *mongo.Collection, id, userID primitive.ObjectID) error {
	res, err := coll.DeleteOne(ctx, bson.M{"_id": id, "userId": userID})
	if err != nil {
		return fmt.Errorf("failed to delete %s record: %w", coll.Name(), err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
