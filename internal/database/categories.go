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

// GetCategories returns the user's expense category list, seeding it with the
// given defaults on first access.
func (db *DB) GetCategories(ctx context.Context, userID primitive.ObjectID, defaults []string) ([]string, error) {
	return db.getOrInitList(ctx, db.categories, userID, defaults)
}

// PutCategories replaces the user's expense category list, creating it if
// missing.
func (db *DB) PutCategories(ctx context.Context, userID primitive.ObjectID, categories []string) ([]string, error) {
	return db.putList(ctx, db.categories, userID, categories)
}

// FindCategories returns the raw list without seeding defaults; nil means no
// list exists yet. Backup export must not create state as a side effect.
func (db *DB) FindCategories(ctx context.Context, userID primitive.ObjectID) ([]string, error) {
	return db.findList(ctx, db.categories, userID)
}

// GetIncomeCategories returns the user's income category list, seeding it
// with the given defaults on first access.
func (db *DB) GetIncomeCategories(ctx context.Context, userID primitive.ObjectID, defaults []string) ([]string, error) {
	return db.getOrInitList(ctx, db.incomeCategories, userID, defaults)
}

// PutIncomeCategories replaces the user's income category list, creating it
// if missing.
func (db *DB) PutIncomeCategories(ctx context.Context, userID primitive.ObjectID, categories []string) ([]string, error) {
	return db.putList(ctx, db.incomeCategories, userID, categories)
}

func (db *DB) getOrInitList(ctx context.Context, coll *mongo.Collection, userID primitive.ObjectID, defaults []string) ([]string, error) {
	var list models.CategoryList
	err := coll.FindOne(ctx, bson.M{"userId": userID}).Decode(&list)
	if err == nil {
		return list.Categories, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, fmt.Errorf("failed to find %s list: %w", coll.Name(), err)
	}

	now := time.Now()
	list = models.CategoryList{
		ID:         primitive.NewObjectID(),
		UserID:     userID,
		Categories: defaults,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if _, err := coll.InsertOne(ctx, &list); err != nil {
		// Lost a race against a concurrent first access; the other writer's
		// list wins.
		if mongo.IsDuplicateKeyError(err) {
			return db.findList(ctx, coll, userID)
		}
		return nil, fmt.Errorf("failed to seed %s list: %w", coll.Name(), err)
	}
	return list.Categories, nil
}

func (db *DB) putList(ctx context.Context, coll *mongo.Collection, userID primitive.ObjectID, categories []string) ([]string, error) {
	update := bson.M{
		"$set":         bson.M{"categories": categories, "updatedAt": time.Now()},
		"$setOnInsert": bson.M{"userId": userID, "createdAt": time.Now()},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var list models.CategoryList
	err := coll.FindOneAndUpdate(ctx, bson.M{"userId": userID}, update, opts).Decode(&list)
	if err != nil {
		return nil, fmt.Errorf("failed to update %s list: %w", coll.Name(), err)
	}
	return list.Categories, nil
}

func (db *DB) findList(ctx context.Context, coll *mongo.Collection, userID primitive.ObjectID) ([]string, error) {
	var list models.CategoryList
	err := coll.FindOne(ctx, bson.M{"userId": userID}).Decode(&list)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find %s list: %w", coll.Name(), err)
	}
	return list.Categories, nil
}
