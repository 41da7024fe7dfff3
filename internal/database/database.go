package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Sentinel errors returned by the repositories. Every lookup is scoped by
// userId, so a record owned by another user is reported the same way as a
// missing one.
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")

	// ErrDepositNotFound distinguishes a goal whose deposit array lacks the
	// requested id from a goal that is absent altogether.
	ErrDepositNotFound = errors.New("deposit not found")
)

// DB wraps MongoDB operations
type DB struct {
	client           *mongo.Client
	users            *mongo.Collection
	expenses         *mongo.Collection
	incomes          *mongo.Collection
	goals            *mongo.Collection
	categories       *mongo.Collection
	incomeCategories *mongo.Collection
}

// New creates a new database connection
func New(ctx context.Context, uri, dbName string) (*DB, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err = client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	database := client.Database(dbName)
	db := &DB{
		client:           client,
		users:            database.Collection("users"),
		expenses:         database.Collection("expenses"),
		incomes:          database.Collection("incomes"),
		goals:            database.Collection("savinggoals"),
		categories:       database.Collection("categories"),
		incomeCategories: database.Collection("incomecategories"),
	}

	if err := db.ensureIndexes(ctx); err != nil {
		return nil, fmt.Errorf("failed to create indexes: %w", err)
	}

	slog.Info("Successfully connected to MongoDB", "database", dbName)
	return db, nil
}

// Close closes the database connection
func (db *DB) Close(ctx context.Context) error {
	return db.client.Disconnect(ctx)
}

func (db *DB) ensureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)

	_, err := db.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: unique,
	})
	if err != nil {
		return fmt.Errorf("users index: %w", err)
	}

	for _, coll := range []*mongo.Collection{db.expenses, db.incomes} {
		_, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: -1}}},
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "category", Value: 1}}},
		})
		if err != nil {
			return fmt.Errorf("%s index: %w", coll.Name(), err)
		}
	}

	_, err = db.goals.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("goals index: %w", err)
	}

	// One category list per user and collection.
	for _, coll := range []*mongo.Collection{db.categories, db.incomeCategories} {
		_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: unique,
		})
		if err != nil {
			return fmt.Errorf("%s index: %w", coll.Name(), err)
		}
	}

	return nil
}
