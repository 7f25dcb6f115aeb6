package database

import (
	"context"
	"fmt"

	"pickem-app-go/logging"
	"pickem-app-go/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoResultRepository reads final scores entered by the results tooling
type MongoResultRepository struct {
	collection *mongo.Collection
	logger     *logging.Logger
}

func NewMongoResultRepository(db *MongoDB) *MongoResultRepository {
	collection := db.GetCollection("results")
	logger := logging.WithPrefix("mongo_result_repo")

	ensureIndexes(collection, logger, mongo.IndexModel{
		Keys:    bson.D{{Key: "week", Value: 1}, {Key: "home", Value: 1}, {Key: "away", Value: 1}},
		Options: options.Index().SetUnique(true),
	})

	return &MongoResultRepository{
		collection: collection,
		logger:     logger,
	}
}

// FindByWeek returns every result recorded for a week
func (r *MongoResultRepository) FindByWeek(ctx context.Context, week int) ([]models.Result, error) {
	ctx, cancel := boundedContext(ctx)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{"week": week})
	if err != nil {
		return nil, fmt.Errorf("failed to find results for week %d: %w", week, err)
	}
	defer cursor.Close(ctx)

	results := []models.Result{}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("failed to decode results: %w", err)
	}
	return results, nil
}

// Upsert records a final score keyed by (week, home, away), used by seeding tools
func (r *MongoResultRepository) Upsert(ctx context.Context, result *models.Result) error {
	ctx, cancel := boundedContext(ctx)
	defer cancel()

	filter := bson.M{"week": result.Week, "home": result.Home, "away": result.Away}
	opts := options.Replace().SetUpsert(true)
	if _, err := r.collection.ReplaceOne(ctx, filter, result, opts); err != nil {
		return fmt.Errorf("failed to upsert result %s @ %s: %w", result.Away, result.Home, err)
	}
	return nil
}
