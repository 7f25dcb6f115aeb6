package database

import (
	"context"
	"fmt"
	"time"

	"pickem-app-go/logging"
	"pickem-app-go/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoWeeklyScoreRepository stores computed score rows, one per (user, week)
type MongoWeeklyScoreRepository struct {
	collection *mongo.Collection
	logger     *logging.Logger
}

// NewMongoWeeklyScoreRepository creates a new MongoDB weekly score repository
func NewMongoWeeklyScoreRepository(db *MongoDB) *MongoWeeklyScoreRepository {
	collection := db.GetCollection("weekly_scores")
	logger := logging.WithPrefix("mongo_weekly_score_repo")

	ensureIndexes(collection, logger, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "week", Value: 1}},
		Options: options.Index().SetUnique(true),
	})

	return &MongoWeeklyScoreRepository{
		collection: collection,
		logger:     logger,
	}
}

// UpsertMany writes every score in a single unordered bulk operation
func (r *MongoWeeklyScoreRepository) UpsertMany(ctx context.Context, scores []models.WeeklyScore) error {
	if len(scores) == 0 {
		return nil
	}

	ctx, cancel := boundedContext(ctx)
	defer cancel()

	now := time.Now()
	writes := make([]mongo.WriteModel, 0, len(scores))
	for _, s := range scores {
		filter := bson.M{"user_id": s.UserID, "week": s.Week}
		update := bson.M{
			"$set": bson.M{
				"correct":        s.Correct,
				"lock_correct":   s.LockCorrect,
				"lock_incorrect": s.LockIncorrect,
				"perfect_bonus":  s.PerfectBonus,
				"weekly_points":  s.WeeklyPoints,
				"retained":       s.Retained,
				"resolved":       s.Resolved,
				"pending":        s.Pending,
				"updated_at":     now,
			},
			"$setOnInsert": bson.M{
				"created_at": now,
			},
		}
		writes = append(writes, mongo.NewUpdateOneModel().SetFilter(filter).SetUpdate(update).SetUpsert(true))
	}

	result, err := r.collection.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(false))
	if err != nil {
		return fmt.Errorf("failed to upsert weekly scores: %w", err)
	}

	r.logger.Debugf("Upserted weekly scores: %d inserted, %d modified", result.UpsertedCount, result.ModifiedCount)
	return nil
}

// FindByWeek returns stored rows for a week ordered by points
func (r *MongoWeeklyScoreRepository) FindByWeek(ctx context.Context, week int) ([]models.StoredWeeklyScore, error) {
	ctx, cancel := boundedContext(ctx)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "weekly_points", Value: -1}, {Key: "user_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"week": week}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find weekly scores: %w", err)
	}
	defer cursor.Close(ctx)

	scores := []models.StoredWeeklyScore{}
	if err := cursor.All(ctx, &scores); err != nil {
		return nil, fmt.Errorf("failed to decode weekly scores: %w", err)
	}
	return scores, nil
}
