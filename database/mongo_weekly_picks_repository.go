package database

import (
	"context"
	"fmt"

	"pickem-app-go/logging"
	"pickem-app-go/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoWeeklyPicksRepository stores one document per (user, week) holding the
// user's picks. The unique index plus a revision compare-and-swap serialize
// concurrent submissions and rule out duplicate (user, game) rows.
type MongoWeeklyPicksRepository struct {
	collection *mongo.Collection
	logger     *logging.Logger
}

// NewMongoWeeklyPicksRepository creates a new MongoDB weekly picks repository
func NewMongoWeeklyPicksRepository(db *MongoDB) *MongoWeeklyPicksRepository {
	collection := db.GetCollection("weekly_picks")
	logger := logging.WithPrefix("mongo_weekly_picks_repo")

	ensureIndexes(collection, logger,
		mongo.IndexModel{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "week", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		mongo.IndexModel{
			Keys: bson.D{{Key: "week", Value: 1}},
		},
	)

	return &MongoWeeklyPicksRepository{
		collection: collection,
		logger:     logger,
	}
}

// Replace writes doc if the stored revision still equals expectedRevision.
// expectedRevision 0 inserts a new document. Losing either race returns
// models.ErrRevisionMismatch.
func (r *MongoWeeklyPicksRepository) Replace(ctx context.Context, doc *models.WeeklyPicks, expectedRevision int64) error {
	ctx, cancel := boundedContext(ctx)
	defer cancel()

	if expectedRevision == 0 {
		if doc.ID.IsZero() {
			doc.ID = primitive.NewObjectID()
		}
		if _, err := r.collection.InsertOne(ctx, doc); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return fmt.Errorf("%w: document for %s week %d already exists", models.ErrRevisionMismatch, doc.UserID, doc.Week)
			}
			return fmt.Errorf("failed to insert weekly picks: %w", err)
		}
		r.logger.Debugf("Inserted picks for %s week %d", doc.UserID, doc.Week)
		return nil
	}

	filter := bson.M{
		"user_id":  doc.UserID,
		"week":     doc.Week,
		"revision": expectedRevision,
	}
	update := bson.M{
		"$set": bson.M{
			"picks":      doc.Picks,
			"revision":   doc.Revision,
			"updated_at": doc.UpdatedAt,
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update weekly picks: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: %s week %d is no longer at revision %d", models.ErrRevisionMismatch, doc.UserID, doc.Week, expectedRevision)
	}
	r.logger.Debugf("Updated picks for %s week %d to revision %d", doc.UserID, doc.Week, doc.Revision)
	return nil
}

// FindByUserAndWeek retrieves a user's picks for a week, or nil if none were submitted
func (r *MongoWeeklyPicksRepository) FindByUserAndWeek(ctx context.Context, userID string, week int) (*models.WeeklyPicks, error) {
	ctx, cancel := boundedContext(ctx)
	defer cancel()

	filter := bson.M{
		"user_id": userID,
		"week":    week,
	}

	var weeklyPicks models.WeeklyPicks
	err := r.collection.FindOne(ctx, filter).Decode(&weeklyPicks)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil // No picks found, return nil (not an error)
		}
		return nil, fmt.Errorf("failed to find weekly picks: %w", err)
	}

	return &weeklyPicks, nil
}

// FindAllByWeek retrieves every user's picks for a week
func (r *MongoWeeklyPicksRepository) FindAllByWeek(ctx context.Context, week int) ([]*models.WeeklyPicks, error) {
	ctx, cancel := boundedContext(ctx)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"week": week}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find weekly picks by week: %w", err)
	}
	defer cursor.Close(ctx)

	var weeklyPicksList []*models.WeeklyPicks
	for cursor.Next(ctx) {
		var weeklyPicks models.WeeklyPicks
		if err := cursor.Decode(&weeklyPicks); err != nil {
			return nil, fmt.Errorf("failed to decode weekly picks: %w", err)
		}
		weeklyPicksList = append(weeklyPicksList, &weeklyPicks)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate weekly picks: %w", err)
	}

	return weeklyPicksList, nil
}
