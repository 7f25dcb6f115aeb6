package database

import (
	"context"
	"fmt"
	"sort"

	"pickem-app-go/logging"
	"pickem-app-go/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoGameRepository reads the schedule written by the game-management tooling
type MongoGameRepository struct {
	collection *mongo.Collection
	logger     *logging.Logger
}

func NewMongoGameRepository(db *MongoDB) *MongoGameRepository {
	collection := db.GetCollection("games")
	logger := logging.WithPrefix("mongo_game_repo")

	// One game per (week, home, away)
	ensureIndexes(collection, logger,
		mongo.IndexModel{
			Keys:    bson.D{{Key: "week", Value: 1}, {Key: "home", Value: 1}, {Key: "away", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		mongo.IndexModel{
			Keys: bson.D{{Key: "week", Value: 1}, {Key: "kickoff", Value: 1}},
		},
	)

	return &MongoGameRepository{
		collection: collection,
		logger:     logger,
	}
}

// FindByWeek returns a week's games in kickoff order
func (r *MongoGameRepository) FindByWeek(ctx context.Context, week int) ([]models.Game, error) {
	ctx, cancel := boundedContext(ctx)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "kickoff", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"week": week}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find games for week %d: %w", week, err)
	}
	defer cursor.Close(ctx)

	games := []models.Game{}
	if err := cursor.All(ctx, &games); err != nil {
		return nil, fmt.Errorf("failed to decode games: %w", err)
	}
	return games, nil
}

// FindWeeks returns every week that has at least one game, ascending
func (r *MongoGameRepository) FindWeeks(ctx context.Context) ([]int, error) {
	ctx, cancel := boundedContext(ctx)
	defer cancel()

	raw, err := r.collection.Distinct(ctx, "week", bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list weeks: %w", err)
	}

	weeks := make([]int, 0, len(raw))
	for _, v := range raw {
		switch w := v.(type) {
		case int32:
			weeks = append(weeks, int(w))
		case int64:
			weeks = append(weeks, int(w))
		case float64:
			weeks = append(weeks, int(w))
		default:
			r.logger.Warnf("Ignoring non-numeric week value %v", v)
		}
	}
	sort.Ints(weeks)
	return weeks, nil
}

// Upsert stores a game by ID, used by seeding tools
func (r *MongoGameRepository) Upsert(ctx context.Context, game *models.Game) error {
	ctx, cancel := boundedContext(ctx)
	defer cancel()

	opts := options.Replace().SetUpsert(true)
	if _, err := r.collection.ReplaceOne(ctx, bson.M{"_id": game.ID}, game, opts); err != nil {
		return fmt.Errorf("failed to upsert game %s: %w", game.ID, err)
	}
	return nil
}
