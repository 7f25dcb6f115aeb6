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

// MongoUserRepository stores pool members keyed by normalized email
type MongoUserRepository struct {
	collection *mongo.Collection
	logger     *logging.Logger
}

// NewMongoUserRepository creates a new MongoDB user repository
func NewMongoUserRepository(db *MongoDB) *MongoUserRepository {
	collection := db.GetCollection("users")
	logger := logging.WithPrefix("mongo_user_repo")

	ensureIndexes(collection, logger, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true).SetSparse(true),
	})

	return &MongoUserRepository{
		collection: collection,
		logger:     logger,
	}
}

// FindByEmail retrieves a member by email, or nil if there is none
func (r *MongoUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	ctx, cancel := boundedContext(ctx)
	defer cancel()

	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"_id": models.NormalizeEmail(email)}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &user, nil
}

// FindAll returns every member ordered by email, which fixes leaderboard encounter order
func (r *MongoUserRepository) FindAll(ctx context.Context) ([]models.User, error) {
	ctx, cancel := boundedContext(ctx)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find users: %w", err)
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	return users, nil
}

// Upsert creates or replaces a member, used by seeding tools
func (r *MongoUserRepository) Upsert(ctx context.Context, user *models.User) error {
	ctx, cancel := boundedContext(ctx)
	defer cancel()

	user.Email = models.NormalizeEmail(user.Email)
	user.UpdatedAt = time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = user.UpdatedAt
	}

	opts := options.Replace().SetUpsert(true)
	if _, err := r.collection.ReplaceOne(ctx, bson.M{"_id": user.Email}, user, opts); err != nil {
		return fmt.Errorf("failed to upsert user %s: %w", user.Email, err)
	}
	return nil
}
