package services

import (
	"context"

	"pickem-app-go/models"
)

// Storage dependencies of the services. The MongoDB repositories in
// database/ implement these; tests substitute testify mocks.

// GameStore reads the game schedule
type GameStore interface {
	FindByWeek(ctx context.Context, week int) ([]models.Game, error)
	FindWeeks(ctx context.Context) ([]int, error)
}

// ResultStore reads official final scores
type ResultStore interface {
	FindByWeek(ctx context.Context, week int) ([]models.Result, error)
}

// WeeklyPicksStore persists one document per (user, week).
// Replace must only succeed when the stored revision equals expectedRevision
// (0 meaning no document yet) and return models.ErrRevisionMismatch otherwise.
type WeeklyPicksStore interface {
	FindByUserAndWeek(ctx context.Context, userID string, week int) (*models.WeeklyPicks, error)
	FindAllByWeek(ctx context.Context, week int) ([]*models.WeeklyPicks, error)
	Replace(ctx context.Context, doc *models.WeeklyPicks, expectedRevision int64) error
}

// UserStore reads pool members
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindAll(ctx context.Context) ([]models.User, error)
}

// WeeklyScoreStore persists computed score rows
type WeeklyScoreStore interface {
	UpsertMany(ctx context.Context, scores []models.WeeklyScore) error
	FindByWeek(ctx context.Context, week int) ([]models.StoredWeeklyScore, error)
}
