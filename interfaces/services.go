package interfaces

import (
	"context"

	"pickem-app-go/models"
	"pickem-app-go/services"
)

// ScoringService defines the scoring reads used by handlers and tools
type ScoringService interface {
	WeekReport(ctx context.Context, week int) (models.WeekReport, error)
	Leaderboard(ctx context.Context) ([]models.LeaderboardEntry, error)
	WeekResults(ctx context.Context, week int) (models.WeekResults, error)
	StoredScores(ctx context.Context, week int) ([]models.StoredWeeklyScore, error)
}

// ScoreRecalculator persists computed scores
type ScoreRecalculator interface {
	RecalculateAndStore(ctx context.Context, week int) (models.WeekReport, error)
}

// PickService defines the pick workflow used by handlers
type PickService interface {
	RulesForWeek(week int) models.WeekRules
	WeekGames(ctx context.Context, week int, openOnly bool) ([]models.Game, error)
	GetUserPicks(ctx context.Context, userID string, week int) (*models.WeeklyPicks, error)
	ReviewPicks(ctx context.Context, week int, picks []models.Pick) ([]models.PickReview, error)
	ValidateChange(ctx context.Context, week int, current models.Selection, change services.Change) (services.Decision, error)
	SubmitPicks(ctx context.Context, sub services.Submission) (services.Decision, *models.WeeklyPicks, error)
}

// AuthService defines login used by handlers
type AuthService interface {
	Login(ctx context.Context, email, password string) (*models.AuthResponse, error)
}
