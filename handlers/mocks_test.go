package handlers

import (
	"context"

	"pickem-app-go/interfaces"
	"pickem-app-go/middleware"
	"pickem-app-go/models"
	"pickem-app-go/services"

	"github.com/stretchr/testify/mock"
)

var (
	_ interfaces.PickService        = (*mockPickService)(nil)
	_ interfaces.ScoringService     = (*mockScoringService)(nil)
	_ interfaces.AuthService        = (*mockAuthService)(nil)
	_ middleware.TokenAuthenticator = (*mockAuthService)(nil)
)

type mockPickService struct {
	mock.Mock
}

func (m *mockPickService) RulesForWeek(week int) models.WeekRules {
	args := m.Called(week)
	return args.Get(0).(models.WeekRules)
}

func (m *mockPickService) WeekGames(ctx context.Context, week int, openOnly bool) ([]models.Game, error) {
	args := m.Called(ctx, week, openOnly)

	var r []models.Game
	if args.Get(0) != nil {
		r = args.Get(0).([]models.Game)
	}
	return r, args.Error(1)
}

func (m *mockPickService) GetUserPicks(ctx context.Context, userID string, week int) (*models.WeeklyPicks, error) {
	args := m.Called(ctx, userID, week)

	var doc *models.WeeklyPicks
	if args.Get(0) != nil {
		doc = args.Get(0).(*models.WeeklyPicks)
	}
	return doc, args.Error(1)
}

func (m *mockPickService) ReviewPicks(ctx context.Context, week int, picks []models.Pick) ([]models.PickReview, error) {
	args := m.Called(ctx, week, picks)

	var r []models.PickReview
	if args.Get(0) != nil {
		r = args.Get(0).([]models.PickReview)
	}
	return r, args.Error(1)
}

func (m *mockPickService) ValidateChange(ctx context.Context, week int, current models.Selection, change services.Change) (services.Decision, error) {
	args := m.Called(ctx, week, current, change)
	return args.Get(0).(services.Decision), args.Error(1)
}

func (m *mockPickService) SubmitPicks(ctx context.Context, sub services.Submission) (services.Decision, *models.WeeklyPicks, error) {
	args := m.Called(ctx, sub)

	var doc *models.WeeklyPicks
	if args.Get(1) != nil {
		doc = args.Get(1).(*models.WeeklyPicks)
	}
	return args.Get(0).(services.Decision), doc, args.Error(2)
}

type mockScoringService struct {
	mock.Mock
}

func (m *mockScoringService) WeekReport(ctx context.Context, week int) (models.WeekReport, error) {
	args := m.Called(ctx, week)
	return args.Get(0).(models.WeekReport), args.Error(1)
}

func (m *mockScoringService) Leaderboard(ctx context.Context) ([]models.LeaderboardEntry, error) {
	args := m.Called(ctx)

	var r []models.LeaderboardEntry
	if args.Get(0) != nil {
		r = args.Get(0).([]models.LeaderboardEntry)
	}
	return r, args.Error(1)
}

func (m *mockScoringService) WeekResults(ctx context.Context, week int) (models.WeekResults, error) {
	args := m.Called(ctx, week)
	return args.Get(0).(models.WeekResults), args.Error(1)
}

func (m *mockScoringService) StoredScores(ctx context.Context, week int) ([]models.StoredWeeklyScore, error) {
	args := m.Called(ctx, week)

	var rows []models.StoredWeeklyScore
	if args.Get(0) != nil {
		rows = args.Get(0).([]models.StoredWeeklyScore)
	}
	return rows, args.Error(1)
}

type mockAuthService struct {
	mock.Mock
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	args := m.Called(ctx, email, password)

	var resp *models.AuthResponse
	if args.Get(0) != nil {
		resp = args.Get(0).(*models.AuthResponse)
	}
	return resp, args.Error(1)
}

func (m *mockAuthService) GetUserFromToken(ctx context.Context, token string) (*models.User, error) {
	args := m.Called(ctx, token)

	var u *models.User
	if args.Get(0) != nil {
		u = args.Get(0).(*models.User)
	}
	return u, args.Error(1)
}
