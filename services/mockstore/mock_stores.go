package mockstore

import (
	"context"

	"pickem-app-go/models"

	"github.com/stretchr/testify/mock"
)

type Games struct {
	mock.Mock
}

func (m *Games) FindByWeek(ctx context.Context, week int) ([]models.Game, error) {
	args := m.Called(ctx, week)

	var r []models.Game
	if args.Get(0) != nil {
		r = args.Get(0).([]models.Game)
	}
	return r, args.Error(1)
}

func (m *Games) FindWeeks(ctx context.Context) ([]int, error) {
	args := m.Called(ctx)

	var r []int
	if args.Get(0) != nil {
		r = args.Get(0).([]int)
	}
	return r, args.Error(1)
}

type Results struct {
	mock.Mock
}

func (m *Results) FindByWeek(ctx context.Context, week int) ([]models.Result, error) {
	args := m.Called(ctx, week)

	var r []models.Result
	if args.Get(0) != nil {
		r = args.Get(0).([]models.Result)
	}
	return r, args.Error(1)
}

type WeeklyPicks struct {
	mock.Mock
}

func (m *WeeklyPicks) FindByUserAndWeek(ctx context.Context, userID string, week int) (*models.WeeklyPicks, error) {
	args := m.Called(ctx, userID, week)

	var p *models.WeeklyPicks
	if args.Get(0) != nil {
		p = args.Get(0).(*models.WeeklyPicks)
	}
	return p, args.Error(1)
}

func (m *WeeklyPicks) FindAllByWeek(ctx context.Context, week int) ([]*models.WeeklyPicks, error) {
	args := m.Called(ctx, week)

	var r []*models.WeeklyPicks
	if args.Get(0) != nil {
		r = args.Get(0).([]*models.WeeklyPicks)
	}
	return r, args.Error(1)
}

func (m *WeeklyPicks) Replace(ctx context.Context, doc *models.WeeklyPicks, expectedRevision int64) error {
	args := m.Called(ctx, doc, expectedRevision)
	return args.Error(0)
}

type Users struct {
	mock.Mock
}

func (m *Users) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)

	var u *models.User
	if args.Get(0) != nil {
		u = args.Get(0).(*models.User)
	}
	return u, args.Error(1)
}

func (m *Users) FindAll(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)

	var r []models.User
	if args.Get(0) != nil {
		r = args.Get(0).([]models.User)
	}
	return r, args.Error(1)
}

type WeeklyScores struct {
	mock.Mock
}

func (m *WeeklyScores) UpsertMany(ctx context.Context, scores []models.WeeklyScore) error {
	args := m.Called(ctx, scores)
	return args.Error(0)
}

func (m *WeeklyScores) FindByWeek(ctx context.Context, week int) ([]models.StoredWeeklyScore, error) {
	args := m.Called(ctx, week)

	var r []models.StoredWeeklyScore
	if args.Get(0) != nil {
		r = args.Get(0).([]models.StoredWeeklyScore)
	}
	return r, args.Error(1)
}
