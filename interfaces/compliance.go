package interfaces

import (
	"pickem-app-go/database"
	"pickem-app-go/middleware"
	"pickem-app-go/services"
)

// Interface compliance checks - these will fail to compile if implementations drift
var (
	_ ScoringService    = (*services.ScoringService)(nil)
	_ ScoreRecalculator = (*services.ScoringService)(nil)
	_ PickService       = (*services.PickService)(nil)
	_ AuthService       = (*services.AuthService)(nil)

	_ middleware.TokenAuthenticator = (*services.AuthService)(nil)
	_ services.StandingsInvalidator = (*services.ScoringService)(nil)
	_ services.LeaderboardCache     = (*services.MemoryLeaderboardCache)(nil)
	_ services.LeaderboardCache     = (*services.RedisLeaderboardCache)(nil)

	_ services.GameStore        = (*database.MongoGameRepository)(nil)
	_ services.ResultStore      = (*database.MongoResultRepository)(nil)
	_ services.WeeklyPicksStore = (*database.MongoWeeklyPicksRepository)(nil)
	_ services.UserStore        = (*database.MongoUserRepository)(nil)
	_ services.WeeklyScoreStore = (*database.MongoWeeklyScoreRepository)(nil)
)
