package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"pickem-app-go/config"
	"pickem-app-go/database"
	"pickem-app-go/logging"
	"pickem-app-go/models"
	"pickem-app-go/services"
)

func main() {
	week := flag.Int("week", 0, "week to score (0 prints standings only)")
	store := flag.Bool("store", false, "persist the week's score rows")
	submittedOnly := flag.Bool("submitted-only", false, "list only members with counted picks")
	showStored := flag.Bool("show-stored", false, "print the week's persisted score rows instead of rescoring")
	timeout := flag.Duration("timeout", 2*time.Minute, "overall timeout")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatalf("Failed to load configuration: %v", err)
	}
	logging.Configure(cfg.ToLoggingConfig())
	logger := logging.WithPrefix("scoreweek")

	db, err := database.NewMongoConnection(cfg.ToDatabaseConfig())
	if err != nil {
		logger.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer db.Close()

	scoring := services.NewScoringService(
		database.NewMongoGameRepository(db),
		database.NewMongoResultRepository(db),
		database.NewMongoWeeklyPicksRepository(db),
		database.NewMongoUserRepository(db),
		database.NewMongoWeeklyScoreRepository(db),
		cfg.RuleBook(),
		cfg.League.Location,
		nil,
	)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if *week > 0 && *showStored {
		rows, err := scoring.StoredScores(ctx, *week)
		if err != nil {
			logger.Fatalf("Loading stored scores for week %d failed: %v", *week, err)
		}
		printStored(*week, rows)
		return
	}

	if *week > 0 {
		var report models.WeekReport
		if *store {
			report, err = scoring.RecalculateAndStore(ctx, *week)
		} else {
			report, err = scoring.WeekReport(ctx, *week)
		}
		if err != nil {
			logger.Fatalf("Scoring week %d failed: %v", *week, err)
		}
		if *submittedOnly {
			report.Scores = report.Submitted()
		}
		printWeek(report)
	}

	entries, err := scoring.Leaderboard(ctx)
	if err != nil {
		logger.Fatalf("Building standings failed: %v", err)
	}
	printStandings(entries)
}

func printWeek(report models.WeekReport) {
	fmt.Printf("Week %d (%s rules)\n", report.Week, report.Rules)
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "USER\tCORRECT\tLOCK+\tLOCK-\tPERFECT\tPOINTS\tPENDING")
	for _, s := range report.Scores {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%d\t%d\n",
			s.UserID, s.Correct, s.LockCorrect, s.LockIncorrect, s.PerfectBonus, s.WeeklyPoints, s.Pending)
	}
	tw.Flush()

	w := report.Warnings
	if w.Total() > 0 || w.DroppedOverCap > 0 {
		fmt.Printf("warnings: orphans=%d unmatched=%d duplicates=%d badTeams=%d extraLocks=%d overCap=%d\n",
			w.OrphanPicks, w.UnmatchedResults, w.DuplicatePicks, w.InvalidTeams, w.ExtraLocks, w.DroppedOverCap)
	}
	fmt.Println()
}

func printStored(week int, rows []models.StoredWeeklyScore) {
	fmt.Printf("Week %d stored scores\n", week)
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "USER\tCORRECT\tLOCK+\tLOCK-\tPERFECT\tPOINTS\tUPDATED")
	for _, s := range rows {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%d\t%s\n",
			s.UserID, s.Correct, s.LockCorrect, s.LockIncorrect, s.PerfectBonus, s.WeeklyPoints,
			s.UpdatedAt.Format(time.RFC3339))
	}
	tw.Flush()
}

func printStandings(entries []models.LeaderboardEntry) {
	fmt.Println("Standings")
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tMEMBER\tPOINTS\tCORRECT\tWEEKS")
	for _, e := range entries {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%d\n", e.Rank, e.DisplayName, e.TotalPoints, e.TotalCorrect, e.WeeksPlayed)
	}
	tw.Flush()
}
