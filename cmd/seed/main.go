package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"pickem-app-go/config"
	"pickem-app-go/database"
	"pickem-app-go/logging"
	"pickem-app-go/models"
)

// fixture is the seed file layout
type fixture struct {
	Users []struct {
		Email    string `json:"email"`
		Username string `json:"username"`
		Password string `json:"password"`
	} `json:"users"`
	Games   []models.Game   `json:"games"`
	Results []models.Result `json:"results"`
}

func loadFixture(path string) (*fixture, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var f fixture
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &f, nil
}

func main() {
	path := flag.String("file", "seed.json", "JSON file with users, games and results")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatalf("Failed to load configuration: %v", err)
	}
	logging.Configure(cfg.ToLoggingConfig())
	logger := logging.WithPrefix("seed")

	f, err := loadFixture(*path)
	if err != nil {
		logger.Fatalf("%v", err)
	}

	db, err := database.NewMongoConnection(cfg.ToDatabaseConfig())
	if err != nil {
		logger.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	users := database.NewMongoUserRepository(db)
	for _, u := range f.Users {
		user := &models.User{Email: u.Email, Username: u.Username}
		if err := user.HashPassword(u.Password); err != nil {
			logger.Fatalf("Failed to hash password for %s: %v", u.Email, err)
		}
		if err := users.Upsert(ctx, user); err != nil {
			logger.Fatalf("%v", err)
		}
	}
	logger.Infof("Seeded %d users", len(f.Users))

	games := database.NewMongoGameRepository(db)
	for i := range f.Games {
		if err := games.Upsert(ctx, &f.Games[i]); err != nil {
			logger.Fatalf("%v", err)
		}
	}
	logger.Infof("Seeded %d games", len(f.Games))

	results := database.NewMongoResultRepository(db)
	for i := range f.Results {
		if err := results.Upsert(ctx, &f.Results[i]); err != nil {
			logger.Fatalf("%v", err)
		}
	}
	logger.Infof("Seeded %d results", len(f.Results))
}
