package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"matchday/internal/config"
	"matchday/internal/database"
	"matchday/internal/logger"
	"matchday/internal/models"
	"matchday/internal/repository"
	"matchday/internal/search"

	"github.com/joho/godotenv"
)

var (
	rows        = flag.Int("rows", 5, "Seat rows per event")
	seatsPerRow = flag.Int("seats", 10, "Seats per row")
	skipUsers   = flag.Bool("skip-users", false, "Do not create demo users")
)

var fixtures = []string{
	"FC Astana vs Kairat Almaty",
	"Tobol Kostanay vs Ordabasy",
	"Aktobe vs Shakhter Karagandy",
}

var demoUsers = []string{"Alice", "Bob", "Carol"}

type seeder struct {
	repos    *repository.Repositories
	searchES *search.ElasticsearchClient
}

func main() {
	_ = godotenv.Load()
	flag.Parse()

	cfg := config.Load()
	logger.Init(cfg.LogLevel, "text")

	slog.Info("Starting demo data generator...")

	db, err := database.Connect(cfg.Database)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	s := &seeder{repos: repository.NewRepositories(db)}

	if cfg.Elasticsearch.URL != "" {
		s.searchES, err = search.NewElasticsearchClient(cfg.Elasticsearch)
		if err != nil {
			slog.Warn("Elasticsearch unavailable, skipping event indexing", "error", err)
		}
	}

	ctx := context.Background()

	if err := s.seed(ctx); err != nil {
		slog.Error("Seeding failed", "error", err)
		os.Exit(1)
	}

	slog.Info("Demo data generation completed successfully!")
}

func (s *seeder) seed(ctx context.Context) error {
	for i, name := range fixtures {
		event := &models.Event{
			Name:     name,
			StartsAt: time.Now().Add(time.Duration(i+1) * 7 * 24 * time.Hour),
		}

		if err := s.repos.Events.Create(ctx, event); err != nil {
			return fmt.Errorf("failed to create event %q: %w", name, err)
		}

		if err := s.repos.Seats.CreateSeatsForEvent(ctx, event.ID, *rows, *seatsPerRow); err != nil {
			return fmt.Errorf("failed to create seats for %q: %w", name, err)
		}

		if s.searchES != nil {
			if err := s.searchES.IndexEvent(ctx, event); err != nil {
				slog.Warn("Failed to index event", "error", err, "event_id", event.ID)
			}
		}

		slog.Info("Created event", "id", event.ID, "name", name,
			"seats", (*rows)*(*seatsPerRow))
	}

	if !*skipUsers {
		for _, name := range demoUsers {
			user := &models.User{Name: name}
			if err := s.repos.Users.Create(ctx, user); err != nil {
				return fmt.Errorf("failed to create user %q: %w", name, err)
			}
			slog.Info("Created user", "id", user.ID, "name", name)
		}
	}

	return nil
}
