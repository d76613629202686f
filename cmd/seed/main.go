package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"notes-admin-be/internal/config"
	"notes-admin-be/internal/dto"
	"notes-admin-be/internal/entity"
	"notes-admin-be/internal/pkg/logger"
	"notes-admin-be/internal/repository/unitofwork"
	adminEvents "notes-admin-be/pkg/admin/events"
	"notes-admin-be/pkg/admin/history"
	"notes-admin-be/pkg/admin/note"
	"notes-admin-be/pkg/admin/user"
	"notes-admin-be/pkg/database"

	"github.com/google/uuid"
)

type seedUser struct {
	username string
	fullName string
	notes    []dto.AdminCreateNoteRequest
}

func content(s string) *string { return &s }

var demoUsers = []seedUser{
	{
		username: "ada",
		fullName: "Ada Lovelace",
		notes: []dto.AdminCreateNoteRequest{
			{Title: "Analytical engine", Content: content("Notes on the Bernoulli numbers program.")},
			{Title: "Groceries", Content: content("milk, eggs, 100% rye bread")},
		},
	},
	{
		username: "grace",
		fullName: "Grace Hopper",
		notes: []dto.AdminCreateNoteRequest{
			{Title: "Compiler ideas", Content: content("")},
		},
	},
}

// Seeds a few users with notes for local development. Existing users are skipped.
func main() {
	ctx := context.Background()

	// 1. Load Configuration
	cfg := config.Load()

	db, err := database.Connect(ctx, database.Options{
		DSN:             cfg.Database.Connection,
		ConnectAttempts: cfg.Database.ConnectAttempts,
		LogLevel:        cfg.Database.LogLevel,
	})
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	// 2. Managers, without events or admin log entries
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.IsProduction())
	defer sysLogger.Sync()
	publisher := adminEvents.NewBusPublisher(nil, sysLogger)
	recorder := history.NewRecorder(sysLogger)
	userManager := user.NewManager(sysLogger, publisher, recorder)
	noteManager := note.NewManager(sysLogger, publisher, recorder)
	uows := unitofwork.NewRepositoryFactory(db)

	// 3. Seed
	for _, su := range demoUsers {
		if err := seed(ctx, uows, userManager, noteManager, su); err != nil {
			log.Fatalf("Error: %v", err)
		}
	}
	log.Println("Seeding complete")
}

func seed(ctx context.Context, uows unitofwork.RepositoryFactory, users *user.Manager, notes *note.Manager, su seedUser) error {
	u, err := users.Create(ctx, uows.NewUnitOfWork(ctx), uuid.Nil, dto.AdminCreateUserRequest{
		Username: su.username,
		FullName: su.fullName,
	})
	if errors.Is(err, entity.ErrUsernameTaken) {
		log.Printf("Skipping %s: already exists", su.username)
		return nil
	}
	if err != nil {
		return fmt.Errorf("create user %s: %w", su.username, err)
	}

	for _, req := range su.notes {
		req.OwnerId = u.Id
		if _, err := notes.Create(ctx, uows.NewUnitOfWork(ctx), uuid.Nil, req); err != nil {
			return fmt.Errorf("create note %q: %w", req.Title, err)
		}
	}
	log.Printf("Seeded %s with %d notes", su.username, len(su.notes))
	return nil
}
