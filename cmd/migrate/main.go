package main

import (
	"log"

	"notes-admin-be/internal/config"
	"notes-admin-be/pkg/database"
)

// One-shot schema upgrade, for deploy jobs that run before the server starts.
func main() {
	// 1. Load Configuration
	cfg := config.Load()
	if cfg.Database.Connection == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Apply pending migrations
	mg, err := database.NewMigrator(cfg.Database.Connection)
	if err != nil {
		log.Fatalf("Error: Failed to open migrator: %v", err)
	}
	defer mg.Close()

	log.Println("Applying migrations...")
	if err := mg.Up(); err != nil {
		log.Fatalf("Error: Migration failed: %v", err)
	}

	version, dirty, err := mg.Version()
	if err != nil {
		log.Fatalf("Error: Failed to read schema version: %v", err)
	}
	log.Printf("Schema is at version %d (dirty=%t)", version, dirty)
}
