package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"notes-admin-be/internal/config"
	"notes-admin-be/pkg/database"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var cfg *config.Config

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "manage",
	Short: "Management commands for the notes admin backend",
	Long: `manage runs one-off maintenance tasks against the notes database:
schema migrations, creating admin accounts and watching admin events.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Parse()
		return err
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		cancel()
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}

func connect(ctx context.Context) (*gorm.DB, error) {
	db, err := database.Connect(ctx, database.Options{
		DSN:             cfg.Database.Connection,
		ConnectAttempts: cfg.Database.ConnectAttempts,
		LogLevel:        cfg.Database.LogLevel,
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	return db, nil
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
