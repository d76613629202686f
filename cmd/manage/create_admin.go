package main

import (
	"errors"

	"notes-admin-be/internal/dto"
	"notes-admin-be/internal/entity"
	"notes-admin-be/internal/pkg/logger"
	"notes-admin-be/internal/pkg/serverutils"
	"notes-admin-be/internal/repository/unitofwork"
	"notes-admin-be/pkg/admin/events"
	"notes-admin-be/pkg/admin/history"
	"notes-admin-be/pkg/admin/user"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	adminUsername string
	adminEmail    string
	adminPassword string
)

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create a staff account that can log in to the admin console",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if adminPassword == "" {
			return errors.New("--password is required")
		}

		req := dto.AdminCreateUserRequest{
			Username: adminUsername,
			Email:    adminEmail,
			Password: adminPassword,
			Role:     string(entity.UserRoleAdmin),
		}
		if err := serverutils.ValidateRequest(req); err != nil {
			return err
		}

		ctx := cmd.Context()
		db, err := connect(ctx)
		if err != nil {
			return err
		}
		defer closeDB(db)

		sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.IsProduction())
		defer sysLogger.Sync()

		// Accounts created here have no acting admin, so no log entry or event.
		manager := user.NewManager(sysLogger, events.NewBusPublisher(nil, sysLogger), history.NewRecorder(sysLogger))
		uow := unitofwork.NewRepositoryFactory(db).NewUnitOfWork(ctx)

		u, err := manager.Create(ctx, uow, uuid.Nil, req)
		if err != nil {
			return err
		}
		color.Green("Created admin %s (%s)", u.Username, u.Id)
		return nil
	},
}

func init() {
	createAdminCmd.Flags().StringVarP(&adminUsername, "username", "u", "", "Username of the new admin")
	createAdminCmd.Flags().StringVarP(&adminEmail, "email", "e", "", "Email address")
	createAdminCmd.Flags().StringVarP(&adminPassword, "password", "p", "", "Password, at least 8 characters")
	_ = createAdminCmd.MarkFlagRequired("username")

	rootCmd.AddCommand(createAdminCmd)
}
