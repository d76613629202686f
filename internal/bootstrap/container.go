package bootstrap

import (
	"fmt"

	"notes-admin-be/internal/config"
	"notes-admin-be/internal/controller"
	"notes-admin-be/internal/entity"
	"notes-admin-be/internal/model"
	"notes-admin-be/internal/pkg/logger"
	"notes-admin-be/internal/repository/unitofwork"
	"notes-admin-be/internal/service"
	"notes-admin-be/pkg/admin/changelist"
	adminEvents "notes-admin-be/pkg/admin/events"
	"notes-admin-be/pkg/admin/history"
	"notes-admin-be/pkg/admin/note"
	"notes-admin-be/pkg/admin/user"
	pkgEvents "notes-admin-be/pkg/events"
	pktNats "notes-admin-be/pkg/nats"

	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AdminController controller.IAdminController

	// Services
	AdminService service.IAdminService
	AuthService  service.IAuthService

	EventBus pkgEvents.Bus
	Logger   logger.ILogger
}

// NewEventBus connects to NATS when a URL is configured and falls back to the
// in-process bus otherwise or when the broker is unreachable.
func NewEventBus(cfg config.NatsConfig, sysLogger logger.ILogger) pkgEvents.Bus {
	if cfg.URL == "" {
		sysLogger.Info("EVENTS", "Using in-process event bus", nil)
		return pkgEvents.NewChannelBus(nil)
	}

	natsPub, err := pktNats.NewPublisher(cfg.URL)
	if err != nil {
		sysLogger.Warn("EVENTS", "Failed to connect to NATS, using in-process event bus", map[string]interface{}{
			"error": err.Error(),
			"url":   cfg.URL,
		})
		return pkgEvents.NewChannelBus(nil)
	}
	sysLogger.Info("EVENTS", "Using NATS JetStream event bus", map[string]interface{}{"url": cfg.URL})
	return natsPub
}

func NewContainer(db *gorm.DB, cfg *config.Config, sysLogger logger.ILogger) (*Container, error) {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)

	loc, err := cfg.Admin.Location()
	if err != nil {
		return nil, err
	}

	// 2. Event Bus
	bus := NewEventBus(cfg.Nats, sysLogger)
	adminEventPublisher := adminEvents.NewBusPublisher(bus, sysLogger)

	// 3. Admin Managers
	recorder := history.NewRecorder(sysLogger)
	noteManager := note.NewManager(sysLogger, adminEventPublisher, recorder)
	userManager := user.NewManager(sysLogger, adminEventPublisher, recorder)

	noteList, err := changelist.New(db, &model.Note{}, entity.Note{}, changelist.Options{
		Location: loc,
		PerPage:  cfg.Admin.ListPerPage,
	})
	if err != nil {
		_ = bus.Close()
		return nil, fmt.Errorf("build note change list: %w", err)
	}

	// 4. Services
	adminService := service.NewAdminService(uowFactory, noteList, noteManager, userManager, sysLogger)
	authService := service.NewAuthService(uowFactory, cfg.Jwt, sysLogger)

	// 5. Controllers
	adminController := controller.NewAdminController(adminService, authService, cfg.Jwt.Secret)

	return &Container{
		AdminController: adminController,
		AdminService:    adminService,
		AuthService:     authService,
		EventBus:        bus,
		Logger:          sysLogger,
	}, nil
}

// Close releases the event bus connection.
func (c *Container) Close() error {
	return c.EventBus.Close()
}
