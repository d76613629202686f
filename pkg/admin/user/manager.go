package user

import (
	"context"
	"fmt"

	"notes-admin-be/internal/dto"
	"notes-admin-be/internal/entity"
	"notes-admin-be/internal/pkg/logger"
	"notes-admin-be/internal/repository/specification"
	"notes-admin-be/internal/repository/unitofwork"
	adminEvents "notes-admin-be/pkg/admin/events"
	"notes-admin-be/pkg/admin/history"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Manager handles user-related admin operations
type Manager struct {
	logger    logger.ILogger
	publisher adminEvents.Publisher
	history   *history.Recorder
	cost      int
}

// NewManager creates a new user manager
func NewManager(logger logger.ILogger, publisher adminEvents.Publisher, history *history.Recorder) *Manager {
	return &Manager{
		logger:    logger,
		publisher: publisher,
		history:   history,
		cost:      bcrypt.DefaultCost,
	}
}

// WithHashCost sets the bcrypt cost used for new passwords.
func (m *Manager) WithHashCost(cost int) *Manager {
	m.cost = cost
	return m
}

// Create creates a new user with password hashing and emits event
func (m *Manager) Create(ctx context.Context, uow unitofwork.UnitOfWork, actorId uuid.UUID, req dto.AdminCreateUserRequest) (*entity.User, error) {
	// 1. Check existing
	existing, err := uow.UserRepository().FindOne(ctx, specification.ByUsername{Username: req.Username})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: %s", entity.ErrUsernameTaken, req.Username)
	}

	// 2. Hash Password, users without one cannot log in
	user := &entity.User{
		Username: req.Username,
		Email:    req.Email,
		FullName: req.FullName,
		Role:     entity.UserRole(req.Role),
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), m.cost)
		if err != nil {
			return nil, err
		}
		hashStr := string(hash)
		user.PasswordHash = &hashStr
	}

	// 3. Create User
	err = unitofwork.RunInTx(ctx, uow, func(tx unitofwork.UnitOfWork) error {
		if err := tx.UserRepository().Create(ctx, user); err != nil {
			return err
		}
		return m.history.LogAddition(ctx, tx, actorId, history.ObjectTypeUser, user.Id.String(), user)
	})
	if err != nil {
		return nil, err
	}

	m.logger.Info("ADMIN", "Created user", map[string]interface{}{
		"userId":   user.Id.String(),
		"username": user.Username,
		"role":     string(user.Role),
	})
	m.publisher.PublishUserCreated(ctx, actorId, user)

	return user, nil
}

// Delete removes a user together with all of their notes. Notes go first,
// then the user, then the log entry; any failure rolls the whole deletion back.
func (m *Manager) Delete(ctx context.Context, uow unitofwork.UnitOfWork, actorId, userId uuid.UUID) (int64, error) {
	if actorId == userId {
		return 0, fmt.Errorf("%w: cannot delete your own account", entity.ErrForbidden)
	}

	var (
		user         *entity.User
		notesDeleted int64
	)

	err := unitofwork.RunInTx(ctx, uow, func(tx unitofwork.UnitOfWork) error {
		var err error
		user, err = tx.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
		if err != nil {
			return err
		}
		if user == nil {
			return entity.ErrUserNotFound
		}

		notesDeleted, err = tx.NoteRepository().DeleteAllByOwnerId(ctx, userId)
		if err != nil {
			return fmt.Errorf("delete notes of user: %w", err)
		}
		if err := tx.UserRepository().Delete(ctx, userId); err != nil {
			return err
		}
		return m.history.LogDeletion(ctx, tx, actorId, history.ObjectTypeUser, user.Id.String(), user)
	})
	if err != nil {
		return 0, err
	}

	m.logger.Info("ADMIN", "Deleted User", map[string]interface{}{
		"userId":       userId.String(),
		"notesDeleted": notesDeleted,
	})
	m.publisher.PublishUserDeleted(ctx, actorId, user, notesDeleted)

	return notesDeleted, nil
}

// FindAll retrieves users with pagination and optional search
func (m *Manager) FindAll(ctx context.Context, uow unitofwork.UnitOfWork, page, limit int, search string) ([]*entity.User, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	return uow.UserRepository().FindAll(ctx,
		specification.UserSearch{Query: search},
		specification.Pagination{Limit: limit, Offset: offset},
	)
}

// FindOne retrieves a single user by ID
func (m *Manager) FindOne(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID) (*entity.User, error) {
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, entity.ErrUserNotFound
	}
	return user, nil
}

// FindByUsername returns nil when no user has that username.
func (m *Manager) FindByUsername(ctx context.Context, uow unitofwork.UnitOfWork, username string) (*entity.User, error) {
	return uow.UserRepository().FindOne(ctx, specification.ByUsername{Username: username})
}
