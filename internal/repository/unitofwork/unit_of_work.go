package unitofwork

import (
	"context"

	"notes-admin-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	NoteRepository() contract.NoteRepository
	AdminLogRepository() contract.AdminLogRepository
}
