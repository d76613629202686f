package contract

import (
	"context"

	"notes-admin-be/internal/entity"
	"notes-admin-be/internal/repository/specification"
)

type AdminLogRepository interface {
	Create(ctx context.Context, entry *entity.AdminLogEntry) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AdminLogEntry, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
