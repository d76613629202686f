package implementation

import (
	"context"

	"notes-admin-be/internal/entity"
	"notes-admin-be/internal/mapper"
	"notes-admin-be/internal/model"
	"notes-admin-be/internal/repository/contract"
	"notes-admin-be/internal/repository/scope"
	"notes-admin-be/internal/repository/specification"

	"gorm.io/gorm"
)

type AdminLogRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.AdminLogMapper
}

func NewAdminLogRepository(db *gorm.DB) contract.AdminLogRepository {
	return &AdminLogRepositoryImpl{
		db:     db,
		mapper: mapper.NewAdminLogMapper(),
	}
}

func (r *AdminLogRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *AdminLogRepositoryImpl) Create(ctx context.Context, entry *entity.AdminLogEntry) error {
	m, err := r.mapper.ToModel(entry)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return translateError(err, "object_repr", entity.AdminLogObjectReprMaxLength)
	}
	return nil
}

func (r *AdminLogRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AdminLogEntry, error) {
	var models []*model.AdminLogEntry
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Scopes(scope.OrderByActionTimeDesc).Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *AdminLogRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.AdminLogEntry{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
