package implementation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"notes-admin-be/internal/entity"
	"notes-admin-be/internal/mapper"
	"notes-admin-be/internal/model"
	"notes-admin-be/internal/repository/contract"
	"notes-admin-be/internal/repository/scope"
	"notes-admin-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type NoteRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.NoteMapper
	now    func() time.Time
}

func NewNoteRepository(db *gorm.DB) contract.NoteRepository {
	return &NoteRepositoryImpl{
		db:     db,
		mapper: mapper.NewNoteMapper(),
		now:    entity.Now,
	}
}

func (r *NoteRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

// Create validates the note, stamps both timestamps and inserts it. Nothing
// is written when validation or a constraint fails.
func (r *NoteRepositoryImpl) Create(ctx context.Context, note *entity.Note) error {
	if err := note.Validate(); err != nil {
		return err
	}
	if note.Id == uuid.Nil {
		note.Id = uuid.New()
	}
	note.StampCreated(r.now())

	m := r.mapper.ToModel(note)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(m).Error; err != nil {
		return translateError(err, "title", entity.NoteTitleMaxLength)
	}
	return nil
}

// Update writes title and content and re-stamps updated_at. created_at and
// the owner are never touched.
func (r *NoteRepositoryImpl) Update(ctx context.Context, note *entity.Note) error {
	if err := note.Validate(); err != nil {
		return err
	}
	note.StampUpdated(r.now())

	result := r.db.WithContext(ctx).
		Model(&model.Note{}).
		Where("id = ?", note.Id).
		Updates(map[string]interface{}{
			"title":      note.Title,
			"content":    note.Content,
			"updated_at": note.UpdatedAt,
		})
	if result.Error != nil {
		return translateError(result.Error, "title", entity.NoteTitleMaxLength)
	}
	if result.RowsAffected == 0 {
		return entity.ErrNoteNotFound
	}
	return nil
}

func (r *NoteRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Note{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return entity.ErrNoteNotFound
	}
	return nil
}

func (r *NoteRepositoryImpl) DeleteAllByOwnerId(ctx context.Context, ownerId uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Where("owner_id = ?", ownerId).Delete(&model.Note{})
	if result.Error != nil {
		return 0, fmt.Errorf("delete notes of owner %s: %w", ownerId, result.Error)
	}
	return result.RowsAffected, nil
}

func (r *NoteRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Note, error) {
	var m model.Note
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

// FindAll lists notes most recently modified first unless a specification
// orders them otherwise.
func (r *NoteRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Note, error) {
	var models []*model.Note
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Note{}), specs...)
	if err := query.Scopes(scope.OrderByUpdatedDesc).Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *NoteRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Note{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
