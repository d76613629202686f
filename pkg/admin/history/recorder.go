package history

import (
	"context"
	"fmt"

	"notes-admin-be/internal/entity"
	"notes-admin-be/internal/pkg/logger"
	"notes-admin-be/internal/repository/specification"
	"notes-admin-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

const (
	ObjectTypeNote = "note"
	ObjectTypeUser = "user"
)

// Recorder writes and reads the admin action log. Writes go through the
// caller's unit of work so an entry commits or rolls back with the change.
type Recorder struct {
	logger logger.ILogger
}

func NewRecorder(logger logger.ILogger) *Recorder {
	return &Recorder{
		logger: logger,
	}
}

// LogAddition records that actor added obj. Actions without an actor
// (command line, seeding) are not logged.
func (r *Recorder) LogAddition(ctx context.Context, uow unitofwork.UnitOfWork, actor uuid.UUID, objectType, objectId string, obj fmt.Stringer) error {
	return r.log(ctx, uow, actor, objectType, objectId, obj, entity.AdminActionAddition, AddedMessage())
}

func (r *Recorder) LogChange(ctx context.Context, uow unitofwork.UnitOfWork, actor uuid.UUID, objectType, objectId string, obj fmt.Stringer, changedFields []string) error {
	return r.log(ctx, uow, actor, objectType, objectId, obj, entity.AdminActionChange, ChangedMessage(changedFields))
}

func (r *Recorder) LogDeletion(ctx context.Context, uow unitofwork.UnitOfWork, actor uuid.UUID, objectType, objectId string, obj fmt.Stringer) error {
	return r.log(ctx, uow, actor, objectType, objectId, obj, entity.AdminActionDeletion, nil)
}

func (r *Recorder) log(ctx context.Context, uow unitofwork.UnitOfWork, actor uuid.UUID, objectType, objectId string, obj fmt.Stringer, flag entity.AdminActionFlag, message []map[string]interface{}) error {
	if actor == uuid.Nil {
		return nil
	}

	entry := entity.NewAdminLogEntry(actor, objectType, objectId, obj, flag, message)
	if err := uow.AdminLogRepository().Create(ctx, entry); err != nil {
		r.logger.Error("ADMIN", "Failed to write admin log entry", map[string]interface{}{
			"error":       err.Error(),
			"object_type": objectType,
			"object_id":   objectId,
			"action":      flag.String(),
		})
		return fmt.Errorf("write admin log entry: %w", err)
	}
	return nil
}

// History lists the entries of one object, newest first.
func (r *Recorder) History(ctx context.Context, uow unitofwork.UnitOfWork, objectType, objectId string) ([]*entity.AdminLogEntry, error) {
	return uow.AdminLogRepository().FindAll(ctx, specification.ForObject{ObjectType: objectType, ObjectID: objectId})
}

func AddedMessage() []map[string]interface{} {
	return []map[string]interface{}{{"added": map[string]interface{}{}}}
}

// ChangedMessage is empty when nothing changed.
func ChangedMessage(fields []string) []map[string]interface{} {
	if len(fields) == 0 {
		return []map[string]interface{}{}
	}
	return []map[string]interface{}{{"changed": map[string]interface{}{"fields": fields}}}
}
