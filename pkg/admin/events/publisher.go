package events

import (
	"context"
	"time"

	"notes-admin-be/internal/entity"
	"notes-admin-be/internal/pkg/logger"
	pkgEvents "notes-admin-be/pkg/events"

	"github.com/google/uuid"
)

const (
	NoteCreated = "NOTE_CREATED"
	NoteUpdated = "NOTE_UPDATED"
	NoteDeleted = "NOTE_DELETED"
	UserCreated = "USER_CREATED"
	UserDeleted = "USER_DELETED"
)

// Publisher abstracts event publishing for admin operations. Failures are
// logged, never returned: the admin write has already committed.
type Publisher interface {
	PublishNoteCreated(ctx context.Context, actorId uuid.UUID, note *entity.Note)
	PublishNoteUpdated(ctx context.Context, actorId uuid.UUID, note *entity.Note, changedFields []string)
	PublishNoteDeleted(ctx context.Context, actorId uuid.UUID, note *entity.Note)
	PublishUserCreated(ctx context.Context, actorId uuid.UUID, user *entity.User)
	PublishUserDeleted(ctx context.Context, actorId uuid.UUID, user *entity.User, notesDeleted int64)
}

// BusPublisher implements Publisher on top of an event bus (NATS or in process).
type BusPublisher struct {
	bus    pkgEvents.Bus
	logger logger.ILogger
}

func NewBusPublisher(bus pkgEvents.Bus, logger logger.ILogger) *BusPublisher {
	return &BusPublisher{
		bus:    bus,
		logger: logger,
	}
}

func (p *BusPublisher) publish(ctx context.Context, eventType string, data map[string]interface{}) {
	if p.bus == nil {
		return
	}

	now := time.Now()
	data["occurred_at"] = now
	evt := pkgEvents.BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: now,
	}

	if err := p.bus.Publish(ctx, evt); err != nil {
		p.logger.Error("ADMIN", "Failed to publish "+eventType+" event", map[string]interface{}{"error": err.Error()})
	}
}

func (p *BusPublisher) PublishNoteCreated(ctx context.Context, actorId uuid.UUID, note *entity.Note) {
	p.publish(ctx, NoteCreated, map[string]interface{}{
		"actor_id":    actorId,
		"note_id":     note.Id,
		"owner_id":    note.OwnerId,
		"title":       note.Label(),
		"entity_type": "note",
		"entity_id":   note.Id.String(),
	})
}

func (p *BusPublisher) PublishNoteUpdated(ctx context.Context, actorId uuid.UUID, note *entity.Note, changedFields []string) {
	p.publish(ctx, NoteUpdated, map[string]interface{}{
		"actor_id":       actorId,
		"note_id":        note.Id,
		"owner_id":       note.OwnerId,
		"title":          note.Label(),
		"changed_fields": changedFields,
		"entity_type":    "note",
		"entity_id":      note.Id.String(),
	})
}

func (p *BusPublisher) PublishNoteDeleted(ctx context.Context, actorId uuid.UUID, note *entity.Note) {
	p.publish(ctx, NoteDeleted, map[string]interface{}{
		"actor_id":    actorId,
		"note_id":     note.Id,
		"owner_id":    note.OwnerId,
		"title":       note.Label(),
		"entity_type": "note",
		"entity_id":   note.Id.String(),
	})
}

func (p *BusPublisher) PublishUserCreated(ctx context.Context, actorId uuid.UUID, user *entity.User) {
	p.publish(ctx, UserCreated, map[string]interface{}{
		"actor_id":    actorId,
		"user_id":     user.Id,
		"username":    user.Username,
		"role":        string(user.Role),
		"entity_type": "user",
		"entity_id":   user.Id.String(),
	})
}

func (p *BusPublisher) PublishUserDeleted(ctx context.Context, actorId uuid.UUID, user *entity.User, notesDeleted int64) {
	p.publish(ctx, UserDeleted, map[string]interface{}{
		"actor_id":      actorId,
		"user_id":       user.Id,
		"username":      user.Username,
		"notes_deleted": notesDeleted,
		"entity_type":   "user",
		"entity_id":     user.Id.String(),
	})
}
