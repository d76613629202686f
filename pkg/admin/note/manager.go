package note

import (
	"context"

	"notes-admin-be/internal/dto"
	"notes-admin-be/internal/entity"
	"notes-admin-be/internal/pkg/logger"
	"notes-admin-be/internal/repository/specification"
	"notes-admin-be/internal/repository/unitofwork"
	adminEvents "notes-admin-be/pkg/admin/events"
	"notes-admin-be/pkg/admin/history"

	"github.com/google/uuid"
)

// Manager handles note add, change and delete from the admin console.
type Manager struct {
	logger    logger.ILogger
	publisher adminEvents.Publisher
	history   *history.Recorder
}

func NewManager(logger logger.ILogger, publisher adminEvents.Publisher, history *history.Recorder) *Manager {
	return &Manager{
		logger:    logger,
		publisher: publisher,
		history:   history,
	}
}

// Create inserts a note and its admin log entry in one transaction.
func (m *Manager) Create(ctx context.Context, uow unitofwork.UnitOfWork, actorId uuid.UUID, req dto.AdminCreateNoteRequest) (*entity.Note, error) {
	note := &entity.Note{
		Title:   req.Title,
		OwnerId: req.OwnerId,
	}
	if req.Content != nil {
		note.Content = *req.Content
	}

	err := unitofwork.RunInTx(ctx, uow, func(tx unitofwork.UnitOfWork) error {
		if err := tx.NoteRepository().Create(ctx, note); err != nil {
			return err
		}
		return m.history.LogAddition(ctx, tx, actorId, history.ObjectTypeNote, note.Id.String(), note)
	})
	if err != nil {
		return nil, err
	}

	m.logger.Info("ADMIN", "Created note", map[string]interface{}{
		"noteId":  note.Id.String(),
		"ownerId": note.OwnerId.String(),
	})
	m.publisher.PublishNoteCreated(ctx, actorId, note)

	return note, nil
}

// Update replaces title and content.
func (m *Manager) Update(ctx context.Context, uow unitofwork.UnitOfWork, actorId, noteId uuid.UUID, req dto.AdminUpdateNoteRequest) (*entity.Note, error) {
	return m.change(ctx, uow, actorId, noteId, func(n *entity.Note) {
		n.Title = req.Title
		if req.Content != nil {
			n.Content = *req.Content
		}
	})
}

// Patch changes only the fields present in req.
func (m *Manager) Patch(ctx context.Context, uow unitofwork.UnitOfWork, actorId, noteId uuid.UUID, req dto.AdminPatchNoteRequest) (*entity.Note, error) {
	return m.change(ctx, uow, actorId, noteId, func(n *entity.Note) {
		if req.Title != nil {
			n.Title = *req.Title
		}
		if req.Content != nil {
			n.Content = *req.Content
		}
	})
}

func (m *Manager) change(ctx context.Context, uow unitofwork.UnitOfWork, actorId, noteId uuid.UUID, apply func(n *entity.Note)) (*entity.Note, error) {
	var (
		note    *entity.Note
		changed []string
	)

	err := unitofwork.RunInTx(ctx, uow, func(tx unitofwork.UnitOfWork) error {
		var err error
		note, err = tx.NoteRepository().FindOne(ctx, specification.ByID{ID: noteId}, specification.WithOwner{})
		if err != nil {
			return err
		}
		if note == nil {
			return entity.ErrNoteNotFound
		}

		before := *note
		apply(note)
		changed = ChangedFields(&before, note)

		if err := tx.NoteRepository().Update(ctx, note); err != nil {
			return err
		}
		return m.history.LogChange(ctx, tx, actorId, history.ObjectTypeNote, note.Id.String(), note, changed)
	})
	if err != nil {
		return nil, err
	}

	m.logger.Info("ADMIN", "Updated note", map[string]interface{}{
		"noteId":  note.Id.String(),
		"changed": changed,
	})
	m.publisher.PublishNoteUpdated(ctx, actorId, note, changed)

	return note, nil
}

// Delete removes a note and logs the deletion in the same transaction.
func (m *Manager) Delete(ctx context.Context, uow unitofwork.UnitOfWork, actorId, noteId uuid.UUID) error {
	var note *entity.Note

	err := unitofwork.RunInTx(ctx, uow, func(tx unitofwork.UnitOfWork) error {
		var err error
		note, err = tx.NoteRepository().FindOne(ctx, specification.ByID{ID: noteId})
		if err != nil {
			return err
		}
		if note == nil {
			return entity.ErrNoteNotFound
		}

		if err := tx.NoteRepository().Delete(ctx, noteId); err != nil {
			return err
		}
		return m.history.LogDeletion(ctx, tx, actorId, history.ObjectTypeNote, note.Id.String(), note)
	})
	if err != nil {
		return err
	}

	m.logger.Info("ADMIN", "Deleted note", map[string]interface{}{
		"noteId": noteId.String(),
	})
	m.publisher.PublishNoteDeleted(ctx, actorId, note)

	return nil
}

// FindOne returns the note with its owner loaded.
func (m *Manager) FindOne(ctx context.Context, uow unitofwork.UnitOfWork, noteId uuid.UUID) (*entity.Note, error) {
	note, err := uow.NoteRepository().FindOne(ctx, specification.ByID{ID: noteId}, specification.WithOwner{})
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, entity.ErrNoteNotFound
	}
	return note, nil
}

// FindAllByOwner lists the notes of one owner in default ordering.
func (m *Manager) FindAllByOwner(ctx context.Context, uow unitofwork.UnitOfWork, ownerId uuid.UUID) ([]*entity.Note, error) {
	owner, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: ownerId})
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, entity.ErrUserNotFound
	}

	notes, err := uow.NoteRepository().FindAll(ctx, specification.NoteOwnedBy{OwnerID: ownerId})
	if err != nil {
		return nil, err
	}
	for _, n := range notes {
		n.Owner = owner
	}
	return notes, nil
}

// History lists the admin log entries of one note, newest first.
func (m *Manager) History(ctx context.Context, uow unitofwork.UnitOfWork, noteId uuid.UUID) ([]*entity.AdminLogEntry, error) {
	if _, err := m.FindOne(ctx, uow, noteId); err != nil {
		return nil, err
	}
	return m.history.History(ctx, uow, history.ObjectTypeNote, noteId.String())
}

// ChangedFields names the editable fields that differ between before and after.
func ChangedFields(before, after *entity.Note) []string {
	var fields []string
	if before.Title != after.Title {
		fields = append(fields, "title")
	}
	if before.Content != after.Content {
		fields = append(fields, "content")
	}
	return fields
}
