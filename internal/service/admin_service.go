package service

import (
	"context"

	"notes-admin-be/internal/dto"
	"notes-admin-be/internal/pkg/logger"
	"notes-admin-be/internal/repository/unitofwork"
	"notes-admin-be/pkg/admin/changelist"
	"notes-admin-be/pkg/admin/mapper"
	"notes-admin-be/pkg/admin/note"
	"notes-admin-be/pkg/admin/user"

	"github.com/google/uuid"
)

type IAdminService interface {
	// Note Management
	ListNotes(ctx context.Context, req dto.AdminNoteListRequest) (*dto.ChangeListResponse, error)
	CreateNote(ctx context.Context, actorId uuid.UUID, req dto.AdminCreateNoteRequest) (*dto.NoteResponse, error)
	GetNote(ctx context.Context, noteId uuid.UUID) (*dto.NoteResponse, error)
	UpdateNote(ctx context.Context, actorId, noteId uuid.UUID, req dto.AdminUpdateNoteRequest) (*dto.NoteResponse, error)
	PatchNote(ctx context.Context, actorId, noteId uuid.UUID, req dto.AdminPatchNoteRequest) (*dto.NoteResponse, error)
	DeleteNote(ctx context.Context, actorId, noteId uuid.UUID) error
	GetNoteHistory(ctx context.Context, noteId uuid.UUID) ([]*dto.AdminLogEntryResponse, error)

	// User Management
	GetAllUsers(ctx context.Context, page, limit int, search string) ([]*dto.AdminUserResponse, error)
	CreateUser(ctx context.Context, actorId uuid.UUID, req dto.AdminCreateUserRequest) (*dto.AdminUserResponse, error)
	GetUserNotes(ctx context.Context, userId uuid.UUID) ([]*dto.NoteResponse, error)
	DeleteUser(ctx context.Context, actorId, userId uuid.UUID) (*dto.AdminDeleteUserResponse, error)
}

// NoteLister renders the note change list.
type NoteLister interface {
	List(ctx context.Context, q changelist.Query) (*changelist.Result, error)
}

type adminService struct {
	uowFactory  unitofwork.RepositoryFactory
	noteList    NoteLister
	noteManager *note.Manager
	userManager *user.Manager
	logger      logger.ILogger
}

func NewAdminService(
	uowFactory unitofwork.RepositoryFactory,
	noteList NoteLister,
	noteManager *note.Manager,
	userManager *user.Manager,
	logger logger.ILogger,
) IAdminService {
	return &adminService{
		uowFactory:  uowFactory,
		noteList:    noteList,
		noteManager: noteManager,
		userManager: userManager,
		logger:      logger,
	}
}

func (s *adminService) ListNotes(ctx context.Context, req dto.AdminNoteListRequest) (*dto.ChangeListResponse, error) {
	q := changelist.Query{
		Search:  req.Search,
		Page:    req.Page,
		PerPage: req.PerPage,
	}
	if req.UpdatedAt != "" {
		q.Filters = map[string]string{"updated_at": req.UpdatedAt}
	}

	res, err := s.noteList.List(ctx, q)
	if err != nil {
		return nil, err
	}
	return mapper.ChangeListToResponse(res), nil
}

func (s *adminService) CreateNote(ctx context.Context, actorId uuid.UUID, req dto.AdminCreateNoteRequest) (*dto.NoteResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	n, err := s.noteManager.Create(ctx, uow, actorId, req)
	if err != nil {
		return nil, err
	}
	return mapper.NoteToResponse(n), nil
}

func (s *adminService) GetNote(ctx context.Context, noteId uuid.UUID) (*dto.NoteResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	n, err := s.noteManager.FindOne(ctx, uow, noteId)
	if err != nil {
		return nil, err
	}
	return mapper.NoteToResponse(n), nil
}

func (s *adminService) UpdateNote(ctx context.Context, actorId, noteId uuid.UUID, req dto.AdminUpdateNoteRequest) (*dto.NoteResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	n, err := s.noteManager.Update(ctx, uow, actorId, noteId, req)
	if err != nil {
		return nil, err
	}
	return mapper.NoteToResponse(n), nil
}

func (s *adminService) PatchNote(ctx context.Context, actorId, noteId uuid.UUID, req dto.AdminPatchNoteRequest) (*dto.NoteResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	n, err := s.noteManager.Patch(ctx, uow, actorId, noteId, req)
	if err != nil {
		return nil, err
	}
	return mapper.NoteToResponse(n), nil
}

func (s *adminService) DeleteNote(ctx context.Context, actorId, noteId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return s.noteManager.Delete(ctx, uow, actorId, noteId)
}

func (s *adminService) GetNoteHistory(ctx context.Context, noteId uuid.UUID) ([]*dto.AdminLogEntryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	entries, err := s.noteManager.History(ctx, uow, noteId)
	if err != nil {
		return nil, err
	}
	return mapper.LogEntriesToResponse(entries), nil
}

func (s *adminService) GetAllUsers(ctx context.Context, page, limit int, search string) ([]*dto.AdminUserResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	users, err := s.userManager.FindAll(ctx, uow, page, limit, search)
	if err != nil {
		return nil, err
	}
	return mapper.UsersToResponse(users), nil
}

func (s *adminService) CreateUser(ctx context.Context, actorId uuid.UUID, req dto.AdminCreateUserRequest) (*dto.AdminUserResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	u, err := s.userManager.Create(ctx, uow, actorId, req)
	if err != nil {
		return nil, err
	}
	return mapper.UserToResponse(u), nil
}

func (s *adminService) GetUserNotes(ctx context.Context, userId uuid.UUID) ([]*dto.NoteResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	notes, err := s.noteManager.FindAllByOwner(ctx, uow, userId)
	if err != nil {
		return nil, err
	}
	return mapper.NotesToResponse(notes), nil
}

func (s *adminService) DeleteUser(ctx context.Context, actorId, userId uuid.UUID) (*dto.AdminDeleteUserResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	deleted, err := s.userManager.Delete(ctx, uow, actorId, userId)
	if err != nil {
		return nil, err
	}
	return &dto.AdminDeleteUserResponse{UserId: userId, NotesDeleted: deleted}, nil
}
