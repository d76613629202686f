package mapper

import (
	"notes-admin-be/internal/dto"
	"notes-admin-be/internal/entity"
	"notes-admin-be/pkg/admin/changelist"
)

// UserToResponse converts entity to admin user DTO
func UserToResponse(u *entity.User) *dto.AdminUserResponse {
	if u == nil {
		return nil
	}
	return &dto.AdminUserResponse{
		Id:        u.Id,
		Username:  u.Username,
		Email:     u.Email,
		FullName:  u.FullName,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}

// UsersToResponse converts multiple entities to admin user DTOs
func UsersToResponse(users []*entity.User) []*dto.AdminUserResponse {
	res := make([]*dto.AdminUserResponse, 0, len(users))
	for _, u := range users {
		res = append(res, UserToResponse(u))
	}
	return res
}

// NoteToResponse converts entity to note DTO; the owner username is set when
// the owner was loaded.
func NoteToResponse(n *entity.Note) *dto.NoteResponse {
	if n == nil {
		return nil
	}
	res := &dto.NoteResponse{
		Id:        n.Id,
		Title:     n.Title,
		Label:     n.Label(),
		Content:   n.Content,
		OwnerId:   n.OwnerId,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
	if n.Owner != nil {
		res.OwnerUsername = n.Owner.Username
	}
	return res
}

func NotesToResponse(notes []*entity.Note) []*dto.NoteResponse {
	res := make([]*dto.NoteResponse, 0, len(notes))
	for _, n := range notes {
		res = append(res, NoteToResponse(n))
	}
	return res
}

// LogEntriesToResponse converts admin log entries to DTOs
func LogEntriesToResponse(entries []*entity.AdminLogEntry) []*dto.AdminLogEntryResponse {
	res := make([]*dto.AdminLogEntryResponse, 0, len(entries))
	for _, e := range entries {
		message := e.ChangeMessage
		if message == nil {
			message = []map[string]interface{}{}
		}
		res = append(res, &dto.AdminLogEntryResponse{
			Id:            e.Id,
			ActionTime:    e.ActionTime,
			UserId:        e.UserId,
			ObjectType:    e.ObjectType,
			ObjectId:      e.ObjectId,
			ObjectRepr:    e.ObjectRepr,
			Action:        e.ActionFlag.String(),
			ChangeMessage: message,
		})
	}
	return res
}

// ChangeListToResponse converts a rendered change list page to its DTO
func ChangeListToResponse(r *changelist.Result) *dto.ChangeListResponse {
	if r == nil {
		return nil
	}
	res := &dto.ChangeListResponse{
		Columns: r.Columns,
		Rows:    make([]dto.ChangeListRow, 0, len(r.Rows)),
		Filters: make([]dto.ChangeListFilter, 0, len(r.Filters)),
		Search:  r.Search,
		Total:   r.Total,
		Page:    r.Page,
		PerPage: r.PerPage,
	}
	for _, row := range r.Rows {
		res.Rows = append(res.Rows, dto.ChangeListRow{Pk: row.Pk, Cells: row.Cells})
	}
	for _, f := range r.Filters {
		filter := dto.ChangeListFilter{Field: f.Field, Choices: make([]dto.ChangeListChoice, 0, len(f.Choices))}
		for _, c := range f.Choices {
			filter.Choices = append(filter.Choices, dto.ChangeListChoice{Value: c.Value, Label: c.Label, Selected: c.Selected})
		}
		res.Filters = append(res.Filters, filter)
	}
	return res
}
