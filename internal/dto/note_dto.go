package dto

import (
	"time"

	"github.com/google/uuid"
)

// Content is a pointer so that a missing field can be told apart from an
// empty one; the empty string is a valid content.
type AdminCreateNoteRequest struct {
	Title   string    `json:"title" validate:"required,max=200"`
	Content *string   `json:"content" validate:"required"`
	OwnerId uuid.UUID `json:"owner_id" validate:"required"`
}

type AdminUpdateNoteRequest struct {
	Title   string  `json:"title" validate:"required,max=200"`
	Content *string `json:"content" validate:"required"`
}

// AdminPatchNoteRequest changes only the fields present in the body.
type AdminPatchNoteRequest struct {
	Title   *string `json:"title" validate:"omitempty,max=200"`
	Content *string `json:"content"`
}

type NoteResponse struct {
	Id            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	Label         string    `json:"label"`
	Content       string    `json:"content"`
	OwnerId       uuid.UUID `json:"owner_id"`
	OwnerUsername string    `json:"owner_username,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
