package entity

import (
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	NoteTitleMaxLength = 200
	NoteLabelMaxLength = 50
)

type Note struct {
	Id        uuid.UUID
	Title     string
	Content   string
	OwnerId   uuid.UUID
	Owner     *User // populated only by queries that load the owner
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Label is the short human readable form of a note: the title cut at 50
// characters, without ellipsis.
func (n Note) Label() string {
	return truncateRunes(n.Title, NoteLabelMaxLength)
}

func (n Note) String() string {
	return n.Label()
}

func (n *Note) Validate() error {
	if n.Title == "" {
		return NewFieldError("title", ErrRequired)
	}
	if utf8.RuneCountInString(n.Title) > NoteTitleMaxLength {
		return &FieldError{Field: "title", Err: ErrTooLong, Limit: NoteTitleMaxLength}
	}
	if n.OwnerId == uuid.Nil {
		return NewFieldError("owner", ErrRequired)
	}
	return nil
}

// StampCreated sets both timestamps for a first insert.
func (n *Note) StampCreated(now time.Time) {
	n.CreatedAt = now
	n.UpdatedAt = now
}

// StampUpdated moves updated_at forward; it never falls behind created_at.
func (n *Note) StampUpdated(now time.Time) {
	if now.Before(n.CreatedAt) {
		now = n.CreatedAt
	}
	n.UpdatedAt = now
}

// Admin console descriptor.

func (Note) ListColumns() []string {
	return []string{"id", "title", "owner", "updated_at"}
}

func (Note) SearchableFields() []string {
	return []string{"title", "content", "owner__username"}
}

func (Note) FilterableFields() []string {
	return []string{"updated_at"}
}

func (Note) Ordering() []string {
	return []string{"-updated_at"}
}

// Now is the clock used by the write path. Postgres keeps microseconds, so the
// value is truncated to what survives a round trip.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

func truncateRunes(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	count := 0
	for i := range s {
		if count == max {
			return s[:i]
		}
		count++
	}
	return s
}
