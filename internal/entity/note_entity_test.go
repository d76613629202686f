package entity

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoteLabel(t *testing.T) {
	title := strings.Repeat("abcdefghij", 6)
	n := Note{Title: title}

	assert.Equal(t, title[:50], n.Label())
	assert.Equal(t, title[:50], n.String())

	short := Note{Title: "Groceries"}
	assert.Equal(t, "Groceries", short.Label())

	// Characters, not bytes.
	multibyte := Note{Title: strings.Repeat("é", 60)}
	assert.Equal(t, strings.Repeat("é", 50), multibyte.Label())
}

func TestNoteValidate(t *testing.T) {
	owner := uuid.New()

	t.Run("valid with empty content", func(t *testing.T) {
		n := &Note{Title: "ok", Content: "", OwnerId: owner}
		assert.NoError(t, n.Validate())
	})

	t.Run("title too long", func(t *testing.T) {
		n := &Note{Title: strings.Repeat("A", 250), OwnerId: owner}
		err := n.Validate()
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrTooLong))

		var fe *FieldError
		require.True(t, errors.As(err, &fe))
		assert.Equal(t, "title", fe.Field)
		assert.Equal(t, NoteTitleMaxLength, fe.Limit)
	})

	t.Run("title at limit", func(t *testing.T) {
		n := &Note{Title: strings.Repeat("ü", NoteTitleMaxLength), OwnerId: owner}
		assert.NoError(t, n.Validate())
	})

	t.Run("missing title", func(t *testing.T) {
		err := (&Note{OwnerId: owner}).Validate()
		assert.True(t, errors.Is(err, ErrRequired))
	})

	t.Run("missing owner", func(t *testing.T) {
		err := (&Note{Title: "x"}).Validate()
		var fe *FieldError
		require.True(t, errors.As(err, &fe))
		assert.Equal(t, "owner", fe.Field)
		assert.True(t, errors.Is(err, ErrRequired))
	})
}

func TestNoteStamps(t *testing.T) {
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	n := &Note{}
	n.StampCreated(created)
	assert.Equal(t, created, n.CreatedAt)
	assert.Equal(t, created, n.UpdatedAt)

	later := created.Add(time.Hour)
	n.StampUpdated(later)
	assert.Equal(t, created, n.CreatedAt)
	assert.Equal(t, later, n.UpdatedAt)

	// A clock running behind never breaks updated_at >= created_at.
	n.StampUpdated(created.Add(-time.Minute))
	assert.Equal(t, created, n.UpdatedAt)
}

func TestNoteDescriptor(t *testing.T) {
	n := Note{}
	assert.Equal(t, []string{"id", "title", "owner", "updated_at"}, n.ListColumns())
	assert.Equal(t, []string{"title", "content", "owner__username"}, n.SearchableFields())
	assert.Equal(t, []string{"updated_at"}, n.FilterableFields())
	assert.Equal(t, []string{"-updated_at"}, n.Ordering())
}

func TestNewAdminLogEntryTruncatesRepr(t *testing.T) {
	actor := uuid.New()
	user := User{Username: strings.Repeat("u", 300)}
	entry := NewAdminLogEntry(actor, "user", uuid.NewString(), user, AdminActionDeletion, nil)

	assert.Len(t, entry.ObjectRepr, AdminLogObjectReprMaxLength)
	assert.Equal(t, "deletion", entry.ActionFlag.String())
	assert.Equal(t, actor, entry.UserId)
}
