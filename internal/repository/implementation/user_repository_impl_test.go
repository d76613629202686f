package implementation

import (
	"context"
	"errors"
	"strings"
	"testing"

	"notes-admin-be/internal/entity"
	"notes-admin-be/internal/repository/specification"
	"notes-admin-be/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepositoryCreateAndFind(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	repo := NewUserRepository(db)

	username := "alice_" + uuid.NewString()[:8]
	user := &entity.User{Username: username, Email: "alice@example.com", FullName: "Alice"}
	require.NoError(t, repo.Create(ctx, user))
	t.Cleanup(func() { _ = repo.Delete(ctx, user.Id) })

	assert.NotEqual(t, uuid.Nil, user.Id)
	assert.Equal(t, entity.UserRoleUser, user.Role)

	found, err := repo.FindOne(ctx, specification.ByUsername{Username: username})
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, user.Id, found.Id)

	matches, err := repo.FindAll(ctx, specification.UserSearch{Query: strings.ToUpper(username)})
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, username, matches[0].String())
}

func TestUserRepositoryUsernameTaken(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	existing := testutil.CreateUser(t, db, "user", "")
	repo := NewUserRepository(db)

	err := repo.Create(ctx, &entity.User{Username: existing.Username})
	assert.True(t, errors.Is(err, entity.ErrUsernameTaken))
}

func TestUserRepositoryDeleteCascadesAtDatabaseLevel(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	owner := testutil.CreateUser(t, db, "user", "")
	notes := NewNoteRepository(db)

	note := &entity.Note{Title: "bound to owner", OwnerId: owner.Id}
	require.NoError(t, notes.Create(ctx, note))

	require.NoError(t, NewUserRepository(db).Delete(ctx, owner.Id))

	gone, err := notes.FindOne(ctx, specification.ByID{ID: note.Id})
	require.NoError(t, err)
	assert.Nil(t, gone)

	assert.ErrorIs(t, NewUserRepository(db).Delete(ctx, owner.Id), entity.ErrUserNotFound)
}
