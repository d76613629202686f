package implementation

import (
	"context"
	"testing"

	"notes-admin-be/internal/entity"
	"notes-admin-be/internal/repository/specification"
	"notes-admin-be/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminLogRepositoryRoundTrip(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	admin := testutil.CreateUser(t, db, "admin", "")
	repo := NewAdminLogRepository(db)

	objectId := uuid.NewString()
	note := entity.Note{Title: "Quarterly plan"}
	entry := entity.NewAdminLogEntry(admin.Id, "note", objectId, note, entity.AdminActionChange,
		[]map[string]interface{}{{"changed": map[string]interface{}{"fields": []string{"title"}}}})
	require.NoError(t, repo.Create(ctx, entry))

	entries, err := repo.FindAll(ctx, specification.ForObject{ObjectType: "note", ObjectID: objectId})
	require.NoError(t, err)
	require.Len(t, entries, 1)

	got := entries[0]
	assert.Equal(t, "Quarterly plan", got.ObjectRepr)
	assert.Equal(t, entity.AdminActionChange, got.ActionFlag)
	require.Len(t, got.ChangeMessage, 1)
	changed := got.ChangeMessage[0]["changed"].(map[string]interface{})
	assert.Equal(t, []interface{}{"title"}, changed["fields"])
}
