package history

import (
	"context"
	"encoding/json"
	"testing"

	"notes-admin-be/internal/entity"
	"notes-admin-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChangeMessages(t *testing.T) {
	added, err := json.Marshal(AddedMessage())
	require.NoError(t, err)
	assert.JSONEq(t, `[{"added":{}}]`, string(added))

	changed, err := json.Marshal(ChangedMessage([]string{"title", "content"}))
	require.NoError(t, err)
	assert.JSONEq(t, `[{"changed":{"fields":["title","content"]}}]`, string(changed))

	unchanged, err := json.Marshal(ChangedMessage(nil))
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(unchanged))
}

func TestActionsWithoutActorAreNotLogged(t *testing.T) {
	r := NewRecorder(logger.NewNopLogger())
	note := &entity.Note{Id: uuid.New(), Title: "from the command line"}

	// No unit of work is touched for system actions.
	assert.NoError(t, r.LogAddition(context.Background(), nil, uuid.Nil, ObjectTypeNote, note.Id.String(), note))
	assert.NoError(t, r.LogDeletion(context.Background(), nil, uuid.Nil, ObjectTypeNote, note.Id.String(), note))
}
