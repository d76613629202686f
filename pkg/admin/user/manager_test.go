package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"notes-admin-be/internal/dto"
	"notes-admin-be/internal/entity"
	"notes-admin-be/internal/model"
	"notes-admin-be/internal/pkg/logger"
	"notes-admin-be/internal/repository/contract"
	"notes-admin-be/internal/repository/unitofwork"
	"notes-admin-be/internal/testutil"
	adminEvents "notes-admin-be/pkg/admin/events"
	"notes-admin-be/pkg/admin/history"
	pkgEvents "notes-admin-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fixture struct {
	db      *gorm.DB
	uows    unitofwork.RepositoryFactory
	manager *Manager
	bus     *pkgEvents.ChannelBus
}

func newFixture(t *testing.T) *fixture {
	db := testutil.NewDB(t)
	nop := logger.NewNopLogger()
	bus := pkgEvents.NewChannelBus(nil)
	t.Cleanup(func() { _ = bus.Close() })

	m := NewManager(nop, adminEvents.NewBusPublisher(bus, nop), history.NewRecorder(nop)).WithHashCost(bcrypt.MinCost)
	return &fixture{db: db, uows: unitofwork.NewRepositoryFactory(db), manager: m, bus: bus}
}

func (f *fixture) subscribe(t *testing.T, eventType string) <-chan *message.Message {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	ch, err := f.bus.Subscribe(ctx, eventType)
	require.NoError(t, err)
	return ch
}

func (f *fixture) insertNote(t *testing.T, ownerId uuid.UUID, title string) uuid.UUID {
	now := entity.Now()
	n := &model.Note{Id: uuid.New(), Title: title, Content: "", OwnerId: ownerId, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, f.db.Create(n).Error)
	return n.Id
}

func (f *fixture) countNotes(t *testing.T, ownerId uuid.UUID) int64 {
	var n int64
	require.NoError(t, f.db.Model(&model.Note{}).Where("owner_id = ?", ownerId).Count(&n).Error)
	return n
}

func (f *fixture) logEntries(t *testing.T, objectType, objectId string) []model.AdminLogEntry {
	var entries []model.AdminLogEntry
	require.NoError(t, f.db.Where("object_type = ? AND object_id = ?", objectType, objectId).Find(&entries).Error)
	return entries
}

func receive(t *testing.T, ch <-chan *message.Message) pkgEvents.BaseEvent {
	t.Helper()
	select {
	case msg := <-ch:
		msg.Ack()
		evt, err := pkgEvents.Decode(msg)
		require.NoError(t, err)
		return evt
	case <-time.After(2 * time.Second):
		t.Fatal("event was not published")
	}
	return pkgEvents.BaseEvent{}
}

func TestCreateUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := testutil.CreateUser(t, f.db, "admin", "")
	created := f.subscribe(t, adminEvents.UserCreated)

	username := "new_" + testutil.UniqueToken()
	u, err := f.manager.Create(ctx, f.uows.NewUnitOfWork(ctx), admin.Id, dto.AdminCreateUserRequest{
		Username: username,
		Password: "correct horse",
	})
	require.NoError(t, err)
	t.Cleanup(func() { f.db.Where("id = ?", u.Id).Delete(&model.User{}) })

	assert.Equal(t, entity.UserRoleUser, u.Role)
	require.NotNil(t, u.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(*u.PasswordHash), []byte("correct horse")))

	entries := f.logEntries(t, history.ObjectTypeUser, u.Id.String())
	require.Len(t, entries, 1)
	assert.Equal(t, int16(entity.AdminActionAddition), entries[0].ActionFlag)
	assert.Equal(t, username, entries[0].ObjectRepr)

	evt := receive(t, created)
	assert.Equal(t, username, evt.Data["username"])

	t.Run("username taken", func(t *testing.T) {
		_, err := f.manager.Create(ctx, f.uows.NewUnitOfWork(ctx), admin.Id, dto.AdminCreateUserRequest{Username: username})
		assert.True(t, errors.Is(err, entity.ErrUsernameTaken))
	})
}

func TestDeleteUserCascadesNotes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := testutil.CreateUser(t, f.db, "admin", "")
	owner := testutil.CreateUser(t, f.db, "user", "")
	other := testutil.CreateUser(t, f.db, "user", "")
	deleted := f.subscribe(t, adminEvents.UserDeleted)

	f.insertNote(t, owner.Id, "first")
	f.insertNote(t, owner.Id, "second")
	kept := f.insertNote(t, other.Id, "not mine")

	n, err := f.manager.Delete(ctx, f.uows.NewUnitOfWork(ctx), admin.Id, owner.Id)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	assert.Equal(t, int64(0), f.countNotes(t, owner.Id))
	var survivor model.Note
	require.NoError(t, f.db.Where("id = ?", kept).First(&survivor).Error)

	_, err = f.manager.FindOne(ctx, f.uows.NewUnitOfWork(ctx), owner.Id)
	assert.True(t, errors.Is(err, entity.ErrUserNotFound))

	entries := f.logEntries(t, history.ObjectTypeUser, owner.Id.String())
	require.Len(t, entries, 1)
	assert.Equal(t, int16(entity.AdminActionDeletion), entries[0].ActionFlag)

	evt := receive(t, deleted)
	assert.Equal(t, float64(2), evt.Data["notes_deleted"])
	assert.Equal(t, owner.Username, evt.Data["username"])
}

// failingLogRepository rejects every write, to break the last step of a cascade.
type failingLogRepository struct {
	contract.AdminLogRepository
}

func (failingLogRepository) Create(ctx context.Context, entry *entity.AdminLogEntry) error {
	return errors.New("log store unavailable")
}

type failingLogUnitOfWork struct {
	unitofwork.UnitOfWork
}

func (failingLogUnitOfWork) AdminLogRepository() contract.AdminLogRepository {
	return failingLogRepository{}
}

func TestDeleteUserRollsBackOnFailure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := testutil.CreateUser(t, f.db, "admin", "")
	owner := testutil.CreateUser(t, f.db, "user", "")
	f.insertNote(t, owner.Id, "survives")

	uow := failingLogUnitOfWork{UnitOfWork: f.uows.NewUnitOfWork(ctx)}
	_, err := f.manager.Delete(ctx, uow, admin.Id, owner.Id)
	require.Error(t, err)

	assert.Equal(t, int64(1), f.countNotes(t, owner.Id))
	u, err := f.manager.FindOne(ctx, f.uows.NewUnitOfWork(ctx), owner.Id)
	require.NoError(t, err)
	assert.Equal(t, owner.Username, u.Username)
}

func TestDeleteUserErrors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := testutil.CreateUser(t, f.db, "admin", "")

	_, err := f.manager.Delete(ctx, f.uows.NewUnitOfWork(ctx), admin.Id, uuid.New())
	assert.True(t, errors.Is(err, entity.ErrUserNotFound))

	_, err = f.manager.Delete(ctx, f.uows.NewUnitOfWork(ctx), admin.Id, admin.Id)
	assert.True(t, errors.Is(err, entity.ErrForbidden))
}

func TestFindAllSearchesUsers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	token := testutil.UniqueToken()

	u := testutil.CreateUser(t, f.db, "user", "")
	require.NoError(t, f.db.Model(&model.User{}).Where("id = ?", u.Id).Update("full_name", "Ada "+token).Error)
	testutil.CreateUser(t, f.db, "user", "")

	users, err := f.manager.FindAll(ctx, f.uows.NewUnitOfWork(ctx), 1, 10, token)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, u.Id, users[0].Id)

	found, err := f.manager.FindByUsername(ctx, f.uows.NewUnitOfWork(ctx), u.Username)
	require.NoError(t, err)
	require.NotNil(t, found)

	missing, err := f.manager.FindByUsername(ctx, f.uows.NewUnitOfWork(ctx), "nobody_"+token)
	require.NoError(t, err)
	assert.Nil(t, missing)
}
