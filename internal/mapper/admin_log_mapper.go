package mapper

import (
	"encoding/json"

	"notes-admin-be/internal/entity"
	"notes-admin-be/internal/model"

	"gorm.io/datatypes"
)

type AdminLogMapper struct{}

func NewAdminLogMapper() *AdminLogMapper {
	return &AdminLogMapper{}
}

func (m *AdminLogMapper) ToEntity(e *model.AdminLogEntry) *entity.AdminLogEntry {
	if e == nil {
		return nil
	}

	var message []map[string]interface{}
	if len(e.ChangeMessage) > 0 {
		// A malformed message is shown as empty rather than failing the history view.
		_ = json.Unmarshal(e.ChangeMessage, &message)
	}

	return &entity.AdminLogEntry{
		Id:            e.Id,
		ActionTime:    e.ActionTime,
		UserId:        e.UserId,
		ObjectType:    e.ObjectType,
		ObjectId:      e.ObjectId,
		ObjectRepr:    e.ObjectRepr,
		ActionFlag:    entity.AdminActionFlag(e.ActionFlag),
		ChangeMessage: message,
	}
}

func (m *AdminLogMapper) ToModel(e *entity.AdminLogEntry) (*model.AdminLogEntry, error) {
	if e == nil {
		return nil, nil
	}

	message := e.ChangeMessage
	if message == nil {
		message = []map[string]interface{}{}
	}
	raw, err := json.Marshal(message)
	if err != nil {
		return nil, err
	}

	return &model.AdminLogEntry{
		Id:            e.Id,
		ActionTime:    e.ActionTime,
		UserId:        e.UserId,
		ObjectType:    e.ObjectType,
		ObjectId:      e.ObjectId,
		ObjectRepr:    e.ObjectRepr,
		ActionFlag:    int16(e.ActionFlag),
		ChangeMessage: datatypes.JSON(raw),
	}, nil
}

func (m *AdminLogMapper) ToEntities(entries []*model.AdminLogEntry) []*entity.AdminLogEntry {
	entities := make([]*entity.AdminLogEntry, len(entries))
	for i, e := range entries {
		entities[i] = m.ToEntity(e)
	}
	return entities
}
